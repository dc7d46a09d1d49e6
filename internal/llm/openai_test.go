package llm

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(url string) *openAIClient {
	return &openAIClient{
		apiKey:     "test-key",
		model:      "gpt-test",
		apiURL:     url,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestOpenAIChat_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"**Monday:** Easy run"}}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	got, err := client.Chat(context.Background(), []Message{{Role: RoleUser, Content: "plan please"}})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if got != "**Monday:** Easy run" {
		t.Errorf("Chat() = %q", got)
	}
}

func TestOpenAIChat_ErrorKinds(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind ErrorKind
	}{
		{"rate limited", http.StatusTooManyRequests, `{"error":"slow down"}`, KindRateLimited},
		{"server error", http.StatusInternalServerError, `oops`, KindUpstream},
		{"unauthorized", http.StatusUnauthorized, `{"error":"bad key"}`, KindUpstream},
		{"garbage body", http.StatusOK, `not json at all`, KindMalformed},
		{"empty choices", http.StatusOK, `{"choices":[]}`, KindMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(server.URL)
			_, err := client.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
			if err == nil {
				t.Fatal("Chat() error = nil, want *Error")
			}
			var llmErr *Error
			if !errors.As(err, &llmErr) {
				t.Fatalf("error type = %T", err)
			}
			if llmErr.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", llmErr.Kind, tt.wantKind)
			}
		})
	}
}

func TestOpenAIChat_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server can detect the client disconnect and
		// cancel the request context; otherwise server.Close() deadlocks.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.httpClient.Timeout = 50 * time.Millisecond

	_, err := client.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	var llmErr *Error
	if !errors.As(err, &llmErr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if llmErr.Kind != KindTimeout {
		t.Errorf("Kind = %s, want %s", llmErr.Kind, KindTimeout)
	}
}

func TestFlattenMessages(t *testing.T) {
	got := flattenMessages([]Message{
		{Role: RoleSystem, Content: "You are Max, a chill running coach."},
		{Role: RoleAssistant, Content: "Hey there!"},
		{Role: RoleUser, Content: "How far today?"},
	})
	want := "You are Max, a chill running coach.\n\nCoach: Hey there!\nUser: How far today?\nCoach:"
	if got != want {
		t.Errorf("flattenMessages() = %q, want %q", got, want)
	}
}
