package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"runbuddy/coach-app/internal/llm"
	"runbuddy/coach-app/internal/repository"
)

func TestChatReply_InjectsPersona(t *testing.T) {
	user := onboardedUser()
	chat := &mockChat{reply: "Nice pace! Keep it easy tomorrow."}
	svc := NewChatService(&mockUserRepo{user: user}, chat)

	reply, err := svc.Reply(context.Background(), user.ID, []llm.Message{
		{Role: llm.RoleUser, Content: "I ran 5k today"},
	})
	if err != nil {
		t.Fatalf("Reply() error = %v", err)
	}
	if reply.Role != llm.RoleAssistant || reply.Content != "Nice pace! Keep it easy tomorrow." {
		t.Errorf("reply = %+v", reply)
	}

	if len(chat.got) != 2 || chat.got[0].Role != llm.RoleSystem {
		t.Fatalf("persona system message not prepended: %v", chat.got)
	}
	persona := chat.got[0].Content
	for _, want := range []string{"Max", "chill", "run a 5K"} {
		if !strings.Contains(persona, want) {
			t.Errorf("persona missing %q:\n%s", want, persona)
		}
	}
}

func TestChatReply_KeepsExistingSystemMessage(t *testing.T) {
	user := onboardedUser()
	chat := &mockChat{reply: "ok"}
	svc := NewChatService(&mockUserRepo{user: user}, chat)

	history := []llm.Message{
		{Role: llm.RoleSystem, Content: "existing persona"},
		{Role: llm.RoleUser, Content: "hello"},
	}
	if _, err := svc.Reply(context.Background(), user.ID, history); err != nil {
		t.Fatalf("Reply() error = %v", err)
	}
	if len(chat.got) != 2 || chat.got[0].Content != "existing persona" {
		t.Errorf("history was rewritten: %v", chat.got)
	}
}

func TestChatReply_MasksGenerationFailure(t *testing.T) {
	user := onboardedUser()
	chat := &mockChat{err: &llm.Error{Kind: llm.KindRateLimited}}
	svc := NewChatService(&mockUserRepo{user: user}, chat)

	reply, err := svc.Reply(context.Background(), user.ID, []llm.Message{
		{Role: llm.RoleUser, Content: "hello?"},
	})
	if err != nil {
		t.Fatalf("Reply() error = %v, generation failure must be masked", err)
	}
	if reply.Content != coachApology {
		t.Errorf("reply = %q, want apology", reply.Content)
	}
}

func TestChatReply_ProfileLoadFailureSurfaces(t *testing.T) {
	svc := NewChatService(&mockUserRepo{err: repository.ErrNotFound}, &mockChat{reply: "hi"})

	_, err := svc.Reply(context.Background(), onboardedUser().ID, nil)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("error = %v, want repository error surfaced", err)
	}
}

func TestWelcome(t *testing.T) {
	user := onboardedUser()
	svc := NewChatService(&mockUserRepo{user: user}, &mockChat{})

	messages, err := svc.Welcome(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Welcome() error = %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("got %d messages, want system + greeting", len(messages))
	}
	if messages[0].Role != llm.RoleSystem || messages[1].Role != llm.RoleAssistant {
		t.Errorf("roles = %s, %s", messages[0].Role, messages[1].Role)
	}
	if !strings.Contains(messages[1].Content, "Max") {
		t.Errorf("greeting missing coach name: %q", messages[1].Content)
	}
}
