package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const openAIAPIURL = "https://api.openai.com/v1/chat/completions"

// Generation settings: short replies, conversational temperature.
const (
	maxReplyTokens   = 500
	replyTemperature = 0.7
)

// openAIClient calls the OpenAI chat-completions endpoint.
type openAIClient struct {
	apiKey     string
	model      string
	apiURL     string
	httpClient *http.Client
}

// NewOpenAIClient creates a ChatClient backed by the OpenAI API.
func NewOpenAIClient(apiKey, model string, timeout time.Duration) ChatClient {
	return &openAIClient{
		apiKey: apiKey,
		model:  model,
		apiURL: openAIAPIURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Chat sends the message sequence and returns the first completion choice.
func (c *openAIClient) Chat(ctx context.Context, messages []Message) (string, error) {
	reqBody := map[string]interface{}{
		"model":       c.model,
		"messages":    messages,
		"max_tokens":  maxReplyTokens,
		"temperature": replyTemperature,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", &Error{Kind: KindMalformed, Err: fmt.Errorf("marshal request body: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", &Error{Kind: KindUpstream, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Kind: classifyTransportError(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		kind := KindUpstream
		if resp.StatusCode == http.StatusTooManyRequests {
			kind = KindRateLimited
		}
		return "", &Error{
			Kind:   kind,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("openai api error: status=%d body=%s", resp.StatusCode, string(bodyBytes)),
		}
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", &Error{Kind: KindMalformed, Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(completion.Choices) == 0 {
		return "", &Error{Kind: KindMalformed, Err: errors.New("no completion choices returned")}
	}
	return completion.Choices[0].Message.Content, nil
}

// classifyTransportError separates timeouts from other transport failures.
func classifyTransportError(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindUpstream
}
