package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// geminiClient is a ChatClient backed by the Google Gemini API.
type geminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient creates a new Gemini API client. The returned client also
// implements Closer and should be closed on shutdown.
func NewGeminiClient(ctx context.Context, apiKey, model string) (ChatClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	gm := client.GenerativeModel(model)
	gm.SetTemperature(replyTemperature)
	gm.SetMaxOutputTokens(maxReplyTokens)
	return &geminiClient{client: client, model: gm}, nil
}

// Chat flattens the role-tagged conversation into a single prompt (Gemini's
// text API takes one prompt, not a message list) and returns the reply.
func (c *geminiClient) Chat(ctx context.Context, messages []Message) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(flattenMessages(messages)))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &Error{Kind: KindTimeout, Err: err}
		}
		return "", &Error{Kind: KindUpstream, Err: err}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &Error{Kind: KindMalformed, Err: errors.New("no content generated")}
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", &Error{Kind: KindMalformed, Err: errors.New("generated content is not text")}
	}
	return string(text), nil
}

// Close closes the underlying Gemini client.
func (c *geminiClient) Close() error {
	return c.client.Close()
}

// flattenMessages renders the system persona first, then the dialogue turns,
// ending with a "Coach:" cue for the model to continue.
func flattenMessages(messages []Message) string {
	var b strings.Builder
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			b.WriteString(m.Content)
			b.WriteString("\n\n")
		case RoleAssistant:
			fmt.Fprintf(&b, "Coach: %s\n", m.Content)
		default:
			fmt.Fprintf(&b, "User: %s\n", m.Content)
		}
	}
	b.WriteString("Coach:")
	return b.String()
}
