// Package llm wraps the hosted text-generation services behind a single
// chat-style interface so the rest of the app does not care which provider is
// configured.
package llm

import (
	"context"
	"fmt"
)

// Role tags a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a role-tagged conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatClient generates a single text completion for a message sequence.
type ChatClient interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// Closer is implemented by clients holding a connection that needs shutdown.
type Closer interface {
	Close() error
}

// ErrorKind classifies why a generation call failed, so callers can decide
// between retrying, falling back, or reporting.
type ErrorKind string

const (
	KindUpstream    ErrorKind = "upstream-failure"
	KindMalformed   ErrorKind = "malformed-response"
	KindTimeout     ErrorKind = "timeout"
	KindRateLimited ErrorKind = "rate-limited"
)

// Error is the failure type returned by all ChatClient implementations.
type Error struct {
	Kind   ErrorKind
	Status int // HTTP status when relevant, 0 otherwise
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("llm: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("llm: %s", e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}
