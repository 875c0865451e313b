package llm

import (
	"context"
	"errors"
	"fmt"
)

// Chat roles understood by every provider.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one chat turn.
type Message struct {
	Role    string
	Content string
}

// Options tune a single completion. Zero values leave the provider default.
type Options struct {
	Temperature *float32
	MaxTokens   int
}

// Completer abstracts chat-completion providers.
type Completer interface {
	Complete(ctx context.Context, messages []Message, opts Options) (string, error)
}

// ErrEmptyResponse is returned when the provider answered without content.
var ErrEmptyResponse = errors.New("llm response empty")

// StatusError is a non-success HTTP status from the provider.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm http status %d: %s", e.StatusCode, e.Body)
}

// TransportError wraps a request that never produced a response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "llm transport: " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// Temperature returns a pointer for Options.Temperature.
func Temperature(v float32) *float32 {
	return &v
}
