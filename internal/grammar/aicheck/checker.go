package aicheck

import (
	"context"
	"errors"

	"grammar-backend/internal/grammar"
	"grammar-backend/internal/llm"
)

const (
	temperature = 0.1
	maxTokens   = 2000
)

// Checker runs grammar checks through a chat-completion model.
type Checker struct {
	completer llm.Completer
}

func NewChecker(completer llm.Completer) *Checker {
	return &Checker{completer: completer}
}

func (c *Checker) Name() string { return grammar.ProviderOpenAI }

// Analyze prompts the model and maps its reply. The result language is the
// request label as given.
func (c *Checker) Analyze(ctx context.Context, req grammar.Request) (grammar.Result, error) {
	content, err := c.completer.Complete(ctx, BuildMessages(req.Text, req.Language), llm.Options{
		Temperature: llm.Temperature(temperature),
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return grammar.Result{}, providerError(err)
	}

	errs, err := Parse(content, req.Text)
	if err != nil {
		return grammar.Result{}, &grammar.ProviderError{Provider: grammar.ProviderOpenAI, Err: err}
	}
	return grammar.NewResult(errs, req.Language, 0, grammar.TextLength(req.Text)), nil
}

func providerError(err error) error {
	var statusErr *llm.StatusError
	if errors.As(err, &statusErr) {
		return grammar.StatusError(grammar.ProviderOpenAI, statusErr.StatusCode, statusErr.Body)
	}
	var transportErr *llm.TransportError
	if errors.As(err, &transportErr) {
		return grammar.TransportError(grammar.ProviderOpenAI, err)
	}
	if errors.Is(err, llm.ErrEmptyResponse) {
		return &grammar.ProviderError{Provider: grammar.ProviderOpenAI, Err: errors.Join(grammar.ErrNoResponse, err)}
	}
	return &grammar.ProviderError{Provider: grammar.ProviderOpenAI, Err: err}
}

var _ grammar.Checker = (*Checker)(nil)
