package grammar

import (
	"context"
	"strings"
	"unicode/utf16"
)

// MaxTextLength is the largest accepted input, in UTF-16 code units.
const MaxTextLength = 50000

const (
	ProviderLanguageTool = "languagetool"
	ProviderOpenAI       = "openai"
)

// Checker analyzes text with one upstream provider.
type Checker interface {
	Name() string
	Analyze(ctx context.Context, req Request) (Result, error)
}

// TextLength counts UTF-16 code units, the unit providers report offsets in.
func TextLength(text string) int {
	n := 0
	for _, r := range text {
		n += len(utf16.AppendRune(nil, r))
	}
	return n
}

// PrepareRequest trims the text, applies the default language and enforces the
// size limits.
func PrepareRequest(req Request, defaultLanguage string) (Request, error) {
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return req, ErrEmptyText
	}
	if TextLength(req.Text) > MaxTextLength {
		return req, ErrTextTooLong
	}
	req.Language = strings.TrimSpace(req.Language)
	if req.Language == "" {
		req.Language = defaultLanguage
	}
	return req, nil
}
