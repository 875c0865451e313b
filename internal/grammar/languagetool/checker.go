package languagetool

import (
	"context"

	"grammar-backend/internal/grammar"
	"grammar-backend/internal/grammar/language"
	"grammar-backend/internal/shared/telemetry"
)

// Checker adapts Client to grammar.Checker.
type Checker struct {
	client *Client
}

func NewChecker(client *Client) *Checker {
	return &Checker{client: client}
}

func (c *Checker) Name() string { return grammar.ProviderLanguageTool }

// Analyze checks req and maps the matches onto the canonical shape. The
// result language is the one the provider reports, falling back to the
// normalized request code.
func (c *Checker) Analyze(ctx context.Context, req grammar.Request) (grammar.Result, error) {
	resp, err := c.client.Check(ctx, req.Text, req.Language)
	if err != nil {
		return grammar.Result{}, err
	}
	if resp.Warnings != nil && resp.Warnings.IncompleteResults {
		telemetry.Warn("languagetool.incomplete_results", map[string]any{
			"language": resp.Language.Code,
			"matches":  len(resp.Matches),
		})
	}

	textLength := grammar.TextLength(req.Text)
	lang := resp.Language.Code
	if lang == "" {
		lang = language.Normalize(req.Language).Code
	}
	return grammar.NewResult(MapMatches(resp.Matches, textLength), lang, 0, textLength), nil
}

// MapMatches converts provider matches in order.
func MapMatches(matches []Match, textLength int) []grammar.Error {
	out := make([]grammar.Error, 0, len(matches))
	for _, m := range matches {
		offset, length := grammar.ClampSpan(m.Offset, m.Length, textLength)
		replacements := make([]grammar.Replacement, 0, len(m.Replacements))
		for _, r := range m.Replacements {
			replacements = append(replacements, grammar.Replacement{Value: r.Value, ShortDescription: r.ShortDescription})
		}
		out = append(out, grammar.Error{
			Message:      m.Message,
			ShortMessage: m.ShortMessage,
			Offset:       offset,
			Length:       length,
			Replacements: replacements,
			Rule: grammar.Rule{
				ID:          m.Rule.ID,
				Description: m.Rule.Description,
				Category:    grammar.CompleteCategory(grammar.Category{ID: m.Rule.Category.ID, Name: m.Rule.Category.Name}),
				IssueType:   m.Rule.IssueType,
			},
			Sentence: m.Sentence,
			Type:     grammar.ErrorType{TypeName: grammar.FoldType(m.Type.TypeName)},
		})
	}
	return out
}

var _ grammar.Checker = (*Checker)(nil)
