package languagetool

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grammar-backend/internal/grammar"
)

func TestCheckerAnalyzeMapsMatches(t *testing.T) {
	rec := &recorder{}
	server := newProvider(t, rec, func(int) (int, string) { return http.StatusOK, okBody })

	checker := NewChecker(NewClient(server.URL, server.Client()))
	assert.Equal(t, grammar.ProviderLanguageTool, checker.Name())

	result, err := checker.Analyze(context.Background(), grammar.Request{Text: "This tset is here.", Language: "en"})
	require.NoError(t, err)
	assert.Equal(t, "en-US", result.Language)
	assert.Equal(t, 18, result.TextLength)
	require.Equal(t, 1, result.TotalErrors)
	require.Len(t, result.Errors, 1)

	e := result.Errors[0]
	assert.Equal(t, 5, e.Offset)
	assert.Equal(t, 4, e.Length)
	assert.Equal(t, []grammar.Replacement{{Value: "test"}, {Value: "tests"}}, e.Replacements)
	assert.Equal(t, "MORFOLOGIK_RULE_EN_US", e.Rule.ID)
	assert.Equal(t, grammar.Category{ID: "TYPOS", Name: "Possible Typo"}, e.Rule.Category)
	assert.Equal(t, "misspelling", e.Rule.IssueType)
	assert.Equal(t, grammar.TypeUnknownWord, e.Type.TypeName)
}

func TestCheckerFallsBackToNormalizedLanguage(t *testing.T) {
	rec := &recorder{}
	server := newProvider(t, rec, func(int) (int, string) { return http.StatusOK, `{"matches":[]}` })

	result, err := NewChecker(NewClient(server.URL, server.Client())).Analyze(context.Background(), grammar.Request{Text: "Fine.", Language: "de"})
	require.NoError(t, err)
	assert.Equal(t, "de-DE", result.Language)
	assert.Equal(t, 0, result.TotalErrors)
	assert.NotNil(t, result.Errors)
}

func TestMapMatchesCompletesCategoriesAndClamps(t *testing.T) {
	matches := []Match{
		{Message: "a", Offset: 2, Length: 50, Rule: Rule{ID: "R1", Category: Category{ID: "GRAMMAR"}}, Type: MatchType{TypeName: "Hint"}},
		{Message: "b", Offset: -3, Length: 2, Rule: Rule{ID: "R2"}, Type: MatchType{TypeName: "weird"}},
	}
	got := MapMatches(matches, 10)
	require.Len(t, got, 2)

	assert.Equal(t, 2, got[0].Offset)
	assert.Equal(t, 8, got[0].Length)
	assert.Equal(t, grammar.Category{ID: "GRAMMAR", Name: "Grammar"}, got[0].Rule.Category)
	assert.Equal(t, grammar.TypeHint, got[0].Type.TypeName)
	assert.NotNil(t, got[0].Replacements)

	assert.Equal(t, 0, got[1].Offset)
	assert.Equal(t, 2, got[1].Length)
	assert.Equal(t, grammar.Category{ID: "MISC", Name: "Miscellaneous"}, got[1].Rule.Category)
	assert.Equal(t, grammar.TypeOther, got[1].Type.TypeName)
}
