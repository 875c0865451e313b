package grammar_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grammar-backend/internal/grammar"
	"grammar-backend/internal/grammar/aicheck"
	"grammar-backend/internal/grammar/languagetool"
	"grammar-backend/internal/llm"
)

type cannedCompleter string

func (c cannedCompleter) Complete(context.Context, []llm.Message, llm.Options) (string, error) {
	return string(c), nil
}

func TestServiceRuleBasedRetryEndToEnd(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		_ = r.ParseForm()
		if n == 1 {
			if r.PostForm.Get("preferredVariants") == "" {
				t.Errorf("first attempt should carry hints")
			}
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("bad variant"))
			return
		}
		if _, ok := r.PostForm["preferredVariants"]; ok {
			t.Errorf("retry should omit hints")
		}
		_, _ = w.Write([]byte(`{"language":{"code":"en-US"},"matches":[{"message":"m","offset":0,"length":4,"replacements":[{"value":"Hello"}],"type":{"typeName":"UnknownWord"},"rule":{"id":"SPELL","category":{"id":"TYPOS"}}}]}`))
	}))
	defer server.Close()

	repo := grammar.NewMemoryRepo()
	svc := &grammar.Service{
		Rules: languagetool.NewChecker(languagetool.NewClient(server.URL, server.Client())),
		Repo:  repo,
	}
	result, err := svc.Analyze(context.Background(), grammar.Request{Text: "Helo world", Language: "en", UserID: "u1"}, false)
	require.NoError(t, err)
	svc.Close()

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, "en-US", result.Language)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Possible Typo", result.Errors[0].Rule.Category.Name)

	history, err := svc.History(context.Background(), "u1", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, grammar.ProviderLanguageTool, history[0].Provider)
}

func TestServiceGenerativeEndToEnd(t *testing.T) {
	svc := &grammar.Service{
		Rules:      languagetool.NewChecker(languagetool.NewClient("http://127.0.0.1:0", nil)),
		Generative: aicheck.NewChecker(cannedCompleter("```json\n{\"errors\":[{\"message\":\"m\",\"type\":\"spelling\",\"category\":\"spelling\"}]}\n```")),
		Repo:       grammar.NewMemoryRepo(),
	}
	result, err := svc.Analyze(context.Background(), grammar.Request{Text: "Helo", Language: "en"}, true)
	require.NoError(t, err)
	svc.Close()

	assert.Equal(t, "en", result.Language)
	require.Equal(t, 1, result.TotalErrors)
	assert.Equal(t, "OPENAI_SPELLING_0", result.Errors[0].Rule.ID)
	assert.Equal(t, "Spelling", result.Errors[0].Rule.Category.Name)
}

func TestServiceRuleBasedSampleSentence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if got := r.PostForm.Get("language"); got != "en-US" {
			t.Errorf("language = %q, want en-US", got)
		}
		_, _ = w.Write([]byte(`{"language":{"code":"en-US"},"matches":[{"message":"Possible spelling mistake found.","offset":36,"length":7,"replacements":[{"value":"grammar"}],"rule":{"id":"MORFOLOGIK_RULE_EN_US","category":{"id":"TYPOS"}}}]}`))
	}))
	defer server.Close()

	svc := &grammar.Service{
		Rules: languagetool.NewChecker(languagetool.NewClient(server.URL, server.Client())),
		Repo:  grammar.NewMemoryRepo(),
	}
	result, err := svc.Analyze(context.Background(), grammar.Request{Text: "This is a sample text with some grammer mistakes.", Language: "en"}, false)
	require.NoError(t, err)
	svc.Close()

	assert.Equal(t, 1, result.TotalErrors)
	assert.Equal(t, "en-US", result.Language)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 36, result.Errors[0].Offset)
	assert.Equal(t, 7, result.Errors[0].Length)
	assert.Equal(t, "Possible Typo", result.Errors[0].Rule.Category.Name)
	assert.Equal(t, "grammar", result.Errors[0].Replacements[0].Value)
}
