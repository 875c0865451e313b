package languagetool

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grammar-backend/internal/grammar"
)

const okBody = `{
  "software": {"name": "LanguageTool", "version": "6.4"},
  "language": {"name": "English (US)", "code": "en-US", "detectedLanguage": {"name": "English (US)", "code": "en-US", "confidence": 0.99}},
  "matches": [
    {
      "message": "Possible spelling mistake found.",
      "shortMessage": "Spelling mistake",
      "offset": 5,
      "length": 4,
      "replacements": [{"value": "test"}, {"value": "tests"}],
      "sentence": "This tset is here.",
      "type": {"typeName": "UnknownWord"},
      "rule": {"id": "MORFOLOGIK_RULE_EN_US", "description": "Possible spelling mistake", "issueType": "misspelling", "category": {"id": "TYPOS", "name": "Possible Typo"}}
    }
  ]
}`

type recorder struct {
	mu    sync.Mutex
	forms []url.Values
	heads []http.Header
}

func (r *recorder) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forms)
}

func newProvider(t *testing.T, rec *recorder, reply func(call int) (int, string)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		rec.mu.Lock()
		rec.forms = append(rec.forms, r.PostForm)
		rec.heads = append(rec.heads, r.Header.Clone())
		call := len(rec.forms)
		rec.mu.Unlock()

		status, body := reply(call)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCheckSendsHintsAndFlags(t *testing.T) {
	rec := &recorder{}
	server := newProvider(t, rec, func(int) (int, string) { return http.StatusOK, okBody })

	resp, err := NewClient(server.URL, server.Client()).Check(context.Background(), "This tset is here.", "EN")
	require.NoError(t, err)
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "en-US", resp.Language.Code)

	require.Equal(t, 1, rec.calls())
	form := rec.forms[0]
	assert.Equal(t, "This tset is here.", form.Get("text"))
	assert.Equal(t, "en-US", form.Get("language"))
	assert.Equal(t, "en-US", form.Get("preferredVariants"))
	assert.Equal(t, "en", form.Get("motherTongue"))
	assert.Equal(t, "false", form.Get("enabledOnly"))
	assert.Equal(t, "picky", form.Get("level"))
	assert.Equal(t, enabledCategories, form.Get("enabledCategories"))
	assert.Equal(t, "false", form.Get("allowIncompleteResults"))
	assert.Equal(t, "true", form.Get("enableTempOffRules"))

	head := rec.heads[0]
	assert.Equal(t, "application/x-www-form-urlencoded", head.Get("Content-Type"))
	assert.Equal(t, "application/json", head.Get("Accept"))
	assert.Equal(t, userAgent, head.Get("User-Agent"))
}

func TestCheckRetriesOnceWithoutHintsOnBadRequest(t *testing.T) {
	rec := &recorder{}
	server := newProvider(t, rec, func(call int) (int, string) {
		if call == 1 {
			return http.StatusBadRequest, "invalid preferredVariants"
		}
		return http.StatusOK, okBody
	})

	resp, err := NewClient(server.URL, server.Client()).Check(context.Background(), "text", "en")
	require.NoError(t, err)
	assert.Len(t, resp.Matches, 1)

	require.Equal(t, 2, rec.calls())
	assert.Equal(t, "en-US", rec.forms[0].Get("preferredVariants"))
	assert.NotContains(t, rec.forms[1], "preferredVariants")
	assert.NotContains(t, rec.forms[1], "motherTongue")
	assert.Equal(t, "en-US", rec.forms[1].Get("language"))
	assert.Equal(t, "picky", rec.forms[1].Get("level"))
}

func TestCheckSecondBadRequestIsTerminal(t *testing.T) {
	rec := &recorder{}
	server := newProvider(t, rec, func(int) (int, string) { return http.StatusBadRequest, "still bad" })

	_, err := NewClient(server.URL, server.Client()).Check(context.Background(), "text", "en")
	var perr *grammar.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusBadRequest, perr.StatusCode)
	assert.Equal(t, "still bad", perr.Body)
	assert.False(t, perr.Unavailable)
	assert.Equal(t, 2, rec.calls())
}

func TestCheckOtherStatusIsNotRetried(t *testing.T) {
	rec := &recorder{}
	server := newProvider(t, rec, func(int) (int, string) { return http.StatusServiceUnavailable, "maintenance" })

	_, err := NewClient(server.URL, server.Client()).Check(context.Background(), "text", "de")
	var perr *grammar.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusServiceUnavailable, perr.StatusCode)
	assert.True(t, perr.Unavailable)
	assert.Equal(t, 1, rec.calls())
}

func TestCheckMalformedBody(t *testing.T) {
	rec := &recorder{}
	server := newProvider(t, rec, func(int) (int, string) { return http.StatusOK, "<html>" })

	_, err := NewClient(server.URL, server.Client()).Check(context.Background(), "text", "en")
	var perr *grammar.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.False(t, perr.Unavailable)
}

func TestCheckUnmappedLanguageSendsNoHints(t *testing.T) {
	rec := &recorder{}
	server := newProvider(t, rec, func(int) (int, string) { return http.StatusOK, okBody })

	_, err := NewClient(server.URL, server.Client()).Check(context.Background(), "text", "auto")
	require.NoError(t, err)
	assert.Equal(t, "auto", rec.forms[0].Get("language"))
	assert.NotContains(t, rec.forms[0], "preferredVariants")
	assert.NotContains(t, rec.forms[0], "motherTongue")
}

func TestCheckTransportFailureIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	endpoint := server.URL
	server.Close()

	_, err := NewClient(endpoint, nil).Check(context.Background(), "text", "en")
	var perr *grammar.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.True(t, perr.Unavailable)
}
