package languagetool

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"grammar-backend/internal/grammar"
	"grammar-backend/internal/grammar/language"
	"grammar-backend/internal/shared/metrics"
	"grammar-backend/internal/shared/telemetry"
)

const (
	DefaultURL = "https://api.languagetool.org/v2/check"

	userAgent         = "Grammar-Checker/1.0.0"
	enabledCategories = "GRAMMAR,TYPOS,STYLE,PUNCTUATION,CASING,REDUNDANCY,SEMANTICS,MISC"
	maxErrorBody      = 4 << 10
)

// Client calls the rule-based checking API.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient builds a client for endpoint. A nil httpClient uses the default
// transport and its timeouts.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{endpoint: endpoint, httpClient: httpClient}
}

// Check submits text in lang. The first attempt carries the variant hints; a
// 400 reply is retried once without them. Any other failure is terminal.
func (c *Client) Check(ctx context.Context, text, lang string) (*Response, error) {
	norm := language.Normalize(lang)

	status, body, err := c.post(ctx, buildForm(text, norm, true))
	if err != nil {
		return nil, err
	}
	if status == http.StatusBadRequest {
		metrics.IncHintRetry()
		telemetry.Warn("languagetool.hint_retry", map[string]any{
			"language":          norm.Code,
			"preferred_variant": norm.PreferredVariant,
			"mother_tongue":     norm.MotherTongue,
			"body":              string(body),
		})
		status, body, err = c.post(ctx, buildForm(text, norm, false))
		if err != nil {
			return nil, err
		}
	}
	if status < 200 || status > 299 {
		return nil, grammar.StatusError(grammar.ProviderLanguageTool, status, strings.TrimSpace(string(body)))
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &grammar.ProviderError{
			Provider:   grammar.ProviderLanguageTool,
			StatusCode: status,
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}
	return &resp, nil
}

// post sends one attempt. Non-success bodies are captured best-effort.
func (c *Client) post(ctx context.Context, form url.Values) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, nil, &grammar.ProviderError{Provider: grammar.ProviderLanguageTool, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, grammar.TransportError(grammar.ProviderLanguageTool, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resp.StatusCode, body, nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, grammar.TransportError(grammar.ProviderLanguageTool, err)
	}
	return resp.StatusCode, body, nil
}

func buildForm(text string, norm language.Normalized, withHints bool) url.Values {
	form := url.Values{}
	form.Set("text", text)
	form.Set("language", norm.Code)
	form.Set("enabledOnly", "false")
	form.Set("level", "picky")
	form.Set("enabledCategories", enabledCategories)
	form.Set("allowIncompleteResults", "false")
	form.Set("enableTempOffRules", "true")
	if withHints {
		if norm.PreferredVariant != "" {
			form.Set("preferredVariants", norm.PreferredVariant)
		}
		if norm.MotherTongue != "" {
			form.Set("motherTongue", norm.MotherTongue)
		}
	}
	return form
}
