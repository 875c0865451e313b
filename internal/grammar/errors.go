package grammar

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrEmptyText   = errors.New("text is required and must be a non-empty string")
	ErrTextTooLong = fmt.Errorf("text is too long, maximum length is %d characters", MaxTextLength)
	ErrNoResponse  = errors.New("no response")
)

const (
	ErrorCodeValidation         = "validation_error"
	ErrorCodeServiceUnavailable = "service_unavailable"
	ErrorCodeAnalysisFailed     = "analysis_failed"
	ErrorCodeInternal           = "internal_error"
)

// ProviderError reports a failed call to an upstream checker. Body is kept for
// server-side logs only.
type ProviderError struct {
	Provider    string
	StatusCode  int
	Body        string
	Unavailable bool
	Err         error
}

func (e *ProviderError) Error() string {
	msg := e.Provider + " api error"
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	if e.Body != "" {
		msg += " - " + e.Body
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error { return e.Err }

// StatusError builds a ProviderError for a non-success HTTP status.
func StatusError(provider string, status int, body string) *ProviderError {
	return &ProviderError{
		Provider:    provider,
		StatusCode:  status,
		Body:        body,
		Unavailable: status == http.StatusTooManyRequests || status >= http.StatusInternalServerError,
	}
}

// TransportError builds a ProviderError for a request that never got a response.
func TransportError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Unavailable: true, Err: err}
}

// AnalysisError is what the orchestrator returns when a check cannot complete.
type AnalysisError struct {
	Code    string
	Message string
	Err     error
}

func (e *AnalysisError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// Status maps the error code to an HTTP status.
func (e *AnalysisError) Status() int {
	if e.Code == ErrorCodeServiceUnavailable {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func newAnalysisError(err error) *AnalysisError {
	var perr *ProviderError
	if errors.As(err, &perr) && perr.Unavailable {
		return &AnalysisError{
			Code:    ErrorCodeServiceUnavailable,
			Message: "Grammar checking service is temporarily unavailable",
			Err:     err,
		}
	}
	return &AnalysisError{
		Code:    ErrorCodeAnalysisFailed,
		Message: "Failed to analyze grammar",
		Err:     err,
	}
}
