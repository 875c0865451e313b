package grammar

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"grammar-backend/internal/grammar/language"
	"grammar-backend/internal/shared/metrics"
	"grammar-backend/internal/shared/telemetry"
)

const defaultPersistTimeout = 10 * time.Second

// Service orchestrates a check: it picks the checker, times the call and
// hands the result to the repository without waiting on the write.
type Service struct {
	Rules Checker
	// Generative is nil when no credential is configured, which disables the
	// opt-in path.
	Generative     Checker
	Repo           Repo
	PersistTimeout time.Duration
	Now            func() time.Time
	NewID          func() string

	pending sync.WaitGroup
}

// GenerativeEnabled reports whether callers can opt into the generative checker.
func (s *Service) GenerativeEnabled() bool {
	return s.Generative != nil
}

// ProviderFor names the checker Analyze would use.
func (s *Service) ProviderFor(useGenerative bool) string {
	if c := s.checkerFor(useGenerative); c != nil {
		return c.Name()
	}
	return ""
}

func (s *Service) checkerFor(useGenerative bool) Checker {
	if useGenerative && s.Generative != nil {
		return s.Generative
	}
	return s.Rules
}

// Analyze runs one check. The rule-based checker is used unless the caller
// opted in and a generative checker is configured.
func (s *Service) Analyze(ctx context.Context, req Request, useGenerative bool) (Result, error) {
	req, err := PrepareRequest(req, language.Default)
	if err != nil {
		return Result{}, err
	}
	checker := s.checkerFor(useGenerative)
	if checker == nil {
		return Result{}, &AnalysisError{Code: ErrorCodeAnalysisFailed, Message: "Failed to analyze grammar", Err: errors.New("no checker configured")}
	}
	provider := checker.Name()

	start := s.now()
	result, err := checker.Analyze(ctx, req)
	elapsed := s.now().Sub(start)
	elapsedMs := float64(elapsed.Microseconds()) / 1000.0

	if err != nil {
		aerr := newAnalysisError(err)
		outcome := metrics.OutcomeFailure
		if aerr.Code == ErrorCodeServiceUnavailable {
			outcome = metrics.OutcomeUnavailable
		}
		metrics.ObserveAnalysis(provider, outcome, elapsedMs)
		telemetry.Error("grammar.analysis_failed", map[string]any{
			"request_id":  requestIDFromContext(ctx),
			"provider":    provider,
			"language":    req.Language,
			"code":        aerr.Code,
			"error":       err.Error(),
			"duration_ms": elapsedMs,
		})
		return Result{}, aerr
	}

	result = NewResult(result.Errors, result.Language, elapsed.Milliseconds(), TextLength(req.Text))
	if result.Language == "" {
		result.Language = req.Language
	}
	metrics.ObserveAnalysis(provider, metrics.OutcomeSuccess, elapsedMs)
	telemetry.Info("grammar.analysis", map[string]any{
		"request_id":    requestIDFromContext(ctx),
		"provider":      provider,
		"language":      result.Language,
		"total_errors":  result.TotalErrors,
		"processing_ms": result.ProcessingTime,
		"text_length":   result.TextLength,
		"anonymous":     req.UserID == "",
	})

	s.persist(ctx, Record{
		ID:             s.newID(),
		UserID:         req.UserID,
		Text:           req.Text,
		Language:       result.Language,
		Provider:       provider,
		TotalErrors:    result.TotalErrors,
		ProcessingTime: result.ProcessingTime,
		TextLength:     result.TextLength,
		Errors:         result.Errors,
		CreatedAt:      s.now().UTC(),
	})
	return result, nil
}

// persist issues the write and returns immediately. Failures are logged and
// counted, never returned.
func (s *Service) persist(ctx context.Context, record Record) {
	if s.Repo == nil {
		return
	}
	timeout := s.PersistTimeout
	if timeout <= 0 {
		timeout = defaultPersistTimeout
	}
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				s.persistFailed(writeCtx, record, fmt.Errorf("panic: %v", r))
			}
		}()
		if err := s.Repo.Create(writeCtx, record); err != nil {
			s.persistFailed(writeCtx, record, err)
		}
	}()
}

func (s *Service) persistFailed(ctx context.Context, record Record, err error) {
	metrics.IncPersistFailure()
	telemetry.Error("grammar.persist_failed", map[string]any{
		"request_id":  requestIDFromContext(ctx),
		"analysis_id": record.ID,
		"user_id":     record.UserID,
		"error":       err.Error(),
	})
}

// Close waits for in-flight writes.
func (s *Service) Close() {
	s.pending.Wait()
}

// History returns a user's records, newest first.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]Record, error) {
	if userID == "" {
		return nil, errors.New("userID is required")
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	records, err := s.Repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch analysis history: %w", err)
	}
	return records, nil
}

// Summary aggregates one user's records, or every record when userID is empty.
func (s *Service) Summary(ctx context.Context, userID string) (Summary, error) {
	rows, err := s.Repo.SummaryRows(ctx, userID)
	if err != nil {
		return Summary{}, fmt.Errorf("fetch analytics data: %w", err)
	}
	return Summarize(rows), nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
