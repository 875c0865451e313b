package grammar

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
)

type memoryEntry struct {
	record Record
	errors json.RawMessage
}

// MemoryRepo stores records in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu      sync.RWMutex
	entries []memoryEntry
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Create appends the record.
func (r *MemoryRepo) Create(ctx context.Context, record Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if record.Errors == nil {
		record.Errors = []Error{}
	}
	payload, err := json.Marshal(record.Errors)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, memoryEntry{record: record, errors: payload})
	return nil
}

// ListByUser returns a user's records, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	r.mu.RLock()
	var out []Record
	for i := len(r.entries) - 1; i >= 0; i-- {
		if e := r.entries[i]; userID != "" && e.record.UserID == userID {
			out = append(out, e.record)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []Record{}
	}
	return out, nil
}

// SummaryRows returns rows in insertion order.
func (r *MemoryRepo) SummaryRows(ctx context.Context, userID string) ([]SummaryRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]SummaryRow, 0, len(r.entries))
	for _, e := range r.entries {
		if userID != "" && e.record.UserID != userID {
			continue
		}
		out = append(out, SummaryRow{
			ID:             e.record.ID,
			TotalErrors:    e.record.TotalErrors,
			ProcessingTime: e.record.ProcessingTime,
			Errors:         e.errors,
		})
	}
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
