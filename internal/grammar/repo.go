package grammar

import (
	"context"
	"encoding/json"
)

// DefaultHistoryLimit is the history page size when the caller gives none.
const DefaultHistoryLimit = 50

// Repo persists analysis records.
type Repo interface {
	Create(ctx context.Context, record Record) error
	ListByUser(ctx context.Context, userID string, limit int) ([]Record, error)
	// SummaryRows returns the aggregation inputs in scan order. An empty
	// userID selects every record.
	SummaryRows(ctx context.Context, userID string) ([]SummaryRow, error)
}

// SummaryRow is the slice of a record the aggregator reads. Errors is the
// stored JSON payload and may fail to parse.
type SummaryRow struct {
	ID             string
	TotalErrors    int
	ProcessingTime int64
	Errors         json.RawMessage
}
