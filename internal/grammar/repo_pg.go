package grammar

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"grammar-backend/internal/shared/telemetry"
)

const analysesTable = "grammar_analyses"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a record. Errors are stored as a JSONB payload.
func (r *PGRepo) Create(ctx context.Context, record Record) error {
	if record.Errors == nil {
		record.Errors = []Error{}
	}
	payload, err := json.Marshal(record.Errors)
	if err != nil {
		return fmt.Errorf("marshal errors: %w", err)
	}
	var userID any
	if record.UserID != "" {
		userID = record.UserID
	}

	query, args, err := psql.Insert(analysesTable).
		Columns("id", "user_id", "text", "language", "provider", "total_errors", "processing_time_ms", "text_length", "errors", "created_at").
		Values(record.ID, userID, record.Text, record.Language, record.Provider, record.TotalErrors, record.ProcessingTime, record.TextLength, string(payload), record.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query, args...)
	return err
}

// ListByUser lists a user's records ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	query, args, err := psql.Select("id", "user_id", "text", "language", "provider", "total_errors", "processing_time_ms", "text_length", "errors", "created_at").
		From(analysesTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		var rec Record
		var uid sql.NullString
		var provider sql.NullString
		var payload []byte
		if err := rows.Scan(
			&rec.ID,
			&uid,
			&rec.Text,
			&rec.Language,
			&provider,
			&rec.TotalErrors,
			&rec.ProcessingTime,
			&rec.TextLength,
			&payload,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		if uid.Valid {
			rec.UserID = uid.String
		}
		if provider.Valid {
			rec.Provider = provider.String
		}
		rec.Errors = []Error{}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &rec.Errors); err != nil {
				// keep the record, drop the unreadable payload
				telemetry.Warn("grammar.history_parse_failed", map[string]any{
					"analysis_id": rec.ID,
					"error":       err.Error(),
				})
				rec.Errors = []Error{}
			}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SummaryRows reads the aggregation columns in creation order.
func (r *PGRepo) SummaryRows(ctx context.Context, userID string) ([]SummaryRow, error) {
	builder := psql.Select("id", "total_errors", "processing_time_ms", "errors").
		From(analysesTable).
		OrderBy("created_at ASC", "id ASC")
	if userID != "" {
		builder = builder.Where(sq.Eq{"user_id": userID})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []SummaryRow{}
	for rows.Next() {
		var row SummaryRow
		var payload []byte
		if err := rows.Scan(&row.ID, &row.TotalErrors, &row.ProcessingTime, &payload); err != nil {
			return nil, err
		}
		row.Errors = json.RawMessage(payload)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ Repo = (*PGRepo)(nil)
