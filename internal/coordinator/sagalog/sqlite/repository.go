// Package sqlite provides a SQLite-backed implementation of sagalog.Repository.
//
// The saga log lives in the store database so a purchase's business rows and
// its audit trail are written through the same connection.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jcmexdev/menswear-store/internal/coordinator/sagalog"
	storesqlite "github.com/jcmexdev/menswear-store/internal/store/infra/sqlite"
)

// schema is the DDL executed once on startup.
// The table is append-only: each row is an immutable event in the saga's
// lifecycle. The newest row per saga_id gives the current state.
const schema = `
CREATE TABLE IF NOT EXISTS saga_logs (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    saga_id         TEXT        NOT NULL,
    status          TEXT        NOT NULL,
    current_step    TEXT        NOT NULL DEFAULT '',
    -- written once on STARTED, NULL after
    payload         TEXT,
    error_messages  TEXT        NOT NULL DEFAULT '[]',
    trace_id        TEXT        NOT NULL DEFAULT '',
    span_id         TEXT        NOT NULL DEFAULT '',
    updated_at      TEXT        NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_saga_logs_saga_id ON saga_logs(saga_id, updated_at);
CREATE INDEX IF NOT EXISTS idx_saga_logs_trace_id ON saga_logs(trace_id);
`

// Repository is the SQLite implementation of sagalog.Reader.
type Repository struct {
	db *sql.DB
}

// NewRepository applies the saga_logs schema to an open database.
//
//	repo, err := sqlite.NewRepository(store.DB())
func NewRepository(db *sql.DB) (*Repository, error) {
	if err := applySchema(db); err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

// Save inserts a new saga log entry. It is safe to call concurrently.
func (r *Repository) Save(ctx context.Context, entry *sagalog.SagaLog) error {
	const q = `
		INSERT INTO saga_logs
			(saga_id, status, current_step, payload, error_messages, trace_id, span_id, updated_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.SagaID,
		string(entry.Status),
		entry.CurrentStep,
		nullableString(entry.Payload),
		entry.ErrorMessages,
		entry.TraceID,
		entry.SpanID,
		storesqlite.FormatTime(entry.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save saga log for %q: %w", entry.SagaID, err)
	}
	return nil
}

const selectColumns = `
		SELECT saga_id, status, current_step, COALESCE(payload,''), error_messages,
		       trace_id, span_id, updated_at
		FROM   saga_logs
		WHERE  saga_id = ?`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*sagalog.SagaLog, error) {
	var entry sagalog.SagaLog
	var updatedAt string
	err := s.Scan(
		&entry.SagaID,
		&entry.Status,
		&entry.CurrentStep,
		&entry.Payload,
		&entry.ErrorMessages,
		&entry.TraceID,
		&entry.SpanID,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if entry.UpdatedAt, err = storesqlite.ParseTime(updatedAt); err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetLatest returns the most recent log entry for a given saga ID.
func (r *Repository) GetLatest(ctx context.Context, sagaID string) (*sagalog.SagaLog, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+`
		ORDER  BY updated_at DESC, id DESC
		LIMIT  1`, sagaID)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("saga %q: %w", sagaID, sagalog.ErrSagaNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get latest for %q: %w", sagaID, err)
	}
	return entry, nil
}

// List returns every transition of a saga in the order it was written.
func (r *Repository) List(ctx context.Context, sagaID string) ([]sagalog.SagaLog, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY id`, sagaID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list saga %q: %w", sagaID, err)
	}
	defer rows.Close()

	var entries []sagalog.SagaLog
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan saga log: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("saga %q: %w", sagaID, sagalog.ErrSagaNotFound)
	}
	return entries, nil
}

// applySchema runs the DDL statements once. Idempotent due to IF NOT EXISTS.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("sqlite: apply saga log schema: %w", err)
	}
	return nil
}

// nullableString returns nil for empty strings so SQLite stores NULL instead
// of an empty TEXT.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
