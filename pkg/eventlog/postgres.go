package eventlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// PostgresLog stores entries in the events table with a unique
// (stream, version) constraint backing the optimistic check.
type PostgresLog struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewPostgresLog creates a Log over an open database handle.
func NewPostgresLog(db *sql.DB) *PostgresLog {
	return &PostgresLog{
		db:     db,
		tracer: otel.Tracer("reusehub/eventlog"),
	}
}

var _ Log = (*PostgresLog)(nil)

func (l *PostgresLog) Append(ctx context.Context, stream string, expectedVersion int, entries []Entry) error {
	ctx, span := l.tracer.Start(ctx, "eventlog.append",
		trace.WithAttributes(
			attribute.String("stream", stream),
			attribute.Int("expected.version", expectedVersion),
			attribute.Int("entry.count", len(entries)),
		),
	)
	defer span.End()

	tx, err := l.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var currentVersion int
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(version), 0)
		FROM events
		WHERE stream = $1
	`, stream).Scan(&currentVersion)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("query current version: %w", err)
	}

	if expectedVersion != AnyVersion && currentVersion != expectedVersion {
		span.SetAttributes(
			attribute.Int("actual.version", currentVersion),
			attribute.Bool("conflict.detected", true),
		)
		return ErrVersionConflict
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events (stream, kind, payload, version, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, entry := range entries {
		version := currentVersion + i + 1

		var entryID int64
		err = stmt.QueryRowContext(ctx, stream, entry.Kind, entry.Payload, version, time.Now().UTC()).Scan(&entryID)
		if err != nil {
			// Unique constraint violation means a concurrent writer won.
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				return ErrVersionConflict
			}
			return fmt.Errorf("insert entry %d: %w", i, err)
		}

		span.AddEvent("entry.appended", trace.WithAttributes(
			attribute.Int64("entry.id", entryID),
			attribute.Int("entry.version", version),
			attribute.String("entry.kind", string(entry.Kind)),
		))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (l *PostgresLog) Load(ctx context.Context, stream string) ([]Entry, error) {
	ctx, span := l.tracer.Start(ctx, "eventlog.load",
		trace.WithAttributes(attribute.String("stream", stream)),
	)
	defer span.End()

	rows, err := l.db.QueryContext(ctx, `
		SELECT id, stream, kind, payload, version, created_at
		FROM events
		WHERE stream = $1
		ORDER BY version ASC
	`, stream)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.ID, &entry.Stream, &entry.Kind, &entry.Payload, &entry.Version, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	span.SetAttributes(attribute.Int("entries.loaded", len(entries)))
	return entries, nil
}

func (l *PostgresLog) Version(ctx context.Context, stream string) (int, error) {
	var version int
	err := l.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(version), 0)
		FROM events
		WHERE stream = $1
	`, stream).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("query version: %w", err)
	}
	return version, nil
}
