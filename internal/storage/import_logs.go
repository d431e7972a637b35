package storage

import (
	"context"
	"fmt"
	"time"
)

// ImportLog records the outcome of one import or recovery operation: a
// backup restore, a CSV session import, or a corrupt-blob fallback at
// startup. Data loss in the corrupt path is silent toward the user, so the
// log row is the durable signal that it happened.
type ImportLog struct {
	ID               int64     `json:"id"`
	Source           string    `json:"source"`
	Status           string    `json:"status"`
	SessionsReceived int       `json:"sessions_received"`
	SessionsImported int       `json:"sessions_imported"`
	ErrorMessage     *string   `json:"error_message,omitempty"`
	DurationMs       int       `json:"duration_ms"`
	CreatedAt        time.Time `json:"created_at"`
}

// InsertImportLog records one import operation.
func (d *DB) InsertImportLog(ctx context.Context, log ImportLog) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO import_logs (source, status, sessions_received, sessions_imported, error_message, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		log.Source, log.Status, log.SessionsReceived, log.SessionsImported,
		log.ErrorMessage, log.DurationMs)
	if err != nil {
		return fmt.Errorf("inserting import log: %w", err)
	}
	return nil
}

// QueryImportLogs returns the most recent import logs, newest first.
func (d *DB) QueryImportLogs(ctx context.Context, limit int) ([]ImportLog, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, source, status, sessions_received, sessions_imported, error_message, duration_ms, created_at
		 FROM import_logs
		 ORDER BY id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying import logs: %w", err)
	}
	defer rows.Close()

	var result []ImportLog
	for rows.Next() {
		var l ImportLog
		if err := rows.Scan(&l.ID, &l.Source, &l.Status, &l.SessionsReceived,
			&l.SessionsImported, &l.ErrorMessage, &l.DurationMs, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning import log: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}
