package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type LogRepo struct {
	db     dbtx
	logger *slog.Logger
}

func NewLogRepo(db dbtx, logger *slog.Logger) *LogRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogRepo{db: db, logger: logger}
}

func (r *LogRepo) Insert(ctx context.Context, rec LogRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO action_log (id, label, amount, created_at)
		VALUES (?, ?, ?, ?)
	`, rec.ID, rec.Label, rec.Amount, rec.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("log insert: %w", err)
	}
	return nil
}

// Recent returns the newest limit records, oldest first. Rows with an
// unreadable timestamp are skipped with a warning.
func (r *LogRepo) Recent(ctx context.Context, limit int) ([]LogRecord, error) {
	query := `SELECT id, label, amount, created_at FROM action_log ORDER BY seq ASC`
	args := []any{}
	if limit > 0 {
		query = `
			SELECT id, label, amount, created_at FROM (
				SELECT seq, id, label, amount, created_at
				FROM action_log
				ORDER BY seq DESC
				LIMIT ?
			) ORDER BY seq ASC`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("log list: %w", err)
	}
	defer rows.Close()

	var out []LogRecord
	for rows.Next() {
		var (
			rec LogRecord
			raw string
		)
		if err := rows.Scan(&rec.ID, &rec.Label, &rec.Amount, &raw); err != nil {
			return nil, fmt.Errorf("log scan: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			r.logger.Warn("skipping log row with unreadable time", "id", rec.ID, "created_at", raw, "err", err)
			continue
		}
		rec.CreatedAt = t
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("log rows: %w", err)
	}
	return out, nil
}
