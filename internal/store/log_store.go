package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/vbonduro/assetreg/internal/domain"
)

// LogStore keeps the activity log shown to administrators.
type LogStore struct {
	db *sql.DB
}

func NewLogStore(db *sql.DB) *LogStore {
	return &LogStore{db: db}
}

func (s *LogStore) Append(ctx context.Context, userName, action string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO activity_logs (user_name, action, created_at) VALUES (?, ?, ?)
	`, userName, action, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to append activity log: %w", err)
	}
	return nil
}

// ListRecent returns at most limit entries, newest first.
func (s *LogStore) ListRecent(ctx context.Context, limit int) ([]*domain.LogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_name, action, created_at FROM activity_logs
		ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var entries []*domain.LogEntry
	for rows.Next() {
		e := &domain.LogEntry{}
		if err := rows.Scan(&e.ID, &e.UserName, &e.Action, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity log: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity logs: %w", err)
	}

	return entries, nil
}
