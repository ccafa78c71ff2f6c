package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/vbonduro/assetreg/internal/domain"
)

// CatalogStore persists one named lookup list (categories or locations).
type CatalogStore struct {
	db    *sql.DB
	table string
}

func NewCatalogStore(db *sql.DB, catalog domain.Catalog) (*CatalogStore, error) {
	switch catalog {
	case domain.CatalogCategories, domain.CatalogLocations:
	default:
		return nil, fmt.Errorf("unknown catalog %q", catalog)
	}
	return &CatalogStore{db: db, table: string(catalog)}, nil
}

// Create adds name, returning domain.ErrNameTaken when it already exists
// (case-insensitively).
func (s *CatalogStore) Create(ctx context.Context, name string) (*domain.CatalogEntry, error) {
	result, err := s.db.ExecContext(ctx, `INSERT INTO `+s.table+` (name) VALUES (?)`, name)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s %q: %w", s.table, name, domain.ErrNameTaken)
		}
		return nil, fmt.Errorf("failed to create %s entry: %w", s.table, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	entry := &domain.CatalogEntry{}
	err = s.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM `+s.table+` WHERE id = ?`, id).
		Scan(&entry.ID, &entry.Name, &entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s entry: %w", s.table, err)
	}
	return entry, nil
}

func (s *CatalogStore) List(ctx context.Context) ([]*domain.CatalogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created_at FROM `+s.table+` ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.table, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var entries []*domain.CatalogEntry
	for rows.Next() {
		e := &domain.CatalogEntry{}
		if err := rows.Scan(&e.ID, &e.Name, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan %s entry: %w", s.table, err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", s.table, err)
	}

	return entries, nil
}
