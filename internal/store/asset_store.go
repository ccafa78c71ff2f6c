package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/vbonduro/assetreg/internal/domain"
)

var assetColumns = []string{
	"id", "name", "category", "status", "location", "description", "observation",
	"quantity", "acquisition_date", "initial_cost", "depreciation_rate",
	"registered_at", "assigned_user_id", "assigned_user_name",
}

// likeEscaper makes LIKE wildcards in user text match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

type AssetStore struct {
	db *sql.DB
}

func NewAssetStore(db *sql.DB) *AssetStore {
	return &AssetStore{db: db}
}

// Create inserts a with its already allocated ID. It returns
// domain.ErrIDTaken when the id is in use. A zero RegisteredAt is set to now.
func (s *AssetStore) Create(ctx context.Context, a *domain.Asset) (*domain.Asset, error) {
	registeredAt := a.RegisteredAt
	if registeredAt.IsZero() {
		registeredAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assets (
			id, name, category, status, location, description, observation,
			quantity, acquisition_date, initial_cost, depreciation_rate,
			registered_at, assigned_user_id, assigned_user_name
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.Name, a.Category, a.Status, a.Location, a.Description, a.Observation,
		a.Quantity, a.AcquisitionDate.Format(domain.DateLayout), a.InitialCost, a.DepreciationRate,
		registeredAt, a.AssignedUserID, a.AssignedUserName)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("asset %d: %w", a.ID, domain.ErrIDTaken)
		}
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	return s.GetByID(ctx, a.ID)
}

// GetByID returns nil, nil when no asset has the id.
func (s *AssetStore) GetByID(ctx context.Context, id int64) (*domain.Asset, error) {
	query, args, err := sq.Select(assetColumns...).From("assets").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build asset query: %w", err)
	}

	a, err := scanAsset(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return a, nil
}

// List returns the assets matching f ordered by id. Query matches the name
// or description case-insensitively, or the exact id.
func (s *AssetStore) List(ctx context.Context, f domain.AssetFilter) ([]*domain.Asset, error) {
	q := sq.Select(assetColumns...).From("assets").OrderBy("id ASC")
	if f.Category != "" {
		q = q.Where(sq.Eq{"category": f.Category})
	}
	if f.Status != "" {
		q = q.Where(sq.Eq{"status": f.Status})
	}
	if f.Location != "" {
		q = q.Where(sq.Eq{"location": f.Location})
	}
	if f.AssignedUserID != nil {
		q = q.Where(sq.Eq{"assigned_user_id": *f.AssignedUserID})
	}
	if text := strings.TrimSpace(f.Query); text != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(text)) + "%"
		q = q.Where(sq.Or{
			sq.Expr(`LOWER(name) LIKE ? ESCAPE '\'`, pattern),
			sq.Expr(`LOWER(description) LIKE ? ESCAPE '\'`, pattern),
			sq.Expr("CAST(id AS TEXT) = ?", text),
		})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build asset query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var assets []*domain.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assets: %w", err)
	}

	return assets, nil
}

// Update overwrites the mutable fields of the asset with a.ID. The id and
// the registration timestamp are never changed.
func (s *AssetStore) Update(ctx context.Context, a *domain.Asset) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE assets SET
			name = ?, category = ?, status = ?, location = ?, description = ?,
			observation = ?, quantity = ?, acquisition_date = ?, initial_cost = ?,
			depreciation_rate = ?, assigned_user_id = ?, assigned_user_name = ?
		WHERE id = ?
	`, a.Name, a.Category, a.Status, a.Location, a.Description,
		a.Observation, a.Quantity, a.AcquisitionDate.Format(domain.DateLayout), a.InitialCost,
		a.DepreciationRate, a.AssignedUserID, a.AssignedUserName, a.ID)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("asset %d: %w", a.ID, domain.ErrNotFound)
	}

	return nil
}

func (s *AssetStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM assets WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("asset %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// LatestID returns the highest asset id ever assigned as text, or "" when no
// asset was ever created. Deleted ids still count: the value comes from the
// AUTOINCREMENT sequence, which only moves forward.
func (s *AssetStore) LatestID(ctx context.Context) (string, error) {
	var id sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(
			(SELECT seq FROM sqlite_sequence WHERE name = 'assets'),
			(SELECT MAX(id) FROM assets)
		)
	`).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to get latest asset id: %w", err)
	}
	return id.String, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (*domain.Asset, error) {
	a := &domain.Asset{}
	var acquired string
	err := row.Scan(
		&a.ID, &a.Name, &a.Category, &a.Status, &a.Location, &a.Description, &a.Observation,
		&a.Quantity, &acquired, &a.InitialCost, &a.DepreciationRate,
		&a.RegisteredAt, &a.AssignedUserID, &a.AssignedUserName,
	)
	if err != nil {
		return nil, err
	}
	if a.AcquisitionDate, err = domain.ParseDate(acquired); err != nil {
		return nil, fmt.Errorf("asset %d has invalid acquisition date %q: %w", a.ID, acquired, err)
	}
	return a, nil
}
