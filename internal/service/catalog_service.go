package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vbonduro/assetreg/internal/domain"
)

// catalogRepository is the subset of store.CatalogStore that CatalogService
// requires.
type catalogRepository interface {
	Create(ctx context.Context, name string) (*domain.CatalogEntry, error)
	List(ctx context.Context) ([]*domain.CatalogEntry, error)
}

type catalogInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

// CatalogService manages the category and location lookup lists.
type CatalogService struct {
	catalogs map[domain.Catalog]catalogRepository
	activity activityRecorder
	logger   *slog.Logger
}

func NewCatalogService(categories, locations catalogRepository, activity activityRecorder, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		catalogs: map[domain.Catalog]catalogRepository{
			domain.CatalogCategories: categories,
			domain.CatalogLocations:  locations,
		},
		activity: activity,
		logger:   logger,
	}
}

func (s *CatalogService) List(ctx context.Context, c domain.Catalog) ([]*domain.CatalogEntry, error) {
	repo, err := s.repo(c)
	if err != nil {
		return nil, err
	}
	return repo.List(ctx)
}

// Add creates a new entry. Only administrators may extend a catalog.
func (s *CatalogService) Add(ctx context.Context, actor domain.Actor, c domain.Catalog, name string) (*domain.CatalogEntry, error) {
	repo, err := s.repo(c)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("only administrators may edit %s: %w", c, domain.ErrForbidden)
	}

	in := catalogInput{Name: strings.TrimSpace(name)}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	entry, err := repo.Create(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	s.logger.Info("catalog entry added", "catalog", string(c), "name", entry.Name)
	s.activity.Record(ctx, actor, "added %q to %s", entry.Name, c)
	return entry, nil
}

func (s *CatalogService) repo(c domain.Catalog) (catalogRepository, error) {
	repo, ok := s.catalogs[c]
	if !ok {
		return nil, fmt.Errorf("unknown catalog %q: %w", c, domain.ErrNotFound)
	}
	return repo, nil
}
