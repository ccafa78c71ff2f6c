package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/assetreg/internal/domain"
)

func TestCatalogAddAndList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.catalog.Add(ctx, admin, domain.CatalogCategories, "  Muebles ")
	require.NoError(t, err)
	_, err = env.catalog.Add(ctx, admin, domain.CatalogCategories, "Equipos")
	require.NoError(t, err)
	_, err = env.catalog.Add(ctx, admin, domain.CatalogLocations, "Bodega")
	require.NoError(t, err)

	categories, err := env.catalog.List(ctx, domain.CatalogCategories)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Equipos", categories[0].Name)
	assert.Equal(t, "Muebles", categories[1].Name)

	locations, err := env.catalog.List(ctx, domain.CatalogLocations)
	require.NoError(t, err)
	require.Len(t, locations, 1)

	logs, err := env.logStore.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, `added "Bodega" to locations`, logs[0].Action)
}

func TestCatalogAdd_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.catalog.Add(ctx, clerk, domain.CatalogCategories, "Muebles")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = env.catalog.Add(ctx, admin, domain.CatalogCategories, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.catalog.Add(ctx, admin, domain.CatalogCategories, "Muebles")
	require.NoError(t, err)
	_, err = env.catalog.Add(ctx, admin, domain.CatalogCategories, "muebles")
	assert.ErrorIs(t, err, domain.ErrNameTaken)

	_, err = env.catalog.List(ctx, domain.Catalog("vendors"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
