package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/assetreg/internal/domain"
)

func TestCatalogStoreCreateAndList(t *testing.T) {
	d := openTestDB(t)
	categories, err := NewCatalogStore(d, domain.CatalogCategories)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = categories.Create(ctx, "Mobiliario")
	require.NoError(t, err)
	created, err := categories.Create(ctx, "Equipos")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Equipos", created.Name)

	list, err := categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Equipos", list[0].Name)
	assert.Equal(t, "Mobiliario", list[1].Name)
}

func TestCatalogStoreCreate_Duplicate(t *testing.T) {
	locations, err := NewCatalogStore(openTestDB(t), domain.CatalogLocations)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = locations.Create(ctx, "Bodega")
	require.NoError(t, err)

	_, err = locations.Create(ctx, "bodega")
	assert.ErrorIs(t, err, domain.ErrNameTaken)
}

func TestCatalogStoresAreSeparate(t *testing.T) {
	d := openTestDB(t)
	categories, err := NewCatalogStore(d, domain.CatalogCategories)
	require.NoError(t, err)
	locations, err := NewCatalogStore(d, domain.CatalogLocations)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = categories.Create(ctx, "Equipos")
	require.NoError(t, err)

	list, err := locations.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNewCatalogStore_Unknown(t *testing.T) {
	_, err := NewCatalogStore(openTestDB(t), domain.Catalog("assets"))
	assert.Error(t, err)
}
