package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/assetreg/internal/domain"
)

func TestAssetStoreCreate(t *testing.T) {
	assets := NewAssetStore(openTestDB(t))
	ctx := context.Background()

	created, err := assets.Create(ctx, newAsset(1, "Laptop Dell"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Laptop Dell", created.Name)
	assert.Equal(t, "2022-03-15", created.AcquisitionDate.Format(domain.DateLayout))
	assert.True(t, decimal.RequireFromString("1200.50").Equal(created.InitialCost))
	require.True(t, created.DepreciationRate.Valid)
	assert.True(t, decimal.NewFromInt(10).Equal(created.DepreciationRate.Decimal))
	assert.False(t, created.RegisteredAt.IsZero())
	assert.Nil(t, created.AssignedUserID)
}

func TestAssetStoreCreate_NullRate(t *testing.T) {
	assets := NewAssetStore(openTestDB(t))
	ctx := context.Background()

	a := newAsset(1, "Silla")
	a.DepreciationRate = decimal.NullDecimal{}
	created, err := assets.Create(ctx, a)
	require.NoError(t, err)
	assert.False(t, created.DepreciationRate.Valid)
}

func TestAssetStoreCreate_DuplicateID(t *testing.T) {
	assets := NewAssetStore(openTestDB(t))
	ctx := context.Background()

	_, err := assets.Create(ctx, newAsset(7, "Monitor"))
	require.NoError(t, err)

	_, err = assets.Create(ctx, newAsset(7, "Teclado"))
	assert.ErrorIs(t, err, domain.ErrIDTaken)
}

func TestAssetStoreGetByID_NotFound(t *testing.T) {
	assets := NewAssetStore(openTestDB(t))

	a, err := assets.GetByID(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, a)
}

func TestAssetStoreLatestID(t *testing.T) {
	assets := NewAssetStore(openTestDB(t))
	ctx := context.Background()

	latest, err := assets.LatestID(ctx)
	require.NoError(t, err)
	assert.Empty(t, latest)

	_, err = assets.Create(ctx, newAsset(3, "Impresora"))
	require.NoError(t, err)
	_, err = assets.Create(ctx, newAsset(12, "Proyector"))
	require.NoError(t, err)
	_, err = assets.Create(ctx, newAsset(5, "Router"))
	require.NoError(t, err)

	latest, err = assets.LatestID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "12", latest)
}

func TestAssetStoreLatestID_SurvivesDelete(t *testing.T) {
	assets := NewAssetStore(openTestDB(t))
	ctx := context.Background()

	for _, id := range []int64{1, 2} {
		_, err := assets.Create(ctx, newAsset(id, "Laptop"))
		require.NoError(t, err)
	}
	require.NoError(t, assets.Delete(ctx, 2))

	latest, err := assets.LatestID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2", latest)

	require.NoError(t, assets.Delete(ctx, 1))
	latest, err = assets.LatestID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2", latest)
}

func TestAssetStoreList_Filters(t *testing.T) {
	assets := NewAssetStore(openTestDB(t))
	ctx := context.Background()

	laptop := newAsset(1, "Laptop Dell")
	chair := newAsset(2, "Silla Ergonomica")
	chair.Category = "Mobiliario"
	chair.Location = "Bodega"
	desk := newAsset(3, "Escritorio")
	desk.Category = "Mobiliario"
	desk.Status = domain.StatusRetired
	desk.Description = "madera de roble"
	custodian := int64(9)
	desk.AssignedUserID = &custodian
	desk.AssignedUserName = "Ana"
	for _, a := range []*domain.Asset{laptop, chair, desk} {
		_, err := assets.Create(ctx, a)
		require.NoError(t, err)
	}

	tests := []struct {
		name    string
		filter  domain.AssetFilter
		wantIDs []int64
	}{
		{name: "no filter", filter: domain.AssetFilter{}, wantIDs: []int64{1, 2, 3}},
		{name: "category", filter: domain.AssetFilter{Category: "Mobiliario"}, wantIDs: []int64{2, 3}},
		{name: "status", filter: domain.AssetFilter{Status: domain.StatusRetired}, wantIDs: []int64{3}},
		{name: "location", filter: domain.AssetFilter{Location: "Bodega"}, wantIDs: []int64{2}},
		{name: "assigned", filter: domain.AssetFilter{AssignedUserID: &custodian}, wantIDs: []int64{3}},
		{name: "name text", filter: domain.AssetFilter{Query: "LAPTOP"}, wantIDs: []int64{1}},
		{name: "description text", filter: domain.AssetFilter{Query: "roble"}, wantIDs: []int64{3}},
		{name: "id text", filter: domain.AssetFilter{Query: "2"}, wantIDs: []int64{2}},
		{name: "combined", filter: domain.AssetFilter{Category: "Mobiliario", Location: "Oficina"}, wantIDs: []int64{3}},
		{name: "no match", filter: domain.AssetFilter{Query: "nada"}, wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := assets.List(ctx, tt.filter)
			require.NoError(t, err)
			var ids []int64
			for _, a := range list {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestAssetStoreList_QueryWildcardsMatchLiterally(t *testing.T) {
	assets := NewAssetStore(openTestDB(t))
	ctx := context.Background()

	plain := newAsset(1, "Laptop Dell")
	cable := newAsset(2, "Cable")
	cable.Description = "descuento 50% cable_usb"
	for _, a := range []*domain.Asset{plain, cable} {
		_, err := assets.Create(ctx, a)
		require.NoError(t, err)
	}

	tests := []struct {
		query   string
		wantIDs []int64
	}{
		{query: "%", wantIDs: []int64{2}},
		{query: "_", wantIDs: []int64{2}},
		{query: "50%", wantIDs: []int64{2}},
		{query: "cable_usb", wantIDs: []int64{2}},
		{query: "l_ptop", wantIDs: nil},
		{query: `\`, wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			list, err := assets.List(ctx, domain.AssetFilter{Query: tt.query})
			require.NoError(t, err)
			var ids []int64
			for _, a := range list {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestAssetStoreUpdate(t *testing.T) {
	assets := NewAssetStore(openTestDB(t))
	ctx := context.Background()

	created, err := assets.Create(ctx, newAsset(1, "Laptop"))
	require.NoError(t, err)

	changed := *created
	changed.Name = "Laptop Lenovo"
	changed.Status = domain.StatusMaintenance
	changed.Quantity = 4
	changed.RegisteredAt = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, assets.Update(ctx, &changed))

	updated, err := assets.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Laptop Lenovo", updated.Name)
	assert.Equal(t, domain.StatusMaintenance, updated.Status)
	assert.Equal(t, 4, updated.Quantity)
	assert.True(t, created.RegisteredAt.Equal(updated.RegisteredAt), "registration time must not change")
}

func TestAssetStoreUpdate_NotFound(t *testing.T) {
	assets := NewAssetStore(openTestDB(t))

	err := assets.Update(context.Background(), newAsset(99999, "Nada"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssetStoreDelete(t *testing.T) {
	assets := NewAssetStore(openTestDB(t))
	ctx := context.Background()

	_, err := assets.Create(ctx, newAsset(1, "Laptop"))
	require.NoError(t, err)

	require.NoError(t, assets.Delete(ctx, 1))

	deleted, err := assets.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, deleted)

	assert.ErrorIs(t, assets.Delete(ctx, 1), domain.ErrNotFound)
}
