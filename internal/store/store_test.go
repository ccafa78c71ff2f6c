package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/assetreg/internal/db"
	"github.com/vbonduro/assetreg/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func newAsset(id int64, name string) *domain.Asset {
	return &domain.Asset{
		ID:               id,
		Name:             name,
		Category:         "Equipos",
		Status:           domain.StatusActive,
		Location:         "Oficina",
		Quantity:         1,
		AcquisitionDate:  time.Date(2022, 3, 15, 0, 0, 0, 0, time.UTC),
		InitialCost:      decimal.RequireFromString("1200.50"),
		DepreciationRate: decimal.NewNullDecimal(decimal.NewFromInt(10)),
	}
}
