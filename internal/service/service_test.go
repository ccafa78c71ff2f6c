package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vbonduro/assetreg/internal/assetid"
	"github.com/vbonduro/assetreg/internal/auth"
	"github.com/vbonduro/assetreg/internal/db"
	"github.com/vbonduro/assetreg/internal/domain"
	"github.com/vbonduro/assetreg/internal/store"
)

var (
	testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	admin   = domain.Actor{UserID: 1, Name: "Admin", Role: domain.RoleAdmin}
	clerk   = domain.Actor{UserID: 2, Name: "Clerk", Role: domain.RoleUser}
)

type testEnv struct {
	assets   *AssetService
	catalog  *CatalogService
	users    *UserService
	activity *ActivityService

	assetStore *store.AssetStore
	userStore  *store.UserStore
	logStore   *store.LogStore
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	logger := discardLogger()
	assetStore := store.NewAssetStore(d)
	userStore := store.NewUserStore(d)
	logStore := store.NewLogStore(d)
	categories, err := store.NewCatalogStore(d, domain.CatalogCategories)
	require.NoError(t, err)
	locations, err := store.NewCatalogStore(d, domain.CatalogLocations)
	require.NoError(t, err)
	tokens, err := auth.NewTokenManager("test-secret", "assetreg-test", time.Hour)
	require.NoError(t, err)

	activity := NewActivityService(logStore, logger)
	assets := NewAssetService(assetStore, assetid.NewAllocator(assetStore, logger, nil), userStore, activity, logger)
	assets.now = func() time.Time { return testNow }
	users := NewUserService(userStore, tokens, activity, logger)
	users.hashCost = bcrypt.MinCost

	return &testEnv{
		assets:     assets,
		catalog:    NewCatalogService(categories, locations, activity, logger),
		users:      users,
		activity:   activity,
		assetStore: assetStore,
		userStore:  userStore,
		logStore:   logStore,
	}
}

func validInput() AssetInput {
	return AssetInput{
		Name:             "laptop dell",
		Category:         "Equipos",
		Status:           domain.StatusActive,
		Location:         "Oficina",
		AcquisitionDate:  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		InitialCost:      decimal.NewFromInt(1000),
		DepreciationRate: decimal.NewNullDecimal(decimal.NewFromInt(10)),
	}
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	names := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		names = append(names, f.Field)
	}
	return names
}

// stubAllocator hands out a fixed sequence of allocations.
type stubAllocator struct {
	allocs []assetid.Allocation
	calls  int
}

func (s *stubAllocator) Allocate(context.Context) assetid.Allocation {
	a := s.allocs[s.calls%len(s.allocs)]
	s.calls++
	return a
}

type failingLogRepository struct{}

func (failingLogRepository) Append(context.Context, string, string) error {
	return errors.New("disk full")
}

func (failingLogRepository) ListRecent(context.Context, int) ([]*domain.LogEntry, error) {
	return nil, nil
}
