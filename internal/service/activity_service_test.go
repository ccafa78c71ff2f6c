package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/assetreg/internal/domain"
)

func TestActivityRecent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.activity.Record(ctx, admin, "updated asset %d", 1)
	env.activity.Record(ctx, clerk, "updated asset %d", 2)

	_, err := env.activity.Recent(ctx, clerk, 10)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	entries, err := env.activity.Recent(ctx, admin, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Clerk", entries[0].UserName)
	assert.Equal(t, "updated asset 2", entries[0].Action)
}

func TestActivityFailureDoesNotFailMutation(t *testing.T) {
	env := newTestEnv(t)
	env.assets.activity = NewActivityService(failingLogRepository{}, discardLogger())

	created, err := env.assets.CreateAsset(context.Background(), clerk, validInput())
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Asset.ID)
}
