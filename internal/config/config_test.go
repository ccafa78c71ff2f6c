package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.ListenAddr)
	assert.NotEmpty(t, cfg.DBPath)
	assert.NotEmpty(t, cfg.ExportPath)
	assert.Equal(t, "assetreg", cfg.JWTIssuer)
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("ASSETREG_LISTEN_ADDR", ":9000")
	t.Setenv("ASSETREG_DB_PATH", "/custom/db.sqlite")
	t.Setenv("ASSETREG_JWT_SECRET", "s3cret")
	t.Setenv("ASSETREG_JWT_TTL", "30m")
	t.Setenv("ASSETREG_TEST_MODE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "/custom/db.sqlite", cfg.DBPath)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
	assert.True(t, cfg.TestMode)
	assert.NoError(t, cfg.Validate())
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("ASSETREG_JWT_TTL", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateRequiresSecret(t *testing.T) {
	cfg := &Config{JWTTTL: time.Hour}
	assert.Error(t, cfg.Validate())
}
