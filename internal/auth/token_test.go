package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/assetreg/internal/domain"
)

func newManager(t *testing.T) *TokenManager {
	t.Helper()
	m, err := NewTokenManager("test-secret", "assetreg", time.Hour)
	require.NoError(t, err)
	return m
}

func TestIssueAndVerify(t *testing.T) {
	m := newManager(t)

	token, expires, err := m.Issue(&domain.User{ID: 7, Name: "Ana", Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	actor, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, domain.Actor{UserID: 7, Name: "Ana", Role: domain.RoleAdmin}, actor)
}

func TestIssueRejectsPlaceholderRole(t *testing.T) {
	_, _, err := newManager(t).Issue(&domain.User{ID: 1, Name: "Sin cuenta"})
	assert.Error(t, err)
}

func TestVerifyExpired(t *testing.T) {
	m := newManager(t)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := m.Issue(&domain.User{ID: 1, Name: "Ana", Role: domain.RoleUser})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyWrongSecret(t *testing.T) {
	token, _, err := newManager(t).Issue(&domain.User{ID: 1, Name: "Ana", Role: domain.RoleUser})
	require.NoError(t, err)

	other, err := NewTokenManager("other-secret", "assetreg", time.Hour)
	require.NoError(t, err)
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyWrongIssuer(t *testing.T) {
	token, _, err := newManager(t).Issue(&domain.User{ID: 1, Name: "Ana", Role: domain.RoleUser})
	require.NoError(t, err)

	other, err := NewTokenManager("test-secret", "someone-else", time.Hour)
	require.NoError(t, err)
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyGarbage(t *testing.T) {
	_, err := newManager(t).Verify("not.a.token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestNewTokenManagerValidation(t *testing.T) {
	_, err := NewTokenManager("", "assetreg", time.Hour)
	assert.Error(t, err)
	_, err = NewTokenManager("s", "assetreg", 0)
	assert.Error(t, err)
}
