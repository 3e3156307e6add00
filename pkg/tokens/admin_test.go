package tokens

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdminToken_RoundTrip(t *testing.T) {
	t.Parallel()

	secret := []byte("test-admin-secret")
	now := time.Now()

	tok, exp, err := NewAdminToken(secret, "gate-1", now, 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	assert.WithinDuration(t, now.Add(24*time.Hour), exp, time.Second)

	claims, err := AdminClaimsFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "gate-1", claims.GateID)
	assert.Equal(t, AdminSubject, claims.Subject)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestAdminClaimsFromToken_Rejects(t *testing.T) {
	t.Parallel()

	secret := []byte("test-admin-secret")

	expired, _, err := NewAdminToken(secret, "g", time.Now().Add(-48*time.Hour), time.Hour)
	require.NoError(t, err)
	_, err = AdminClaimsFromToken(expired, secret)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))

	good, _, err := NewAdminToken(secret, "g", time.Now(), time.Hour)
	require.NoError(t, err)
	_, err = AdminClaimsFromToken(good, []byte("other-secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = AdminClaimsFromToken("not-a-jwt", secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
