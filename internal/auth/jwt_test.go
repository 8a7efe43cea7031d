package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/consolidation-service/internal/auth"
)

func newTestService(t *testing.T) *auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     "test-secret",
		Issuer:     "consolidation-service",
		Expiration: time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.GenerateToken("client-001", []string{auth.RoleAPIClient})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "client-001", claims.ClientID)
	assert.Equal(t, "client-001", claims.Subject)
	assert.Equal(t, "consolidation-service", claims.Issuer)
	assert.True(t, claims.HasRole(auth.RoleAPIClient))
	assert.False(t, claims.HasRole(auth.RoleAuditor))
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	svc := newTestService(t)
	token, err := svc.GenerateToken("client-001", nil)
	require.NoError(t, err)

	other, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     "different-secret",
		Issuer:     "consolidation-service",
		Expiration: time.Hour,
	})
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	require.Error(t, err)
}

func TestJWTService_RejectsWrongIssuer(t *testing.T) {
	issuer, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     "test-secret",
		Issuer:     "someone-else",
		Expiration: time.Hour,
	})
	require.NoError(t, err)

	token, err := issuer.GenerateToken("client-001", nil)
	require.NoError(t, err)

	svc := newTestService(t)
	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid issuer")
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	expired, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     "test-secret",
		Issuer:     "consolidation-service",
		Expiration: -time.Minute,
	})
	require.NoError(t, err)

	token, err := expired.GenerateToken("client-001", nil)
	require.NoError(t, err)

	svc := newTestService(t)
	_, err = svc.ValidateToken(token)
	require.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := auth.NewJWTService(auth.JWTConfig{})
	require.Error(t, err)
}
