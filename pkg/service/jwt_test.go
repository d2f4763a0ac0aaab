package service

import (
	"testing"
	"time"

	"inventario-pzbp/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTokens_ClaimsCompletos(t *testing.T) {
	svc := NewJWTService("clave-de-prueba", time.Hour, 24*time.Hour)

	access, refresh, err := svc.GenerateTokens(7, "admin", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Rol)
	assert.False(t, claims.IsRefreshToken)

	refreshClaims, err := svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, refreshClaims.IsRefreshToken)
}

func TestValidateToken_FirmaIncorrecta(t *testing.T) {
	svc := NewJWTService("clave-buena", time.Hour, time.Hour)
	otro := NewJWTService("clave-mala", time.Hour, time.Hour)

	access, _, err := otro.GenerateTokens(1, "admin", "admin")
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, errors.ErrInvalidToken)
}

func TestValidateToken_Caducado(t *testing.T) {
	svc := NewJWTService("clave-de-prueba", -time.Minute, time.Hour)

	access, _, err := svc.GenerateTokens(1, "admin", "admin")
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	require.Error(t, err)
}

func TestValidateToken_Basura(t *testing.T) {
	svc := NewJWTService("clave-de-prueba", time.Hour, time.Hour)

	_, err := svc.ValidateToken("no-es-un-jwt")
	assert.ErrorIs(t, err, errors.ErrInvalidToken)
}

func TestTTLs(t *testing.T) {
	svc := NewJWTService("clave", 2*time.Hour, 48*time.Hour)
	assert.Equal(t, 2*time.Hour, svc.GetAccessTokenTTL())
	assert.Equal(t, 48*time.Hour, svc.GetRefreshTokenTTL())
}
