package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"inventario-pzbp/internal/dto"
	"inventario-pzbp/internal/entities"
	"inventario-pzbp/internal/repositories"
	apperrors "inventario-pzbp/pkg/errors"
	"inventario-pzbp/pkg/service"
	"inventario-pzbp/pkg/utils"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sesionStoreFake struct {
	repositories.SesionRepositoryInterface
	sesiones map[string]entities.Sesion // token → sesión
}

func (f *sesionStoreFake) FindByToken(_ context.Context, token string) (*entities.Sesion, error) {
	s, ok := f.sesiones[token]
	if !ok {
		return nil, apperrors.ErrSessionExpired
	}
	copia := s
	return &copia, nil
}

func (f *sesionStoreFake) DeleteByToken(_ context.Context, token string) error {
	delete(f.sesiones, token)
	return nil
}

func (f *sesionStoreFake) DeleteByUsuario(_ context.Context, usuarioID uint64) ([]string, error) {
	var tokens []string
	for token, s := range f.sesiones {
		if s.UsuarioID == usuarioID {
			tokens = append(tokens, token)
			delete(f.sesiones, token)
		}
	}
	return tokens, nil
}

type cacheFake struct {
	valores  map[string]string
	borradas []string
}

func (f *cacheFake) Get(_ context.Context, key string) (string, error) {
	v, ok := f.valores[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (f *cacheFake) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	f.valores[key] = fmt.Sprint(value)
	return nil
}

func (f *cacheFake) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.valores, key)
		f.borradas = append(f.borradas, key)
	}
	return nil
}

type usuarioStoreFake struct {
	repositories.UsuarioRepositoryInterface
	usuario entities.Usuario
}

func (f *usuarioStoreFake) FindUsuario(_ context.Context, id uint64) (*entities.Usuario, error) {
	if id != f.usuario.ID {
		return nil, apperrors.ErrNotFound
	}
	copia := f.usuario
	return &copia, nil
}

func (f *usuarioStoreFake) UpdatePassword(_ context.Context, _ uint64, hash string) error {
	f.usuario.PasswordHash = hash
	return nil
}

func (f *usuarioStoreFake) SetActivo(_ context.Context, id uint64, activo bool) error {
	if id == f.usuario.ID {
		f.usuario.Activo = activo
	}
	return nil
}

func nuevoAuthService(t *testing.T, password string) (AuthServiceInterface, *sesionStoreFake, *cacheFake) {
	t.Helper()

	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	expira := time.Now().Add(time.Hour)
	sesiones := &sesionStoreFake{sesiones: map[string]entities.Sesion{
		"tok-a": {ID: "s-a", UsuarioID: 5, Token: "tok-a", ExpiresAt: expira},
		"tok-b": {ID: "s-b", UsuarioID: 5, Token: "tok-b", ExpiresAt: expira},
		"tok-c": {ID: "s-c", UsuarioID: 6, Token: "tok-c", ExpiresAt: expira},
	}}
	cache := &cacheFake{valores: map[string]string{
		"sesion:tok-a": "5",
		"sesion:tok-b": "5",
		"sesion:tok-c": "6",
	}}
	usuarios := &usuarioStoreFake{usuario: entities.Usuario{
		ID:           5,
		Username:     "operador",
		Rol:          entities.RolObservador,
		PasswordHash: hash,
		Activo:       true,
	}}

	jwtSvc := service.NewJWTService("secreto-de-test", time.Hour, 24*time.Hour)
	svc := NewAuthService(usuarios, sesiones, cache, jwtSvc, zap.NewNop())
	return svc, sesiones, cache
}

// Desactivar un usuario tiene que matar sus sesiones también en el
// caché: si solo se borran las filas de Postgres, el token cacheado
// sigue autenticando hasta vencer su TTL.
func TestSetUsuarioActivo_DesactivarInvalidaElCache(t *testing.T) {
	svc, sesiones, cache := nuevoAuthService(t, "actual123")

	require.NoError(t, svc.ValidarSesion(context.Background(), "tok-a"))

	require.NoError(t, svc.SetUsuarioActivo(context.Background(), 5, false))

	assert.Empty(t, sesiones.sesiones["tok-a"].Token)
	assert.Empty(t, sesiones.sesiones["tok-b"].Token)
	assert.ElementsMatch(t, []string{"sesion:tok-a", "sesion:tok-b"}, cache.borradas)

	err := svc.ValidarSesion(context.Background(), "tok-a")
	require.ErrorIs(t, err, apperrors.ErrSessionExpired)

	// las sesiones de otros usuarios no se tocan
	require.NoError(t, svc.ValidarSesion(context.Background(), "tok-c"))
}

func TestSetUsuarioActivo_ReactivarNoTocaSesiones(t *testing.T) {
	svc, sesiones, cache := nuevoAuthService(t, "actual123")

	require.NoError(t, svc.SetUsuarioActivo(context.Background(), 5, true))

	assert.Len(t, sesiones.sesiones, 3)
	assert.Empty(t, cache.borradas)
}

func TestChangePassword_CierraSesionesYCache(t *testing.T) {
	svc, sesiones, cache := nuevoAuthService(t, "actual123")

	err := svc.ChangePassword(context.Background(), dto.ChangePasswordDTO{
		UserID:          5,
		CurrentPassword: "actual123",
		NewPassword:     "nueva456",
	})
	require.NoError(t, err)

	_, quedaA := sesiones.sesiones["tok-a"]
	_, quedaB := sesiones.sesiones["tok-b"]
	assert.False(t, quedaA)
	assert.False(t, quedaB)
	assert.ElementsMatch(t, []string{"sesion:tok-a", "sesion:tok-b"}, cache.borradas)

	require.ErrorIs(t, svc.ValidarSesion(context.Background(), "tok-b"), apperrors.ErrSessionExpired)
}

func TestChangePassword_ContrasenaActualIncorrecta(t *testing.T) {
	svc, sesiones, cache := nuevoAuthService(t, "actual123")

	err := svc.ChangePassword(context.Background(), dto.ChangePasswordDTO{
		UserID:          5,
		CurrentPassword: "equivocada",
		NewPassword:     "nueva456",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "La contraseña actual no es correcta")

	assert.Len(t, sesiones.sesiones, 3)
	assert.Empty(t, cache.borradas)
}

// ValidarSesion con el caché frío recachea la sesión con el TTL que
// le quede en Postgres.
func TestValidarSesion_RecacheaTrasFallo(t *testing.T) {
	svc, _, cache := nuevoAuthService(t, "actual123")

	delete(cache.valores, "sesion:tok-a")

	require.NoError(t, svc.ValidarSesion(context.Background(), "tok-a"))
	assert.Equal(t, "5", cache.valores["sesion:tok-a"])
}
