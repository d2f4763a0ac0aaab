package services

import (
	"context"
	"net/http"
	"time"

	"inventario-pzbp/internal/dto"
	"inventario-pzbp/internal/entities"
	"inventario-pzbp/internal/repositories"
	apperrors "inventario-pzbp/pkg/errors"
	"inventario-pzbp/pkg/service"
	"inventario-pzbp/pkg/utils"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"
)

// Clave del caché de sesiones: sesion:<token> → id de usuario.
const sesionCachePrefix = "sesion:"

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO, ip, userAgent string) (*dto.LoginResponseDTO, error)
	Logout(ctx context.Context, token string) error
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponseDTO, error)
	Me(ctx context.Context, userID uint64) (*dto.UsuarioDTO, error)
	ValidarSesion(ctx context.Context, token string) error
	CreateUsuario(ctx context.Context, payload dto.CreateUsuarioDTO) (*dto.UsuarioDTO, error)
	ChangePassword(ctx context.Context, payload dto.ChangePasswordDTO) error
	GetUsuarios(ctx context.Context) ([]dto.UsuarioDTO, error)
	SetUsuarioActivo(ctx context.Context, id uint64, activo bool) error
}

type AuthService struct {
	usuarioRepo repositories.UsuarioRepositoryInterface
	sesionRepo  repositories.SesionRepositoryInterface
	cacheRepo   repositories.CacheRepositoryInterface
	jwtSvc      service.JWTService
	logger      *zap.Logger
}

func NewAuthService(
	usuarioRepo repositories.UsuarioRepositoryInterface,
	sesionRepo repositories.SesionRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtSvc service.JWTService,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		usuarioRepo: usuarioRepo,
		sesionRepo:  sesionRepo,
		cacheRepo:   cacheRepo,
		jwtSvc:      jwtSvc,
		logger:      logger,
	}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO, ip, userAgent string) (*dto.LoginResponseDTO, error) {
	logger := s.logger.With(zap.String("username", payload.Username))

	usuario, err := s.usuarioRepo.FindByUsername(ctx, payload.Username)
	if err != nil {
		logger.Warn("intento de login con usuario inexistente")
		return nil, apperrors.ErrInvalidCredentials
	}
	if !usuario.Activo {
		logger.Warn("intento de login con usuario desactivado")
		return nil, apperrors.ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(payload.Password, usuario.PasswordHash) {
		logger.Warn("intento de login con contraseña incorrecta")
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.jwtSvc.GenerateTokens(usuario.ID, usuario.Username, usuario.Rol)
	if err != nil {
		return nil, err
	}

	_, err = s.sesionRepo.CreateSesion(ctx, entities.Sesion{
		UsuarioID: usuario.ID,
		Token:     accessToken,
		IPAddress: null.NewString(ip, ip != ""),
		UserAgent: null.NewString(userAgent, userAgent != ""),
		ExpiresAt: time.Now().Add(s.jwtSvc.GetAccessTokenTTL()),
	})
	if err != nil {
		return nil, err
	}

	// El caché solo acelera la validación; si Redis no está, la sesión
	// se resuelve contra Postgres igualmente.
	if err := s.cacheRepo.Set(ctx, sesionCachePrefix+accessToken, usuario.ID, s.jwtSvc.GetAccessTokenTTL()); err != nil {
		logger.Warn("no se pudo cachear la sesión", zap.Error(err))
	}

	logger.Info("login correcto", zap.Uint64("usuarioID", usuario.ID), zap.String("rol", usuario.Rol))

	return &dto.LoginResponseDTO{
		Token:        accessToken,
		RefreshToken: refreshToken,
		Usuario:      usuarioADTO(usuario),
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sesionRepo.DeleteByToken(ctx, token); err != nil {
		return err
	}
	if err := s.cacheRepo.Del(ctx, sesionCachePrefix+token); err != nil {
		s.logger.Warn("no se pudo invalidar la sesión en el caché", zap.Error(err))
	}
	return nil
}

// Refresh emite un par de tokens nuevo a partir de un refresh token
// válido. El access token anterior deja de tener sesión asociada.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponseDTO, error) {
	claims, err := s.jwtSvc.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrInvalidToken
	}

	usuario, err := s.usuarioRepo.FindUsuario(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if !usuario.Activo {
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, newRefreshToken, err := s.jwtSvc.GenerateTokens(usuario.ID, usuario.Username, usuario.Rol)
	if err != nil {
		return nil, err
	}

	if _, err := s.sesionRepo.CreateSesion(ctx, entities.Sesion{
		UsuarioID: usuario.ID,
		Token:     accessToken,
		ExpiresAt: time.Now().Add(s.jwtSvc.GetAccessTokenTTL()),
	}); err != nil {
		return nil, err
	}

	if err := s.cacheRepo.Set(ctx, sesionCachePrefix+accessToken, usuario.ID, s.jwtSvc.GetAccessTokenTTL()); err != nil {
		s.logger.Warn("no se pudo cachear la sesión", zap.Error(err))
	}

	return &dto.LoginResponseDTO{
		Token:        accessToken,
		RefreshToken: newRefreshToken,
		Usuario:      usuarioADTO(usuario),
	}, nil
}

func (s *AuthService) Me(ctx context.Context, userID uint64) (*dto.UsuarioDTO, error) {
	usuario, err := s.usuarioRepo.FindUsuario(ctx, userID)
	if err != nil {
		return nil, err
	}
	u := usuarioADTO(usuario)
	return &u, nil
}

// ValidarSesion comprueba que el token siga asociado a una sesión
// viva: primero contra el caché, con Postgres de respaldo.
func (s *AuthService) ValidarSesion(ctx context.Context, token string) error {
	if _, err := s.cacheRepo.Get(ctx, sesionCachePrefix+token); err == nil {
		return nil
	}

	sesion, err := s.sesionRepo.FindByToken(ctx, token)
	if err != nil {
		return err
	}

	ttl := time.Until(sesion.ExpiresAt)
	if ttl > 0 {
		if err := s.cacheRepo.Set(ctx, sesionCachePrefix+token, sesion.UsuarioID, ttl); err != nil {
			s.logger.Warn("no se pudo recachear la sesión", zap.Error(err))
		}
	}
	return nil
}

func (s *AuthService) CreateUsuario(ctx context.Context, payload dto.CreateUsuarioDTO) (*dto.UsuarioDTO, error) {
	if payload.Rol == "" {
		payload.Rol = entities.RolObservador
	}

	hash, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	usuario, err := s.usuarioRepo.CreateUsuario(ctx, payload, hash)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusConflict,
			"El usuario o el email ya existen", err, nil)
	}

	s.logger.Info("usuario creado", zap.Uint64("usuarioID", usuario.ID), zap.String("rol", usuario.Rol))
	u := usuarioADTO(usuario)
	return &u, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, payload dto.ChangePasswordDTO) error {
	usuario, err := s.usuarioRepo.FindUsuario(ctx, payload.UserID)
	if err != nil {
		return err
	}

	if !utils.CheckPasswordHash(payload.CurrentPassword, usuario.PasswordHash) {
		return apperrors.NewHttpError(http.StatusBadRequest,
			"La contraseña actual no es correcta", nil, nil)
	}

	hash, err := utils.HashPassword(payload.NewPassword)
	if err != nil {
		return err
	}

	if err := s.usuarioRepo.UpdatePassword(ctx, usuario.ID, hash); err != nil {
		return err
	}

	// Cambiar la contraseña cierra todas las sesiones abiertas.
	s.cerrarSesionesDeUsuario(ctx, usuario.ID)
	return nil
}

func (s *AuthService) GetUsuarios(ctx context.Context) ([]dto.UsuarioDTO, error) {
	usuarios, err := s.usuarioRepo.GetUsuarios(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.UsuarioDTO, 0, len(usuarios))
	for i := range usuarios {
		out = append(out, usuarioADTO(&usuarios[i]))
	}
	return out, nil
}

func (s *AuthService) SetUsuarioActivo(ctx context.Context, id uint64, activo bool) error {
	if err := s.usuarioRepo.SetActivo(ctx, id, activo); err != nil {
		return err
	}
	if !activo {
		s.cerrarSesionesDeUsuario(ctx, id)
	}
	return nil
}

// cerrarSesionesDeUsuario borra las sesiones del usuario en Postgres y
// sus entradas en el caché. Sin la segunda parte, un token cacheado
// seguiría autenticando hasta vencer su TTL.
func (s *AuthService) cerrarSesionesDeUsuario(ctx context.Context, usuarioID uint64) {
	tokens, err := s.sesionRepo.DeleteByUsuario(ctx, usuarioID)
	if err != nil {
		s.logger.Warn("no se pudieron cerrar las sesiones del usuario",
			zap.Uint64("usuarioID", usuarioID), zap.Error(err))
		return
	}
	if len(tokens) == 0 {
		return
	}

	keys := make([]string, 0, len(tokens))
	for _, token := range tokens {
		keys = append(keys, sesionCachePrefix+token)
	}
	if err := s.cacheRepo.Del(ctx, keys...); err != nil {
		s.logger.Warn("no se pudieron invalidar las sesiones en el caché",
			zap.Uint64("usuarioID", usuarioID), zap.Error(err))
	}
}

func usuarioADTO(u *entities.Usuario) dto.UsuarioDTO {
	return dto.UsuarioDTO{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Rol:            u.Rol,
		NombreCompleto: u.NombreCompleto.String,
		Activo:         u.Activo,
		CreatedAt:      u.CreatedAt.Format(time.RFC3339),
	}
}
