package middleware

import (
	"context"
	"strings"

	"inventario-pzbp/internal/entities"
	"inventario-pzbp/pkg/contextkeys"
	apperrors "inventario-pzbp/pkg/errors"
	"inventario-pzbp/pkg/service"
	"inventario-pzbp/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SesionValidator comprueba que el token siga teniendo una sesión
// viva; lo implementa el servicio de autenticación.
type SesionValidator interface {
	ValidarSesion(ctx context.Context, token string) error
}

type AuthMiddleware struct {
	jwtService service.JWTService
	sesiones   SesionValidator
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, sesiones SesionValidator, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		sesiones:   sesiones,
		logger:     logger,
	}
}

// Auth valida el token Bearer, comprueba la sesión y deja la identidad
// del usuario en el contexto de la petición.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}
		tokenString := parts[1]

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			return utils.ErrorResponse(c, err, m.logger)
		}
		if claims.IsRefreshToken {
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, m.logger)
		}

		// Un token firmado no basta: el logout y la desactivación del
		// usuario matan la sesión antes de que el token caduque.
		if err := m.sesiones.ValidarSesion(c.Request().Context(), tokenString); err != nil {
			m.logger.Warn("token válido sin sesión viva", zap.Uint64("usuarioID", claims.UserID))
			return utils.ErrorResponse(c, apperrors.ErrSessionExpired, m.logger)
		}

		ctx := c.Request().Context()
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, contextkeys.UserRoleKey, claims.Rol)
		ctx = context.WithValue(ctx, contextkeys.UserNameKey, claims.Username)
		ctx = context.WithValue(ctx, contextkeys.TokenKey, tokenString)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireAdmin corta en la frontera del grupo de rutas: los handlers
// no vuelven a mirar el rol.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		rol, err := utils.GetUserRoleFromCtx(c.Request().Context())
		if err != nil {
			return utils.ErrorResponse(c, err, m.logger)
		}
		if rol != entities.RolAdmin {
			m.logger.Warn("acceso denegado por rol", zap.String("rol", rol), zap.String("ruta", c.Path()))
			return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
		}
		return next(c)
	}
}
