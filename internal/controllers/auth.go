package controllers

import (
	"net/http"
	"strconv"

	"inventario-pzbp/internal/dto"
	"inventario-pzbp/internal/services"
	apperrors "inventario-pzbp/pkg/errors"
	"inventario-pzbp/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthController struct {
	authService services.AuthServiceInterface
	logger      *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, logger *zap.Logger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

func (c *AuthController) Login(ctx echo.Context) error {
	var payload dto.LoginDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Cuerpo de la petición no válido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.authService.Login(ctx.Request().Context(), payload,
		ctx.RealIP(), ctx.Request().UserAgent())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Sesión iniciada correctamente", http.StatusOK)
}

func (c *AuthController) Logout(ctx echo.Context) error {
	token, err := utils.GetTokenFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.authService.Logout(ctx.Request().Context(), token); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Sesión cerrada correctamente", http.StatusOK)
}

func (c *AuthController) Refresh(ctx echo.Context) error {
	var payload dto.RefreshRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Cuerpo de la petición no válido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.authService.Refresh(ctx.Request().Context(), payload.RefreshToken)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Tokens renovados", http.StatusOK)
}

func (c *AuthController) Me(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.authService.Me(ctx.Request().Context(), userID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Usuario actual", http.StatusOK)
}

func (c *AuthController) CreateUsuario(ctx echo.Context) error {
	var payload dto.CreateUsuarioDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Cuerpo de la petición no válido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.authService.CreateUsuario(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Usuario creado correctamente", http.StatusCreated)
}

func (c *AuthController) ChangePassword(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.ChangePasswordDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Cuerpo de la petición no válido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	payload.UserID = userID

	if err := c.authService.ChangePassword(ctx.Request().Context(), payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Contraseña actualizada; vuelve a iniciar sesión", http.StatusOK)
}

func (c *AuthController) GetUsuarios(ctx echo.Context) error {
	res, err := c.authService.GetUsuarios(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Lista de usuarios", http.StatusOK)
}

func (c *AuthController) SetUsuarioActivo(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "ID de usuario no válido", err, nil),
			c.logger)
	}

	var payload dto.SetActivoDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Cuerpo de la petición no válido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.authService.SetUsuarioActivo(ctx.Request().Context(), id, *payload.Activo); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Usuario actualizado", http.StatusOK)
}

// DeleteUsuario desactiva la cuenta; nunca borra la fila porque el
// historial referencia al usuario.
func (c *AuthController) DeleteUsuario(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "ID de usuario no válido", err, nil),
			c.logger)
	}

	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if userID == id {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "No puedes eliminar tu propio usuario", nil, nil),
			c.logger)
	}

	if err := c.authService.SetUsuarioActivo(ctx.Request().Context(), id, false); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Usuario desactivado", http.StatusOK)
}
