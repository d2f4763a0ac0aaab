package controllers

import (
	"net/http"

	"inventario-pzbp/internal/dto"
	"inventario-pzbp/internal/services"
	apperrors "inventario-pzbp/pkg/errors"
	"inventario-pzbp/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type EquipoController struct {
	equipoService services.EquipoServiceInterface
	logger        *zap.Logger
}

func NewEquipoController(equipoService services.EquipoServiceInterface, logger *zap.Logger) *EquipoController {
	return &EquipoController{equipoService: equipoService, logger: logger}
}

func (c *EquipoController) GetEquipos(ctx echo.Context) error {
	res, err := c.equipoService.GetEquipos(ctx.Request().Context(), parseEquipoFilter(ctx))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Lista de equipos", http.StatusOK)
}

func (c *EquipoController) FindEquipo(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipoService.FindEquipo(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Equipo encontrado", http.StatusOK)
}

func (c *EquipoController) CreateEquipo(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateEquipoDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Cuerpo de la petición no válido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipoService.CreateEquipo(ctx.Request().Context(), payload, userID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Equipo dado de alta correctamente", http.StatusCreated)
}

func (c *EquipoController) UpdateEquipo(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateEquipoDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Cuerpo de la petición no válido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipoService.UpdateEquipo(ctx.Request().Context(), id, payload, userID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Equipo actualizado", http.StatusOK)
}

func (c *EquipoController) TrasladarEquipo(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.TrasladarEquipoDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Cuerpo de la petición no válido", err, nil),
			c.logger)
	}

	res, err := c.equipoService.TrasladarEquipo(ctx.Request().Context(), id, payload, userID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Equipo trasladado", http.StatusOK)
}

func (c *EquipoController) DeleteEquipo(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	observaciones := ctx.QueryParam("observaciones")

	if err := c.equipoService.DeleteEquipo(ctx.Request().Context(), id, observaciones, userID); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Equipo dado de baja correctamente", http.StatusOK)
}

// BulkCreateEquipos da de alta varios equipos de una vez, con la misma
// semántica fila a fila que la importación: los fallos no frenan al
// resto.
func (c *EquipoController) BulkCreateEquipos(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.BulkEquiposDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Cuerpo de la petición no válido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	exitosos := make([]dto.EquipoImportadoDTO, 0, len(payload.Equipos))
	errores := make([]dto.ErrorFilaDTO, 0)
	for i, equipoNuevo := range payload.Equipos {
		equipo, err := c.equipoService.CreateEquipo(ctx.Request().Context(), equipoNuevo, userID)
		if err != nil {
			errores = append(errores, dto.ErrorFilaDTO{Fila: i + 1, Error: err.Error()})
			continue
		}
		exitosos = append(exitosos, dto.EquipoImportadoDTO{
			ID:          equipo.ID,
			NInventario: equipo.NInventario,
			NSSerial:    equipo.NSSerial,
		})
	}

	res := dto.ResultadoImportacionDTO{
		Message:    "Alta masiva completada",
		Importados: len(exitosos),
		Exitosos:   exitosos,
		Errores:    errores,
		Total:      len(payload.Equipos),
	}
	return utils.SuccessResponse(ctx, res, res.Message, http.StatusOK)
}
