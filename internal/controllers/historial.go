package controllers

import (
	"net/http"
	"strconv"
	"time"

	"inventario-pzbp/internal/dto"
	"inventario-pzbp/internal/services"
	apperrors "inventario-pzbp/pkg/errors"
	"inventario-pzbp/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HistorialController struct {
	historialService services.HistorialServiceInterface
	logger           *zap.Logger
}

func NewHistorialController(historialService services.HistorialServiceInterface, logger *zap.Logger) *HistorialController {
	return &HistorialController{historialService: historialService, logger: logger}
}

func (c *HistorialController) GetHistorial(ctx echo.Context) error {
	filter := parseHistorialFilter(ctx)

	res, err := c.historialService.GetHistorial(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Historial de movimientos", http.StatusOK)
}

func (c *HistorialController) GetHistorialEquipo(ctx echo.Context) error {
	equipoID, err := strconv.ParseUint(ctx.Param("equipoId"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "ID de equipo no válido", err, nil),
			c.logger)
	}

	filter := parseHistorialFilter(ctx)
	filter.EquipoID = &equipoID

	res, err := c.historialService.GetHistorial(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Historial del equipo", http.StatusOK)
}

func (c *HistorialController) GetEstadisticas(ctx echo.Context) error {
	res, err := c.historialService.GetEstadisticas(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Estadísticas del historial", http.StatusOK)
}

func parseHistorialFilter(ctx echo.Context) dto.HistorialFilter {
	filter := dto.HistorialFilter{
		Tipo:  ctx.QueryParam("tipo"),
		Limit: 50,
	}

	if raw := ctx.QueryParam("equipo_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.EquipoID = &id
		}
	}
	if raw := ctx.QueryParam("destino_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.DestinoID = &id
		}
	}
	if raw := ctx.QueryParam("fecha_inicio"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.FechaInicio = &t
		}
	}
	if raw := ctx.QueryParam("fecha_fin"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			// inclusivo: hasta el final del día
			fin := t.Add(24*time.Hour - time.Nanosecond)
			filter.FechaFin = &fin
		}
	}
	if raw := ctx.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 && n <= 500 {
			filter.Limit = n
		}
	}
	if raw := ctx.QueryParam("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			filter.Offset = n
		}
	}
	return filter
}
