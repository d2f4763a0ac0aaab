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

type DestinoController struct {
	destinoService services.DestinoServiceInterface
	equipoService  services.EquipoServiceInterface
	logger         *zap.Logger
}

func NewDestinoController(
	destinoService services.DestinoServiceInterface,
	equipoService services.EquipoServiceInterface,
	logger *zap.Logger,
) *DestinoController {
	return &DestinoController{
		destinoService: destinoService,
		equipoService:  equipoService,
		logger:         logger,
	}
}

// GetDestinos devuelve los activos; con ?todos=true incluye también
// los desactivados.
func (c *DestinoController) GetDestinos(ctx echo.Context) error {
	soloActivos := ctx.QueryParam("todos") != "true"

	res, err := c.destinoService.GetDestinos(ctx.Request().Context(), soloActivos)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Lista de destinos", http.StatusOK)
}

func (c *DestinoController) FindDestino(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.destinoService.FindDestino(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Destino encontrado", http.StatusOK)
}

func (c *DestinoController) GetEquiposDelDestino(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if _, err := c.destinoService.FindDestino(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	filter := parseEquipoFilter(ctx)
	filter.DestinoID = &id

	res, err := c.equipoService.GetEquipos(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Equipos del destino", http.StatusOK)
}

func (c *DestinoController) CreateDestino(ctx echo.Context) error {
	var payload dto.CreateDestinoDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Cuerpo de la petición no válido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.destinoService.CreateDestino(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Destino creado correctamente", http.StatusCreated)
}

func (c *DestinoController) UpdateDestino(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateDestinoDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Cuerpo de la petición no válido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.destinoService.UpdateDestino(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Destino actualizado", http.StatusOK)
}

func (c *DestinoController) DeleteDestino(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.destinoService.DeleteDestino(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, res.Message, http.StatusOK)
}

func parseID(ctx echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewHttpError(http.StatusBadRequest, "ID no válido", err,
			map[string]interface{}{"param": ctx.Param("id")})
	}
	return id, nil
}

// parseEquipoFilter lee los filtros comunes de listado de equipos.
func parseEquipoFilter(ctx echo.Context) dto.EquipoFilter {
	filter := dto.EquipoFilter{
		Tipo:   ctx.QueryParam("tipo"),
		Estado: ctx.QueryParam("estado"),
		Search: ctx.QueryParam("search"),
		Limit:  50,
	}

	if raw := ctx.QueryParam("destino_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.DestinoID = &id
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
