package controllers

import (
	"net/http"
	"strconv"

	"inventario-pzbp/internal/services"
	"inventario-pzbp/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	logger           *zap.Logger
}

func NewDashboardController(dashboardService services.DashboardServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{dashboardService: dashboardService, logger: logger}
}

func (c *DashboardController) GetDashboard(ctx echo.Context) error {
	res, err := c.dashboardService.GetDashboard(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Tablero de inventario", http.StatusOK)
}

func (c *DashboardController) GetEvolucion(ctx echo.Context) error {
	dias, _ := strconv.Atoi(ctx.QueryParam("dias"))

	res, err := c.dashboardService.GetEvolucion(ctx.Request().Context(), dias)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Evolución de movimientos", http.StatusOK)
}

func (c *DashboardController) GetTipos(ctx echo.Context) error {
	res, err := c.dashboardService.GetPorTipo(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Distribución por tipo", http.StatusOK)
}
