package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventario-pzbp/internal/controllers"
	"inventario-pzbp/internal/services"
)

func runDashboardRouter(
	secure *echo.Group,
	dashboardService services.DashboardServiceInterface,
	logger *zap.Logger,
) {
	dashboardCtrl := controllers.NewDashboardController(dashboardService, logger)

	dashboard := secure.Group("/dashboard")
	{
		dashboard.GET("", dashboardCtrl.GetDashboard)
		dashboard.GET("/evolucion", dashboardCtrl.GetEvolucion)
		dashboard.GET("/tipos", dashboardCtrl.GetTipos)
	}
}
