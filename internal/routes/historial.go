package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventario-pzbp/internal/controllers"
	"inventario-pzbp/internal/services"
)

func runHistorialRouter(
	secure *echo.Group,
	historialService services.HistorialServiceInterface,
	logger *zap.Logger,
) {
	historialCtrl := controllers.NewHistorialController(historialService, logger)

	historial := secure.Group("/historial")
	{
		historial.GET("", historialCtrl.GetHistorial)
		historial.GET("/equipo/:equipoId", historialCtrl.GetHistorialEquipo)
		historial.GET("/estadisticas", historialCtrl.GetEstadisticas)
	}
}
