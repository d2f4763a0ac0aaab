package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventario-pzbp/internal/controllers"
	"inventario-pzbp/internal/services"
	"inventario-pzbp/pkg/middleware"
)

func runDestinoRouter(
	secure *echo.Group,
	destinoService services.DestinoServiceInterface,
	equipoService services.EquipoServiceInterface,
	authMW *middleware.AuthMiddleware,
	logger *zap.Logger,
) {
	destinoCtrl := controllers.NewDestinoController(destinoService, equipoService, logger)

	destinos := secure.Group("/destinos")
	{
		destinos.GET("", destinoCtrl.GetDestinos)
		destinos.GET("/:id", destinoCtrl.FindDestino)
		destinos.GET("/:id/equipos", destinoCtrl.GetEquiposDelDestino)

		destinos.POST("", destinoCtrl.CreateDestino, authMW.RequireAdmin)
		destinos.PUT("/:id", destinoCtrl.UpdateDestino, authMW.RequireAdmin)
		destinos.DELETE("/:id", destinoCtrl.DeleteDestino, authMW.RequireAdmin)
	}
}
