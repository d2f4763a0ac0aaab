package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventario-pzbp/internal/controllers"
	"inventario-pzbp/internal/services"
	"inventario-pzbp/pkg/middleware"
)

func runEquipoRouter(
	secure *echo.Group,
	equipoService services.EquipoServiceInterface,
	authMW *middleware.AuthMiddleware,
	logger *zap.Logger,
) {
	equipoCtrl := controllers.NewEquipoController(equipoService, logger)

	equipos := secure.Group("/equipos")
	{
		equipos.GET("", equipoCtrl.GetEquipos)
		equipos.GET("/:id", equipoCtrl.FindEquipo)
		equipos.POST("", equipoCtrl.CreateEquipo)
		equipos.POST("/bulk", equipoCtrl.BulkCreateEquipos)
		equipos.PUT("/:id", equipoCtrl.UpdateEquipo)
		equipos.PATCH("/:id/trasladar", equipoCtrl.TrasladarEquipo)

		// la baja borra la fila; solo administradores
		equipos.DELETE("/:id", equipoCtrl.DeleteEquipo, authMW.RequireAdmin)
	}
}
