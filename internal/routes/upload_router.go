package routes

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"inventario-pzbp/internal/controllers"
	"inventario-pzbp/internal/services"
	"inventario-pzbp/pkg/config"
)

func runUploadRouter(
	secure *echo.Group,
	importService services.ImportServiceInterface,
	cfg *config.Config,
	logger *zap.Logger,
) {
	uploadCtrl := controllers.NewUploadController(importService, logger)

	// el límite de cuerpo corta los archivos grandes antes del parser
	upload := secure.Group("/upload", echomw.BodyLimit(cfg.Upload.MaxFileSize))
	{
		upload.POST("/parse", uploadCtrl.Parse)
		upload.POST("/csv", uploadCtrl.ImportarCSV)
		upload.POST("/importar/equipos", uploadCtrl.ImportarEquipos)
		upload.GET("/plantilla", uploadCtrl.Plantilla)
	}
}
