package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventario-pzbp/internal/controllers"
	"inventario-pzbp/internal/services"
)

func runReportRouter(
	secure *echo.Group,
	reportService services.ReportServiceInterface,
	logger *zap.Logger,
) {
	reportCtrl := controllers.NewReportController(reportService, logger)

	reportes := secure.Group("/reportes")
	{
		reportes.GET("/excel", reportCtrl.ExportarExcel)
		reportes.GET("/pdf", reportCtrl.ExportarPDF)
		reportes.GET("/csv", reportCtrl.ExportarCSV)
	}
}
