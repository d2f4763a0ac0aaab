package controllers

import (
	"fmt"
	"net/http"
	"time"

	"inventario-pzbp/internal/services"
	"inventario-pzbp/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) ExportarExcel(ctx echo.Context) error {
	data, err := c.reportService.ExportarExcel(ctx.Request().Context(), parseEquipoFilter(ctx))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return descargar(ctx, data,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		nombreReporte("xlsx"))
}

func (c *ReportController) ExportarPDF(ctx echo.Context) error {
	data, err := c.reportService.ExportarPDF(ctx.Request().Context(), parseEquipoFilter(ctx))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return descargar(ctx, data, "application/pdf", nombreReporte("pdf"))
}

func (c *ReportController) ExportarCSV(ctx echo.Context) error {
	data, err := c.reportService.ExportarCSV(ctx.Request().Context(), parseEquipoFilter(ctx))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return descargar(ctx, data, "text/csv; charset=utf-8", nombreReporte("csv"))
}

func nombreReporte(ext string) string {
	return fmt.Sprintf("inventario_pzbp_%s.%s", time.Now().Format("2006-01-02"), ext)
}

func descargar(ctx echo.Context, data []byte, contentType, filename string) error {
	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))
	return ctx.Blob(http.StatusOK, contentType, data)
}
