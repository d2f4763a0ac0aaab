package controllers

import (
	"io"
	"net/http"

	"inventario-pzbp/internal/dto"
	"inventario-pzbp/internal/services"
	apperrors "inventario-pzbp/pkg/errors"
	"inventario-pzbp/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type UploadController struct {
	importService services.ImportServiceInterface
	logger        *zap.Logger
}

func NewUploadController(importService services.ImportServiceInterface, logger *zap.Logger) *UploadController {
	return &UploadController{importService: importService, logger: logger}
}

// Parse recibe el archivo y devuelve la vista previa sin persistir
// nada: columnas, filas enriquecidas, mapeo automático y destinos.
func (c *UploadController) Parse(ctx echo.Context) error {
	data, filename, err := c.leerArchivo(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.importService.VistaPrevia(ctx.Request().Context(), data, filename)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Archivo procesado", http.StatusOK)
}

// ImportarCSV parsea e importa en una sola llamada.
func (c *UploadController) ImportarCSV(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	data, filename, err := c.leerArchivo(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.importService.ImportarCSV(ctx.Request().Context(), data, filename, userID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, res.Message, http.StatusOK)
}

func (c *UploadController) ImportarEquipos(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.ImportarRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Cuerpo de la petición no válido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.importService.Importar(ctx.Request().Context(), payload, userID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, res.Message, http.StatusOK)
}

func (c *UploadController) Plantilla(ctx echo.Context) error {
	return descargar(ctx, c.importService.GenerarPlantilla(),
		"text/csv; charset=utf-8", "plantilla_inventario.csv")
}

func (c *UploadController) leerArchivo(ctx echo.Context) ([]byte, string, error) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, "", apperrors.NewHttpError(http.StatusBadRequest,
			"No se recibió ningún archivo en el campo 'file'", err, nil)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, "", apperrors.NewHttpError(http.StatusBadRequest,
			"No se pudo abrir el archivo recibido", err, nil)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", apperrors.NewHttpError(http.StatusBadRequest,
			"No se pudo leer el archivo recibido", err, nil)
	}

	c.logger.Info("archivo recibido",
		zap.String("archivo", fileHeader.Filename),
		zap.Int64("bytes", fileHeader.Size))
	return data, fileHeader.Filename, nil
}
