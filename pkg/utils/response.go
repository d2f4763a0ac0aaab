package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "inventario-pzbp/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{
		Status:  true,
		Body:    body,
		Message: message,
	})
}

// ErrorResponse traduce el error a una respuesta JSON. Los HttpError
// llevan su propio código; los errores de validación devuelven 400;
// cualquier otra cosa es un 500 que se registra completo en el log.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
			)
		}

		response := map[string]interface{}{
			"status":  false,
			"message": httpErr.Message,
		}
		if httpErr.Details != nil {
			response["body"] = httpErr.Details
		}
		return c.JSON(httpErr.Code, response)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("el campo '%s' no pasó la regla '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  false,
			"message": "Error de validación: " + strings.Join(msgs, "; "),
		})
	}

	// errors.Is para que los centinelas envueltos también casen.
	for sentinel, code := range sentinelCodes {
		if errors.Is(err, sentinel) {
			return c.JSON(code, map[string]interface{}{
				"status":  false,
				"message": err.Error(),
			})
		}
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"status":  false,
		"message": "Error interno del servidor",
	})
}

var sentinelCodes = map[error]int{
	apperrors.ErrNotFound:            http.StatusNotFound,
	apperrors.ErrBadRequest:          http.StatusBadRequest,
	apperrors.ErrInvalidCredentials:  http.StatusUnauthorized,
	apperrors.ErrEmptyAuthHeader:     http.StatusUnauthorized,
	apperrors.ErrInvalidAuthHeader:   http.StatusUnauthorized,
	apperrors.ErrInvalidToken:        http.StatusUnauthorized,
	apperrors.ErrTokenExpired:        http.StatusUnauthorized,
	apperrors.ErrTokenIsNotAccess:    http.StatusUnauthorized,
	apperrors.ErrSessionExpired:      http.StatusUnauthorized,
	apperrors.ErrForbidden:           http.StatusForbidden,
	apperrors.ErrFormatoNoSoportado:  http.StatusBadRequest,
	apperrors.ErrArchivoInvalido:     http.StatusBadRequest,
	apperrors.ErrArchivoVacio:        http.StatusBadRequest,
}
