package errors

import "fmt"

var (
	// JWT y tokens
	ErrInvalidSigningMethod = fmt.Errorf("método de firma del token no válido")
	ErrInvalidToken         = fmt.Errorf("token no válido")
	ErrTokenExpired         = fmt.Errorf("el token ha expirado")
	ErrTokenIsNotAccess     = fmt.Errorf("se esperaba un token de acceso")

	// Autorización
	ErrEmptyAuthHeader    = fmt.Errorf("token de acceso requerido")
	ErrInvalidAuthHeader  = fmt.Errorf("formato de cabecera de autorización no válido")
	ErrInvalidCredentials = fmt.Errorf("credenciales inválidas")
	ErrSessionExpired     = fmt.Errorf("sesión expirada o cerrada")
	ErrForbidden          = fmt.Errorf("acceso denegado: rol no autorizado")

	// Contexto
	ErrUserNotFoundInContext = fmt.Errorf("usuario no encontrado en el contexto de la petición")

	// Generales
	ErrNotFound   = fmt.Errorf("registro no encontrado")
	ErrBadRequest = fmt.Errorf("petición no válida")

	// Carga masiva: errores a nivel de archivo. Abortan la importación
	// completa antes de procesar fila alguna.
	ErrFormatoNoSoportado = fmt.Errorf("tipo de archivo no permitido: solo CSV, XLSX o XLS")
	ErrArchivoInvalido    = fmt.Errorf("error al parsear el archivo: verifica que el formato sea correcto")
	ErrArchivoVacio       = fmt.Errorf("el archivo está vacío o no tiene datos")
)

// HttpError transporta el código HTTP junto con el mensaje para el
// cliente y la causa interna para el log.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}
