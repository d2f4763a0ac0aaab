package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Destino es una unidad organizativa que puede tener equipos asignados.
type Destino struct {
	ID          uint64      `json:"id"`
	Nombre      string      `json:"nombre"`
	Codigo      string      `json:"codigo"`
	Descripcion null.String `json:"descripcion"`
	Color       string      `json:"color"`
	Activo      bool        `json:"activo"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
