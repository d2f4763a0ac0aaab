package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Roles del sistema. El control de acceso se reduce a estos dos.
const (
	RolAdmin      = "admin"
	RolObservador = "observador"
)

type Usuario struct {
	ID             uint64      `json:"id"`
	Username       string      `json:"username"`
	PasswordHash   string      `json:"-"`
	Email          string      `json:"email"`
	Rol            string      `json:"rol"`
	NombreCompleto null.String `json:"nombre_completo"`
	Activo         bool        `json:"activo"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// NombreParaHistorial devuelve el nombre que se denormaliza en el
// historial: nombre completo si existe, si no el username.
func (u *Usuario) NombreParaHistorial() string {
	if u.NombreCompleto.Valid && u.NombreCompleto.String != "" {
		return u.NombreCompleto.String
	}
	return u.Username
}
