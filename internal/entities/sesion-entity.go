package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Sesion se crea en el login y se invalida en el logout o al expirar.
type Sesion struct {
	ID        string      `json:"id"`
	UsuarioID uint64      `json:"usuario_id"`
	Token     string      `json:"-"`
	IPAddress null.String `json:"ip_address"`
	UserAgent null.String `json:"user_agent"`
	ExpiresAt time.Time   `json:"expires_at"`
	CreatedAt time.Time   `json:"created_at"`
}
