package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Tipos de equipo reconocidos por el inventario.
const (
	TipoEquipoRadio   = "Equipo"
	TipoEquipoBateria = "Batería"
	TipoEquipoBase    = "Base Cargadora"
)

// Estados del ciclo de vida de un equipo.
const (
	EstadoActivo        = "Activo"
	EstadoInactivo      = "Inactivo"
	EstadoMantenimiento = "Mantenimiento"
	EstadoDadoDeBaja    = "Dado de Baja"
)

// Equipo guarda solo el identificador del destino, no el objeto; los
// joins de lectura viven en el repositorio. El número de inventario y
// el de serie son ambos obligatorios.
type Equipo struct {
	ID            uint64      `json:"id"`
	NOrden        null.String `json:"n_orden"`
	NInventario   string      `json:"n_inventario"`
	Catalogo      null.String `json:"catalogo"`
	NSSerial      string      `json:"ns_serial"`
	Gebipa        null.String `json:"gebipa"`
	TipoEquipo    string      `json:"tipo_equipo"`
	DestinoID     null.Uint64 `json:"destino_id"`
	Observaciones null.String `json:"observaciones"`
	Estado        string      `json:"estado"`
	FechaAlta     time.Time   `json:"fecha_alta"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func TipoEquipoValido(tipo string) bool {
	switch tipo {
	case TipoEquipoRadio, TipoEquipoBateria, TipoEquipoBase:
		return true
	}
	return false
}

func EstadoValido(estado string) bool {
	switch estado {
	case EstadoActivo, EstadoInactivo, EstadoMantenimiento, EstadoDadoDeBaja:
		return true
	}
	return false
}
