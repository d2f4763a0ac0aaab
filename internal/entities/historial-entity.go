package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Tipos de movimiento del libro de historial.
const (
	MovimientoAlta         = "Alta"
	MovimientoTraslado     = "Traslado"
	MovimientoCambioEstado = "Cambio Estado"
	MovimientoBaja         = "Baja"
)

// SinAsignar es el nombre que se denormaliza cuando un movimiento no
// tiene destino de origen o de llegada.
const SinAsignar = "Sin asignar"

// HistorialMovimiento es un registro de auditoría inmutable: solo se
// inserta, nunca se actualiza ni se borra. Los nombres de destino y
// usuario van denormalizados porque los originales pueden cambiar.
type HistorialMovimiento struct {
	ID                  uint64      `json:"id"`
	EquipoID            uint64      `json:"equipo_id"`
	NInventario         string      `json:"n_inventario"`
	NSSerial            string      `json:"ns_serial"`
	DestinoOrigenID     null.Uint64 `json:"destino_origen_id"`
	DestinoOrigenNombre string      `json:"destino_origen_nombre"`
	DestinoNuevoID      null.Uint64 `json:"destino_nuevo_id"`
	DestinoNuevoNombre  string      `json:"destino_nuevo_nombre"`
	UsuarioID           uint64      `json:"usuario_id"`
	UsuarioNombre       string      `json:"usuario_nombre"`
	TipoMovimiento      string      `json:"tipo_movimiento"`
	Observaciones       null.String `json:"observaciones"`
	FechaMovimiento     time.Time   `json:"fecha_movimiento"`
}
