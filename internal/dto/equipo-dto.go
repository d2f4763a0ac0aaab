package dto

import "inventario-pzbp/internal/entities"

// CreateEquipoDTO exige el número de inventario y el de serie; esa
// regla la comprueba el servicio, no el validador de campos, para
// devolver el mismo mensaje que la importación masiva.
type CreateEquipoDTO struct {
	NOrden        string  `json:"n_orden" validate:"max=50"`
	NInventario   string  `json:"n_inventario" validate:"max=50"`
	Catalogo      string  `json:"catalogo" validate:"max=100"`
	NSSerial      string  `json:"ns_serial" validate:"max=100"`
	Gebipa        string  `json:"gebipa" validate:"max=50"`
	TipoEquipo    string  `json:"tipo_equipo"`
	DestinoID     *uint64 `json:"destino_id"`
	Observaciones string  `json:"observaciones"`
}

// UpdateEquipoDTO usa punteros para distinguir "campo ausente" de
// "campo vacío" en el PUT parcial.
type UpdateEquipoDTO struct {
	NOrden        *string `json:"n_orden"`
	NInventario   *string `json:"n_inventario" validate:"omitempty,max=50"`
	Catalogo      *string `json:"catalogo"`
	NSSerial      *string `json:"ns_serial" validate:"omitempty,max=100"`
	Gebipa        *string `json:"gebipa"`
	TipoEquipo    *string `json:"tipo_equipo"`
	DestinoID     *uint64 `json:"destino_id"`
	Observaciones *string `json:"observaciones"`
	Estado        *string `json:"estado"`
}

type TrasladarEquipoDTO struct {
	DestinoID     *uint64 `json:"destino_id"`
	Observaciones string  `json:"observaciones"`
}

// EquipoDTO es la vista de lectura: el equipo más su destino resuelto
// por join, si lo tiene.
type EquipoDTO struct {
	entities.Equipo
	Destino *DestinoConColorDTO `json:"destino,omitempty"`
}

type DestinoConColorDTO struct {
	ID     uint64 `json:"id"`
	Nombre string `json:"nombre"`
	Codigo string `json:"codigo"`
	Color  string `json:"color"`
}

type EquipoListDTO struct {
	Equipos []EquipoDTO `json:"equipos"`
	Total   uint64      `json:"total"`
	Limit   int         `json:"limit"`
	Offset  int         `json:"offset"`
}

type EquipoConHistorialDTO struct {
	Equipo    EquipoDTO                      `json:"equipo"`
	Historial []entities.HistorialMovimiento `json:"historial"`
}

type EquipoFilter struct {
	DestinoID *uint64
	Tipo      string
	Estado    string
	Search    string
	Limit     int
	Offset    int
}

type BulkEquiposDTO struct {
	Equipos []CreateEquipoDTO `json:"equipos" validate:"required,min=1,dive"`
}
