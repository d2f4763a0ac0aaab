package dto

import (
	"time"

	"inventario-pzbp/internal/entities"
)

type HistorialFilter struct {
	EquipoID    *uint64
	DestinoID   *uint64
	Tipo        string
	FechaInicio *time.Time
	FechaFin    *time.Time
	Limit       int
	Offset      int
}

type HistorialListDTO struct {
	Historial []entities.HistorialMovimiento `json:"historial"`
	Total     uint64                         `json:"total"`
	Limit     int                            `json:"limit"`
	Offset    int                            `json:"offset"`
}

type ConteoPorGrupoDTO struct {
	Grupo    string `json:"grupo"`
	Cantidad int64  `json:"cantidad"`
}

type EstadisticasHistorialDTO struct {
	Estadisticas []ConteoPorGrupoDTO `json:"estadisticas"`
	PorUsuario   []ConteoPorGrupoDTO `json:"porUsuario"`
}
