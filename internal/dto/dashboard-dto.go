package dto

import "inventario-pzbp/internal/entities"

type ContadoresDTO struct {
	TotalEquipos  int64 `json:"totalEquipos"`
	TotalRadios   int64 `json:"totalRadios"`
	TotalBaterias int64 `json:"totalBaterias"`
	TotalBases    int64 `json:"totalBases"`
}

type DistribucionDestinoDTO struct {
	ID       uint64 `json:"id"`
	Nombre   string `json:"nombre"`
	Codigo   string `json:"codigo"`
	Color    string `json:"color"`
	Cantidad int64  `json:"cantidad"`
	Radios   int64  `json:"radios"`
	Baterias int64  `json:"baterias"`
	Bases    int64  `json:"bases"`
}

type EstadoCantidadDTO struct {
	Estado   string `json:"estado"`
	Cantidad int64  `json:"cantidad"`
}

type TipoCantidadDTO struct {
	TipoEquipo string `json:"tipo_equipo"`
	Cantidad   int64  `json:"cantidad"`
}

type DashboardDTO struct {
	Contadores             ContadoresDTO                  `json:"contadores"`
	DistribucionPorDestino []DistribucionDestinoDTO       `json:"distribucionPorDestino"`
	PorEstado              []EstadoCantidadDTO            `json:"porEstado"`
	UltimosMovimientos     []entities.HistorialMovimiento `json:"ultimosMovimientos"`
}

type EvolucionPuntoDTO struct {
	Fecha          string `json:"fecha"`
	TipoMovimiento string `json:"tipo_movimiento"`
	Cantidad       int64  `json:"cantidad"`
}
