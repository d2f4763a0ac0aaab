package importer

import (
	"strings"

	"inventario-pzbp/internal/dto"
	"inventario-pzbp/internal/entities"
)

// NoEncontrado es la marca visible en la vista previa cuando la
// etiqueta de destino no casa con ningún destino conocido.
const NoEncontrado = "No encontrado"

// Resolver casa etiquetas libres de destino contra los destinos
// activos. El match es exacto (nombre o código, sin distinguir
// mayúsculas): aquí importa más acertar la identidad que el recall,
// por eso no hay matching difuso como en el mapeo de columnas.
type Resolver struct {
	porClave map[string]entities.Destino
}

func NewResolver(destinos []entities.Destino) *Resolver {
	porClave := make(map[string]entities.Destino, len(destinos)*2)
	for _, d := range destinos {
		porClave[strings.ToLower(d.Nombre)] = d
		porClave[strings.ToLower(d.Codigo)] = d
	}
	return &Resolver{porClave: porClave}
}

func (r *Resolver) Resolve(etiqueta string) (entities.Destino, bool) {
	d, ok := r.porClave[strings.ToLower(strings.TrimSpace(etiqueta))]
	return d, ok
}

// Enrich anota cada fila con el destino resuelto. Una etiqueta sin
// resolver no invalida la fila: queda marcada y sigue adelante sin
// destino asignado.
func (r *Resolver) Enrich(filas []dto.FilaImportada) {
	for i := range filas {
		if filas[i].Destino == "" {
			continue
		}
		if d, ok := r.Resolve(filas[i].Destino); ok {
			id := d.ID
			filas[i].DestinoID = &id
			filas[i].DestinoNombre = d.Nombre
			filas[i].DestinoColor = d.Color
		} else {
			filas[i].DestinoID = nil
			filas[i].DestinoNombre = NoEncontrado
		}
	}
}
