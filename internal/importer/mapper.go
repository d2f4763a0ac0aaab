package importer

import (
	"strings"

	"inventario-pzbp/internal/dto"
	"inventario-pzbp/internal/entities"
)

// Tabla declarativa de sinónimos: campo de la entidad → etiquetas de
// columna reconocidas. El orden de los campos fija el orden de
// evaluación, así el auto-mapeo es determinista.
var camposEntidad = []struct {
	Campo     string
	Sinonimos []string
}{
	{"n_orden", []string{"n_orden", "n° orden", "orden", "no orden"}},
	{"n_inventario", []string{"n_inventario", "n° de inventario", "inventario", "numero inventario", "nro inventario"}},
	{"catalogo", []string{"catalogo", "catálogo", "cat", "referencia"}},
	{"ns_serial", []string{"ns_serial", "ns", "n/s", "serial", "numero serie", "nro serie"}},
	{"gebipa", []string{"gebipa", "ge bipa"}},
	{"tipo_equipo", []string{"tipo_equipo", "tipo", "tipo equipo", "clase"}},
	{"destino", []string{"destino", "ubicacion", "ubicación", "lugar", "sitio"}},
	{"observaciones", []string{"observaciones", "obs", "observacion", "notas"}},
	{"estado", []string{"estado", "status", "situacion", "situación"}},
}

// Etiquetas de tipo de equipo aceptadas en los archivos de carga.
var tipoMap = map[string]string{
	"EQUIPO":         entities.TipoEquipoRadio,
	"RADIO":          entities.TipoEquipoRadio,
	"RADIOS":         entities.TipoEquipoRadio,
	"BATERÍA":        entities.TipoEquipoBateria,
	"BATERIA":        entities.TipoEquipoBateria,
	"BATERÍAS":       entities.TipoEquipoBateria,
	"BASE":           entities.TipoEquipoBase,
	"BASE CARGADORA": entities.TipoEquipoBase,
	"CARGADOR":       entities.TipoEquipoBase,
}

// AutoMap adivina qué columna alimenta cada campo. Es una heurística
// de mejor esfuerzo: nunca falla, los campos sin columna quedan fuera
// del mapa y el humano puede completar el mapeo a mano.
func AutoMap(columns []string) map[string]string {
	mapping := make(map[string]string)

	for _, campo := range camposEntidad {
		for _, col := range columns {
			normalizada := normalizar(col)
			if normalizada == "" {
				continue
			}
			for _, sinonimo := range campo.Sinonimos {
				s := normalizar(sinonimo)
				if strings.Contains(normalizada, s) || strings.Contains(s, normalizada) {
					mapping[campo.Campo] = col
					break
				}
			}
			if _, ok := mapping[campo.Campo]; ok {
				// gana la primera columna que casa
				break
			}
		}
	}

	return mapping
}

// MergeMapping combina el mapeo automático con el manual; el manual
// siempre tiene prioridad.
func MergeMapping(auto, manual map[string]string) map[string]string {
	merged := make(map[string]string, len(auto)+len(manual))
	for campo, col := range auto {
		merged[campo] = col
	}
	for campo, col := range manual {
		if col != "" {
			merged[campo] = col
		}
	}
	return merged
}

// ApplyMapping proyecta las filas crudas sobre la estructura tipada.
func ApplyMapping(filas []Fila, mapping map[string]string) []dto.FilaImportada {
	out := make([]dto.FilaImportada, 0, len(filas))

	for idx, fila := range filas {
		get := func(campo string) string {
			col, ok := mapping[campo]
			if !ok {
				return ""
			}
			return strings.TrimSpace(fila[col])
		}

		out = append(out, dto.FilaImportada{
			RowIndex:      idx + 1,
			NOrden:        get("n_orden"),
			NInventario:   get("n_inventario"),
			Catalogo:      get("catalogo"),
			NSSerial:      get("ns_serial"),
			Gebipa:        get("gebipa"),
			TipoEquipo:    get("tipo_equipo"),
			Destino:       get("destino"),
			Observaciones: get("observaciones"),
			Estado:        get("estado"),
		})
	}

	return out
}

// NormalizarTipo traduce la etiqueta libre del archivo al enum. Lo que
// no se reconoce cae en 'Equipo', igual que una celda vacía.
func NormalizarTipo(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return entities.TipoEquipoRadio
	}
	if tipo, ok := tipoMap[strings.ToUpper(raw)]; ok {
		return tipo
	}
	if entities.TipoEquipoValido(raw) {
		return raw
	}
	return entities.TipoEquipoRadio
}

// NormalizarEstado acepta el enum tal cual; cualquier otra cosa es
// 'Activo', el valor por defecto del alta.
func NormalizarEstado(raw string) string {
	raw = strings.TrimSpace(raw)
	if entities.EstadoValido(raw) {
		return raw
	}
	return entities.EstadoActivo
}

var normalizerReplacer = strings.NewReplacer(" ", "", "_", "", ".", "", "-", "")

func normalizar(s string) string {
	return normalizerReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
}
