package importer

import (
	"testing"

	"inventario-pzbp/internal/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoMap_CabecerasTipicas(t *testing.T) {
	columns := []string{"N° Orden", "N° de Inventario", "Catálogo", "N/S", "GEBIPA", "Tipo", "Destino", "Observaciones", "Estado"}

	mapping := AutoMap(columns)

	assert.Equal(t, "N° de Inventario", mapping["n_inventario"])
	assert.Equal(t, "N/S", mapping["ns_serial"])
	assert.Equal(t, "Destino", mapping["destino"])
	assert.Equal(t, "Tipo", mapping["tipo_equipo"])
	assert.Equal(t, "Estado", mapping["estado"])
}

func TestAutoMap_NormalizaSeparadores(t *testing.T) {
	mapping := AutoMap([]string{"numero_inventario", "NUMERO SERIE", "ubicacion"})

	assert.Equal(t, "numero_inventario", mapping["n_inventario"])
	assert.Equal(t, "NUMERO SERIE", mapping["ns_serial"])
	assert.Equal(t, "ubicacion", mapping["destino"])
}

func TestAutoMap_ColumnasSinSinonimoQuedanFuera(t *testing.T) {
	mapping := AutoMap([]string{"columna misteriosa", "otra cosa"})
	assert.Empty(t, mapping)
}

func TestAutoMap_GanaLaPrimeraColumna(t *testing.T) {
	mapping := AutoMap([]string{"inventario viejo", "inventario nuevo"})
	assert.Equal(t, "inventario viejo", mapping["n_inventario"])
}

func TestMergeMapping_ManualTienePrioridad(t *testing.T) {
	auto := map[string]string{"n_inventario": "col A", "destino": "col B"}
	manual := map[string]string{"n_inventario": "col C", "estado": "col D", "ns_serial": ""}

	merged := MergeMapping(auto, manual)

	assert.Equal(t, "col C", merged["n_inventario"])
	assert.Equal(t, "col B", merged["destino"])
	assert.Equal(t, "col D", merged["estado"])
	_, ok := merged["ns_serial"]
	assert.False(t, ok, "una entrada manual vacía no debe pisar nada")
}

func TestApplyMapping(t *testing.T) {
	filas := []Fila{
		{"Inv": "INV-001", "Serie": " SN-100 ", "Dest": "PZBP Central"},
		{"Inv": "INV-002", "Serie": "", "Dest": ""},
	}
	mapping := map[string]string{
		"n_inventario": "Inv",
		"ns_serial":    "Serie",
		"destino":      "Dest",
	}

	out := ApplyMapping(filas, mapping)
	require.Len(t, out, 2)

	assert.Equal(t, 1, out[0].RowIndex)
	assert.Equal(t, "INV-001", out[0].NInventario)
	assert.Equal(t, "SN-100", out[0].NSSerial, "los valores se recortan")
	assert.Equal(t, "PZBP Central", out[0].Destino)
	assert.Equal(t, 2, out[1].RowIndex)
	assert.Empty(t, out[1].NSSerial)
}

func TestNormalizarTipo(t *testing.T) {
	assert.Equal(t, entities.TipoEquipoRadio, NormalizarTipo("RADIO"))
	assert.Equal(t, entities.TipoEquipoRadio, NormalizarTipo("equipo"))
	assert.Equal(t, entities.TipoEquipoBateria, NormalizarTipo("bateria"))
	assert.Equal(t, entities.TipoEquipoBase, NormalizarTipo("Base Cargadora"))
	assert.Equal(t, entities.TipoEquipoBateria, NormalizarTipo("Batería"), "el enum pasa tal cual")
	assert.Equal(t, entities.TipoEquipoRadio, NormalizarTipo(""))
	assert.Equal(t, entities.TipoEquipoRadio, NormalizarTipo("desconocido"))
}

func TestNormalizarEstado(t *testing.T) {
	assert.Equal(t, entities.EstadoMantenimiento, NormalizarEstado("Mantenimiento"))
	assert.Equal(t, entities.EstadoActivo, NormalizarEstado(""))
	assert.Equal(t, entities.EstadoActivo, NormalizarEstado("lo que sea"))
}
