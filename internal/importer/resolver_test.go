package importer

import (
	"testing"

	"inventario-pzbp/internal/dto"
	"inventario-pzbp/internal/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func destinosDePrueba() []entities.Destino {
	return []entities.Destino{
		{ID: 1, Nombre: "PZBP Central", Codigo: "PZBP", Color: "#1976d2"},
		{ID: 2, Nombre: "Móvil 1", Codigo: "MOV1", Color: "#388e3c"},
	}
}

func TestResolver_ExactoSinDistinguirMayusculas(t *testing.T) {
	r := NewResolver(destinosDePrueba())

	for _, etiqueta := range []string{"pzbp", "PZBP", "Pzbp", "PZBP Central", "pzbp central", "  PZBP  "} {
		d, ok := r.Resolve(etiqueta)
		require.True(t, ok, "etiqueta %q", etiqueta)
		assert.Equal(t, uint64(1), d.ID)
	}
}

func TestResolver_SinMatchParcial(t *testing.T) {
	r := NewResolver(destinosDePrueba())

	_, ok := r.Resolve("PZBP Centr")
	assert.False(t, ok, "no hay matching parcial ni difuso")

	_, ok = r.Resolve("Almacén")
	assert.False(t, ok)
}

func TestResolver_Enrich(t *testing.T) {
	r := NewResolver(destinosDePrueba())

	filas := []dto.FilaImportada{
		{NInventario: "INV-001", Destino: "mov1"},
		{NInventario: "INV-002", Destino: "Almacén"},
		{NInventario: "INV-003"},
	}

	r.Enrich(filas)

	require.NotNil(t, filas[0].DestinoID)
	assert.Equal(t, uint64(2), *filas[0].DestinoID)
	assert.Equal(t, "Móvil 1", filas[0].DestinoNombre)
	assert.Equal(t, "#388e3c", filas[0].DestinoColor)

	assert.Nil(t, filas[1].DestinoID)
	assert.Equal(t, NoEncontrado, filas[1].DestinoNombre)

	assert.Nil(t, filas[2].DestinoID)
	assert.Empty(t, filas[2].DestinoNombre, "sin etiqueta no se marca nada")
}
