package services

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNombreHoja_CaracteresProhibidos(t *testing.T) {
	usados := map[string]bool{}
	assert.Equal(t, "Móvil 1 - Norte", nombreHoja("Móvil 1 / Norte", usados))
	assert.Equal(t, "Base (2)", nombreHoja("Base [2]", usados))
	assert.Equal(t, "Turno- mañana", nombreHoja("Turno:* mañana?", usados))
}

func TestNombreHoja_RecortaPorRunas(t *testing.T) {
	// 30 caracteres y una "ñ" a caballo del límite: el recorte por
	// bytes dejaría la hoja con UTF-8 inválido.
	nombre := "Destacamento de Comunicaciónñññ Sur"

	hoja := nombreHoja(nombre, map[string]bool{})
	assert.True(t, utf8.ValidString(hoja))
	assert.LessOrEqual(t, utf8.RuneCountInString(hoja), 31)
	assert.Equal(t, "Destacamento de Comunicaciónñññ", hoja)
}

func TestNombreHoja_ColisionesTrasElRecorte(t *testing.T) {
	usados := map[string]bool{}

	// dos destinos distintos que truncan al mismo nombre de hoja
	a := nombreHoja("Destacamento de Comunicaciones Zona Norte", usados)
	b := nombreHoja("Destacamento de Comunicaciones Zona Sur", usados)

	assert.NotEqual(t, a, b)
	assert.Equal(t, "Destacamento de Comunicaciones ", a)
	assert.Equal(t, "Destacamento de Comunicacio (2)", b)
	assert.LessOrEqual(t, utf8.RuneCountInString(b), 31)

	c := nombreHoja("Destacamento de Comunicaciones Zona Este", usados)
	assert.Equal(t, "Destacamento de Comunicacio (3)", c)
}

func TestNombreHoja_NoChocaConLasHojasFijas(t *testing.T) {
	usados := map[string]bool{"Resumen": true, "Inventario Completo": true}

	assert.Equal(t, "Resumen (2)", nombreHoja("Resumen", usados))
	assert.Equal(t, "Inventario Completo (2)", nombreHoja("Inventario Completo", usados))
}
