package importer

import (
	"context"
	"testing"

	"inventario-pzbp/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type existenciaFake struct {
	seriales    map[string]bool
	inventarios map[string]bool
}

func (f *existenciaFake) ExisteNSSerial(_ context.Context, serial string) (bool, error) {
	return f.seriales[serial], nil
}

func (f *existenciaFake) ExisteNInventario(_ context.Context, inventario string) (bool, error) {
	return f.inventarios[inventario], nil
}

func nuevoFake() *existenciaFake {
	return &existenciaFake{
		seriales:    map[string]bool{"SN-EXISTE": true},
		inventarios: map[string]bool{"INV-EXISTE": true},
	}
}

func TestValidadorLote_CamposRequeridos(t *testing.T) {
	v := NewValidadorLote(nuevoFake())

	err := v.Validar(context.Background(), dto.FilaImportada{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Faltan campos requeridos")

	// los dos identificadores son obligatorios, uno solo no basta
	err = v.Validar(context.Background(), dto.FilaImportada{NSSerial: "SN-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Faltan campos requeridos")

	err = v.Validar(context.Background(), dto.FilaImportada{NInventario: "INV-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Faltan campos requeridos")

	// los espacios no cuentan como valor
	err = v.Validar(context.Background(), dto.FilaImportada{NSSerial: "  ", NInventario: "INV-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Faltan campos requeridos")

	assert.NoError(t, v.Validar(context.Background(), dto.FilaImportada{NSSerial: "SN-1", NInventario: "INV-1"}))
}

func TestValidadorLote_DuplicadoPersistido(t *testing.T) {
	v := NewValidadorLote(nuevoFake())

	err := v.Validar(context.Background(), dto.FilaImportada{NSSerial: "SN-EXISTE", NInventario: "INV-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "N/S duplicado: SN-EXISTE")

	err = v.Validar(context.Background(), dto.FilaImportada{NSSerial: "SN-1", NInventario: "INV-EXISTE"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "N° de inventario duplicado: INV-EXISTE")
}

func TestValidadorLote_DuplicadoEnElLote(t *testing.T) {
	v := NewValidadorLote(nuevoFake())

	require.NoError(t, v.Validar(context.Background(), dto.FilaImportada{NSSerial: "SN-9", NInventario: "INV-9"}))

	err := v.Validar(context.Background(), dto.FilaImportada{NSSerial: "SN-9", NInventario: "INV-10"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "N/S duplicado en el archivo")

	err = v.Validar(context.Background(), dto.FilaImportada{NSSerial: "SN-10", NInventario: "INV-9"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "N° de inventario duplicado en el archivo")

	// la comparación es exacta, igual que los índices UNIQUE
	assert.NoError(t, v.Validar(context.Background(), dto.FilaImportada{NSSerial: "sn-9", NInventario: "inv-9"}))
}

func TestValidadorLote_FilaInvalidaNoRegistraNada(t *testing.T) {
	v := NewValidadorLote(nuevoFake())

	// el serial pasa pero el inventario choca con lo persistido
	err := v.Validar(context.Background(), dto.FilaImportada{NSSerial: "SN-5", NInventario: "INV-EXISTE"})
	require.Error(t, err)

	// el serial de la fila rechazada no debe contar como visto
	assert.NoError(t, v.Validar(context.Background(), dto.FilaImportada{NSSerial: "SN-5", NInventario: "INV-5"}))
}
