package importer

import (
	"bytes"
	"testing"

	apperrors "inventario-pzbp/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseFile_CSVPuntoYComa(t *testing.T) {
	data := []byte("N° de Inventario;N/S;Destino\nINV-001;SN-100;PZBP Central\nINV-002;SN-101;Móvil 1\n")

	columns, filas, err := ParseFile(data, "equipos.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"N° de Inventario", "N/S", "Destino"}, columns)
	require.Len(t, filas, 2)
	assert.Equal(t, "INV-001", filas[0]["N° de Inventario"])
	assert.Equal(t, "Móvil 1", filas[1]["Destino"])
}

func TestParseFile_CSVComa(t *testing.T) {
	data := []byte("inventario,serial\nINV-001,SN-100\n")

	columns, filas, err := ParseFile(data, "equipos.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"inventario", "serial"}, columns)
	require.Len(t, filas, 1)
	assert.Equal(t, "SN-100", filas[0]["serial"])
}

func TestParseFile_CSVTabulador(t *testing.T) {
	data := []byte("inventario\tserial\nINV-001\tSN-100\n")

	_, filas, err := ParseFile(data, "equipos.csv")
	require.NoError(t, err)
	require.Len(t, filas, 1)
	assert.Equal(t, "INV-001", filas[0]["inventario"])
}

func TestParseFile_FilasCortasSeRellenan(t *testing.T) {
	data := []byte("a;b;c\n1;2\n")

	columns, filas, err := ParseFile(data, "equipos.csv")
	require.NoError(t, err)
	require.Len(t, filas, 1)
	assert.Len(t, columns, 3)
	assert.Equal(t, "", filas[0]["c"])
}

func TestParseFile_IgnoraFilasVacias(t *testing.T) {
	data := []byte("a;b\n1;2\n;\n\n3;4\n")

	_, filas, err := ParseFile(data, "equipos.csv")
	require.NoError(t, err)
	assert.Len(t, filas, 2)
}

func TestParseFile_FormatoNoSoportado(t *testing.T) {
	_, _, err := ParseFile([]byte("hola"), "equipos.pdf")
	assert.ErrorIs(t, err, apperrors.ErrFormatoNoSoportado)
}

func TestParseFile_ArchivoVacio(t *testing.T) {
	_, _, err := ParseFile([]byte(""), "equipos.csv")
	assert.ErrorIs(t, err, apperrors.ErrArchivoVacio)

	_, _, err = ParseFile([]byte("a;b\n"), "equipos.csv")
	assert.ErrorIs(t, err, apperrors.ErrArchivoVacio)
}

func TestParseFile_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Inventario", "N/S"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"INV-001", "SN-100"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	columns, filas, err := ParseFile(buf.Bytes(), "equipos.xlsx")
	require.NoError(t, err)

	assert.Equal(t, []string{"Inventario", "N/S"}, columns)
	require.Len(t, filas, 1)
	assert.Equal(t, "SN-100", filas[0]["N/S"])
}

func TestParseFile_XLSXCorrupto(t *testing.T) {
	_, _, err := ParseFile([]byte("esto no es un zip"), "equipos.xlsx")
	assert.ErrorIs(t, err, apperrors.ErrArchivoInvalido)
}
