package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	apperrors "inventario-pzbp/pkg/errors"

	"github.com/xuri/excelize/v2"
)

// Fila cruda: etiqueta de columna → valor de celda, siempre texto.
type Fila map[string]string

// ParseFile convierte el archivo en una secuencia ordenada de filas.
// La primera fila es la cabecera; las celdas vacías se conservan como
// cadena vacía para que todas las filas tengan las mismas columnas.
func ParseFile(data []byte, filename string) ([]string, []Fila, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return parseCSV(data)
	case ".xlsx", ".xls":
		return parseExcel(data)
	default:
		return nil, nil, apperrors.ErrFormatoNoSoportado
	}
}

// parseCSV autodetecta el delimitador entre punto y coma, coma y
// tabulador mirando la línea de cabecera.
func parseCSV(data []byte) ([]string, []Fila, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrArchivoInvalido, err)
	}
	if len(records) == 0 {
		return nil, nil, apperrors.ErrArchivoVacio
	}

	columns := make([]string, 0, len(records[0]))
	for _, c := range records[0] {
		columns = append(columns, strings.TrimSpace(c))
	}

	filas := make([]Fila, 0, len(records)-1)
	for _, record := range records[1:] {
		if isEmptyRecord(record) {
			continue
		}
		fila := make(Fila, len(columns))
		for i, col := range columns {
			if i < len(record) {
				fila[col] = strings.TrimSpace(record[i])
			} else {
				fila[col] = ""
			}
		}
		filas = append(filas, fila)
	}

	if len(filas) == 0 {
		return nil, nil, apperrors.ErrArchivoVacio
	}
	return columns, filas, nil
}

// parseExcel lee solo la primera hoja del libro.
func parseExcel(data []byte) ([]string, []Fila, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrArchivoInvalido, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, apperrors.ErrArchivoVacio
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrArchivoInvalido, err)
	}
	if len(rows) == 0 {
		return nil, nil, apperrors.ErrArchivoVacio
	}

	columns := make([]string, 0, len(rows[0]))
	for _, c := range rows[0] {
		columns = append(columns, strings.TrimSpace(c))
	}

	filas := make([]Fila, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isEmptyRecord(row) {
			continue
		}
		fila := make(Fila, len(columns))
		for i, col := range columns {
			if i < len(row) {
				fila[col] = strings.TrimSpace(row[i])
			} else {
				fila[col] = ""
			}
		}
		filas = append(filas, fila)
	}

	if len(filas) == 0 {
		return nil, nil, apperrors.ErrArchivoVacio
	}
	return columns, filas, nil
}

func detectDelimiter(data []byte) rune {
	line := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		line = data[:idx]
	}

	best, bestCount := ',', bytes.Count(line, []byte{','})
	if n := bytes.Count(line, []byte{';'}); n > bestCount {
		best, bestCount = ';', n
	}
	if n := bytes.Count(line, []byte{'\t'}); n > bestCount {
		best = '\t'
	}
	return best
}

func isEmptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
