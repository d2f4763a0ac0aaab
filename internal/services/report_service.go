package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"inventario-pzbp/internal/dto"
	"inventario-pzbp/internal/repositories"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var cabeceraReporte = []string{
	"N° Orden", "N° de Inventario", "Catálogo", "N/S", "GEBIPA",
	"Tipo", "Destino", "Estado", "Observaciones", "Fecha de Alta",
}

type ReportServiceInterface interface {
	ExportarExcel(ctx context.Context, filter dto.EquipoFilter) ([]byte, error)
	ExportarPDF(ctx context.Context, filter dto.EquipoFilter) ([]byte, error)
	ExportarCSV(ctx context.Context, filter dto.EquipoFilter) ([]byte, error)
}

type ReportService struct {
	reportRepo    repositories.ReportRepositoryInterface
	dashboardRepo repositories.DashboardRepositoryInterface
	logger        *zap.Logger
}

func NewReportService(
	reportRepo repositories.ReportRepositoryInterface,
	dashboardRepo repositories.DashboardRepositoryInterface,
	logger *zap.Logger,
) ReportServiceInterface {
	return &ReportService{
		reportRepo:    reportRepo,
		dashboardRepo: dashboardRepo,
		logger:        logger,
	}
}

// ExportarExcel genera el libro con tres vistas: el resumen, el
// inventario completo y una hoja por destino.
func (s *ReportService) ExportarExcel(ctx context.Context, filter dto.EquipoFilter) ([]byte, error) {
	filas, err := s.reportRepo.GetInventario(ctx, filter)
	if err != nil {
		return nil, err
	}
	contadores, err := s.dashboardRepo.GetContadores(ctx)
	if err != nil {
		return nil, err
	}
	distribucion, err := s.dashboardRepo.GetDistribucionPorDestino(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	// Resumen
	resumen := "Resumen"
	f.SetSheetName(f.GetSheetName(0), resumen)
	f.SetSheetRow(resumen, "A1", &[]interface{}{"Inventario PZBP - Resumen"})
	f.SetSheetRow(resumen, "A2", &[]interface{}{"Generado", time.Now().Format("02/01/2006 15:04")})
	f.SetSheetRow(resumen, "A4", &[]interface{}{"Total equipos", contadores.TotalEquipos})
	f.SetSheetRow(resumen, "A5", &[]interface{}{"Equipos", contadores.TotalRadios})
	f.SetSheetRow(resumen, "A6", &[]interface{}{"Baterías", contadores.TotalBaterias})
	f.SetSheetRow(resumen, "A7", &[]interface{}{"Bases Cargadoras", contadores.TotalBases})

	f.SetSheetRow(resumen, "A9", &[]interface{}{"Destino", "Código", "Total", "Equipos", "Baterías", "Bases"})
	for i, d := range distribucion {
		cell := fmt.Sprintf("A%d", 10+i)
		f.SetSheetRow(resumen, cell, &[]interface{}{d.Nombre, d.Codigo, d.Cantidad, d.Radios, d.Baterias, d.Bases})
	}

	// Inventario completo
	completo := "Inventario Completo"
	f.NewSheet(completo)
	escribirHojaInventario(f, completo, filas)

	// Una hoja por destino, en el orden en que aparecen
	porDestino := make(map[string][]repositories.FilaReporte)
	orden := make([]string, 0)
	for _, fila := range filas {
		if _, ok := porDestino[fila.DestinoNombre]; !ok {
			orden = append(orden, fila.DestinoNombre)
		}
		porDestino[fila.DestinoNombre] = append(porDestino[fila.DestinoNombre], fila)
	}
	usados := map[string]bool{resumen: true, completo: true}
	for _, nombre := range orden {
		hoja := nombreHoja(nombre, usados)
		if _, err := f.NewSheet(hoja); err != nil {
			s.logger.Warn("no se pudo crear la hoja del destino",
				zap.String("destino", nombre), zap.String("hoja", hoja), zap.Error(err))
			continue
		}
		escribirHojaInventario(f, hoja, porDestino[nombre])
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	s.logger.Info("reporte Excel generado", zap.Int("filas", len(filas)))
	return buf.Bytes(), nil
}

func escribirHojaInventario(f *excelize.File, hoja string, filas []repositories.FilaReporte) {
	cabecera := make([]interface{}, len(cabeceraReporte))
	for i, c := range cabeceraReporte {
		cabecera[i] = c
	}
	f.SetSheetRow(hoja, "A1", &cabecera)

	for i, fila := range filas {
		cell := fmt.Sprintf("A%d", i+2)
		f.SetSheetRow(hoja, cell, &[]interface{}{
			fila.NOrden, fila.NInventario, fila.Catalogo, fila.NSSerial, fila.Gebipa,
			fila.TipoEquipo, fila.DestinoNombre, fila.Estado, fila.Observaciones,
			fila.FechaAlta.Format("02/01/2006"),
		})
	}
}

// nombreHoja recorta el nombre a los 31 caracteres que admite Excel,
// elimina los caracteres prohibidos y resuelve las colisiones entre
// nombres que quedan iguales tras el recorte. El recorte es por runas:
// cortar por bytes puede partir un carácter multibyte por la mitad.
func nombreHoja(nombre string, usados map[string]bool) string {
	reemplazos := strings.NewReplacer("/", "-", "\\", "-", "?", "", "*", "", "[", "(", "]", ")", ":", "-")
	limpio := []rune(reemplazos.Replace(nombre))
	if len(limpio) > 31 {
		limpio = limpio[:31]
	}

	hoja := string(limpio)
	for n := 2; usados[hoja]; n++ {
		sufijo := []rune(fmt.Sprintf(" (%d)", n))
		base := limpio
		if len(base)+len(sufijo) > 31 {
			base = base[:31-len(sufijo)]
		}
		hoja = string(base) + string(sufijo)
	}
	usados[hoja] = true
	return hoja
}

// ExportarPDF genera el inventario en A4 apaisado: cajas de resumen
// arriba y la tabla paginada debajo.
func (s *ReportService) ExportarPDF(ctx context.Context, filter dto.EquipoFilter) ([]byte, error) {
	filas, err := s.reportRepo.GetInventario(ctx, filter)
	if err != nil {
		return nil, err
	}
	contadores, err := s.dashboardRepo.GetContadores(ctx)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Inventario PZBP"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, tr("Generado el "+time.Now().Format("02/01/2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Cajas de resumen
	cajas := []struct {
		titulo string
		valor  int64
	}{
		{"Total equipos", contadores.TotalEquipos},
		{"Equipos", contadores.TotalRadios},
		{"Baterías", contadores.TotalBaterias},
		{"Bases Cargadoras", contadores.TotalBases},
	}
	anchoCaja := 65.0
	x := pdf.GetX()
	y := pdf.GetY()
	for i, caja := range cajas {
		cx := x + float64(i)*(anchoCaja+5)
		pdf.Rect(cx, y, anchoCaja, 16, "D")
		pdf.SetXY(cx, y+2)
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(anchoCaja, 5, tr(caja.titulo), "", 2, "C", false, 0, "")
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(anchoCaja, 7, fmt.Sprintf("%d", caja.valor), "", 0, "C", false, 0, "")
	}
	pdf.SetXY(x, y+22)

	anchos := []float64{18, 32, 26, 32, 20, 28, 40, 24, 42, 22}
	escribirCabeceraPDF(pdf, tr, anchos)

	pdf.SetFont("Helvetica", "", 8)
	for _, fila := range filas {
		if pdf.GetY() > 180 {
			pdf.AddPage()
			escribirCabeceraPDF(pdf, tr, anchos)
			pdf.SetFont("Helvetica", "", 8)
		}
		celdas := []string{
			fila.NOrden, fila.NInventario, fila.Catalogo, fila.NSSerial, fila.Gebipa,
			fila.TipoEquipo, fila.DestinoNombre, fila.Estado,
			acortar(fila.Observaciones, 34), fila.FechaAlta.Format("02/01/2006"),
		}
		for i, celda := range celdas {
			pdf.CellFormat(anchos[i], 6, tr(celda), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	s.logger.Info("reporte PDF generado", zap.Int("filas", len(filas)))
	return buf.Bytes(), nil
}

func escribirCabeceraPDF(pdf *gofpdf.Fpdf, tr func(string) string, anchos []float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	for i, c := range cabeceraReporte {
		pdf.CellFormat(anchos[i], 7, tr(c), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func acortar(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// ExportarCSV escribe el inventario separado por comas, con BOM para
// que Excel lo abra como UTF-8. Las comas dentro de las observaciones
// se cambian por punto y coma en lugar de entrecomillar.
func (s *ReportService) ExportarCSV(ctx context.Context, filter dto.EquipoFilter) ([]byte, error) {
	filas, err := s.reportRepo.GetInventario(ctx, filter)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("\uFEFF")
	b.WriteString(strings.Join(cabeceraReporte, ","))
	b.WriteString("\n")

	for _, fila := range filas {
		campos := []string{
			fila.NOrden, fila.NInventario, fila.Catalogo, fila.NSSerial, fila.Gebipa,
			fila.TipoEquipo, fila.DestinoNombre, fila.Estado, fila.Observaciones,
			fila.FechaAlta.Format("02/01/2006"),
		}
		for i, campo := range campos {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(strings.ReplaceAll(campo, ",", ";"))
		}
		b.WriteString("\n")
	}

	s.logger.Info("reporte CSV generado", zap.Int("filas", len(filas)))
	return []byte(b.String()), nil
}
