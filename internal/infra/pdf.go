package infra

// pdf.go — Menu costing report generation using go-pdf/fpdf.
// Renders an A4 report with:
//   - Hotel / restaurante / menu header
//   - One row per platillo: costo total, costo administrativo, precio de
//     venta, margen de utilidad and costo porcentual
//   - Totals footer
//
// The output file is saved to storagePath/costos_{menu}_{fecha}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adornodavid/aybcosteo-sub001/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// CostoFila is one platillo line in the cost report.
type CostoFila struct {
	Platillo            string
	CostoTotal          decimal.Decimal
	CostoAdministrativo decimal.Decimal
	PrecioVenta         decimal.Decimal
	Margen              decimal.Decimal
	CostoPorcentual     decimal.Decimal
}

// GenerateReporteCostosPDF renders the costing report for one menu.
// storagePath is the directory where the PDF will be written (created if needed).
// Returns the absolute path to the generated file.
func GenerateReporteCostosPDF(menu *model.Menu, filas []CostoFila, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("costos_%s_%s.pdf", menu.ID, time.Now().Format("2006-01"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	hotel, restaurante := "", ""
	if menu.Restaurante != nil {
		restaurante = menu.Restaurante.Nombre
		if menu.Restaurante.Hotel != nil {
			hotel = menu.Restaurante.Hotel.Nombre
		}
	}

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Reporte de Costos y Margenes", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("%s — %s — Menu: %s", hotel, restaurante, menu.Nombre), "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, time.Now().Format("02/01/2006"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Table header ─────────────────────────────────────────────────────────
	col1 := contentW * 0.32 // platillo
	colN := contentW * 0.17 // numeric columns ×4

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Platillo", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colN, 6, "Costo Admin.", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colN, 6, "Precio Venta", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colN, 6, "Margen", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colN, 6, "Costo %", "B", 1, "R", false, 0, "")

	// ── Rows ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	totalMargen := decimal.Zero
	for _, f := range filas {
		nombre := f.Platillo
		if len(nombre) > 34 {
			nombre = nombre[:33] + "…"
		}
		pdf.CellFormat(col1, 6, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(colN, 6, "$"+f.CostoAdministrativo.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colN, 6, "$"+f.PrecioVenta.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colN, 6, "$"+f.Margen.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colN, 6, f.CostoPorcentual.StringFixed(2)+"%", "", 1, "R", false, 0, "")
		totalMargen = totalMargen.Add(f.Margen)
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1+colN*2, 7, fmt.Sprintf("Platillos: %d", len(filas)), "", 0, "L", false, 0, "")
	pdf.CellFormat(colN*2, 7, "Margen total: $"+totalMargen.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
