package infra

// pdf.go — Printable quote generation using go-pdf/fpdf.
// Renders an A4 presupuesto with:
//   - Business name header, quote number and date
//   - Client block (snapshot fields, not the live client record)
//   - Item table (description, quantity, unit, unit price, line total)
//   - Subtotal / discount / bold total
//   - Optional note
//
// The output file is saved to storagePath/presupuesto_{numero}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Felipe-Salom-Git/plataforma-jm/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerarPresupuestoPDF renders the printable PDF for a presupuesto.
// storagePath is the directory where the PDF will be written (created if needed).
// Returns the absolute path to the generated file.
func GenerarPresupuestoPDF(p *model.Presupuesto, empresaNombre, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("presupuesto_%d.pdf", p.Numero)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30 // total margins = 30mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, empresaNombre, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW*0.6, 8, fmt.Sprintf("Presupuesto N° %d", p.Numero), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW*0.4, 8, p.CreatedAt.Format("02/01/2006"), "", 1, "R", false, 0, "")
	pdf.Ln(2)

	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(4)

	// ── Client block ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Cliente", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 5, p.ClienteNombre, "", 1, "L", false, 0, "")
	for _, line := range []*string{p.ClienteDireccion, p.ClienteTelefono, p.ClienteEmail} {
		if line != nil && *line != "" {
			pdf.CellFormat(contentW, 5, *line, "", 1, "L", false, 0, "")
		}
	}
	if p.ClienteCUIT != nil && *p.ClienteCUIT != "" {
		pdf.CellFormat(contentW, 5, "CUIT: "+*p.ClienteCUIT, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Items table ──────────────────────────────────────────────────────────
	col1 := contentW * 0.44 // description
	col2 := contentW * 0.14 // quantity
	col3 := contentW * 0.10 // unit
	col4 := contentW * 0.16 // unit price
	col5 := contentW * 0.16 // line total

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 7, "Descripción", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Cantidad", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 7, "Unidad", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col4, 7, "P. Unit.", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 7, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range p.Items {
		desc := item.Descripcion
		if len(desc) > 48 {
			desc = desc[:47] + "…"
		}
		pdf.CellFormat(col1, 6, desc, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, item.Cantidad.StringFixed(2), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, item.Unidad, "", 0, "C", false, 0, "")
		pdf.CellFormat(col4, 6, "$"+item.PrecioUnitario.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col5, 6, "$"+item.TotalLinea.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	labelW := col1 + col2 + col3 + col4
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(labelW, 6, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 6, "$"+p.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	if !p.Descuento.IsZero() {
		pdf.CellFormat(labelW, 6, "Descuento:", "", 0, "R", false, 0, "")
		pdf.CellFormat(col5, 6, "-$"+p.Descuento.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(labelW, 8, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 8, "$"+p.Total.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Note ─────────────────────────────────────────────────────────────────
	if p.Nota != nil && *p.Nota != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(contentW, 5, *p.Nota, "", "L", false)
	}

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 4, "Presupuesto válido por 15 días.", "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
