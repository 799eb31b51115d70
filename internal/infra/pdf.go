package infra

// pdf.go: invoice and report rendering using go-pdf/fpdf.
// Both renderers are pure projections of already-loaded data: no state change,
// safe to re-run. Amounts are printed with a "GHS" prefix (fpdf core fonts
// cannot encode the cedi sign).

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/OKANLA95/Keziah-Shop/internal/dto"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// RenderInvoicePDF writes an A5 invoice for a sale to w.
func RenderInvoicePDF(w io.Writer, inv *dto.InvoiceResponse) error {
	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	shop := inv.ShopName
	if shop == "" {
		shop = "Keziah Shop"
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, shop, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	if inv.ShopLocation != "" {
		pdf.CellFormat(contentW, 5, inv.ShopLocation, "", 1, "C", false, 0, "")
	}
	if inv.ShopContact != "" {
		pdf.CellFormat(contentW, 5, inv.ShopContact, "", 1, "C", false, 0, "")
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, "INVOICE", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	// ── Invoice fields ───────────────────────────────────────────────────────
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW*0.35, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW*0.65, 6, value, "", 1, "L", false, 0, "")
	}

	row("Invoice No.", inv.InvoiceNumber)
	row("Date", inv.CreatedAt)
	row("Customer", inv.CustomerName)
	row("Phone", inv.CustomerPhone)
	row("Product", inv.ProductName)
	row("Quantity", fmt.Sprintf("%d", inv.Quantity))
	row("Unit Price", "GHS "+inv.UnitPrice.StringFixed(2))
	row("Sold By", inv.Salesperson)
	row("Status", inv.Status)

	pdf.Ln(3)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW*0.5, 8, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.5, 8, "GHS "+inv.Amount.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(5)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Thank you for your business!", "", 1, "C", false, 0, "")

	return pdf.Output(w)
}

// WriteInvoicePDF renders the invoice into storageDir and returns the absolute
// path to the generated file. Used by the async invoice worker.
func WriteInvoicePDF(inv *dto.InvoiceResponse, storageDir string) (string, error) {
	if err := os.MkdirAll(storageDir, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	path := filepath.Join(storageDir, fmt.Sprintf("invoice_%s.pdf", inv.ID))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("pdf: create file: %w", err)
	}
	defer f.Close()

	if err := RenderInvoicePDF(f, inv); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("pdf: render invoice: %w", err)
	}
	return path, nil
}

// RenderReportPDF writes a sales report table to w.
func RenderReportPDF(w io.Writer, rows []dto.ReportRow, total decimal.Decimal) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Sales Report", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	cols := []struct {
		label string
		w     float64
		align string
	}{
		{"Date", 0.16, "L"},
		{"Product", 0.28, "L"},
		{"Qty", 0.08, "C"},
		{"Price (GHS)", 0.14, "R"},
		{"Amount (GHS)", 0.15, "R"},
		{"Salesperson", 0.19, "L"},
	}

	pdf.SetFont("Helvetica", "B", 8)
	for _, c := range cols {
		pdf.CellFormat(contentW*c.w, 6, c.label, "B", 0, c.align, false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, r := range rows {
		name := r.Product
		if len(name) > 30 {
			name = name[:29] + "…"
		}
		cells := []string{
			r.Date,
			name,
			fmt.Sprintf("%d", r.Quantity),
			r.UnitPrice.StringFixed(2),
			r.Amount.StringFixed(2),
			r.Salesperson,
		}
		for i, c := range cols {
			pdf.CellFormat(contentW*c.w, 5, cells[i], "", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(2)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW*0.66, 7, "Total Sales:", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.15, 7, "GHS "+total.StringFixed(2), "", 1, "R", false, 0, "")

	return pdf.Output(w)
}
