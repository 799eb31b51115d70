package infra

import (
	"bytes"
	"testing"

	"github.com/OKANLA95/Keziah-Shop/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInvoice() *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		SaleResponse: dto.SaleResponse{
			ID:            "9a7ff51e-0000-0000-0000-000000000000",
			InvoiceNumber: "INV-20260801-042",
			ProductName:   "Rice 5kg",
			UnitPrice:     decimal.NewFromInt(20),
			Quantity:      3,
			Amount:        decimal.NewFromInt(60),
			CustomerName:  "Ama Mensah",
			CustomerPhone: "0244000000",
			Salesperson:   "Kofi",
			Status:        "confirmed",
			CreatedAt:     "2026-08-01 10:30:00",
		},
		ShopName:     "Keziah Shop",
		ShopLocation: "Accra Central",
	}
}

func TestRenderInvoicePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderInvoicePDF(&buf, sampleInvoice()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 500)
}

func TestWriteInvoicePDFCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteInvoicePDF(sampleInvoice(), dir)
	require.NoError(t, err)
	assert.Contains(t, path, "invoice_9a7ff51e")
	assert.FileExists(t, path)
}

func TestRenderReportPDF(t *testing.T) {
	rows := []dto.ReportRow{
		{Date: "2026-08-01", Product: "Rice 5kg", Quantity: 3, UnitPrice: decimal.NewFromInt(20), Amount: decimal.NewFromInt(60), Salesperson: "Kofi"},
	}
	var buf bytes.Buffer
	require.NoError(t, RenderReportPDF(&buf, rows, decimal.NewFromInt(60)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
