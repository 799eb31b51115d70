package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/OKANLA95/Keziah-Shop/internal/dto"
	"github.com/OKANLA95/Keziah-Shop/internal/infra"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// InvoicePDFPayload identifies the sale whose invoice should be rendered.
type InvoicePDFPayload struct {
	SaleID string `json:"sale_id"`
}

// InvoiceLoader fetches the printable invoice projection for a sale.
// A function type rather than a service import keeps the dependency pointing
// from the composition root into the pool.
type InvoiceLoader func(ctx context.Context, saleID uuid.UUID) (*dto.InvoiceResponse, error)

// InvoicePDFWorker renders the invoice PDF to disk and, when the sale carries
// a customer email, chains an email job with the PDF attached.
type InvoicePDFWorker struct {
	load       InvoiceLoader
	dispatcher *Dispatcher
	storageDir string
}

func NewInvoicePDFWorker(load InvoiceLoader, d *Dispatcher, storageDir string) *InvoicePDFWorker {
	return &InvoicePDFWorker{load: load, dispatcher: d, storageDir: storageDir}
}

func (w *InvoicePDFWorker) Handle(ctx context.Context, payload json.RawMessage) error {
	var p InvoicePDFPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("invoice worker: decode payload: %w", err)
	}
	id, err := uuid.Parse(p.SaleID)
	if err != nil {
		return fmt.Errorf("invoice worker: bad sale id %q: %w", p.SaleID, err)
	}

	inv, err := w.load(ctx, id)
	if err != nil {
		return fmt.Errorf("invoice worker: load sale %s: %w", id, err)
	}

	path, err := infra.WriteInvoicePDF(inv, w.storageDir)
	if err != nil {
		return err
	}
	log.Info().Str("sale_id", p.SaleID).Str("path", path).Msg("invoice PDF generated")

	if inv.CustomerEmail != nil && *inv.CustomerEmail != "" {
		return w.dispatcher.EnqueueEmail(ctx, EmailPayload{
			To:             *inv.CustomerEmail,
			Subject:        "Your invoice " + inv.InvoiceNumber,
			Body:           fmt.Sprintf("Dear %s,\n\nPlease find attached invoice %s for GHS %s.\n\nThank you for your business!", inv.CustomerName, inv.InvoiceNumber, inv.Amount.StringFixed(2)),
			AttachmentPath: path,
		})
	}
	return nil
}
