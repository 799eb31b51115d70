package handler

import (
	"fmt"
	"net/http"

	"github.com/OKANLA95/Keziah-Shop/internal/service"

	"github.com/gin-gonic/gin"
)

// InvoiceHandler serves the sale lifecycle: invoice view, confirm, cancel,
// printable PDF.
type InvoiceHandler struct {
	invoices service.InvoiceService
}

func NewInvoiceHandler(invoices service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	inv, err := h.invoices.GetInvoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (h *InvoiceHandler) Confirm(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.invoices.Confirm(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InvoiceHandler) Cancel(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.invoices.Cancel(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PDF streams the rendered invoice for printing.
func (h *InvoiceHandler) PDF(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=invoice_%s.pdf", id))
	if err := h.invoices.RenderPDF(c.Request.Context(), id, c.Writer); err != nil {
		// Headers may already be out; log path is covered by the middleware.
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
