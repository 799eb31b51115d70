package handler

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/OKANLA95/Keziah-Shop/internal/dto"
	"github.com/OKANLA95/Keziah-Shop/internal/service"
	"github.com/OKANLA95/Keziah-Shop/internal/watch"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the aggregated sales views and their exports.
type ReportHandler struct {
	reports service.ReportService
	broker  *watch.Broker
}

func NewReportHandler(reports service.ReportService, broker *watch.Broker) *ReportHandler {
	return &ReportHandler{reports: reports, broker: broker}
}

func (h *ReportHandler) Summary(c *gin.Context) {
	var filter dto.ReportFilter
	if !bindQuery(c, &filter) {
		return
	}
	summary, err := h.reports.LoadSummary(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *ReportHandler) ExportCSV(c *gin.Context) {
	var filter dto.ReportFilter
	if !bindQuery(c, &filter) {
		return
	}
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=sales_report_%s.csv", time.Now().Format("20060102")))
	if err := h.reports.WriteCSV(c.Request.Context(), filter, c.Writer); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *ReportHandler) ExportPDF(c *gin.Context) {
	var filter dto.ReportFilter
	if !bindQuery(c, &filter) {
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=sales_report_%s.pdf", time.Now().Format("20060102")))
	if err := h.reports.WritePDF(c.Request.Context(), filter, c.Writer); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Stream pushes a fresh summary over SSE whenever a sale changes. The first
// event is the current summary; the stream ends when the client disconnects.
func (h *ReportHandler) Stream(c *gin.Context) {
	var filter dto.ReportFilter
	if !bindQuery(c, &filter) {
		return
	}

	sub, err := h.broker.Subscribe(c.Request.Context(), service.CollectionSales, h.reports.Snapshot(filter))
	if err != nil {
		respondError(c, err)
		return
	}
	defer sub.Cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(_ io.Writer) bool {
		snap, ok := <-sub.C
		if !ok {
			return false
		}
		c.SSEvent("summary", snap)
		return true
	})
}
