package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/OKANLA95/Keziah-Shop/internal/apierror"
	"github.com/OKANLA95/Keziah-Shop/internal/dto"
	"github.com/OKANLA95/Keziah-Shop/internal/infra"
	"github.com/OKANLA95/Keziah-Shop/internal/model"
	"github.com/OKANLA95/Keziah-Shop/internal/repository"
	"github.com/OKANLA95/Keziah-Shop/internal/watch"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const reportDateLayout = "2006-01-02"

// ReportService aggregates sale history into summaries and tabular exports.
type ReportService interface {
	LoadSummary(ctx context.Context, filter dto.ReportFilter) (*dto.ReportSummary, error)
	WriteCSV(ctx context.Context, filter dto.ReportFilter, w io.Writer) error
	WritePDF(ctx context.Context, filter dto.ReportFilter, w io.Writer) error
	// Snapshot re-aggregates on every sale change, for streaming subscribers.
	Snapshot(filter dto.ReportFilter) watch.Loader
}

type reportService struct {
	sales    repository.SaleRepository
	products repository.ProductRepository
}

func NewReportService(sales repository.SaleRepository, products repository.ProductRepository) ReportService {
	return &reportService{sales: sales, products: products}
}

func (s *reportService) LoadSummary(ctx context.Context, filter dto.ReportFilter) (*dto.ReportSummary, error) {
	sales, err := s.sales.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load sales: %v", apierror.ErrPersistence, err)
	}
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load products: %v", apierror.ErrPersistence, err)
	}
	costs := make(map[uuid.UUID]decimal.Decimal, len(products))
	for _, p := range products {
		costs[p.ID] = p.CostPrice
	}
	summary := Summarize(sales, costs, filter)
	return &summary, nil
}

func (s *reportService) WriteCSV(ctx context.Context, filter dto.ReportFilter, w io.Writer) error {
	summary, err := s.LoadSummary(ctx, filter)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Product", "Quantity", "Unit Price (GHS)", "Amount (GHS)", "Salesperson"}); err != nil {
		return err
	}
	for _, r := range summary.Rows {
		if err := cw.Write([]string{
			r.Date,
			r.Product,
			strconv.Itoa(r.Quantity),
			r.UnitPrice.StringFixed(2),
			r.Amount.StringFixed(2),
			r.Salesperson,
		}); err != nil {
			return err
		}
	}
	if err := cw.Write([]string{"", "", "", "Total", summary.Total.StringFixed(2), ""}); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func (s *reportService) WritePDF(ctx context.Context, filter dto.ReportFilter, w io.Writer) error {
	summary, err := s.LoadSummary(ctx, filter)
	if err != nil {
		return err
	}
	return infra.RenderReportPDF(w, summary.Rows, summary.Total)
}

func (s *reportService) Snapshot(filter dto.ReportFilter) watch.Loader {
	return func(ctx context.Context) (any, error) {
		summary, err := s.LoadSummary(ctx, filter)
		if err != nil {
			return nil, err
		}
		return summary, nil
	}
}

// Summarize is the pure aggregation core. Date bounds are inclusive; the
// salesperson filter is a case-insensitive substring match. With no matching
// sales the totals are zero and the top-product fields read "N/A".
func Summarize(sales []model.Sale, costByProduct map[uuid.UUID]decimal.Decimal, filter dto.ReportFilter) dto.ReportSummary {
	from, hasFrom := parseReportDate(filter.From)
	to, hasTo := parseReportDate(filter.To)
	person := strings.ToLower(strings.TrimSpace(filter.Salesperson))

	summary := dto.ReportSummary{
		Total:            decimal.Zero,
		ByPerson:         map[string]decimal.Decimal{},
		TopProduct:       "N/A",
		TopProfitProduct: "N/A",
		TopProfit:        decimal.Zero,
		Rows:             []dto.ReportRow{},
	}

	qtyByProduct := map[string]int{}
	profitByProduct := map[string]decimal.Decimal{}

	for i := range sales {
		sale := &sales[i]
		day := sale.CreatedAt.Truncate(24 * time.Hour)
		if hasFrom && day.Before(from) {
			continue
		}
		if hasTo && day.After(to) {
			continue
		}
		if person != "" && !strings.Contains(strings.ToLower(sale.Salesperson), person) {
			continue
		}

		summary.Total = summary.Total.Add(sale.Amount)
		summary.Count++
		summary.ByPerson[sale.Salesperson] = summary.ByPerson[sale.Salesperson].Add(sale.Amount)
		qtyByProduct[sale.ProductName] += sale.Quantity

		// Unknown cost (product deleted since) counts as zero cost.
		cost := costByProduct[sale.ProductID]
		profit := sale.UnitPrice.Sub(cost).Mul(decimal.NewFromInt(int64(sale.Quantity)))
		profitByProduct[sale.ProductName] = profitByProduct[sale.ProductName].Add(profit)

		summary.Rows = append(summary.Rows, dto.ReportRow{
			Date:        sale.CreatedAt.Format(reportDateLayout),
			Product:     sale.ProductName,
			Quantity:    sale.Quantity,
			UnitPrice:   sale.UnitPrice,
			Amount:      sale.Amount,
			Salesperson: sale.Salesperson,
		})
	}

	for name, qty := range qtyByProduct {
		if qty > summary.TopProductQty || (qty == summary.TopProductQty && summary.TopProduct != "N/A" && name < summary.TopProduct) {
			summary.TopProduct = name
			summary.TopProductQty = qty
		}
	}
	for name, profit := range profitByProduct {
		if summary.TopProfitProduct == "N/A" || profit.GreaterThan(summary.TopProfit) ||
			(profit.Equal(summary.TopProfit) && name < summary.TopProfitProduct) {
			summary.TopProfitProduct = name
			summary.TopProfit = profit
		}
	}
	return summary
}

func parseReportDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(reportDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
