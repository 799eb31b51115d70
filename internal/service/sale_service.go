package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/OKANLA95/Keziah-Shop/internal/apierror"
	"github.com/OKANLA95/Keziah-Shop/internal/dto"
	"github.com/OKANLA95/Keziah-Shop/internal/model"
	"github.com/OKANLA95/Keziah-Shop/internal/repository"
	"github.com/OKANLA95/Keziah-Shop/internal/watch"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CollectionSales is the watch collection name for sale changes.
const CollectionSales = "sales"

// SaleService records and lists sales. Recording freezes the amount at the
// product's current price and decrements stock in the same transaction.
type SaleService interface {
	RecordSale(ctx context.Context, req dto.RecordSaleRequest, sellerID uuid.UUID, sellerName string) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
	Snapshot() watch.Loader
}

type saleService struct {
	sales     repository.SaleRepository
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	broker    *watch.Broker
}

func NewSaleService(sales repository.SaleRepository, products repository.ProductRepository, movements repository.StockMovementRepository, broker *watch.Broker) SaleService {
	return &saleService{sales: sales, products: products, movements: movements, broker: broker}
}

// RecordSale creates the sale row, decrements the product's stock and writes
// the movement as one atomic unit. The decrement is a conditional UPDATE
// guarded by the current quantity, so two concurrent sales of the last unit
// cannot both succeed.
func (s *saleService) RecordSale(ctx context.Context, req dto.RecordSaleRequest, sellerID uuid.UUID, sellerName string) (*dto.SaleResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product id", apierror.ErrValidation)
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", apierror.ErrNotFound, productID)
		}
		return nil, fmt.Errorf("%w: %v", apierror.ErrPersistence, err)
	}
	if !product.Active {
		return nil, fmt.Errorf("%w: product %q is no longer available", apierror.ErrValidation, product.Name)
	}
	if req.Quantity > product.Quantity {
		return nil, fmt.Errorf("%w: requested %d, only %d available", apierror.ErrInsufficientStock, req.Quantity, product.Quantity)
	}

	// Amount frozen at sale time. Later price edits never change it.
	amount := product.Price.Mul(decimal.NewFromInt(int64(req.Quantity)))

	sale := &model.Sale{
		InvoiceNumber: newInvoiceNumber(),
		ProductID:     product.ID,
		ProductName:   product.Name,
		UnitPrice:     product.Price,
		Quantity:      req.Quantity,
		Amount:        amount,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Salesperson:   sellerName,
		CreatedBy:     sellerID,
		Status:        model.StatusPending,
	}

	err = runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		if err := s.sales.Create(ctx, tx, sale); err != nil {
			return fmt.Errorf("%w: create sale: %v", apierror.ErrPersistence, err)
		}
		before, err := s.products.FindByIDTx(tx, product.ID)
		if err != nil {
			return fmt.Errorf("%w: load product: %v", apierror.ErrPersistence, err)
		}
		if err := s.products.DecrementStockTx(tx, product.ID, req.Quantity); err != nil {
			if errors.Is(err, apierror.ErrInsufficientStock) {
				return fmt.Errorf("%w: requested %d, only %d available", apierror.ErrInsufficientStock, req.Quantity, before.Quantity)
			}
			return fmt.Errorf("%w: decrement stock: %v", apierror.ErrPersistence, err)
		}
		return s.movements.CreateTx(tx, &model.StockMovement{
			ProductID:   product.ID,
			Type:        model.MovementSale,
			Quantity:    -req.Quantity,
			StockBefore: before.Quantity,
			StockAfter:  before.Quantity - req.Quantity,
			Reason:      "sale " + sale.InvoiceNumber,
			ReferenceID: &sale.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("invoice", sale.InvoiceNumber).
		Str("product", sale.ProductName).
		Int("qty", sale.Quantity).
		Str("amount", sale.Amount.StringFixed(2)).
		Msg("sale recorded")

	s.broker.Publish(ctx, CollectionSales)
	s.broker.Publish(ctx, CollectionProducts)

	resp := toSaleResponse(sale)
	return &resp, nil
}

func (s *saleService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	sales, total, err := s.sales.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: list sales: %v", apierror.ErrPersistence, err)
	}
	data := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		data = append(data, toSaleResponse(&sales[i]))
	}
	return &dto.SaleListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// Snapshot returns a loader delivering the most recent sales on every change.
func (s *saleService) Snapshot() watch.Loader {
	return func(ctx context.Context) (any, error) {
		list, err := s.ListSales(ctx, dto.SaleFilter{Status: "all", Page: 1, Limit: 50})
		if err != nil {
			return nil, err
		}
		return list, nil
	}
}

// newInvoiceNumber builds a human-readable invoice reference:
// INV-YYYYMMDD-NNN. Collisions within a day are tolerable: the sale's UUID
// is the real identity, the invoice number is for paper.
func newInvoiceNumber() string {
	return fmt.Sprintf("INV-%s-%03d", time.Now().Format("20060102"), rand.IntN(1000))
}

func toSaleResponse(s *model.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:            s.ID.String(),
		InvoiceNumber: s.InvoiceNumber,
		ProductID:     s.ProductID.String(),
		ProductName:   s.ProductName,
		UnitPrice:     s.UnitPrice,
		Quantity:      s.Quantity,
		Amount:        s.Amount,
		CustomerName:  s.CustomerName,
		CustomerPhone: s.CustomerPhone,
		CustomerEmail: s.CustomerEmail,
		Salesperson:   s.Salesperson,
		Status:        s.Status,
		CreatedAt:     s.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
