package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/OKANLA95/Keziah-Shop/internal/apierror"
	"github.com/OKANLA95/Keziah-Shop/internal/dto"
	"github.com/OKANLA95/Keziah-Shop/internal/model"
	"github.com/OKANLA95/Keziah-Shop/internal/repository"
	"github.com/OKANLA95/Keziah-Shop/internal/watch"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CollectionProducts is the watch collection name for inventory changes.
const CollectionProducts = "products"

// ProductService owns the inventory ledger: product catalogue, stock levels,
// movement history and low-stock alerts.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest, viewer model.Role) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID, viewer model.Role) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter, viewer model.Role) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest, viewer model.Role) (*dto.ProductResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
	SetImage(ctx context.Context, id uuid.UUID, imageURL string, viewer model.Role) (*dto.ProductResponse, error)

	// AdjustStock applies a signed delta and records the movement in one
	// transaction. Negative deltas are guarded against going below zero.
	AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest, viewer model.Role) (*dto.ProductResponse, error)
	LowStockAlerts(ctx context.Context) ([]dto.StockAlertResponse, error)
	ListMovements(ctx context.Context, productID *uuid.UUID, limit int) ([]dto.StockMovementResponse, error)

	// Snapshot loads all active products for watch subscribers.
	Snapshot(viewer model.Role) watch.Loader
}

type productService struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	broker    *watch.Broker
}

func NewProductService(products repository.ProductRepository, movements repository.StockMovementRepository, broker *watch.Broker) ProductService {
	return &productService{products: products, movements: movements, broker: broker}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest, viewer model.Role) (*dto.ProductResponse, error) {
	p := &model.Product{
		Name:        req.Name,
		Price:       req.Price,
		CostPrice:   req.CostPrice,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		Category:    req.Category,
		Unit:        req.Unit,
		Active:      true,
	}
	if p.MinQuantity == 0 {
		p.MinQuantity = 5
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("%w: create product: %v", apierror.ErrPersistence, err)
	}
	s.broker.Publish(ctx, CollectionProducts)
	resp := toProductResponse(p, viewer)
	return &resp, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID, viewer model.Role) (*dto.ProductResponse, error) {
	p, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(p, viewer)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter, viewer model.Role) (*dto.ProductListResponse, error) {
	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: list products: %v", apierror.ErrPersistence, err)
	}
	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, toProductResponse(&products[i], viewer))
	}
	return &dto.ProductListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest, viewer model.Role) (*dto.ProductResponse, error) {
	p, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.CostPrice != nil {
		p.CostPrice = *req.CostPrice
	}
	if req.MinQuantity != nil {
		p.MinQuantity = *req.MinQuantity
	}
	if req.Category != "" {
		p.Category = req.Category
	}
	if req.Unit != "" {
		p.Unit = req.Unit
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("%w: update product: %v", apierror.ErrPersistence, err)
	}
	s.broker.Publish(ctx, CollectionProducts)
	resp := toProductResponse(p, viewer)
	return &resp, nil
}

func (s *productService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findProduct(ctx, id); err != nil {
		return err
	}
	if err := s.products.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("%w: deactivate product: %v", apierror.ErrPersistence, err)
	}
	s.broker.Publish(ctx, CollectionProducts)
	return nil
}

func (s *productService) Reactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findProduct(ctx, id); err != nil {
		return err
	}
	if err := s.products.Reactivate(ctx, id); err != nil {
		return fmt.Errorf("%w: reactivate product: %v", apierror.ErrPersistence, err)
	}
	s.broker.Publish(ctx, CollectionProducts)
	return nil
}

func (s *productService) SetImage(ctx context.Context, id uuid.UUID, imageURL string, viewer model.Role) (*dto.ProductResponse, error) {
	p, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	p.ImageURL = imageURL
	if err := s.products.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("%w: update product image: %v", apierror.ErrPersistence, err)
	}
	resp := toProductResponse(p, viewer)
	return &resp, nil
}

func (s *productService) AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest, viewer model.Role) (*dto.ProductResponse, error) {
	if _, err := s.findProduct(ctx, id); err != nil {
		return nil, err
	}

	var updated *model.Product
	err := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		before, err := s.products.FindByIDTx(tx, id)
		if err != nil {
			return fmt.Errorf("%w: load product: %v", apierror.ErrPersistence, err)
		}
		if err := s.products.AdjustStockTx(tx, id, req.Delta); err != nil {
			if errors.Is(err, apierror.ErrInsufficientStock) {
				return fmt.Errorf("%w: cannot remove %d units, only %d in stock", apierror.ErrInsufficientStock, -req.Delta, before.Quantity)
			}
			return fmt.Errorf("%w: adjust stock: %v", apierror.ErrPersistence, err)
		}
		if err := s.movements.CreateTx(tx, &model.StockMovement{
			ProductID:   id,
			Type:        model.MovementManualAdjust,
			Quantity:    req.Delta,
			StockBefore: before.Quantity,
			StockAfter:  before.Quantity + req.Delta,
			Reason:      req.Reason,
		}); err != nil {
			return fmt.Errorf("%w: record movement: %v", apierror.ErrPersistence, err)
		}
		after, err := s.products.FindByIDTx(tx, id)
		if err != nil {
			return fmt.Errorf("%w: reload product: %v", apierror.ErrPersistence, err)
		}
		updated = after
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broker.Publish(ctx, CollectionProducts)
	resp := toProductResponse(updated, viewer)
	return &resp, nil
}

func (s *productService) LowStockAlerts(ctx context.Context) ([]dto.StockAlertResponse, error) {
	products, err := s.products.ListBelowMin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list low stock: %v", apierror.ErrPersistence, err)
	}
	alerts := make([]dto.StockAlertResponse, 0, len(products))
	for _, p := range products {
		alerts = append(alerts, dto.StockAlertResponse{
			ProductID:   p.ID.String(),
			Name:        p.Name,
			Quantity:    p.Quantity,
			MinQuantity: p.MinQuantity,
		})
	}
	return alerts, nil
}

func (s *productService) ListMovements(ctx context.Context, productID *uuid.UUID, limit int) ([]dto.StockMovementResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	movements, err := s.movements.List(ctx, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list movements: %v", apierror.ErrPersistence, err)
	}
	out := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		resp := dto.StockMovementResponse{
			ID:          m.ID.String(),
			ProductID:   m.ProductID.String(),
			Type:        m.Type,
			Quantity:    m.Quantity,
			StockBefore: m.StockBefore,
			StockAfter:  m.StockAfter,
			Reason:      m.Reason,
			CreatedAt:   m.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if m.ReferenceID != nil {
			ref := m.ReferenceID.String()
			resp.ReferenceID = &ref
		}
		out = append(out, resp)
	}
	return out, nil
}

// Snapshot returns a loader delivering the active product list, projected for
// the subscriber's role, on every inventory change.
func (s *productService) Snapshot(viewer model.Role) watch.Loader {
	return func(ctx context.Context) (any, error) {
		list, err := s.List(ctx, dto.ProductFilter{Page: 1, Limit: 200}, viewer)
		if err != nil {
			return nil, err
		}
		return list, nil
	}
}

func (s *productService) findProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", apierror.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", apierror.ErrPersistence, err)
	}
	return p, nil
}

// toProductResponse strips the cost price unless the viewer's role may see it.
func toProductResponse(p *model.Product, viewer model.Role) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Price:       p.Price,
		Quantity:    p.Quantity,
		MinQuantity: p.MinQuantity,
		Category:    p.Category,
		Unit:        p.Unit,
		ImageURL:    p.ImageURL,
		Active:      p.Active,
	}
	if viewer.SeesCostPrice() {
		cost := p.CostPrice
		resp.CostPrice = &cost
	}
	return resp
}
