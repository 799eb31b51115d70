package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/OKANLA95/Keziah-Shop/internal/apierror"
	"github.com/OKANLA95/Keziah-Shop/internal/dto"
	"github.com/OKANLA95/Keziah-Shop/internal/infra"
	"github.com/OKANLA95/Keziah-Shop/internal/model"
	"github.com/OKANLA95/Keziah-Shop/internal/repository"
	"github.com/OKANLA95/Keziah-Shop/internal/watch"
	"github.com/OKANLA95/Keziah-Shop/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// JobDispatcher enqueues async jobs. Satisfied by *worker.Dispatcher.
type JobDispatcher interface {
	EnqueueInvoicePDF(ctx context.Context, payload any) error
	EnqueueEmail(ctx context.Context, payload any) error
}

// InvoiceService is the sale lifecycle beyond recording: viewing the printable
// invoice, confirming, cancelling and rendering the PDF.
type InvoiceService interface {
	GetInvoice(ctx context.Context, saleID uuid.UUID) (*dto.InvoiceResponse, error)
	// Confirm marks the sale confirmed and queues PDF and email delivery.
	// Confirming twice is a no-op reported through AlreadyConfirmed.
	Confirm(ctx context.Context, saleID uuid.UUID) (*dto.ConfirmSaleResponse, error)
	// Cancel restores the sold quantity to stock and deletes the sale row.
	// A second cancel finds no row and reports not found.
	Cancel(ctx context.Context, saleID uuid.UUID) error
	RenderPDF(ctx context.Context, saleID uuid.UUID, w io.Writer) error
}

type invoiceService struct {
	sales      repository.SaleRepository
	products   repository.ProductRepository
	movements  repository.StockMovementRepository
	users      repository.UserRepository
	dispatcher JobDispatcher
	broker     *watch.Broker
}

func NewInvoiceService(
	sales repository.SaleRepository,
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	users repository.UserRepository,
	dispatcher JobDispatcher,
	broker *watch.Broker,
) InvoiceService {
	return &invoiceService{
		sales:      sales,
		products:   products,
		movements:  movements,
		users:      users,
		dispatcher: dispatcher,
		broker:     broker,
	}
}

// GetInvoice joins the sale with the shop header taken from the active
// Manager's profile. A missing Manager just leaves the header blank.
func (s *invoiceService) GetInvoice(ctx context.Context, saleID uuid.UUID) (*dto.InvoiceResponse, error) {
	sale, err := s.findSale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	inv := &dto.InvoiceResponse{SaleResponse: toSaleResponse(sale)}
	if owner, err := s.users.FindActiveByRole(ctx, model.RoleManager); err == nil {
		if owner.ShopName != nil {
			inv.ShopName = *owner.ShopName
		}
		if owner.ShopLocation != nil {
			inv.ShopLocation = *owner.ShopLocation
		}
		if owner.ShopContact != nil {
			inv.ShopContact = *owner.ShopContact
		}
		if owner.ShopLogoURL != nil {
			inv.ShopLogoURL = *owner.ShopLogoURL
		}
	}
	return inv, nil
}

func (s *invoiceService) Confirm(ctx context.Context, saleID uuid.UUID) (*dto.ConfirmSaleResponse, error) {
	sale, err := s.findSale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale.Status == model.StatusConfirmed {
		return &dto.ConfirmSaleResponse{
			ID:               sale.ID.String(),
			Status:           model.StatusConfirmed,
			AlreadyConfirmed: true,
		}, nil
	}

	if err := s.sales.UpdateStatus(ctx, saleID, model.StatusConfirmed); err != nil {
		return nil, fmt.Errorf("%w: confirm sale: %v", apierror.ErrPersistence, err)
	}

	if err := s.dispatcher.EnqueueInvoicePDF(ctx, worker.InvoicePDFPayload{SaleID: saleID.String()}); err != nil {
		// Confirmation already committed; the PDF can be regenerated on demand.
		log.Warn().Str("sale_id", saleID.String()).Err(err).Msg("failed to enqueue invoice PDF job")
	}

	s.broker.Publish(ctx, CollectionSales)
	log.Info().Str("invoice", sale.InvoiceNumber).Msg("sale confirmed")

	return &dto.ConfirmSaleResponse{ID: sale.ID.String(), Status: model.StatusConfirmed}, nil
}

func (s *invoiceService) Cancel(ctx context.Context, saleID uuid.UUID) error {
	sale, err := s.findSale(ctx, saleID)
	if err != nil {
		return err
	}

	err = runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		// The product reference is weak: if the product was deleted since the
		// sale, skip the restore and just drop the sale.
		before, err := s.products.FindByIDTx(tx, sale.ProductID)
		switch {
		case err == nil:
			if err := s.products.RestoreStockTx(tx, sale.ProductID, sale.Quantity); err != nil {
				return fmt.Errorf("%w: restore stock: %v", apierror.ErrPersistence, err)
			}
			if err := s.movements.CreateTx(tx, &model.StockMovement{
				ProductID:   sale.ProductID,
				Type:        model.MovementCancelRestore,
				Quantity:    sale.Quantity,
				StockBefore: before.Quantity,
				StockAfter:  before.Quantity + sale.Quantity,
				Reason:      "cancelled " + sale.InvoiceNumber,
				ReferenceID: &sale.ID,
			}); err != nil {
				return fmt.Errorf("%w: record movement: %v", apierror.ErrPersistence, err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			log.Warn().Str("product_id", sale.ProductID.String()).Msg("cancel: product gone, skipping stock restore")
		default:
			return fmt.Errorf("%w: load product: %v", apierror.ErrPersistence, err)
		}
		if err := s.sales.DeleteTx(tx, saleID); err != nil {
			return fmt.Errorf("%w: delete sale: %v", apierror.ErrPersistence, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.broker.Publish(ctx, CollectionSales)
	s.broker.Publish(ctx, CollectionProducts)
	log.Info().Str("invoice", sale.InvoiceNumber).Msg("sale cancelled, stock restored")
	return nil
}

func (s *invoiceService) RenderPDF(ctx context.Context, saleID uuid.UUID, w io.Writer) error {
	inv, err := s.GetInvoice(ctx, saleID)
	if err != nil {
		return err
	}
	return infra.RenderInvoicePDF(w, inv)
}

func (s *invoiceService) findSale(ctx context.Context, saleID uuid.UUID) (*model.Sale, error) {
	sale, err := s.sales.FindByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: sale %s", apierror.ErrNotFound, saleID)
		}
		return nil, fmt.Errorf("%w: %v", apierror.ErrPersistence, err)
	}
	return sale, nil
}
