package service

import (
	"context"
	"testing"

	"github.com/OKANLA95/Keziah-Shop/internal/apierror"
	"github.com/OKANLA95/Keziah-Shop/internal/dto"
	"github.com/OKANLA95/Keziah-Shop/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSaleFixture(t *testing.T) (SaleService, *stubProductRepo, *stubSaleRepo, *stubMovementRepo, *model.Product) {
	t.Helper()
	products := newStubProductRepo()
	sales := newStubSaleRepo()
	movements := newStubMovementRepo()

	p := &model.Product{
		Name:        "Rice 5kg",
		Price:       decimal.NewFromInt(20),
		CostPrice:   decimal.NewFromInt(14),
		Quantity:    10,
		MinQuantity: 2,
		Category:    "Food",
		Unit:        "bag",
		Active:      true,
	}
	require.NoError(t, products.Create(context.Background(), p))

	svc := NewSaleService(sales, products, movements, newTestBroker())
	return svc, products, sales, movements, p
}

func TestRecordSaleDecrementsStockExactly(t *testing.T) {
	svc, products, _, movements, p := newSaleFixture(t)

	sale, err := svc.RecordSale(context.Background(), dto.RecordSaleRequest{
		ProductID:     p.ID.String(),
		Quantity:      3,
		CustomerName:  "Ama Mensah",
		CustomerPhone: "0244000000",
	}, uuid.New(), "Kofi")
	require.NoError(t, err)

	assert.Equal(t, "60", sale.Amount.String())
	assert.Equal(t, model.StatusPending, sale.Status)
	assert.Contains(t, sale.InvoiceNumber, "INV-")

	got, err := products.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantity)

	ms := movements.all()
	require.Len(t, ms, 1)
	assert.Equal(t, model.MovementSale, ms[0].Type)
	assert.Equal(t, -3, ms[0].Quantity)
	assert.Equal(t, 10, ms[0].StockBefore)
	assert.Equal(t, 7, ms[0].StockAfter)
	require.NotNil(t, ms[0].ReferenceID)
	assert.Equal(t, sale.ID, ms[0].ReferenceID.String())
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	svc, products, sales, movements, p := newSaleFixture(t)

	_, err := svc.RecordSale(context.Background(), dto.RecordSaleRequest{
		ProductID:     p.ID.String(),
		Quantity:      11,
		CustomerName:  "Ama Mensah",
		CustomerPhone: "0244000000",
	}, uuid.New(), "Kofi")
	require.ErrorIs(t, err, apierror.ErrInsufficientStock)

	// Nothing changed: stock intact, no sale row, no movement.
	got, err := products.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)

	all, err := sales.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, movements.all())
}

func TestRecordSaleAmountFrozenAtSaleTime(t *testing.T) {
	svc, products, sales, _, p := newSaleFixture(t)

	resp, err := svc.RecordSale(context.Background(), dto.RecordSaleRequest{
		ProductID:     p.ID.String(),
		Quantity:      2,
		CustomerName:  "Ama Mensah",
		CustomerPhone: "0244000000",
	}, uuid.New(), "Kofi")
	require.NoError(t, err)
	assert.Equal(t, "40", resp.Amount.String())

	// Price change after the sale must not touch the recorded amount.
	updated, err := products.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	updated.Price = decimal.NewFromInt(99)
	require.NoError(t, products.Update(context.Background(), updated))

	stored, err := sales.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, "40", stored.Amount.String())
	assert.Equal(t, "20", stored.UnitPrice.String())
}

func TestRecordSaleUnknownProduct(t *testing.T) {
	svc, _, _, _, _ := newSaleFixture(t)

	_, err := svc.RecordSale(context.Background(), dto.RecordSaleRequest{
		ProductID:     uuid.NewString(),
		Quantity:      1,
		CustomerName:  "Ama Mensah",
		CustomerPhone: "0244000000",
	}, uuid.New(), "Kofi")
	require.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestRecordSaleInactiveProduct(t *testing.T) {
	svc, products, _, _, p := newSaleFixture(t)
	require.NoError(t, products.SoftDelete(context.Background(), p.ID))

	_, err := svc.RecordSale(context.Background(), dto.RecordSaleRequest{
		ProductID:     p.ID.String(),
		Quantity:      1,
		CustomerName:  "Ama Mensah",
		CustomerPhone: "0244000000",
	}, uuid.New(), "Kofi")
	require.ErrorIs(t, err, apierror.ErrValidation)
}

func TestListSalesFiltersBySalesperson(t *testing.T) {
	svc, _, _, _, p := newSaleFixture(t)

	for _, seller := range []string{"Kofi Boateng", "Abena Owusu"} {
		_, err := svc.RecordSale(context.Background(), dto.RecordSaleRequest{
			ProductID:     p.ID.String(),
			Quantity:      1,
			CustomerName:  "Ama Mensah",
			CustomerPhone: "0244000000",
		}, uuid.New(), seller)
		require.NoError(t, err)
	}

	list, err := svc.ListSales(context.Background(), dto.SaleFilter{Salesperson: "kofi", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Kofi Boateng", list.Data[0].Salesperson)
}
