package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale statuses. A cancelled sale is deleted outright (stock restored first),
// so StatusCancelled never appears on a stored row. It exists because the
// lifecycle names it and clients may echo it back.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Sale is an immutable-amount transaction record. Amount is frozen at creation
// (quantity × product price at the time of sale) and never recomputed from the
// live product price. The product reference is weak: no FK constraint, and the
// product name and unit price are denormalized so an invoice survives deletion
// of its product.
type Sale struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceNumber string          `gorm:"index;not null"`
	ProductID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductName   string          `gorm:"not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity      int             `gorm:"not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CustomerName  string          `gorm:"not null"`
	CustomerPhone string          `gorm:"not null"`
	CustomerEmail *string
	Salesperson   string    `gorm:"index;not null"`
	CreatedBy     uuid.UUID `gorm:"type:uuid;index;not null"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
