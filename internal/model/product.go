package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is one inventory ledger entry. Quantity never drops below zero at
// rest: every sale decrement is a conditional UPDATE guarded by the current
// quantity.
type Product struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"index;not null"`
	// Price is the selling price per unit, in Ghana cedis.
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// CostPrice is visible only to Manager and Finance. Stripped from read
	// projections for every other role.
	CostPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Quantity    int             `gorm:"not null;default:0"`
	MinQuantity int             `gorm:"not null;default:5"`
	Category    string          `gorm:"not null"`
	Unit        string          `gorm:"not null;default:'unit'"`
	ImageURL    string
	Active      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
