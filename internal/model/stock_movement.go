package model

import (
	"time"

	"github.com/google/uuid"
)

// Stock movement types.
const (
	MovementSale          = "sale"
	MovementCancelRestore = "cancel_restore"
	MovementManualAdjust  = "manual_adjust"
)

// StockMovement records every quantity change on a product. Created
// automatically when selling, cancelling, or manually adjusting stock.
type StockMovement struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"not null"`
	// Quantity: positive = stock in, negative = stock out
	Quantity    int `gorm:"not null"`
	StockBefore int `gorm:"not null"`
	StockAfter  int `gorm:"not null"`
	Reason      string
	ReferenceID *uuid.UUID `gorm:"type:uuid"` // sale id when applicable
	CreatedAt   time.Time
}
