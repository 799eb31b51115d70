package model

import (
	"time"

	"github.com/google/uuid"
)

// User stores system accounts with role-based access. Shop metadata is only
// populated for Manager and Finance accounts.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName     string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Phone        *string
	PasswordHash string `gorm:"not null"`
	Role         Role   `gorm:"type:varchar(20);not null"`

	// Shop metadata (Manager / Finance only)
	ShopName      *string
	ShopLocation  *string
	ShopContact   *string
	SalesCategory *string
	ShopLogoURL   *string

	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
