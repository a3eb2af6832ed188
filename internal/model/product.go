package model

import (
	"time"

	"github.com/google/uuid"
)

// Product is an entry of the global catalog, shared across customers for
// cross-customer reporting. AmountInPack converts pack quantities into
// individual units for customers ordering in packs.
type Product struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"index;not null"`
	VendorCode   string    `gorm:"index;not null;default:''"`
	AmountInPack *int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Product) TableName() string { return "products" }
