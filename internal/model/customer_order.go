package model

import (
	"time"

	"github.com/google/uuid"
)

// CustomerOrder is one upload event: a stored spreadsheet file submitted by a
// customer. Products is a denormalized m2m with every CustomerProduct that
// ended up in a line item of this upload — recomputed once at the end of a
// parse, for quick listing without joining through orders.
type CustomerOrder struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	FilePath   string    `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Customer *Customer         `gorm:"foreignKey:CustomerID"`
	Products []CustomerProduct `gorm:"many2many:customer_order_products"`
	Orders   []Order           `gorm:"foreignKey:CustomerOrderID"`
}

func (CustomerOrder) TableName() string { return "customer_orders" }
