package model

import (
	"github.com/google/uuid"
)

// ProductInOrder is one line item of a trade-point order.
// Amount is always > 0 — zero and negative quantities are filtered out
// during parsing and never stored.
type ProductInOrder struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount    int       `gorm:"not null;check:amount > 0"`

	Product *CustomerProduct `gorm:"foreignKey:ProductID"`
	Order   *Order           `gorm:"foreignKey:OrderID"`
}

func (ProductInOrder) TableName() string { return "products_in_orders" }
