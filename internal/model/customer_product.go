package model

import (
	"time"

	"github.com/google/uuid"
)

// CustomerProduct is a customer-scoped product alias: the (name, vendor code)
// pair as it appears in one customer's files. Parsing get-or-creates these
// records by the natural key (customer_id, name, vendor_code); they are never
// deleted by parsing.
//
// ProductID optionally links the alias to a global catalog Product ("base
// product"). The link is managed manually through the API, never inferred
// during parsing.
type CustomerProduct struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string     `gorm:"not null;uniqueIndex:idx_customer_products_key"`
	VendorCode string     `gorm:"not null;default:'';uniqueIndex:idx_customer_products_key"`
	CustomerID uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_customer_products_key"`
	ProductID  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Customer *Customer `gorm:"foreignKey:CustomerID"`
	Product  *Product  `gorm:"foreignKey:ProductID"`
}

func (CustomerProduct) TableName() string { return "customer_products" }
