package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a retail chain that submits order spreadsheets.
// Code is the immutable short identifier used to select the parser adapter
// for the chain's file format; it never changes after creation.
type Customer struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"not null"`
	Code string    `gorm:"uniqueIndex;not null;size:30"`
	// OrderInPacks marks chains whose files express quantities in pack
	// units rather than individual units.
	OrderInPacks bool `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	TradePoints []TradePoint `gorm:"foreignKey:CustomerID"`
}

func (Customer) TableName() string { return "customers" }
