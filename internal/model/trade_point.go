package model

import (
	"time"

	"github.com/google/uuid"
)

// TradePoint is a delivery destination (a single store) of a Customer.
// It is created lazily the first time an uploaded file references it and is
// identified within its customer either by name or by the external system
// code (SapCode). The partial unique index on (customer_id, sapcode) is
// created via a schema patch because it only applies to non-empty codes.
type TradePoint struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string    `gorm:"not null;uniqueIndex:idx_trade_points_customer_name"`
	SapCode    string    `gorm:"not null;default:''"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_trade_points_customer_name"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Customer *Customer `gorm:"foreignKey:CustomerID"`
}

func (TradePoint) TableName() string { return "trade_points" }
