package model

import (
	"time"

	"github.com/google/uuid"
)

// Order is the portion of a CustomerOrder destined for one trade point.
// Created only when at least one positive-quantity line item exists for the
// trade point in that upload; never mutated afterwards.
type Order struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerOrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	TradePointID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt       time.Time

	CustomerOrder *CustomerOrder   `gorm:"foreignKey:CustomerOrderID"`
	TradePoint    *TradePoint      `gorm:"foreignKey:TradePointID"`
	Items         []ProductInOrder `gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string { return "orders" }
