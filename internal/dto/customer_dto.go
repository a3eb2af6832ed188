package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateCustomerRequest struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
	// Code is the immutable adapter-dispatch identifier. Set once.
	Code         string `json:"code" validate:"required,min=2,max=30,lowercase"`
	OrderInPacks bool   `json:"order_in_packs"`
}

type UpdateCustomerRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=2,max=255"`
	OrderInPacks *bool   `json:"order_in_packs"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CustomerResponse struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	Code            string                 `json:"code"`
	OrderInPacks    bool                   `json:"order_in_packs"`
	TradePointCount int64                  `json:"tp_count"`
	LastOrder       *CustomerOrderResponse `json:"last_order,omitempty"`
}
