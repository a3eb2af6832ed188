package dto

// ─── Uploads (customer orders) ───────────────────────────────────────────────

// CreateCustomerOrderRequest carries one multipart upload: the owning
// customer and the raw spreadsheet (or ZIP bundle) to parse.
type CreateCustomerOrderRequest struct {
	CustomerID string `form:"customer" validate:"required,uuid"`
	FileName   string `validate:"required"`
	Data       []byte `validate:"required"`
}

type CustomerOrderFilter struct {
	CustomerID string `form:"customer"`
	Page       int    `form:"page,default=1" validate:"min=1"`
	Limit      int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type CustomerOrderResponse struct {
	ID           string                    `json:"id"`
	CustomerID   string                    `json:"customer"`
	CustomerName string                    `json:"customer_name"`
	File         string                    `json:"file"`
	Products     []CustomerProductResponse `json:"products"`
	Created      string                    `json:"created"` // dd.mm.yyyy
}

type CustomerOrderListResponse struct {
	Data  []CustomerOrderResponse `json:"data"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}

// ─── Trade point orders ──────────────────────────────────────────────────────

type OrderFilter struct {
	CustomerOrderID string `form:"customer_order"`
	TradePointID    string `form:"trade_point"`
}

type LineItemResponse struct {
	ID              string `json:"id"`
	ProductName     string `json:"product_name"`
	VendorCode      string `json:"vendor_code"`
	BaseProductName string `json:"base_product_name,omitempty"`
	BaseVendorCode  string `json:"base_vendor_code,omitempty"`
	Amount          int    `json:"amount"`
	AmountInPack    *int   `json:"amount_in_pack,omitempty"`
}

type OrderResponse struct {
	ID                string             `json:"id"`
	CustomerOrderID   string             `json:"customer_order"`
	TradePointID      string             `json:"trade_point"`
	TradePointName    string             `json:"trade_point_name"`
	TradePointSapCode string             `json:"trade_point_sapcode"`
	Products          []LineItemResponse `json:"products_list"`
}
