package dto

// ─── Global catalog products ─────────────────────────────────────────────────

type CreateProductRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=255"`
	VendorCode   string `json:"vendor_code" validate:"max=255"`
	AmountInPack *int   `json:"amount_in_pack" validate:"omitempty,min=1"`
}

type UpdateProductRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=255"`
	VendorCode   *string `json:"vendor_code" validate:"omitempty,max=255"`
	AmountInPack *int    `json:"amount_in_pack" validate:"omitempty,min=1"`
}

type ProductFilter struct {
	// Search matches the vendor code.
	Search string `form:"search"`
	Page   int    `form:"page,default=1" validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ProductResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	VendorCode   string `json:"vendor_code"`
	AmountInPack *int   `json:"amount_in_pack"`
	// Option is the display label used by admin selects.
	Option string `json:"option"`
}

// ─── Customer products (per-customer aliases) ────────────────────────────────

// UpdateCustomerProductRequest only manages the base-product link; name and
// vendor code are owned by the parsing pipeline and stay read-only.
type UpdateCustomerProductRequest struct {
	ProductID *string `json:"product_id" validate:"omitempty,uuid"`
}

type CustomerProductFilter struct {
	CustomerID string `form:"customer"`
	Page       int    `form:"page,default=1" validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CustomerProductResponse struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	VendorCode string           `json:"vendor_code"`
	CustomerID string           `json:"customer_id"`
	Product    *ProductResponse `json:"product,omitempty"`
}
