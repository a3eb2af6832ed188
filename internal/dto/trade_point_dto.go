package dto

type CreateTradePointRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=255"`
	SapCode    string `json:"sapcode" validate:"max=255"`
	CustomerID string `json:"customer_id" validate:"required,uuid"`
}

type UpdateTradePointRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=255"`
	SapCode *string `json:"sapcode" validate:"omitempty,max=255"`
}

type TradePointFilter struct {
	CustomerID string `form:"customer"`
	Page       int    `form:"page,default=1" validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type TradePointResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	SapCode    string `json:"sapcode"`
	CustomerID string `json:"customer_id"`
}
