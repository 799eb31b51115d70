package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// ProductFilter is bound from the query string of GET /v1/products.
type ProductFilter struct {
	Name     string `form:"name"`
	Category string `form:"category"`
	Active   string `form:"active"` // "false" = inactive, "all" = everything, default = active
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ─── Requests ────────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name        string          `json:"name"      validate:"required,min=2"`
	Price       decimal.Decimal `json:"price"     validate:"required"`
	CostPrice   decimal.Decimal `json:"cost_price" validate:"min=0"`
	Quantity    int             `json:"quantity"  validate:"min=0"`
	MinQuantity int             `json:"min_quantity" validate:"min=0"`
	Category    string          `json:"category"  validate:"required"`
	Unit        string          `json:"unit"      validate:"required"`
}

type UpdateProductRequest struct {
	Name        string           `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	CostPrice   *decimal.Decimal `json:"cost_price"`
	MinQuantity *int             `json:"min_quantity"`
	Category    string           `json:"category"`
	Unit        string           `json:"unit"`
}

type AdjustStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason" validate:"required,min=3"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

// ProductResponse projects a product for the caller's role. CostPrice is nil
// unless the caller is Manager or Finance.
type ProductResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Price       decimal.Decimal  `json:"price"`
	CostPrice   *decimal.Decimal `json:"cost_price,omitempty"`
	Quantity    int              `json:"quantity"`
	MinQuantity int              `json:"min_quantity"`
	Category    string           `json:"category"`
	Unit        string           `json:"unit"`
	ImageURL    string           `json:"image_url,omitempty"`
	Active      bool             `json:"active"`
}

type StockAlertResponse struct {
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"min_quantity"`
}

type StockMovementResponse struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	Type        string  `json:"type"`
	Quantity    int     `json:"quantity"`
	StockBefore int     `json:"stock_before"`
	StockAfter  int     `json:"stock_after"`
	Reason      string  `json:"reason,omitempty"`
	ReferenceID *string `json:"reference_id,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// PriceCheckResponse is served by the public cached price endpoint.
type PriceCheckResponse struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Available int             `json:"available"`
	Category  string          `json:"category"`
	Unit      string          `json:"unit"`
}
