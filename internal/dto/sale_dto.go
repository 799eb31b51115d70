package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	Date        string `form:"date"`   // YYYY-MM-DD; empty = all
	Status      string `form:"status"` // pending | confirmed | all
	Salesperson string `form:"salesperson"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ─── Requests ────────────────────────────────────────────────────────────────

type RecordSaleRequest struct {
	ProductID     string  `json:"product_id"     validate:"required,uuid"`
	Quantity      int     `json:"quantity"       validate:"required,min=1"`
	CustomerName  string  `json:"customer_name"  validate:"required,min=2"`
	CustomerPhone string  `json:"customer_phone" validate:"required,min=7"`
	// CustomerEmail is optional. When present, the email worker mails the
	// invoice PDF after the sale is confirmed.
	CustomerEmail *string `json:"customer_email" validate:"omitempty,email"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type SaleResponse struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int             `json:"quantity"`
	Amount        decimal.Decimal `json:"amount"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	CustomerEmail *string         `json:"customer_email,omitempty"`
	Salesperson   string          `json:"salesperson"`
	Status        string          `json:"status"`
	CreatedAt     string          `json:"created_at"`
}

type ConfirmSaleResponse struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	AlreadyConfirmed bool   `json:"already_confirmed"`
}

// InvoiceResponse is the printable projection of a sale.
type InvoiceResponse struct {
	SaleResponse
	ShopName     string `json:"shop_name,omitempty"`
	ShopLocation string `json:"shop_location,omitempty"`
	ShopContact  string `json:"shop_contact,omitempty"`
	ShopLogoURL  string `json:"shop_logo_url,omitempty"`
}
