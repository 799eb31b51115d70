package dto

import "github.com/shopspring/decimal"

// ReportFilter is bound from the query string of the report endpoints.
// Dates are inclusive; Salesperson is a case-insensitive substring match.
type ReportFilter struct {
	From        string `form:"from"` // YYYY-MM-DD
	To          string `form:"to"`   // YYYY-MM-DD
	Salesperson string `form:"salesperson"`
}

// ReportRow is one sale line in the tabular exports.
type ReportRow struct {
	Date        string          `json:"date"`
	Product     string          `json:"product"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
	Salesperson string          `json:"salesperson"`
}

// ReportSummary is the aggregate view over the filtered sales.
// TopProduct / TopProfitProduct are "N/A" when no sales match.
type ReportSummary struct {
	Total            decimal.Decimal            `json:"total"`
	Count            int                        `json:"count"`
	ByPerson         map[string]decimal.Decimal `json:"by_person"`
	TopProduct       string                     `json:"top_product"`
	TopProductQty    int                        `json:"top_product_qty"`
	TopProfitProduct string                     `json:"top_profit_product"`
	TopProfit        decimal.Decimal            `json:"top_profit"`
	Rows             []ReportRow                `json:"rows"`
}
