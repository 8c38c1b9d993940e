package dto

// ─── Requests ────────────────────────────────────────────────────────────────

// SearchFilter is bound from the query string of GET /v1/products/search.
type SearchFilter struct {
	Q string `form:"q" validate:"required,min=1"`
}

// UpdateStockRequest sets the absolute stock quantity of a product. Local-only
// adjustment; the next catalog refresh overwrites it.
type UpdateStockRequest struct {
	Qty float64 `json:"qty" validate:"min=0"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type CountResponse struct {
	Count int64 `json:"count"`
}

// RefreshSummary reports how many rows each mirror received during a catalog
// refresh.
type RefreshSummary struct {
	Products       int64 `json:"products"`
	Clients        int64 `json:"clients"`
	Categories     int64 `json:"categories"`
	Warehouses     int64 `json:"warehouses"`
	PaymentMethods int64 `json:"payment_methods"`
}
