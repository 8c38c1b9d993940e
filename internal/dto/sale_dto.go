package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/model"
)

// ─── Requests ────────────────────────────────────────────────────────────────

// EnqueueSaleRequest records a completed local sale. LocalRef is the
// caller-generated idempotency key: replaying the same request yields one row
// and a duplicate error, never two rows.
type EnqueueSaleRequest struct {
	LocalRef        string          `json:"local_ref" validate:"required,max=64"`
	ClientID        *int64          `json:"client_id"`
	WarehouseID     int64           `json:"warehouse_id" validate:"required"`
	GrandTotal      decimal.Decimal `json:"grand_total" validate:"min=0"`
	PaidAmount      decimal.Decimal `json:"paid_amount" validate:"min=0"`
	TaxAmount       decimal.Decimal `json:"tax_amount" validate:"min=0"`
	Discount        decimal.Decimal `json:"discount" validate:"min=0"`
	PaymentMethodID int64           `json:"payment_method_id" validate:"required"`
	Details         json.RawMessage `json:"details" validate:"required"`
	Payments        json.RawMessage `json:"payments" validate:"required"`
}

// SaleFilter is bound from the query string of GET /v1/sales. Constraints are
// binding tags so ShouldBindQuery enforces them.
type SaleFilter struct {
	Status string `form:"status,default=all" binding:"oneof=pending synced failed all"`
	Page   int    `form:"page,default=1" binding:"min=1"`
	Limit  int    `form:"limit,default=50" binding:"min=1,max=200"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type SaleResponse struct {
	ID              int64           `json:"id"`
	LocalRef        string          `json:"local_ref"`
	ClientID        *int64          `json:"client_id"`
	WarehouseID     int64           `json:"warehouse_id"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	Discount        decimal.Decimal `json:"discount"`
	PaymentMethodID int64           `json:"payment_method_id"`
	Details         json.RawMessage `json:"details"`
	Payments        json.RawMessage `json:"payments"`
	Status          string          `json:"status"`
	CreatedAt       string          `json:"created_at"`
	SyncedAt        *string         `json:"synced_at,omitempty"`
	ServerSaleID    *int64          `json:"server_sale_id,omitempty"`
	ErrorMessage    *string         `json:"error_message,omitempty"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// MapSale converts a stored sale into its wire form.
func MapSale(s model.OfflineSale) SaleResponse {
	resp := SaleResponse{
		ID:              s.ID,
		LocalRef:        s.LocalRef,
		ClientID:        s.ClientID,
		WarehouseID:     s.WarehouseID,
		GrandTotal:      s.GrandTotal,
		PaidAmount:      s.PaidAmount,
		TaxAmount:       s.TaxAmount,
		Discount:        s.Discount,
		PaymentMethodID: s.PaymentMethodID,
		Details:         json.RawMessage(s.DetailsJSON),
		Payments:        json.RawMessage(s.PaymentsJSON),
		Status:          s.Status,
		CreatedAt:       s.CreatedAt.UTC().Format(time.RFC3339),
		ServerSaleID:    s.ServerSaleID,
		ErrorMessage:    s.ErrorMessage,
	}
	if s.SyncedAt != nil {
		at := s.SyncedAt.UTC().Format(time.RFC3339)
		resp.SyncedAt = &at
	}
	return resp
}
