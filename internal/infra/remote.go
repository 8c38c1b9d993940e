package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/model"
)

// RemoteAuthority is the narrow contract the terminal core consumes. The real
// backend owns canonical catalog and sales data; the terminal never implements
// it, only calls it.
type RemoteAuthority interface {
	SubmitSale(ctx context.Context, sale *model.OfflineSale) (int64, error)
	FetchProducts(ctx context.Context) ([]model.Product, error)
	FetchClients(ctx context.Context) ([]model.Client, error)
	FetchCategories(ctx context.Context) ([]model.Category, error)
	FetchWarehouses(ctx context.Context) ([]model.Warehouse, error)
	FetchPaymentMethods(ctx context.Context) ([]model.PaymentMethod, error)
}

// RejectionError means the remote explicitly refused a submitted sale
// (validation, closed period, …). Not retryable: the entry stays failed until
// an operator requeues it.
type RejectionError struct {
	StatusCode int
	Message    string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("remote rejected sale (%d): %s", e.StatusCode, e.Message)
}

// UnreachableError means the remote could not be reached or did not answer
// sanely (transport error, timeout, 5xx). Retryable via explicit requeue.
type UnreachableError struct {
	Cause string
}

func (e *UnreachableError) Error() string {
	return "remote unreachable: " + e.Cause
}

// IsRejection reports whether err is an explicit remote rejection.
func IsRejection(err error) bool {
	var re *RejectionError
	return errors.As(err, &re)
}

// IsUnreachable reports whether err is a transport-level failure.
func IsUnreachable(err error) bool {
	var ue *UnreachableError
	return errors.As(err, &ue)
}

// RemoteClient talks HTTP/JSON to the backend. All calls carry the terminal
// API key; the per-request timeout comes from the http.Client.
type RemoteClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewRemoteClient(baseURL, apiKey string, timeout time.Duration) *RemoteClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RemoteClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ RemoteAuthority = (*RemoteClient)(nil)

// submitSaleRequest is the wire form of an offline sale. Line items and
// tenders travel as the raw JSON the terminal captured at sale time.
type submitSaleRequest struct {
	LocalRef        string          `json:"local_ref"`
	ClientID        *int64          `json:"client_id,omitempty"`
	WarehouseID     int64           `json:"warehouse_id"`
	GrandTotal      string          `json:"grand_total"`
	PaidAmount      string          `json:"paid_amount"`
	TaxAmount       string          `json:"tax_amount"`
	Discount        string          `json:"discount"`
	PaymentMethodID int64           `json:"payment_method_id"`
	Details         json.RawMessage `json:"details"`
	Payments        json.RawMessage `json:"payments"`
	CreatedAt       string          `json:"created_at"`
}

type submitSaleResponse struct {
	SaleID int64 `json:"sale_id"`
}

// SubmitSale posts one queued sale. The remote deduplicates on local_ref, so a
// resubmission after a lost response returns the same server sale id.
func (c *RemoteClient) SubmitSale(ctx context.Context, sale *model.OfflineSale) (int64, error) {
	payload := submitSaleRequest{
		LocalRef:        sale.LocalRef,
		ClientID:        sale.ClientID,
		WarehouseID:     sale.WarehouseID,
		GrandTotal:      sale.GrandTotal.String(),
		PaidAmount:      sale.PaidAmount.String(),
		TaxAmount:       sale.TaxAmount.String(),
		Discount:        sale.Discount.String(),
		PaymentMethodID: sale.PaymentMethodID,
		Details:         json.RawMessage(sale.DetailsJSON),
		Payments:        json.RawMessage(sale.PaymentsJSON),
		CreatedAt:       sale.CreatedAt.UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("remote: marshal sale: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/pos/sales", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("remote: create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &UnreachableError{Cause: err.Error()}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var result submitSaleResponse
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return 0, &UnreachableError{Cause: "malformed response: " + err.Error()}
		}
		return result.SaleID, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return 0, &RejectionError{StatusCode: resp.StatusCode, Message: readErrorDetail(resp.Body)}
	default:
		return 0, &UnreachableError{Cause: fmt.Sprintf("server returned %d", resp.StatusCode)}
	}
}

// FetchProducts pulls the complete product snapshot.
func (c *RemoteClient) FetchProducts(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	if err := c.getJSON(ctx, "/api/pos/products", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchClients pulls the complete client snapshot.
func (c *RemoteClient) FetchClients(ctx context.Context) ([]model.Client, error) {
	var out []model.Client
	if err := c.getJSON(ctx, "/api/pos/clients", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RemoteClient) FetchCategories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	if err := c.getJSON(ctx, "/api/pos/categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RemoteClient) FetchWarehouses(ctx context.Context) ([]model.Warehouse, error) {
	var out []model.Warehouse
	if err := c.getJSON(ctx, "/api/pos/warehouses", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RemoteClient) FetchPaymentMethods(ctx context.Context) ([]model.PaymentMethod, error) {
	var out []model.PaymentMethod
	if err := c.getJSON(ctx, "/api/pos/payment-methods", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RemoteClient) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("remote: create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UnreachableError{Cause: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &UnreachableError{Cause: fmt.Sprintf("server returned %d for %s", resp.StatusCode, path)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &UnreachableError{Cause: "malformed response: " + err.Error()}
	}
	return nil
}

func (c *RemoteClient) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

// readErrorDetail extracts {"detail": "..."} from an error body, falling back
// to the raw body when it is not JSON.
func readErrorDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return "no detail"
	}
	var envelope struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Detail != "" {
			return envelope.Detail
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return string(raw)
}
