package infra

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/model"
)

func queuedSale() *model.OfflineSale {
	return &model.OfflineSale{
		ID:              1,
		LocalRef:        "T1-000042",
		WarehouseID:     1,
		GrandTotal:      decimal.NewFromFloat(25.50),
		PaidAmount:      decimal.NewFromFloat(30),
		PaymentMethodID: 1,
		DetailsJSON:     `[{"product_id":3,"qty":2}]`,
		PaymentsJSON:    `[{"method_id":1,"amount":"30"}]`,
		CreatedAt:       time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestSubmitSale_Accepted(t *testing.T) {
	var received map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/pos/sales", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sale_id": 7701}`))
	}))
	defer srv.Close()

	client := NewRemoteClient(srv.URL, "test-key", time.Second)
	serverID, err := client.SubmitSale(context.Background(), queuedSale())

	require.NoError(t, err)
	assert.Equal(t, int64(7701), serverID)

	// Amounts travel as strings, payloads as the captured raw JSON
	assert.Equal(t, "T1-000042", received["local_ref"])
	assert.Equal(t, "25.5", received["grand_total"])
	assert.Equal(t, "2025-06-01T09:00:00Z", received["created_at"])
}

func TestSubmitSale_RejectedWithDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail": "accounting period closed"}`))
	}))
	defer srv.Close()

	client := NewRemoteClient(srv.URL, "", time.Second)
	_, err := client.SubmitSale(context.Background(), queuedSale())

	require.Error(t, err)
	assert.True(t, IsRejection(err))
	assert.Contains(t, err.Error(), "accounting period closed")
	assert.Contains(t, err.Error(), "422")
}

func TestSubmitSale_ServerErrorIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewRemoteClient(srv.URL, "", time.Second)
	_, err := client.SubmitSale(context.Background(), queuedSale())

	require.Error(t, err)
	assert.True(t, IsUnreachable(err))
	assert.False(t, IsRejection(err))
}

func TestSubmitSale_ConnectionRefused(t *testing.T) {
	// Nothing listens here
	client := NewRemoteClient("http://127.0.0.1:1", "", 200*time.Millisecond)
	_, err := client.SubmitSale(context.Background(), queuedSale())

	require.Error(t, err)
	assert.True(t, IsUnreachable(err))
}

func TestSubmitSale_MalformedResponseIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := NewRemoteClient(srv.URL, "", time.Second)
	_, err := client.SubmitSale(context.Background(), queuedSale())

	require.Error(t, err)
	assert.True(t, IsUnreachable(err))
}

func TestFetchProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/pos/products", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id": 1, "code": "1001", "name": "Espresso Beans", "price": "18.50", "stock_qty": 40},
			{"id": 2, "code": "1002", "name": "Mineral Water", "price": "1.25", "stock_qty": 240.5}
		]`))
	}))
	defer srv.Close()

	client := NewRemoteClient(srv.URL, "", time.Second)
	products, err := client.FetchProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "1001", products[0].Code)
	assert.True(t, decimal.NewFromFloat(18.50).Equal(products[0].Price))
	assert.Equal(t, 240.5, products[1].StockQty)
}

func TestFetchProducts_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewRemoteClient(srv.URL, "bad-key", time.Second)
	_, err := client.FetchProducts(context.Background())

	require.Error(t, err)
	assert.True(t, IsUnreachable(err))
}
