package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/dto"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/model"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/repository"
)

// ── In-memory SaleRepository stub ─────────────────────────────────────────────

type stubSaleRepo struct {
	byRef  map[string]*model.OfflineSale
	nextID int64
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{byRef: make(map[string]*model.OfflineSale)}
}

func (r *stubSaleRepo) Enqueue(_ context.Context, s *model.OfflineSale) error {
	if _, ok := r.byRef[s.LocalRef]; ok {
		return repository.ErrDuplicateLocalRef
	}
	r.nextID++
	s.ID = r.nextID
	s.Status = model.SaleStatusPending
	cloned := *s
	r.byRef[s.LocalRef] = &cloned
	return nil
}

func (r *stubSaleRepo) ListPending(_ context.Context) ([]model.OfflineSale, error) {
	var pending []model.OfflineSale
	for _, s := range r.byRef {
		if s.Status == model.SaleStatusPending {
			pending = append(pending, *s)
		}
	}
	return pending, nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, _ int64) (*model.OfflineSale, error) {
	return nil, nil
}
func (r *stubSaleRepo) FindByLocalRef(_ context.Context, ref string) (*model.OfflineSale, error) {
	s, ok := r.byRef[ref]
	if !ok {
		return nil, nil
	}
	return s, nil
}
func (r *stubSaleRepo) MarkSynced(_ context.Context, _ int64, _ int64) error { return nil }
func (r *stubSaleRepo) MarkFailed(_ context.Context, _ int64, _ string) error {
	return nil
}
func (r *stubSaleRepo) Requeue(_ context.Context, _ int64) error { return nil }
func (r *stubSaleRepo) CountPending(_ context.Context) (int64, error) {
	return int64(len(r.byRef)), nil
}
func (r *stubSaleRepo) List(_ context.Context, _ string, _, _ int) ([]model.OfflineSale, int64, error) {
	return nil, 0, nil
}

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── helpers ───────────────────────────────────────────────────────────────────

func enqueueRequest(localRef string) dto.EnqueueSaleRequest {
	return dto.EnqueueSaleRequest{
		LocalRef:        localRef,
		WarehouseID:     1,
		GrandTotal:      decimal.NewFromFloat(25.50),
		PaidAmount:      decimal.NewFromFloat(30),
		PaymentMethodID: 1,
		Details:         json.RawMessage(`[{"product_id":1,"qty":2}]`),
		Payments:        json.RawMessage(`[{"method_id":1,"amount":"30"}]`),
	}
}

// ── Enqueue ───────────────────────────────────────────────────────────────────

func TestEnqueue_RecordsPendingSale(t *testing.T) {
	repo := newStubSaleRepo()
	svc := NewSaleService(repo)

	sale, err := svc.Enqueue(context.Background(), enqueueRequest("T1-001"))

	require.NoError(t, err)
	assert.Equal(t, model.SaleStatusPending, sale.Status)
	assert.Equal(t, "T1-001", sale.LocalRef)
	assert.True(t, decimal.NewFromFloat(25.50).Equal(sale.GrandTotal))
}

func TestEnqueue_DuplicateSurfacesAsDuplicate(t *testing.T) {
	repo := newStubSaleRepo()
	svc := NewSaleService(repo)

	_, err := svc.Enqueue(context.Background(), enqueueRequest("T1-001"))
	require.NoError(t, err)

	_, err = svc.Enqueue(context.Background(), enqueueRequest("T1-001"))
	assert.ErrorIs(t, err, repository.ErrDuplicateLocalRef)

	count, _ := repo.CountPending(context.Background())
	assert.Equal(t, int64(1), count)
}

func TestEnqueue_CreditSaleWithBalanceDueIsRecorded(t *testing.T) {
	repo := newStubSaleRepo()
	svc := NewSaleService(repo)

	// Partial payment at the till: the sale is done, the balance is the
	// remote ledger's business. It must still land in the queue.
	req := enqueueRequest("T1-002")
	req.GrandTotal = decimal.NewFromFloat(100)
	req.PaidAmount = decimal.NewFromFloat(40)

	sale, err := svc.Enqueue(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, model.SaleStatusPending, sale.Status)
	assert.True(t, decimal.NewFromFloat(100).Equal(sale.GrandTotal))
	assert.True(t, decimal.NewFromFloat(40).Equal(sale.PaidAmount))

	stored, err := repo.FindByLocalRef(context.Background(), "T1-002")
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestEnqueue_MalformedPayload(t *testing.T) {
	svc := NewSaleService(newStubSaleRepo())

	req := enqueueRequest("T1-004")
	req.Details = json.RawMessage(`{not json`)

	_, err := svc.Enqueue(context.Background(), req)
	assert.ErrorIs(t, err, ErrMalformedPayload)
}
