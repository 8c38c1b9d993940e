package repository

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/model"
)

func sale(localRef string) *model.OfflineSale {
	return &model.OfflineSale{
		LocalRef:        localRef,
		WarehouseID:     1,
		GrandTotal:      decimal.NewFromFloat(25.50),
		PaidAmount:      decimal.NewFromFloat(30),
		PaymentMethodID: 1,
		DetailsJSON:     `[{"product_id":1,"qty":2}]`,
		PaymentsJSON:    `[{"method_id":1,"amount":"30"}]`,
	}
}

// ── Enqueue ───────────────────────────────────────────────────────────────────

func TestEnqueue_DuplicateLocalRef(t *testing.T) {
	repo := NewSaleRepository(newTestDB(t))

	require.NoError(t, repo.Enqueue(ctx(), sale("ref-001")))

	err := repo.Enqueue(ctx(), sale("ref-001"))
	assert.ErrorIs(t, err, ErrDuplicateLocalRef)

	count, err := repo.CountPending(ctx())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestEnqueue_ForcesCleanPendingRow(t *testing.T) {
	repo := NewSaleRepository(newTestDB(t))

	// Caller-supplied reconciliation state must never survive the insert.
	serverID := int64(999)
	msg := "stale"
	s := sale("ref-002")
	s.ID = 42
	s.Status = model.SaleStatusSynced
	s.ServerSaleID = &serverID
	s.ErrorMessage = &msg

	require.NoError(t, repo.Enqueue(ctx(), s))

	got, err := repo.FindByLocalRef(ctx(), "ref-002")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.SaleStatusPending, got.Status)
	assert.Nil(t, got.ServerSaleID)
	assert.Nil(t, got.SyncedAt)
	assert.Nil(t, got.ErrorMessage)
	assert.False(t, got.CreatedAt.IsZero())
}

// ── Queue ordering ────────────────────────────────────────────────────────────

func TestListPending_OldestFirst(t *testing.T) {
	repo := NewSaleRepository(newTestDB(t))

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	for i, ref := range []string{"ref-c", "ref-a", "ref-b"} {
		s := sale(ref)
		// Deliberately out of insert order
		s.CreatedAt = base.Add(time.Duration(2-i) * time.Minute)
		require.NoError(t, repo.Enqueue(ctx(), s))
	}

	pending, err := repo.ListPending(ctx())
	require.NoError(t, err)
	require.Len(t, pending, 3)
	assert.Equal(t, "ref-b", pending[0].LocalRef)
	assert.Equal(t, "ref-a", pending[1].LocalRef)
	assert.Equal(t, "ref-c", pending[2].LocalRef)
}

// ── Terminal transitions ──────────────────────────────────────────────────────

func TestMarkSynced(t *testing.T) {
	repo := NewSaleRepository(newTestDB(t))

	s := sale("ref-010")
	require.NoError(t, repo.Enqueue(ctx(), s))
	require.NoError(t, repo.MarkSynced(ctx(), s.ID, 5001))

	got, err := repo.FindByID(ctx(), s.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.SaleStatusSynced, got.Status)
	require.NotNil(t, got.ServerSaleID)
	assert.Equal(t, int64(5001), *got.ServerSaleID)
	assert.NotNil(t, got.SyncedAt)

	pending, err := repo.ListPending(ctx())
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestMarkSynced_IdempotentReapply(t *testing.T) {
	repo := NewSaleRepository(newTestDB(t))

	s := sale("ref-011")
	require.NoError(t, repo.Enqueue(ctx(), s))
	require.NoError(t, repo.MarkSynced(ctx(), s.ID, 5001))

	// Same server id again is a no-op
	assert.NoError(t, repo.MarkSynced(ctx(), s.ID, 5001))

	// A different server id for an already synced sale is corruption
	assert.ErrorIs(t, repo.MarkSynced(ctx(), s.ID, 6002), ErrServerSaleIDMismatch)
}

func TestMarkSynced_FromFailedRejected(t *testing.T) {
	repo := NewSaleRepository(newTestDB(t))

	s := sale("ref-012")
	require.NoError(t, repo.Enqueue(ctx(), s))
	require.NoError(t, repo.MarkFailed(ctx(), s.ID, "closed period"))

	assert.ErrorIs(t, repo.MarkSynced(ctx(), s.ID, 5001), ErrInvalidTransition)
}

func TestMarkFailed(t *testing.T) {
	repo := NewSaleRepository(newTestDB(t))

	s := sale("ref-020")
	require.NoError(t, repo.Enqueue(ctx(), s))
	require.NoError(t, repo.MarkFailed(ctx(), s.ID, "remote rejected sale (422): bad warehouse"))

	got, err := repo.FindByID(ctx(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SaleStatusFailed, got.Status)
	require.NotNil(t, got.ErrorMessage)
	assert.Contains(t, *got.ErrorMessage, "bad warehouse")
}

func TestMarkFailed_SyncedIsTerminal(t *testing.T) {
	repo := NewSaleRepository(newTestDB(t))

	s := sale("ref-021")
	require.NoError(t, repo.Enqueue(ctx(), s))
	require.NoError(t, repo.MarkSynced(ctx(), s.ID, 5001))

	assert.ErrorIs(t, repo.MarkFailed(ctx(), s.ID, "late failure"), ErrInvalidTransition)
}

// ── Requeue ───────────────────────────────────────────────────────────────────

func TestRequeue(t *testing.T) {
	repo := NewSaleRepository(newTestDB(t))

	s := sale("ref-030")
	require.NoError(t, repo.Enqueue(ctx(), s))
	require.NoError(t, repo.MarkFailed(ctx(), s.ID, "timeout"))

	require.NoError(t, repo.Requeue(ctx(), s.ID))

	got, err := repo.FindByID(ctx(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SaleStatusPending, got.Status)
	assert.Nil(t, got.ErrorMessage)
}

func TestRequeue_PendingIsNoOp(t *testing.T) {
	repo := NewSaleRepository(newTestDB(t))

	s := sale("ref-031")
	require.NoError(t, repo.Enqueue(ctx(), s))
	assert.NoError(t, repo.Requeue(ctx(), s.ID))
}

func TestRequeue_SyncedRejected(t *testing.T) {
	repo := NewSaleRepository(newTestDB(t))

	s := sale("ref-032")
	require.NoError(t, repo.Enqueue(ctx(), s))
	require.NoError(t, repo.MarkSynced(ctx(), s.ID, 5001))

	assert.ErrorIs(t, repo.Requeue(ctx(), s.ID), ErrInvalidTransition)
}

func TestRequeue_UnknownSale(t *testing.T) {
	repo := NewSaleRepository(newTestDB(t))

	assert.ErrorIs(t, repo.Requeue(ctx(), 404), gorm.ErrRecordNotFound)
}

// ── History paging ────────────────────────────────────────────────────────────

func TestList_FilterAndPaging(t *testing.T) {
	repo := NewSaleRepository(newTestDB(t))

	for i := 0; i < 5; i++ {
		s := sale(string(rune('a'+i)) + "-ref")
		s.CreatedAt = time.Date(2025, 6, 1, 9, i, 0, 0, time.UTC)
		require.NoError(t, repo.Enqueue(ctx(), s))
	}
	first, err := repo.FindByLocalRef(ctx(), "a-ref")
	require.NoError(t, err)
	require.NoError(t, repo.MarkFailed(ctx(), first.ID, "rejected"))

	failed, total, err := repo.List(ctx(), model.SaleStatusFailed, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, failed, 1)
	assert.Equal(t, "a-ref", failed[0].LocalRef)

	all, total, err := repo.List(ctx(), "all", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, all, 2)
	// Newest first for history views
	assert.Equal(t, "e-ref", all[0].LocalRef)
}
