package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/dto"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/model"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/repository"
)

// ErrMalformedPayload rejects line-item/tender payloads that are not
// valid JSON. The core forwards them opaquely, so this is the only
// structural check it can make.
var ErrMalformedPayload = errors.New("details and payments must be valid JSON")

// SaleService is the sale enqueuer: it records completed local sales durably,
// keyed by the caller's idempotency token, without ever touching the network.
type SaleService interface {
	// Enqueue writes exactly one pending row. repository.ErrDuplicateLocalRef
	// signals the sale was already recorded — callers retrying after a UI
	// timeout treat it as confirmation, not failure.
	Enqueue(ctx context.Context, req dto.EnqueueSaleRequest) (*model.OfflineSale, error)

	ListPending(ctx context.Context) ([]model.OfflineSale, error)
	CountPending(ctx context.Context) (int64, error)
	List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)

	// Requeue is the explicit failed → pending flip. Nothing requeues
	// automatically; transient and permanent failures stay distinguishable
	// in the audit trail.
	Requeue(ctx context.Context, id int64) error
}

type saleService struct {
	sales repository.SaleRepository
}

func NewSaleService(sales repository.SaleRepository) SaleService {
	return &saleService{sales: sales}
}

func (s *saleService) Enqueue(ctx context.Context, req dto.EnqueueSaleRequest) (*model.OfflineSale, error) {
	// Amounts are recorded as the till reports them. A sale with a balance
	// due (credit, partial payment) is still a completed sale and must land
	// in the queue; the remote ledger judges it, never the terminal.
	if !json.Valid(req.Details) || !json.Valid(req.Payments) {
		return nil, ErrMalformedPayload
	}

	sale := &model.OfflineSale{
		LocalRef:        req.LocalRef,
		ClientID:        req.ClientID,
		WarehouseID:     req.WarehouseID,
		GrandTotal:      req.GrandTotal,
		PaidAmount:      req.PaidAmount,
		TaxAmount:       req.TaxAmount,
		Discount:        req.Discount,
		PaymentMethodID: req.PaymentMethodID,
		DetailsJSON:     string(req.Details),
		PaymentsJSON:    string(req.Payments),
	}

	if err := s.sales.Enqueue(ctx, sale); err != nil {
		if errors.Is(err, repository.ErrDuplicateLocalRef) {
			log.Info().Str("local_ref", req.LocalRef).Msg("sale: duplicate enqueue, already recorded")
		}
		return nil, err
	}

	log.Info().
		Str("local_ref", sale.LocalRef).
		Int64("id", sale.ID).
		Str("grand_total", sale.GrandTotal.String()).
		Msg("sale: enqueued")
	return sale, nil
}

func (s *saleService) ListPending(ctx context.Context) ([]model.OfflineSale, error) {
	return s.sales.ListPending(ctx)
}

func (s *saleService) CountPending(ctx context.Context) (int64, error) {
	return s.sales.CountPending(ctx)
}

func (s *saleService) List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	offset := (filter.Page - 1) * filter.Limit
	sales, total, err := s.sales.List(ctx, filter.Status, filter.Limit, offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.SaleListResponse{
		Data:  make([]dto.SaleResponse, 0, len(sales)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for _, sale := range sales {
		resp.Data = append(resp.Data, dto.MapSale(sale))
	}
	return resp, nil
}

func (s *saleService) Requeue(ctx context.Context, id int64) error {
	if err := s.sales.Requeue(ctx, id); err != nil {
		return err
	}
	log.Info().Int64("id", id).Msg("sale: requeued for sync")
	return nil
}
