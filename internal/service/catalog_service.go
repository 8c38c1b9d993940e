package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/dto"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/infra"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/model"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/repository"
)

// CatalogService is the catalog mirror updater plus the read surface the host
// UI consumes. A refresh pulls a full snapshot from the remote authority and
// swaps the local mirror wholesale — never incremental deltas, so there is
// nothing to merge and nothing to conflict.
type CatalogService interface {
	RefreshProducts(ctx context.Context) (int64, error)
	RefreshClients(ctx context.Context) (int64, error)
	RefreshAll(ctx context.Context) (*dto.RefreshSummary, error)

	ListProducts(ctx context.Context) ([]model.Product, error)
	FindProductByCode(ctx context.Context, code string) (*model.Product, error)
	SearchProducts(ctx context.Context, query string) ([]model.Product, error)
	CountProducts(ctx context.Context) (int64, error)
	UpdateStock(ctx context.Context, productID int64, qty float64) error

	ListClients(ctx context.Context) ([]model.Client, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListWarehouses(ctx context.Context) ([]model.Warehouse, error)
	ListPaymentMethods(ctx context.Context) ([]model.PaymentMethod, error)
}

type catalogService struct {
	catalog repository.CatalogRepository
	syncLog repository.SyncLogRepository
	remote  infra.RemoteAuthority
}

func NewCatalogService(
	catalog repository.CatalogRepository,
	syncLog repository.SyncLogRepository,
	remote infra.RemoteAuthority,
) CatalogService {
	return &catalogService{catalog: catalog, syncLog: syncLog, remote: remote}
}

// logRefresh appends the audit record for one mirror refresh. Audit append
// failures are logged, not propagated: the refresh itself already succeeded
// or failed on its own terms.
func (s *catalogService) logRefresh(ctx context.Context, entity string, count int64, refreshErr error) {
	record := &model.SyncLog{
		EntityType:  entity,
		Operation:   "refresh",
		RecordCount: int(count),
		Status:      model.SyncStatusSuccess,
	}
	if refreshErr != nil {
		record.Status = model.SyncStatusError
		msg := refreshErr.Error()
		record.ErrorMessage = &msg
	}
	if err := s.syncLog.Append(ctx, record); err != nil {
		log.Error().Err(err).Str("entity", entity).Msg("catalog: failed to append sync log")
	}
}

func (s *catalogService) RefreshProducts(ctx context.Context) (int64, error) {
	snapshot, err := s.remote.FetchProducts(ctx)
	if err != nil {
		s.logRefresh(ctx, "products", 0, err)
		return 0, err
	}
	count, err := s.catalog.ReplaceProducts(ctx, snapshot)
	s.logRefresh(ctx, "products", count, err)
	if err != nil {
		return 0, err
	}
	log.Info().Int64("count", count).Msg("catalog: product mirror replaced")
	return count, nil
}

func (s *catalogService) RefreshClients(ctx context.Context) (int64, error) {
	snapshot, err := s.remote.FetchClients(ctx)
	if err != nil {
		s.logRefresh(ctx, "clients", 0, err)
		return 0, err
	}
	count, err := s.catalog.ReplaceClients(ctx, snapshot)
	s.logRefresh(ctx, "clients", count, err)
	if err != nil {
		return 0, err
	}
	log.Info().Int64("count", count).Msg("catalog: client mirror replaced")
	return count, nil
}

// RefreshAll refreshes every mirror. The first failure stops the run: a half
// refreshed catalog set is fine (each table swap is atomic on its own), but
// continuing against an unreachable remote just burns time.
func (s *catalogService) RefreshAll(ctx context.Context) (*dto.RefreshSummary, error) {
	summary := &dto.RefreshSummary{}
	var err error

	if summary.Products, err = s.RefreshProducts(ctx); err != nil {
		return summary, err
	}
	if summary.Clients, err = s.RefreshClients(ctx); err != nil {
		return summary, err
	}

	if summary.Categories, err = s.refreshCategories(ctx); err != nil {
		return summary, err
	}
	if summary.Warehouses, err = s.refreshWarehouses(ctx); err != nil {
		return summary, err
	}
	if summary.PaymentMethods, err = s.refreshPaymentMethods(ctx); err != nil {
		return summary, err
	}
	return summary, nil
}

func (s *catalogService) refreshCategories(ctx context.Context) (int64, error) {
	snapshot, err := s.remote.FetchCategories(ctx)
	if err != nil {
		s.logRefresh(ctx, "categories", 0, err)
		return 0, err
	}
	count, err := s.catalog.ReplaceCategories(ctx, snapshot)
	s.logRefresh(ctx, "categories", count, err)
	return count, err
}

func (s *catalogService) refreshWarehouses(ctx context.Context) (int64, error) {
	snapshot, err := s.remote.FetchWarehouses(ctx)
	if err != nil {
		s.logRefresh(ctx, "warehouses", 0, err)
		return 0, err
	}
	count, err := s.catalog.ReplaceWarehouses(ctx, snapshot)
	s.logRefresh(ctx, "warehouses", count, err)
	return count, err
}

func (s *catalogService) refreshPaymentMethods(ctx context.Context) (int64, error) {
	snapshot, err := s.remote.FetchPaymentMethods(ctx)
	if err != nil {
		s.logRefresh(ctx, "payment_methods", 0, err)
		return 0, err
	}
	count, err := s.catalog.ReplacePaymentMethods(ctx, snapshot)
	s.logRefresh(ctx, "payment_methods", count, err)
	return count, err
}

func (s *catalogService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.catalog.ListProducts(ctx)
}

func (s *catalogService) FindProductByCode(ctx context.Context, code string) (*model.Product, error) {
	return s.catalog.FindProductByCode(ctx, code)
}

func (s *catalogService) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	return s.catalog.SearchProducts(ctx, query)
}

func (s *catalogService) CountProducts(ctx context.Context) (int64, error) {
	return s.catalog.CountProducts(ctx)
}

func (s *catalogService) UpdateStock(ctx context.Context, productID int64, qty float64) error {
	return s.catalog.UpdateStock(ctx, productID, qty)
}

func (s *catalogService) ListClients(ctx context.Context) ([]model.Client, error) {
	return s.catalog.ListClients(ctx)
}

func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.catalog.ListCategories(ctx)
}

func (s *catalogService) ListWarehouses(ctx context.Context) ([]model.Warehouse, error) {
	return s.catalog.ListWarehouses(ctx)
}

func (s *catalogService) ListPaymentMethods(ctx context.Context) ([]model.PaymentMethod, error) {
	return s.catalog.ListPaymentMethods(ctx)
}
