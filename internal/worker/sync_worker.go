package worker

// sync_worker.go
// Drains the pending offline-sale queue against the remote authority.
// One pass = one sequential FIFO sweep; each entry gets exactly one
// submission attempt and its own committed terminal transition, so a crash or
// cancellation between entries never leaves a half-applied state.

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/infra"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/model"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/repository"
)

// ErrPassInProgress is returned when a pass is requested while another is
// still running against the same store. Two overlapping passes could race to
// mark the same entry, so the gate is mandatory, not advisory.
var ErrPassInProgress = errors.New("sync pass already in progress")

// PassResult summarizes one pass for the caller; the same numbers land in the
// sync_log audit record.
type PassResult struct {
	Processed int
	Synced    int
	Failed    int
	Status    string // success | partial | error
	LastError string
}

// SyncEngine reconciles the offline sale queue with the remote ledger.
type SyncEngine struct {
	mu      sync.Mutex
	sales   repository.SaleRepository
	syncLog repository.SyncLogRepository
	remote  infra.RemoteAuthority
	cb      *infra.CircuitBreaker
}

func NewSyncEngine(
	sales repository.SaleRepository,
	syncLog repository.SyncLogRepository,
	remote infra.RemoteAuthority,
	cb *infra.CircuitBreaker,
) *SyncEngine {
	return &SyncEngine{sales: sales, syncLog: syncLog, remote: remote, cb: cb}
}

// RunPass executes one sync pass:
//  1. list pending entries oldest-first
//  2. per entry, exactly one remote submission — no inner retry loop
//  3. success → mark synced; rejection/unreachable → mark failed
//  4. a failure on one entry never aborts the rest of the pass
//  5. append exactly one sync_log record for the pass
//
// Submissions are sequential to preserve the terminal's chronological order
// on the remote ledger. Cancellation between entries truncates the pass;
// entries not yet attempted simply stay pending.
func (e *SyncEngine) RunPass(ctx context.Context) (*PassResult, error) {
	if !e.mu.TryLock() {
		return nil, ErrPassInProgress
	}
	defer e.mu.Unlock()

	pending, err := e.sales.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	result := &PassResult{}
	for i := range pending {
		if ctx.Err() != nil {
			log.Info().Int("processed", result.Processed).Msg("sync: pass cancelled, remaining entries stay pending")
			break
		}

		entry := &pending[i]
		serverID, submitErr := e.submit(ctx, entry)

		if submitErr == nil {
			if err := e.sales.MarkSynced(ctx, entry.ID, serverID); err != nil {
				// Mismatch or storage trouble. The entry keeps whatever
				// state it has; the pass records the problem and moves on.
				log.Error().Err(err).Int64("id", entry.ID).Msg("sync: mark synced failed")
				result.Processed++
				result.Failed++
				result.LastError = err.Error()
				continue
			}
			log.Info().
				Int64("id", entry.ID).
				Str("local_ref", entry.LocalRef).
				Int64("server_sale_id", serverID).
				Msg("sync: sale synced")
			result.Processed++
			result.Synced++
			continue
		}

		if errors.Is(submitErr, infra.ErrCircuitOpen) {
			// No attempt was made; everything from here on stays pending.
			log.Warn().Int("processed", result.Processed).Msg("sync: circuit open, ending pass early")
			break
		}
		if ctx.Err() != nil {
			// The submission died with the context, not the remote. Leave
			// the entry pending rather than branding it failed.
			log.Info().Int("processed", result.Processed).Msg("sync: pass cancelled mid-submission")
			break
		}

		result.Processed++
		result.Failed++
		result.LastError = submitErr.Error()

		if err := e.sales.MarkFailed(ctx, entry.ID, submitErr.Error()); err != nil {
			log.Error().Err(err).Int64("id", entry.ID).Msg("sync: mark failed failed")
			continue
		}
		if infra.IsRejection(submitErr) {
			log.Warn().
				Int64("id", entry.ID).
				Str("local_ref", entry.LocalRef).
				Err(submitErr).
				Msg("sync: sale rejected by remote")
		} else {
			log.Warn().
				Int64("id", entry.ID).
				Str("local_ref", entry.LocalRef).
				Err(submitErr).
				Msg("sync: sale submission failed")
		}
	}

	result.Status = passStatus(result)
	e.appendPassLog(ctx, result)
	return result, nil
}

// submit performs the single remote attempt for one entry, routed through the
// circuit breaker so a dead backend fails fast instead of timing out per
// entry.
func (e *SyncEngine) submit(ctx context.Context, entry *model.OfflineSale) (int64, error) {
	var serverID int64
	err := e.cb.Execute(func() error {
		id, err := e.remote.SubmitSale(ctx, entry)
		if err != nil {
			return err
		}
		serverID = id
		return nil
	})
	return serverID, err
}

func passStatus(r *PassResult) string {
	switch {
	case r.Failed == 0:
		return model.SyncStatusSuccess
	case r.Synced > 0:
		return model.SyncStatusPartial
	default:
		return model.SyncStatusError
	}
}

// appendPassLog writes the one audit record per pass. If the append itself
// fails the pass outcome is still committed per entry; log and move on.
func (e *SyncEngine) appendPassLog(ctx context.Context, r *PassResult) {
	record := &model.SyncLog{
		EntityType:  "offline_sales",
		Operation:   "sync",
		RecordCount: r.Processed,
		Status:      r.Status,
	}
	if r.LastError != "" {
		msg := r.LastError
		record.ErrorMessage = &msg
	}
	if err := e.syncLog.Append(ctx, record); err != nil {
		log.Error().Err(err).Msg("sync: failed to append pass log")
	}
}
