package worker

// sync_cron.go
// Background goroutine that periodically runs a sync pass. It stays off the
// interactive path: the host UI can still trigger passes manually, the gate
// in SyncEngine keeps the two from overlapping.

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/infra"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/repository"
)

// StartSyncCron launches a goroutine that ticks every interval and drains the
// pending queue. A tick with nothing pending skips the pass entirely so an
// idle terminal does not grow its audit log. Respects ctx for shutdown.
func StartSyncCron(ctx context.Context, engine *SyncEngine, sales repository.SaleRepository, cb *infra.CircuitBreaker, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info().Dur("interval", interval).Msg("sync_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("sync_cron: shutting down")
				return
			case <-ticker.C:
				tick(ctx, engine, sales, cb)
			}
		}
	}()
}

func tick(ctx context.Context, engine *SyncEngine, sales repository.SaleRepository, cb *infra.CircuitBreaker) {
	// If the breaker is open, skip entirely — don't hammer a downed backend.
	if cb.State() == infra.CBOpen {
		log.Debug().Msg("sync_cron: circuit breaker is open, skipping tick")
		return
	}

	count, err := sales.CountPending(ctx)
	if err != nil {
		log.Error().Err(err).Msg("sync_cron: failed to count pending sales")
		return
	}
	if count == 0 {
		return
	}

	result, err := engine.RunPass(ctx)
	if err != nil {
		if errors.Is(err, ErrPassInProgress) {
			log.Debug().Msg("sync_cron: pass already running, skipping tick")
			return
		}
		log.Error().Err(err).Msg("sync_cron: pass failed to start")
		return
	}

	log.Info().
		Int("processed", result.Processed).
		Int("synced", result.Synced).
		Int("failed", result.Failed).
		Str("status", result.Status).
		Msg("sync_cron: pass finished")
}
