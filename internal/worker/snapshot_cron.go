package worker

// snapshot_cron.go
// Background goroutine that periodically walks the active platillo ↔ menu
// asignaciones and fans out the monthly snapshot for any pair missing its
// current-month group. On the first tick after a month rollover this
// materializes the fresh groups even when no price event has arrived yet;
// pairs whose group already exists are left untouched, so the cron never
// overwrites values stamped by a real price event. Failed applications are
// parked in dlq:historico.

import (
	"context"
	"fmt"
	"time"

	"github.com/adornodavid/aybcosteo-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// SnapshotApplier creates the monthly snapshot group for one asignacion when
// it is missing. Satisfied by the historico service; kept narrow so the cron
// does not depend on the service layer.
type SnapshotApplier interface {
	AplicarSiFalta(ctx context.Context, platilloID, menuID uuid.UUID, precioVenta, costoPorcentual decimal.Decimal) error
}

// SnapshotCronConfig holds all dependencies for the snapshot goroutine.
type SnapshotCronConfig struct {
	Menus    repository.MenuRepository
	Applier  SnapshotApplier
	RDB      *redis.Client
	Interval time.Duration
}

// StartSnapshotCron launches a background goroutine that ticks every
// cfg.Interval and creates the missing current-month groups over all active
// asignaciones. It respects the context for graceful shutdown.
func StartSnapshotCron(ctx context.Context, cfg SnapshotCronConfig) {
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Msg("snapshot_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("snapshot_cron: shutting down")
				return
			case <-ticker.C:
				processSnapshots(ctx, cfg)
			}
		}
	}()
}

func processSnapshots(ctx context.Context, cfg SnapshotCronConfig) {
	asignaciones, err := cfg.Menus.ListAsignacionesActivas(ctx)
	if err != nil {
		log.Error().Err(err).Msg("snapshot_cron: failed to list asignaciones")
		return
	}
	if len(asignaciones) == 0 {
		return
	}

	log.Info().Int("count", len(asignaciones)).Msg("snapshot_cron: ensuring current-month groups")

	cien := decimal.NewFromInt(100)
	failed := 0
	for i := range asignaciones {
		a := &asignaciones[i]

		// Cron has no caller-supplied cost percentage, so derive it from the
		// platillo's administrative cost. The value is only used when the
		// month's group is missing and has to be created.
		costoPct := decimal.Zero
		if a.Platillo != nil && a.PrecioVenta.IsPositive() {
			costoPct = a.Platillo.CostoAdministrativo.Div(a.PrecioVenta).Mul(cien).Round(2)
		}

		if err := cfg.Applier.AplicarSiFalta(ctx, a.PlatilloID, a.MenuID, a.PrecioVenta, costoPct); err != nil {
			failed++
			payload := fmt.Sprintf(`{"platillo_id":"%s","menu_id":"%s"}`, a.PlatilloID, a.MenuID)
			SendToDLQ(ctx, cfg.RDB, QueueHistorico, "snapshot", []byte(payload), err.Error(), 1)
		}
	}

	if failed > 0 {
		log.Warn().Int("failed", failed).Int("total", len(asignaciones)).Msg("snapshot_cron: some snapshots failed")
	}
}
