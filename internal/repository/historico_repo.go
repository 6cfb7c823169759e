package repository

import (
	"context"
	"time"

	"github.com/adornodavid/aybcosteo-sub001/internal/dto"
	"github.com/adornodavid/aybcosteo-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// HistoricoRepository is the data-access contract for the monthly snapshot
// ledger. The Tx methods are meant to run inside one transaction that holds
// the period advisory lock, so the exists-check and the subsequent insert or
// group update cannot interleave with a concurrent price event for the same
// (platillo, menu, month).
type HistoricoRepository interface {
	// LockPeriodTx serializes snapshot writers for one (platillo, menu, month)
	// triple. The lock is transaction-scoped: released on commit/rollback.
	LockPeriodTx(tx *gorm.DB, key int64) error
	// UnlockPeriod marks the end of the locked section once the transaction
	// has finished. Implementations whose lock already dies with the
	// transaction leave it empty.
	UnlockPeriod(key int64)
	// ExistsInPeriodTx reports whether any ledger row exists for the pair with
	// fecha_creacion in [desde, hasta).
	ExistsInPeriodTx(tx *gorm.DB, platilloID, menuID uuid.UUID, desde, hasta time.Time) (bool, error)
	// UpdateGrupoTx patches precio_venta / costo_porcentual on the existing
	// group, leaving cantidad / costo as originally snapshotted.
	UpdateGrupoTx(tx *gorm.DB, platilloID, menuID uuid.UUID, desde, hasta time.Time, precio, costoPct decimal.Decimal) (int64, error)
	InsertBatchTx(tx *gorm.DB, rows []model.Historico) error

	List(ctx context.Context, filter dto.HistoricoFilter) ([]model.Historico, int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type historicoRepo struct{ db *gorm.DB }

func NewHistoricoRepository(db *gorm.DB) HistoricoRepository { return &historicoRepo{db: db} }

func (r *historicoRepo) LockPeriodTx(tx *gorm.DB, key int64) error {
	return tx.Exec("SELECT pg_advisory_xact_lock(?)", key).Error
}

// UnlockPeriod is a no-op: pg_advisory_xact_lock has no explicit release and
// Postgres drops it when the transaction commits or rolls back.
func (r *historicoRepo) UnlockPeriod(int64) {}

func (r *historicoRepo) ExistsInPeriodTx(tx *gorm.DB, platilloID, menuID uuid.UUID, desde, hasta time.Time) (bool, error) {
	var count int64
	err := tx.Model(&model.Historico{}).
		Where("platillo_id = ? AND menu_id = ? AND fecha_creacion >= ? AND fecha_creacion < ?",
			platilloID, menuID, desde, hasta).
		Count(&count).Error
	return count > 0, err
}

func (r *historicoRepo) UpdateGrupoTx(tx *gorm.DB, platilloID, menuID uuid.UUID, desde, hasta time.Time, precio, costoPct decimal.Decimal) (int64, error) {
	res := tx.Model(&model.Historico{}).
		Where("platillo_id = ? AND menu_id = ? AND fecha_creacion >= ? AND fecha_creacion < ?",
			platilloID, menuID, desde, hasta).
		Updates(map[string]interface{}{
			"precio_venta":     precio,
			"costo_porcentual": costoPct,
		})
	return res.RowsAffected, res.Error
}

func (r *historicoRepo) InsertBatchTx(tx *gorm.DB, rows []model.Historico) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

func (r *historicoRepo) List(ctx context.Context, filter dto.HistoricoFilter) ([]model.Historico, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}

	q := r.db.WithContext(ctx).Model(&model.Historico{})

	if filter.PlatilloID != "" {
		q = q.Where("platillo_id = ?", filter.PlatilloID)
	}
	if filter.MenuID != "" {
		q = q.Where("menu_id = ?", filter.MenuID)
	}
	if filter.HotelID != "" {
		q = q.Where("hotel_id = ?", filter.HotelID)
	}
	if filter.Mes != "" {
		if desde, err := time.Parse("2006-01", filter.Mes); err == nil {
			q = q.Where("fecha_creacion >= ? AND fecha_creacion < ?", desde, desde.AddDate(0, 1, 0))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.Historico
	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("fecha_creacion DESC").
		Limit(filter.Limit).
		Offset(offset).
		Preload("Ingrediente").
		Preload("Receta").
		Find(&rows).Error
	return rows, total, err
}

func (r *historicoRepo) DB() *gorm.DB { return r.db }
