package repository

import (
	"context"

	"github.com/adornodavid/aybcosteo-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RecetaRepository interface {
	Create(ctx context.Context, rec *model.Receta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Receta, error)
	List(ctx context.Context, nombre string) ([]model.Receta, error)
	Update(ctx context.Context, rec *model.Receta) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error

	UpdateCostoTx(tx *gorm.DB, id uuid.UUID, costo decimal.Decimal) error
	// RepreciarComponentesTx mirrors IngredienteRepository: re-derives
	// costo_parcial on recetasxplatillo and returns affected platillo IDs.
	RepreciarComponentesTx(tx *gorm.DB, id uuid.UUID, costo decimal.Decimal) ([]uuid.UUID, error)

	DB() *gorm.DB
}

type recetaRepo struct{ db *gorm.DB }

func NewRecetaRepository(db *gorm.DB) RecetaRepository { return &recetaRepo{db: db} }

func (r *recetaRepo) Create(ctx context.Context, rec *model.Receta) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *recetaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Receta, error) {
	var rec model.Receta
	err := r.db.WithContext(ctx).First(&rec, id).Error
	return &rec, err
}

func (r *recetaRepo) List(ctx context.Context, nombre string) ([]model.Receta, error) {
	var recetas []model.Receta
	q := r.db.WithContext(ctx).Where("activo = true")
	if nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+nombre+"%")
	}
	err := q.Order("nombre ASC").Find(&recetas).Error
	return recetas, err
}

func (r *recetaRepo) Update(ctx context.Context, rec *model.Receta) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *recetaRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Receta{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *recetaRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Receta{}).Where("id = ?", id).Update("activo", true).Error
}

func (r *recetaRepo) UpdateCostoTx(tx *gorm.DB, id uuid.UUID, costo decimal.Decimal) error {
	return tx.Model(&model.Receta{}).Where("id = ?", id).Update("costo", costo).Error
}

func (r *recetaRepo) RepreciarComponentesTx(tx *gorm.DB, id uuid.UUID, costo decimal.Decimal) ([]uuid.UUID, error) {
	if err := tx.Model(&model.RecetaPlatillo{}).
		Where("receta_id = ?", id).
		Update("costo_parcial", gorm.Expr("cantidad * ?", costo)).Error; err != nil {
		return nil, err
	}

	var platilloIDs []uuid.UUID
	err := tx.Model(&model.RecetaPlatillo{}).
		Where("receta_id = ?", id).
		Distinct().
		Pluck("platillo_id", &platilloIDs).Error
	return platilloIDs, err
}

func (r *recetaRepo) DB() *gorm.DB { return r.db }
