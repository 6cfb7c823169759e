package repository

import (
	"context"

	"github.com/adornodavid/aybcosteo-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type IngredienteRepository interface {
	Create(ctx context.Context, i *model.Ingrediente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ingrediente, error)
	List(ctx context.Context, nombre string) ([]model.Ingrediente, error)
	Update(ctx context.Context, i *model.Ingrediente) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error

	// Cost propagation — all inside the caller's transaction.
	UpdateCostoTx(tx *gorm.DB, id uuid.UUID, costo decimal.Decimal) error
	// RepreciarComponentesTx re-derives costo_parcial = cantidad × costo for
	// every platillo componente referencing the ingrediente, returning the
	// affected platillo IDs so the caller can recompute their totals.
	RepreciarComponentesTx(tx *gorm.DB, id uuid.UUID, costo decimal.Decimal) ([]uuid.UUID, error)

	DB() *gorm.DB
}

type ingredienteRepo struct{ db *gorm.DB }

func NewIngredienteRepository(db *gorm.DB) IngredienteRepository { return &ingredienteRepo{db: db} }

func (r *ingredienteRepo) Create(ctx context.Context, i *model.Ingrediente) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *ingredienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Ingrediente, error) {
	var i model.Ingrediente
	err := r.db.WithContext(ctx).First(&i, id).Error
	return &i, err
}

func (r *ingredienteRepo) List(ctx context.Context, nombre string) ([]model.Ingrediente, error) {
	var ingredientes []model.Ingrediente
	q := r.db.WithContext(ctx).Where("activo = true")
	if nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+nombre+"%")
	}
	err := q.Order("nombre ASC").Find(&ingredientes).Error
	return ingredientes, err
}

func (r *ingredienteRepo) Update(ctx context.Context, i *model.Ingrediente) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *ingredienteRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Ingrediente{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *ingredienteRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Ingrediente{}).Where("id = ?", id).Update("activo", true).Error
}

func (r *ingredienteRepo) UpdateCostoTx(tx *gorm.DB, id uuid.UUID, costo decimal.Decimal) error {
	return tx.Model(&model.Ingrediente{}).Where("id = ?", id).
		Update("costo_unitario", costo).Error
}

func (r *ingredienteRepo) RepreciarComponentesTx(tx *gorm.DB, id uuid.UUID, costo decimal.Decimal) ([]uuid.UUID, error) {
	if err := tx.Model(&model.IngredientePlatillo{}).
		Where("ingrediente_id = ?", id).
		Update("costo_parcial", gorm.Expr("cantidad * ?", costo)).Error; err != nil {
		return nil, err
	}

	var platilloIDs []uuid.UUID
	err := tx.Model(&model.IngredientePlatillo{}).
		Where("ingrediente_id = ?", id).
		Distinct().
		Pluck("platillo_id", &platilloIDs).Error
	return platilloIDs, err
}

func (r *ingredienteRepo) DB() *gorm.DB { return r.db }
