package repository

import (
	"context"

	"github.com/adornodavid/aybcosteo-sub001/internal/dto"
	"github.com/adornodavid/aybcosteo-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlatilloRepository covers platillos and their componente rows.
type PlatilloRepository interface {
	Create(ctx context.Context, p *model.Platillo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Platillo, error)
	List(ctx context.Context, filter dto.PlatilloFilter) ([]model.Platillo, int64, error)
	Update(ctx context.Context, p *model.Platillo) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error

	// Componentes
	ListRecetas(ctx context.Context, platilloID uuid.UUID) ([]model.RecetaPlatillo, error)
	ListIngredientes(ctx context.Context, platilloID uuid.UUID) ([]model.IngredientePlatillo, error)

	// Used inside transactions — callers must pass the tx instance
	AddRecetaTx(tx *gorm.DB, rp *model.RecetaPlatillo) error
	AddIngredienteTx(tx *gorm.DB, ip *model.IngredientePlatillo) error
	RemoveRecetaTx(tx *gorm.DB, platilloID, recetaID uuid.UUID) error
	RemoveIngredienteTx(tx *gorm.DB, platilloID, ingredienteID uuid.UUID) error
	// SumParcialesTx returns the sum of partial costs of both componente kinds.
	SumParcialesTx(tx *gorm.DB, platilloID uuid.UUID) (decimal.Decimal, error)
	UpdateCostoTotalTx(tx *gorm.DB, platilloID uuid.UUID, costoTotal decimal.Decimal) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type platilloRepo struct{ db *gorm.DB }

func NewPlatilloRepository(db *gorm.DB) PlatilloRepository { return &platilloRepo{db: db} }

func (r *platilloRepo) Create(ctx context.Context, p *model.Platillo) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *platilloRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Platillo, error) {
	var p model.Platillo
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *platilloRepo) List(ctx context.Context, filter dto.PlatilloFilter) ([]model.Platillo, int64, error) {
	var platillos []model.Platillo
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Platillo{})

	// Activo filter: "false" = inactivos, "all" = todos, anything else = activos (default)
	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
		// no filter
	default:
		q = q.Where("activo = true")
	}

	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&platillos).Error
	return platillos, total, err
}

func (r *platilloRepo) Update(ctx context.Context, p *model.Platillo) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *platilloRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Platillo{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *platilloRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Platillo{}).Where("id = ?", id).Update("activo", true).Error
}

func (r *platilloRepo) ListRecetas(ctx context.Context, platilloID uuid.UUID) ([]model.RecetaPlatillo, error) {
	var recetas []model.RecetaPlatillo
	err := r.db.WithContext(ctx).
		Where("platillo_id = ?", platilloID).
		Preload("Receta").
		Find(&recetas).Error
	return recetas, err
}

func (r *platilloRepo) ListIngredientes(ctx context.Context, platilloID uuid.UUID) ([]model.IngredientePlatillo, error) {
	var ingredientes []model.IngredientePlatillo
	err := r.db.WithContext(ctx).
		Where("platillo_id = ?", platilloID).
		Preload("Ingrediente").
		Find(&ingredientes).Error
	return ingredientes, err
}

func (r *platilloRepo) AddRecetaTx(tx *gorm.DB, rp *model.RecetaPlatillo) error {
	return tx.Create(rp).Error
}

func (r *platilloRepo) AddIngredienteTx(tx *gorm.DB, ip *model.IngredientePlatillo) error {
	return tx.Create(ip).Error
}

func (r *platilloRepo) RemoveRecetaTx(tx *gorm.DB, platilloID, recetaID uuid.UUID) error {
	return tx.Where("platillo_id = ? AND receta_id = ?", platilloID, recetaID).
		Delete(&model.RecetaPlatillo{}).Error
}

func (r *platilloRepo) RemoveIngredienteTx(tx *gorm.DB, platilloID, ingredienteID uuid.UUID) error {
	return tx.Where("platillo_id = ? AND ingrediente_id = ?", platilloID, ingredienteID).
		Delete(&model.IngredientePlatillo{}).Error
}

func (r *platilloRepo) SumParcialesTx(tx *gorm.DB, platilloID uuid.UUID) (decimal.Decimal, error) {
	var suma struct{ Total decimal.Decimal }
	err := tx.Raw(`
		SELECT COALESCE((SELECT SUM(costo_parcial) FROM recetasxplatillo WHERE platillo_id = @id), 0)
		     + COALESCE((SELECT SUM(costo_parcial) FROM ingredientesxplatillo WHERE platillo_id = @id), 0) AS total`,
		map[string]interface{}{"id": platilloID},
	).Scan(&suma).Error
	return suma.Total, err
}

func (r *platilloRepo) UpdateCostoTotalTx(tx *gorm.DB, platilloID uuid.UUID, costoTotal decimal.Decimal) error {
	return tx.Model(&model.Platillo{}).Where("id = ?", platilloID).
		Update("costo_total", costoTotal).Error
}

func (r *platilloRepo) DB() *gorm.DB { return r.db }
