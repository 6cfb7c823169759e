package repository

import (
	"context"

	"github.com/adornodavid/aybcosteo-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuRepository covers menus and the platillo ↔ menu assignment rows.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type MenuRepository interface {
	Create(ctx context.Context, m *model.Menu) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Menu, error)
	// FindConJerarquia loads the menu with its restaurante and hotel, the
	// two-level join the snapshot fan-out needs for hotel/restaurante tagging.
	FindConJerarquia(ctx context.Context, id uuid.UUID) (*model.Menu, error)
	ListByRestaurante(ctx context.Context, restauranteID uuid.UUID) ([]model.Menu, error)
	Update(ctx context.Context, m *model.Menu) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error

	// Asignaciones
	CrearAsignacion(ctx context.Context, a *model.PlatilloMenu) error
	FindAsignacion(ctx context.Context, menuID, platilloID uuid.UUID) (*model.PlatilloMenu, error)
	ActualizarPrecio(ctx context.Context, menuID, platilloID uuid.UUID, precio, conIVA, margen decimal.Decimal) error
	ListAsignaciones(ctx context.Context, menuID uuid.UUID) ([]model.PlatilloMenu, error)
	// ListAsignacionesActivas feeds the monthly snapshot cron.
	ListAsignacionesActivas(ctx context.Context) ([]model.PlatilloMenu, error)
	DesactivarAsignacion(ctx context.Context, menuID, platilloID uuid.UUID) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type menuRepo struct{ db *gorm.DB }

func NewMenuRepository(db *gorm.DB) MenuRepository { return &menuRepo{db: db} }

func (r *menuRepo) Create(ctx context.Context, m *model.Menu) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *menuRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Menu, error) {
	var m model.Menu
	err := r.db.WithContext(ctx).First(&m, id).Error
	return &m, err
}

func (r *menuRepo) FindConJerarquia(ctx context.Context, id uuid.UUID) (*model.Menu, error) {
	var m model.Menu
	err := r.db.WithContext(ctx).
		Preload("Restaurante").
		Preload("Restaurante.Hotel").
		First(&m, id).Error
	return &m, err
}

func (r *menuRepo) ListByRestaurante(ctx context.Context, restauranteID uuid.UUID) ([]model.Menu, error) {
	var menus []model.Menu
	err := r.db.WithContext(ctx).
		Where("restaurante_id = ? AND activo = true", restauranteID).
		Order("nombre ASC").
		Find(&menus).Error
	return menus, err
}

func (r *menuRepo) Update(ctx context.Context, m *model.Menu) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *menuRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Menu{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *menuRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Menu{}).Where("id = ?", id).Update("activo", true).Error
}

func (r *menuRepo) CrearAsignacion(ctx context.Context, a *model.PlatilloMenu) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *menuRepo) FindAsignacion(ctx context.Context, menuID, platilloID uuid.UUID) (*model.PlatilloMenu, error) {
	var a model.PlatilloMenu
	err := r.db.WithContext(ctx).
		Where("menu_id = ? AND platillo_id = ?", menuID, platilloID).
		First(&a).Error
	return &a, err
}

func (r *menuRepo) ActualizarPrecio(ctx context.Context, menuID, platilloID uuid.UUID, precio, conIVA, margen decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&model.PlatilloMenu{}).
		Where("menu_id = ? AND platillo_id = ?", menuID, platilloID).
		Updates(map[string]interface{}{
			"precio_venta":    precio,
			"precio_con_iva":  conIVA,
			"margen_utilidad": margen,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *menuRepo) ListAsignaciones(ctx context.Context, menuID uuid.UUID) ([]model.PlatilloMenu, error) {
	var asignaciones []model.PlatilloMenu
	err := r.db.WithContext(ctx).
		Where("menu_id = ? AND activo = true", menuID).
		Preload("Platillo").
		Find(&asignaciones).Error
	return asignaciones, err
}

func (r *menuRepo) ListAsignacionesActivas(ctx context.Context) ([]model.PlatilloMenu, error) {
	var asignaciones []model.PlatilloMenu
	err := r.db.WithContext(ctx).
		Where("activo = true").
		Preload("Platillo").
		Find(&asignaciones).Error
	return asignaciones, err
}

func (r *menuRepo) DesactivarAsignacion(ctx context.Context, menuID, platilloID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.PlatilloMenu{}).
		Where("menu_id = ? AND platillo_id = ?", menuID, platilloID).
		Update("activo", false).Error
}

func (r *menuRepo) DB() *gorm.DB { return r.db }
