package repository

import (
	"context"

	"github.com/adornodavid/aybcosteo-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RestauranteRepository interface {
	Create(ctx context.Context, rest *model.Restaurante) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Restaurante, error)
	ListByHotel(ctx context.Context, hotelID uuid.UUID) ([]model.Restaurante, error)
	List(ctx context.Context) ([]model.Restaurante, error)
	Update(ctx context.Context, rest *model.Restaurante) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type restauranteRepo struct{ db *gorm.DB }

func NewRestauranteRepository(db *gorm.DB) RestauranteRepository { return &restauranteRepo{db: db} }

func (r *restauranteRepo) Create(ctx context.Context, rest *model.Restaurante) error {
	return r.db.WithContext(ctx).Create(rest).Error
}

func (r *restauranteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Restaurante, error) {
	var rest model.Restaurante
	err := r.db.WithContext(ctx).Preload("Hotel").First(&rest, id).Error
	return &rest, err
}

func (r *restauranteRepo) ListByHotel(ctx context.Context, hotelID uuid.UUID) ([]model.Restaurante, error) {
	var restaurantes []model.Restaurante
	err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND activo = true", hotelID).
		Order("nombre ASC").
		Find(&restaurantes).Error
	return restaurantes, err
}

func (r *restauranteRepo) List(ctx context.Context) ([]model.Restaurante, error) {
	var restaurantes []model.Restaurante
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&restaurantes).Error
	return restaurantes, err
}

func (r *restauranteRepo) Update(ctx context.Context, rest *model.Restaurante) error {
	return r.db.WithContext(ctx).Save(rest).Error
}

func (r *restauranteRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Restaurante{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *restauranteRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Restaurante{}).Where("id = ?", id).Update("activo", true).Error
}
