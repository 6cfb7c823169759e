package repository

import (
	"context"

	"github.com/adornodavid/aybcosteo-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HotelRepository interface {
	Create(ctx context.Context, h *model.Hotel) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Hotel, error)
	List(ctx context.Context, incluirInactivos bool) ([]model.Hotel, error)
	Update(ctx context.Context, h *model.Hotel) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type hotelRepo struct{ db *gorm.DB }

func NewHotelRepository(db *gorm.DB) HotelRepository { return &hotelRepo{db: db} }

func (r *hotelRepo) Create(ctx context.Context, h *model.Hotel) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *hotelRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Hotel, error) {
	var h model.Hotel
	err := r.db.WithContext(ctx).First(&h, id).Error
	return &h, err
}

func (r *hotelRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Hotel, error) {
	var hoteles []model.Hotel
	q := r.db.WithContext(ctx)
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	err := q.Order("nombre ASC").Find(&hoteles).Error
	return hoteles, err
}

func (r *hotelRepo) Update(ctx context.Context, h *model.Hotel) error {
	return r.db.WithContext(ctx).Save(h).Error
}

func (r *hotelRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Hotel{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *hotelRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Hotel{}).Where("id = ?", id).Update("activo", true).Error
}
