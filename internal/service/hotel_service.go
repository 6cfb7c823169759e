package service

import (
	"context"
	"errors"

	"github.com/adornodavid/aybcosteo-sub001/internal/dto"
	"github.com/adornodavid/aybcosteo-sub001/internal/model"
	"github.com/adornodavid/aybcosteo-sub001/internal/repository"

	"github.com/google/uuid"
)

type HotelService interface {
	CrearHotel(ctx context.Context, req dto.CrearHotelRequest) (*dto.HotelResponse, error)
	ObtenerHotel(ctx context.Context, id uuid.UUID) (*dto.HotelResponse, error)
	ListarHoteles(ctx context.Context, incluirInactivos bool) ([]dto.HotelResponse, error)
	ActualizarHotel(ctx context.Context, id uuid.UUID, req dto.ActualizarHotelRequest) (*dto.HotelResponse, error)
	DesactivarHotel(ctx context.Context, id uuid.UUID) error
	ReactivarHotel(ctx context.Context, id uuid.UUID) error
}

type hotelService struct {
	repo repository.HotelRepository
}

func NewHotelService(repo repository.HotelRepository) HotelService {
	return &hotelService{repo: repo}
}

func (s *hotelService) CrearHotel(ctx context.Context, req dto.CrearHotelRequest) (*dto.HotelResponse, error) {
	h := &model.Hotel{
		Nombre:    req.Nombre,
		Direccion: req.Direccion,
		Activo:    true,
	}
	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	return hotelToResponse(h), nil
}

func (s *hotelService) ObtenerHotel(ctx context.Context, id uuid.UUID) (*dto.HotelResponse, error) {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("hotel no encontrado")
	}
	return hotelToResponse(h), nil
}

func (s *hotelService) ListarHoteles(ctx context.Context, incluirInactivos bool) ([]dto.HotelResponse, error) {
	hoteles, err := s.repo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.HotelResponse, 0, len(hoteles))
	for i := range hoteles {
		resp = append(resp, *hotelToResponse(&hoteles[i]))
	}
	return resp, nil
}

func (s *hotelService) ActualizarHotel(ctx context.Context, id uuid.UUID, req dto.ActualizarHotelRequest) (*dto.HotelResponse, error) {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("hotel no encontrado")
	}
	if req.Nombre != nil {
		h.Nombre = *req.Nombre
	}
	if req.Direccion != nil {
		h.Direccion = req.Direccion
	}
	if err := s.repo.Update(ctx, h); err != nil {
		return nil, err
	}
	return hotelToResponse(h), nil
}

func (s *hotelService) DesactivarHotel(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *hotelService) ReactivarHotel(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivar(ctx, id)
}

func hotelToResponse(h *model.Hotel) *dto.HotelResponse {
	return &dto.HotelResponse{
		ID:        h.ID.String(),
		Nombre:    h.Nombre,
		Direccion: h.Direccion,
		Activo:    h.Activo,
	}
}
