package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/adornodavid/aybcosteo-sub001/internal/dto"
	"github.com/adornodavid/aybcosteo-sub001/internal/model"
	"github.com/adornodavid/aybcosteo-sub001/internal/repository"

	"github.com/google/uuid"
)

type RestauranteService interface {
	CrearRestaurante(ctx context.Context, req dto.CrearRestauranteRequest) (*dto.RestauranteResponse, error)
	ObtenerRestaurante(ctx context.Context, id uuid.UUID) (*dto.RestauranteResponse, error)
	ListarRestaurantes(ctx context.Context, hotelID *uuid.UUID) ([]dto.RestauranteResponse, error)
	ActualizarRestaurante(ctx context.Context, id uuid.UUID, req dto.ActualizarRestauranteRequest) (*dto.RestauranteResponse, error)
	DesactivarRestaurante(ctx context.Context, id uuid.UUID) error
	ReactivarRestaurante(ctx context.Context, id uuid.UUID) error
}

type restauranteService struct {
	repo      repository.RestauranteRepository
	hotelRepo repository.HotelRepository
}

func NewRestauranteService(repo repository.RestauranteRepository, hotelRepo repository.HotelRepository) RestauranteService {
	return &restauranteService{repo: repo, hotelRepo: hotelRepo}
}

func (s *restauranteService) CrearRestaurante(ctx context.Context, req dto.CrearRestauranteRequest) (*dto.RestauranteResponse, error) {
	hotelID, err := uuid.Parse(req.HotelID)
	if err != nil {
		return nil, fmt.Errorf("hotel_id inválido: %w", err)
	}
	hotel, err := s.hotelRepo.FindByID(ctx, hotelID)
	if err != nil {
		return nil, errors.New("hotel no encontrado")
	}
	if !hotel.Activo {
		return nil, errors.New("el hotel está inactivo")
	}

	rest := &model.Restaurante{
		HotelID:   hotelID,
		Nombre:    req.Nombre,
		Direccion: req.Direccion,
		Activo:    true,
	}
	if err := s.repo.Create(ctx, rest); err != nil {
		return nil, err
	}
	return restauranteToResponse(rest), nil
}

func (s *restauranteService) ObtenerRestaurante(ctx context.Context, id uuid.UUID) (*dto.RestauranteResponse, error) {
	rest, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("restaurante no encontrado")
	}
	return restauranteToResponse(rest), nil
}

func (s *restauranteService) ListarRestaurantes(ctx context.Context, hotelID *uuid.UUID) ([]dto.RestauranteResponse, error) {
	var restaurantes []model.Restaurante
	var err error
	if hotelID != nil {
		restaurantes, err = s.repo.ListByHotel(ctx, *hotelID)
	} else {
		restaurantes, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	resp := make([]dto.RestauranteResponse, 0, len(restaurantes))
	for i := range restaurantes {
		resp = append(resp, *restauranteToResponse(&restaurantes[i]))
	}
	return resp, nil
}

func (s *restauranteService) ActualizarRestaurante(ctx context.Context, id uuid.UUID, req dto.ActualizarRestauranteRequest) (*dto.RestauranteResponse, error) {
	rest, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("restaurante no encontrado")
	}
	if req.Nombre != nil {
		rest.Nombre = *req.Nombre
	}
	if req.Direccion != nil {
		rest.Direccion = req.Direccion
	}
	if err := s.repo.Update(ctx, rest); err != nil {
		return nil, err
	}
	return restauranteToResponse(rest), nil
}

func (s *restauranteService) DesactivarRestaurante(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *restauranteService) ReactivarRestaurante(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivar(ctx, id)
}

func restauranteToResponse(r *model.Restaurante) *dto.RestauranteResponse {
	return &dto.RestauranteResponse{
		ID:        r.ID.String(),
		HotelID:   r.HotelID.String(),
		Nombre:    r.Nombre,
		Direccion: r.Direccion,
		Activo:    r.Activo,
	}
}
