package service

import (
	"context"
	"errors"

	"github.com/adornodavid/aybcosteo-sub001/internal/dto"
	"github.com/adornodavid/aybcosteo-sub001/internal/model"
	"github.com/adornodavid/aybcosteo-sub001/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecetaService interface {
	CrearReceta(ctx context.Context, req dto.CrearRecetaRequest) (*dto.RecetaResponse, error)
	ObtenerReceta(ctx context.Context, id uuid.UUID) (*dto.RecetaResponse, error)
	ListarRecetas(ctx context.Context, nombre string) ([]dto.RecetaResponse, error)
	ActualizarReceta(ctx context.Context, id uuid.UUID, req dto.ActualizarRecetaRequest) (*dto.RecetaResponse, error)
	DesactivarReceta(ctx context.Context, id uuid.UUID) error
	ReactivarReceta(ctx context.Context, id uuid.UUID) error

	// ActualizarCosto propagates the same way as the ingrediente version:
	// referencing componentes are re-priced and affected platillos recomputed
	// inside one transaction.
	ActualizarCosto(ctx context.Context, id uuid.UUID, req dto.ActualizarCostoRequest) (*dto.RecetaResponse, error)
}

type recetaService struct {
	repo         repository.RecetaRepository
	platilloRepo repository.PlatilloRepository
}

func NewRecetaService(repo repository.RecetaRepository, platilloRepo repository.PlatilloRepository) RecetaService {
	return &recetaService{repo: repo, platilloRepo: platilloRepo}
}

func (s *recetaService) CrearReceta(ctx context.Context, req dto.CrearRecetaRequest) (*dto.RecetaResponse, error) {
	if req.Costo.IsNegative() {
		return nil, errors.New("el costo no puede ser negativo")
	}
	rec := &model.Receta{
		Nombre: req.Nombre,
		Costo:  req.Costo,
		Activo: true,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return recetaToResponse(rec), nil
}

func (s *recetaService) ObtenerReceta(ctx context.Context, id uuid.UUID) (*dto.RecetaResponse, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("receta no encontrada")
	}
	return recetaToResponse(rec), nil
}

func (s *recetaService) ListarRecetas(ctx context.Context, nombre string) ([]dto.RecetaResponse, error) {
	recetas, err := s.repo.List(ctx, nombre)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.RecetaResponse, 0, len(recetas))
	for i := range recetas {
		resp = append(resp, *recetaToResponse(&recetas[i]))
	}
	return resp, nil
}

func (s *recetaService) ActualizarReceta(ctx context.Context, id uuid.UUID, req dto.ActualizarRecetaRequest) (*dto.RecetaResponse, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("receta no encontrada")
	}
	if req.Nombre != nil {
		rec.Nombre = *req.Nombre
	}
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return recetaToResponse(rec), nil
}

func (s *recetaService) DesactivarReceta(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *recetaService) ReactivarReceta(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("receta no encontrada")
	}
	return s.repo.Reactivar(ctx, id)
}

func (s *recetaService) ActualizarCosto(ctx context.Context, id uuid.UUID, req dto.ActualizarCostoRequest) (*dto.RecetaResponse, error) {
	if req.Costo.IsNegative() {
		return nil, errors.New("el costo no puede ser negativo")
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("receta no encontrada")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateCostoTx(tx, id, req.Costo); err != nil {
			return err
		}
		platilloIDs, err := s.repo.RepreciarComponentesTx(tx, id, req.Costo)
		if err != nil {
			return err
		}
		for _, pid := range platilloIDs {
			total, err := s.platilloRepo.SumParcialesTx(tx, pid)
			if err != nil {
				return err
			}
			if err := s.platilloRepo.UpdateCostoTotalTx(tx, pid, total); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	rec.Costo = req.Costo
	return recetaToResponse(rec), nil
}

func recetaToResponse(r *model.Receta) *dto.RecetaResponse {
	return &dto.RecetaResponse{
		ID:     r.ID.String(),
		Nombre: r.Nombre,
		Costo:  r.Costo,
		Activo: r.Activo,
	}
}
