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

type IngredienteService interface {
	CrearIngrediente(ctx context.Context, req dto.CrearIngredienteRequest) (*dto.IngredienteResponse, error)
	ObtenerIngrediente(ctx context.Context, id uuid.UUID) (*dto.IngredienteResponse, error)
	ListarIngredientes(ctx context.Context, nombre string) ([]dto.IngredienteResponse, error)
	ActualizarIngrediente(ctx context.Context, id uuid.UUID, req dto.ActualizarIngredienteRequest) (*dto.IngredienteResponse, error)
	DesactivarIngrediente(ctx context.Context, id uuid.UUID) error
	ReactivarIngrediente(ctx context.Context, id uuid.UUID) error

	// ActualizarCosto re-prices the ingrediente and propagates the new unit
	// cost: every referencing componente gets costo_parcial re-derived and
	// every affected platillo gets costo_total recomputed, all in one
	// transaction.
	ActualizarCosto(ctx context.Context, id uuid.UUID, req dto.ActualizarCostoRequest) (*dto.IngredienteResponse, error)
}

type ingredienteService struct {
	repo         repository.IngredienteRepository
	platilloRepo repository.PlatilloRepository
}

func NewIngredienteService(repo repository.IngredienteRepository, platilloRepo repository.PlatilloRepository) IngredienteService {
	return &ingredienteService{repo: repo, platilloRepo: platilloRepo}
}

func (s *ingredienteService) CrearIngrediente(ctx context.Context, req dto.CrearIngredienteRequest) (*dto.IngredienteResponse, error) {
	if req.CostoUnitario.IsNegative() {
		return nil, errors.New("el costo unitario no puede ser negativo")
	}
	i := &model.Ingrediente{
		Nombre:        req.Nombre,
		UnidadMedida:  req.UnidadMedida,
		CostoUnitario: req.CostoUnitario,
		Activo:        true,
	}
	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}
	return ingredienteToResponse(i), nil
}

func (s *ingredienteService) ObtenerIngrediente(ctx context.Context, id uuid.UUID) (*dto.IngredienteResponse, error) {
	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("ingrediente no encontrado")
	}
	return ingredienteToResponse(i), nil
}

func (s *ingredienteService) ListarIngredientes(ctx context.Context, nombre string) ([]dto.IngredienteResponse, error) {
	ingredientes, err := s.repo.List(ctx, nombre)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.IngredienteResponse, 0, len(ingredientes))
	for i := range ingredientes {
		resp = append(resp, *ingredienteToResponse(&ingredientes[i]))
	}
	return resp, nil
}

func (s *ingredienteService) ActualizarIngrediente(ctx context.Context, id uuid.UUID, req dto.ActualizarIngredienteRequest) (*dto.IngredienteResponse, error) {
	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("ingrediente no encontrado")
	}
	if req.Nombre != nil {
		i.Nombre = *req.Nombre
	}
	if req.UnidadMedida != nil {
		i.UnidadMedida = *req.UnidadMedida
	}
	if err := s.repo.Update(ctx, i); err != nil {
		return nil, err
	}
	return ingredienteToResponse(i), nil
}

func (s *ingredienteService) DesactivarIngrediente(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *ingredienteService) ReactivarIngrediente(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("ingrediente no encontrado")
	}
	return s.repo.Reactivar(ctx, id)
}

func (s *ingredienteService) ActualizarCosto(ctx context.Context, id uuid.UUID, req dto.ActualizarCostoRequest) (*dto.IngredienteResponse, error) {
	if req.Costo.IsNegative() {
		return nil, errors.New("el costo no puede ser negativo")
	}
	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("ingrediente no encontrado")
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

	i.CostoUnitario = req.Costo
	return ingredienteToResponse(i), nil
}

func ingredienteToResponse(i *model.Ingrediente) *dto.IngredienteResponse {
	return &dto.IngredienteResponse{
		ID:            i.ID.String(),
		Nombre:        i.Nombre,
		UnidadMedida:  i.UnidadMedida,
		CostoUnitario: i.CostoUnitario,
		Activo:        i.Activo,
	}
}
