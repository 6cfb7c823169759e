package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/adornodavid/aybcosteo-sub001/internal/dto"
	"github.com/adornodavid/aybcosteo-sub001/internal/model"
	"github.com/adornodavid/aybcosteo-sub001/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlatilloService interface {
	CrearPlatillo(ctx context.Context, req dto.CrearPlatilloRequest) (*dto.PlatilloResponse, error)
	ObtenerPlatillo(ctx context.Context, id uuid.UUID) (*dto.PlatilloResponse, error)
	ListarPlatillos(ctx context.Context, filter dto.PlatilloFilter) (*dto.PlatilloListResponse, error)
	ActualizarPlatillo(ctx context.Context, id uuid.UUID, req dto.ActualizarPlatilloRequest) (*dto.PlatilloResponse, error)
	DesactivarPlatillo(ctx context.Context, id uuid.UUID) error
	ReactivarPlatillo(ctx context.Context, id uuid.UUID) error

	// Componentes. Every mutation recomputes the platillo's costo total inside
	// the same transaction.
	AgregarReceta(ctx context.Context, platilloID uuid.UUID, req dto.AgregarRecetaRequest) (*dto.ComponentesResponse, error)
	AgregarIngrediente(ctx context.Context, platilloID uuid.UUID, req dto.AgregarIngredienteRequest) (*dto.ComponentesResponse, error)
	QuitarReceta(ctx context.Context, platilloID, recetaID uuid.UUID) error
	QuitarIngrediente(ctx context.Context, platilloID, ingredienteID uuid.UUID) error
	ListarComponentes(ctx context.Context, platilloID uuid.UUID) (*dto.ComponentesResponse, error)
}

type platilloService struct {
	repo            repository.PlatilloRepository
	recetaRepo      repository.RecetaRepository
	ingredienteRepo repository.IngredienteRepository
}

func NewPlatilloService(
	repo repository.PlatilloRepository,
	recetaRepo repository.RecetaRepository,
	ingredienteRepo repository.IngredienteRepository,
) PlatilloService {
	return &platilloService{repo: repo, recetaRepo: recetaRepo, ingredienteRepo: ingredienteRepo}
}

func (s *platilloService) CrearPlatillo(ctx context.Context, req dto.CrearPlatilloRequest) (*dto.PlatilloResponse, error) {
	p := &model.Platillo{
		Nombre:              req.Nombre,
		Descripcion:         req.Descripcion,
		CostoAdministrativo: req.CostoAdministrativo,
		Activo:              true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return platilloToResponse(p), nil
}

func (s *platilloService) ObtenerPlatillo(ctx context.Context, id uuid.UUID) (*dto.PlatilloResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("platillo no encontrado")
	}
	return platilloToResponse(p), nil
}

func (s *platilloService) ListarPlatillos(ctx context.Context, filter dto.PlatilloFilter) (*dto.PlatilloListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	platillos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PlatilloResponse, 0, len(platillos))
	for i := range platillos {
		items = append(items, *platilloToResponse(&platillos[i]))
	}
	return &dto.PlatilloListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *platilloService) ActualizarPlatillo(ctx context.Context, id uuid.UUID, req dto.ActualizarPlatilloRequest) (*dto.PlatilloResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("platillo no encontrado")
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.CostoAdministrativo != nil {
		p.CostoAdministrativo = *req.CostoAdministrativo
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return platilloToResponse(p), nil
}

func (s *platilloService) DesactivarPlatillo(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *platilloService) ReactivarPlatillo(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivar(ctx, id)
}

// ── Componentes ───────────────────────────────────────────────────────────────

func (s *platilloService) AgregarReceta(ctx context.Context, platilloID uuid.UUID, req dto.AgregarRecetaRequest) (*dto.ComponentesResponse, error) {
	recetaID, err := uuid.Parse(req.RecetaID)
	if err != nil {
		return nil, fmt.Errorf("receta_id inválido: %w", err)
	}
	if !req.Cantidad.IsPositive() {
		return nil, errors.New("la cantidad debe ser mayor a cero")
	}
	if _, err := s.repo.FindByID(ctx, platilloID); err != nil {
		return nil, errors.New("platillo no encontrado")
	}
	receta, err := s.recetaRepo.FindByID(ctx, recetaID)
	if err != nil {
		return nil, errors.New("receta no encontrada")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		rp := &model.RecetaPlatillo{
			PlatilloID:   platilloID,
			RecetaID:     recetaID,
			Cantidad:     req.Cantidad,
			CostoParcial: req.Cantidad.Mul(receta.Costo).Round(2),
		}
		if err := s.repo.AddRecetaTx(tx, rp); err != nil {
			return err
		}
		return s.recomputeCostoTx(tx, platilloID)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.ListarComponentes(ctx, platilloID)
}

func (s *platilloService) AgregarIngrediente(ctx context.Context, platilloID uuid.UUID, req dto.AgregarIngredienteRequest) (*dto.ComponentesResponse, error) {
	ingredienteID, err := uuid.Parse(req.IngredienteID)
	if err != nil {
		return nil, fmt.Errorf("ingrediente_id inválido: %w", err)
	}
	if !req.Cantidad.IsPositive() {
		return nil, errors.New("la cantidad debe ser mayor a cero")
	}
	if _, err := s.repo.FindByID(ctx, platilloID); err != nil {
		return nil, errors.New("platillo no encontrado")
	}
	ingrediente, err := s.ingredienteRepo.FindByID(ctx, ingredienteID)
	if err != nil {
		return nil, errors.New("ingrediente no encontrado")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ip := &model.IngredientePlatillo{
			PlatilloID:    platilloID,
			IngredienteID: ingredienteID,
			Cantidad:      req.Cantidad,
			CostoParcial:  req.Cantidad.Mul(ingrediente.CostoUnitario).Round(2),
		}
		if err := s.repo.AddIngredienteTx(tx, ip); err != nil {
			return err
		}
		return s.recomputeCostoTx(tx, platilloID)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.ListarComponentes(ctx, platilloID)
}

func (s *platilloService) QuitarReceta(ctx context.Context, platilloID, recetaID uuid.UUID) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.RemoveRecetaTx(tx, platilloID, recetaID); err != nil {
			return err
		}
		return s.recomputeCostoTx(tx, platilloID)
	})
}

func (s *platilloService) QuitarIngrediente(ctx context.Context, platilloID, ingredienteID uuid.UUID) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.RemoveIngredienteTx(tx, platilloID, ingredienteID); err != nil {
			return err
		}
		return s.recomputeCostoTx(tx, platilloID)
	})
}

func (s *platilloService) ListarComponentes(ctx context.Context, platilloID uuid.UUID) (*dto.ComponentesResponse, error) {
	p, err := s.repo.FindByID(ctx, platilloID)
	if err != nil {
		return nil, errors.New("platillo no encontrado")
	}
	recetas, err := s.repo.ListRecetas(ctx, platilloID)
	if err != nil {
		return nil, err
	}
	ingredientes, err := s.repo.ListIngredientes(ctx, platilloID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ComponentesResponse{
		PlatilloID:   platilloID.String(),
		CostoTotal:   p.CostoTotal,
		Recetas:      make([]dto.ComponenteResponse, 0, len(recetas)),
		Ingredientes: make([]dto.ComponenteResponse, 0, len(ingredientes)),
	}
	for i := range recetas {
		rp := &recetas[i]
		rid := rp.RecetaID.String()
		nombre := ""
		if rp.Receta != nil {
			nombre = rp.Receta.Nombre
		}
		cant := rp.Cantidad
		resp.Recetas = append(resp.Recetas, dto.ComponenteResponse{
			ID:           rp.ID.String(),
			PlatilloID:   rp.PlatilloID.String(),
			RecetaID:     &rid,
			Nombre:       nombre,
			Cantidad:     &cant,
			CostoParcial: rp.CostoParcial,
		})
	}
	for i := range ingredientes {
		ip := &ingredientes[i]
		iid := ip.IngredienteID.String()
		nombre := ""
		if ip.Ingrediente != nil {
			nombre = ip.Ingrediente.Nombre
		}
		cant := ip.Cantidad
		resp.Ingredientes = append(resp.Ingredientes, dto.ComponenteResponse{
			ID:            ip.ID.String(),
			PlatilloID:    ip.PlatilloID.String(),
			IngredienteID: &iid,
			Nombre:        nombre,
			Cantidad:      &cant,
			CostoParcial:  ip.CostoParcial,
		})
	}
	return resp, nil
}

// recomputeCostoTx re-derives costo_total from the componente partial costs.
func (s *platilloService) recomputeCostoTx(tx *gorm.DB, platilloID uuid.UUID) error {
	total, err := s.repo.SumParcialesTx(tx, platilloID)
	if err != nil {
		return err
	}
	return s.repo.UpdateCostoTotalTx(tx, platilloID, total)
}

func platilloToResponse(p *model.Platillo) *dto.PlatilloResponse {
	return &dto.PlatilloResponse{
		ID:                  p.ID.String(),
		Nombre:              p.Nombre,
		Descripcion:         p.Descripcion,
		CostoTotal:          p.CostoTotal,
		CostoAdministrativo: p.CostoAdministrativo,
		Activo:              p.Activo,
	}
}
