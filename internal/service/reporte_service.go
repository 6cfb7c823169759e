package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/adornodavid/aybcosteo-sub001/internal/dto"
	"github.com/adornodavid/aybcosteo-sub001/internal/repository"
	"github.com/adornodavid/aybcosteo-sub001/internal/worker"

	"github.com/google/uuid"
)

type ReporteService interface {
	// SolicitarReporte validates the menu and enqueues the async costing
	// report job. PDF rendering and delivery happen in the worker pool.
	SolicitarReporte(ctx context.Context, req dto.ReporteCostosRequest) (*dto.ReporteCostosResponse, error)
}

type reporteService struct {
	menuRepo   repository.MenuRepository
	dispatcher *worker.Dispatcher
}

func NewReporteService(menuRepo repository.MenuRepository, dispatcher *worker.Dispatcher) ReporteService {
	return &reporteService{menuRepo: menuRepo, dispatcher: dispatcher}
}

func (s *reporteService) SolicitarReporte(ctx context.Context, req dto.ReporteCostosRequest) (*dto.ReporteCostosResponse, error) {
	menuID, err := uuid.Parse(req.MenuID)
	if err != nil {
		return nil, fmt.Errorf("menu_id inválido: %w", err)
	}
	menu, err := s.menuRepo.FindByID(ctx, menuID)
	if err != nil {
		return nil, errors.New("menu no encontrado")
	}
	if !menu.Activo {
		return nil, errors.New("el menu está inactivo")
	}

	payload := worker.ReporteJobPayload{MenuID: req.MenuID, Email: req.Email}
	if err := s.dispatcher.EnqueueReporte(ctx, payload); err != nil {
		return nil, err
	}
	return &dto.ReporteCostosResponse{Encolado: true, MenuID: req.MenuID}, nil
}
