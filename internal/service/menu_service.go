package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/adornodavid/aybcosteo-sub001/internal/dto"
	"github.com/adornodavid/aybcosteo-sub001/internal/model"
	"github.com/adornodavid/aybcosteo-sub001/internal/repository"
	"github.com/adornodavid/aybcosteo-sub001/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const margenesCacheTTL = 5 * time.Minute

type MenuService interface {
	CrearMenu(ctx context.Context, req dto.CrearMenuRequest) (*dto.MenuResponse, error)
	ObtenerMenu(ctx context.Context, id uuid.UUID) (*dto.MenuResponse, error)
	ListarMenus(ctx context.Context, restauranteID uuid.UUID) ([]dto.MenuResponse, error)
	ActualizarMenu(ctx context.Context, id uuid.UUID, req dto.ActualizarMenuRequest) (*dto.MenuResponse, error)
	EliminarMenu(ctx context.Context, id uuid.UUID) error
	ReactivarMenu(ctx context.Context, id uuid.UUID) error

	// AgregarPlatillo assigns a platillo to the menu with its sale price and
	// runs the snapshot policy. The asignacion is the primary mutation: a
	// ledger failure is reported in the response, never as a request error.
	AgregarPlatillo(ctx context.Context, menuID uuid.UUID, req dto.AgregarPlatilloRequest) (*dto.AsignacionResponse, error)
	// ActualizarPrecioVenta re-prices an existing asignacion, same ledger
	// semantics as AgregarPlatillo.
	ActualizarPrecioVenta(ctx context.Context, menuID, platilloID uuid.UUID, req dto.ActualizarPrecioRequest) (*dto.AsignacionResponse, error)
	ListarAsignaciones(ctx context.Context, menuID uuid.UUID) ([]dto.AsignacionResponse, error)
	QuitarPlatillo(ctx context.Context, menuID, platilloID uuid.UUID) error

	// Margenes is the cached read model: per-platillo cost and margin for one
	// menu, served from Redis when warm.
	Margenes(ctx context.Context, menuID uuid.UUID) (*dto.MargenesResponse, error)
}

type menuService struct {
	repo         repository.MenuRepository
	restRepo     repository.RestauranteRepository
	platilloRepo repository.PlatilloRepository
	historico    HistoricoService
	rdb          *redis.Client
}

func NewMenuService(
	repo repository.MenuRepository,
	restRepo repository.RestauranteRepository,
	platilloRepo repository.PlatilloRepository,
	historico HistoricoService,
	rdb *redis.Client,
) MenuService {
	return &menuService{
		repo:         repo,
		restRepo:     restRepo,
		platilloRepo: platilloRepo,
		historico:    historico,
		rdb:          rdb,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Menus ─────────────────────────────────────────────────────────────────────

func (s *menuService) CrearMenu(ctx context.Context, req dto.CrearMenuRequest) (*dto.MenuResponse, error) {
	restauranteID, err := uuid.Parse(req.RestauranteID)
	if err != nil {
		return nil, fmt.Errorf("restaurante_id inválido: %w", err)
	}
	rest, err := s.restRepo.FindByID(ctx, restauranteID)
	if err != nil {
		return nil, errors.New("restaurante no encontrado")
	}
	if !rest.Activo {
		return nil, errors.New("el restaurante está inactivo")
	}

	menu := &model.Menu{
		RestauranteID: restauranteID,
		Nombre:        req.Nombre,
		Descripcion:   req.Descripcion,
		Activo:        true,
	}
	if err := s.repo.Create(ctx, menu); err != nil {
		return nil, err
	}
	return menuToResponse(menu), nil
}

func (s *menuService) ObtenerMenu(ctx context.Context, id uuid.UUID) (*dto.MenuResponse, error) {
	menu, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("menu no encontrado")
	}
	return menuToResponse(menu), nil
}

func (s *menuService) ListarMenus(ctx context.Context, restauranteID uuid.UUID) ([]dto.MenuResponse, error) {
	menus, err := s.repo.ListByRestaurante(ctx, restauranteID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MenuResponse, 0, len(menus))
	for i := range menus {
		resp = append(resp, *menuToResponse(&menus[i]))
	}
	return resp, nil
}

func (s *menuService) ActualizarMenu(ctx context.Context, id uuid.UUID, req dto.ActualizarMenuRequest) (*dto.MenuResponse, error) {
	menu, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("menu no encontrado")
	}
	if req.Nombre != nil {
		menu.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		menu.Descripcion = req.Descripcion
	}
	if err := s.repo.Update(ctx, menu); err != nil {
		return nil, err
	}
	return menuToResponse(menu), nil
}

func (s *menuService) EliminarMenu(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidateMargenes(ctx, id)
	return nil
}

func (s *menuService) ReactivarMenu(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("menu no encontrado")
	}
	if err := s.repo.Reactivar(ctx, id); err != nil {
		return err
	}
	s.invalidateMargenes(ctx, id)
	return nil
}

// ── Asignaciones ──────────────────────────────────────────────────────────────

func (s *menuService) AgregarPlatillo(ctx context.Context, menuID uuid.UUID, req dto.AgregarPlatilloRequest) (*dto.AsignacionResponse, error) {
	platilloID, err := uuid.Parse(req.PlatilloID)
	if err != nil {
		return nil, fmt.Errorf("platillo_id inválido: %w", err)
	}

	if _, err := s.repo.FindByID(ctx, menuID); err != nil {
		return nil, errors.New("menu no encontrado")
	}
	platillo, err := s.platilloRepo.FindByID(ctx, platilloID)
	if err != nil {
		return nil, errors.New("platillo no encontrado")
	}
	if !platillo.Activo {
		return nil, fmt.Errorf("el platillo %s está inactivo y no puede asignarse", platillo.Nombre)
	}
	if existing, err := s.repo.FindAsignacion(ctx, menuID, platilloID); err == nil && existing != nil {
		return nil, errors.New("el platillo ya está asignado a este menu")
	}

	asignacion := &model.PlatilloMenu{
		MenuID:         menuID,
		PlatilloID:     platilloID,
		PrecioVenta:    req.PrecioVenta,
		PrecioConIVA:   PrecioConIVA(req.PrecioVenta),
		MargenUtilidad: CalcularMargen(req.PrecioVenta, req.CostoAdministrativo),
		Activo:         true,
	}
	if err := s.repo.CrearAsignacion(ctx, asignacion); err != nil {
		return nil, err
	}

	outcome := s.aplicarHistorico(ctx, platilloID, menuID, req.PrecioVenta, req.CostoPorcentual)
	s.invalidateMargenes(ctx, menuID)

	resp := asignacionToResponse(asignacion)
	resp.Historico = outcome
	return resp, nil
}

func (s *menuService) ActualizarPrecioVenta(ctx context.Context, menuID, platilloID uuid.UUID, req dto.ActualizarPrecioRequest) (*dto.AsignacionResponse, error) {
	conIVA := PrecioConIVA(req.PrecioVenta)
	margen := CalcularMargen(req.PrecioVenta, req.CostoAdministrativo)

	if err := s.repo.ActualizarPrecio(ctx, menuID, platilloID, req.PrecioVenta, conIVA, margen); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("el platillo no está asignado a este menu")
		}
		return nil, err
	}

	outcome := s.aplicarHistorico(ctx, platilloID, menuID, req.PrecioVenta, req.CostoPorcentual)
	s.invalidateMargenes(ctx, menuID)

	asignacion, err := s.repo.FindAsignacion(ctx, menuID, platilloID)
	if err != nil {
		return nil, err
	}
	resp := asignacionToResponse(asignacion)
	resp.Historico = outcome
	return resp, nil
}

func (s *menuService) ListarAsignaciones(ctx context.Context, menuID uuid.UUID) ([]dto.AsignacionResponse, error) {
	asignaciones, err := s.repo.ListAsignaciones(ctx, menuID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AsignacionResponse, 0, len(asignaciones))
	for i := range asignaciones {
		resp = append(resp, *asignacionToResponse(&asignaciones[i]))
	}
	return resp, nil
}

func (s *menuService) QuitarPlatillo(ctx context.Context, menuID, platilloID uuid.UUID) error {
	if err := s.repo.DesactivarAsignacion(ctx, menuID, platilloID); err != nil {
		return err
	}
	s.invalidateMargenes(ctx, menuID)
	return nil
}

// aplicarHistorico runs the snapshot policy after a committed asignacion
// mutation. Ledger failures are pushed to dlq:historico and surfaced in the
// response outcome; they do not fail the request.
func (s *menuService) aplicarHistorico(ctx context.Context, platilloID, menuID uuid.UUID, precio, costoPct decimal.Decimal) dto.HistoricoOutcome {
	res := s.historico.AplicarPolitica(ctx, EventoPrecio{
		PlatilloID:      platilloID,
		MenuID:          menuID,
		PrecioVenta:     precio,
		CostoPorcentual: costoPct,
	})
	if res.Err != nil {
		log.Error().
			Err(res.Err).
			Str("platillo_id", platilloID.String()).
			Str("menu_id", menuID.String()).
			Msg("historico: snapshot policy failed after primary mutation")
		if s.rdb != nil {
			payload, _ := json.Marshal(map[string]string{
				"platillo_id":  platilloID.String(),
				"menu_id":      menuID.String(),
				"precio_venta": precio.String(),
			})
			worker.SendToDLQ(ctx, s.rdb, worker.QueueHistorico, "historico", payload, res.Err.Error(), 1)
		}
		return dto.HistoricoOutcome{Error: res.Err.Error()}
	}
	return dto.HistoricoOutcome{
		Aplicado: true,
		Creado:   res.Creado,
		Filas:    res.Filas,
	}
}

func menuToResponse(m *model.Menu) *dto.MenuResponse {
	return &dto.MenuResponse{
		ID:            m.ID.String(),
		RestauranteID: m.RestauranteID.String(),
		Nombre:        m.Nombre,
		Descripcion:   m.Descripcion,
		Activo:        m.Activo,
	}
}

func asignacionToResponse(a *model.PlatilloMenu) *dto.AsignacionResponse {
	return &dto.AsignacionResponse{
		ID:             a.ID.String(),
		MenuID:         a.MenuID.String(),
		PlatilloID:     a.PlatilloID.String(),
		PrecioVenta:    a.PrecioVenta,
		PrecioConIVA:   a.PrecioConIVA,
		MargenUtilidad: a.MargenUtilidad,
		Activo:         a.Activo,
		FechaCreacion:  a.FechaCreacion.Format("2006-01-02T15:04:05Z"),
		Historico:      dto.HistoricoOutcome{},
	}
}

// ── Margenes (cached) ─────────────────────────────────────────────────────────

func margenesCacheKey(menuID uuid.UUID) string { return "margenes:" + menuID.String() }

func (s *menuService) Margenes(ctx context.Context, menuID uuid.UUID) (*dto.MargenesResponse, error) {
	key := margenesCacheKey(menuID)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var resp dto.MargenesResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
		}
	}

	menu, err := s.repo.FindByID(ctx, menuID)
	if err != nil {
		return nil, errors.New("menu no encontrado")
	}
	asignaciones, err := s.repo.ListAsignaciones(ctx, menuID)
	if err != nil {
		return nil, err
	}

	resp := &dto.MargenesResponse{
		MenuID:    menuID.String(),
		Menu:      menu.Nombre,
		Platillos: make([]dto.MargenItem, 0, len(asignaciones)),
	}
	for i := range asignaciones {
		a := &asignaciones[i]
		item := dto.MargenItem{
			PlatilloID:     a.PlatilloID.String(),
			PrecioVenta:    a.PrecioVenta,
			PrecioConIVA:   a.PrecioConIVA,
			MargenUtilidad: a.MargenUtilidad,
		}
		if a.Platillo != nil {
			item.Platillo = a.Platillo.Nombre
			item.CostoTotal = a.Platillo.CostoTotal
			item.CostoAdministrativo = a.Platillo.CostoAdministrativo
		}
		resp.Platillos = append(resp.Platillos, item)
	}

	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			_ = s.rdb.Set(ctx, key, data, margenesCacheTTL).Err()
		}
	}
	return resp, nil
}

func (s *menuService) invalidateMargenes(ctx context.Context, menuID uuid.UUID) {
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, margenesCacheKey(menuID)).Err()
	}
}
