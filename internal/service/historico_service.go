package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/adornodavid/aybcosteo-sub001/internal/dto"
	"github.com/adornodavid/aybcosteo-sub001/internal/model"
	"github.com/adornodavid/aybcosteo-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EventoPrecio is a price event against one platillo ↔ menu asignacion:
// the platillo was added to the menu, or its sale price changed.
type EventoPrecio struct {
	PlatilloID      uuid.UUID
	MenuID          uuid.UUID
	PrecioVenta     decimal.Decimal
	CostoPorcentual decimal.Decimal
	// Fecha is the event timestamp; zero means now. It decides which calendar
	// month the snapshot belongs to.
	Fecha time.Time
	// SoloCrear turns the event into a create-only one: if the month's group
	// already exists the event does nothing, so it cannot overwrite the
	// precio/costo porcentual a real price event stamped on the group. The
	// snapshot cron runs in this mode.
	SoloCrear bool
}

// ResultadoHistorico reports what the snapshot policy did. Exactly one of
// Creado / Actualizado is set when the event touched the ledger; a create-only
// event over an existing group sets neither. Err carries a ledger-side failure
// that the caller surfaces without failing the primary mutation.
type ResultadoHistorico struct {
	Creado      bool
	Actualizado bool
	Filas       int
	Err         error
}

type HistoricoService interface {
	// AplicarPolitica runs the monthly snapshot policy for one price event:
	// at most one snapshot group per (platillo, menu, calendar month). The
	// first event of a month fans out one row per componente; later events
	// inside the same month patch precio/costo porcentual on the existing
	// group and never change its row count.
	AplicarPolitica(ctx context.Context, ev EventoPrecio) ResultadoHistorico
	// AplicarSiFalta is the cron-facing, create-only form of AplicarPolitica:
	// it fans out the month's group when missing and leaves an existing group
	// untouched.
	AplicarSiFalta(ctx context.Context, platilloID, menuID uuid.UUID, precioVenta, costoPorcentual decimal.Decimal) error
	Listar(ctx context.Context, filter dto.HistoricoFilter) (*dto.HistoricoListResponse, error)
}

type historicoService struct {
	repo         repository.HistoricoRepository
	menuRepo     repository.MenuRepository
	platilloRepo repository.PlatilloRepository
}

func NewHistoricoService(
	repo repository.HistoricoRepository,
	menuRepo repository.MenuRepository,
	platilloRepo repository.PlatilloRepository,
) HistoricoService {
	return &historicoService{repo: repo, menuRepo: menuRepo, platilloRepo: platilloRepo}
}

// periodLockKey derives the advisory-lock key serializing snapshot writers
// for one (platillo, menu, month) triple.
func periodLockKey(platilloID, menuID uuid.UUID, desde time.Time) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%s", platilloID, menuID, desde.Format("2006-01"))
	return int64(h.Sum64())
}

func periodBounds(fecha time.Time) (time.Time, time.Time) {
	desde := time.Date(fecha.Year(), fecha.Month(), 1, 0, 0, 0, 0, time.UTC)
	return desde, desde.AddDate(0, 1, 0)
}

func (s *historicoService) AplicarPolitica(ctx context.Context, ev EventoPrecio) ResultadoHistorico {
	fecha := ev.Fecha
	if fecha.IsZero() {
		fecha = time.Now().UTC()
	}
	desde, hasta := periodBounds(fecha)
	key := periodLockKey(ev.PlatilloID, ev.MenuID, desde)

	// The advisory lock lives until the transaction ends; UnlockPeriod is the
	// matching release point for implementations without transactions.
	defer s.repo.UnlockPeriod(key)

	var res ResultadoHistorico
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// The lock closes the gap between the existence check and the write:
		// a concurrent event for the same triple blocks here until this
		// transaction commits, then sees the group it would have duplicated.
		if err := s.repo.LockPeriodTx(tx, key); err != nil {
			return err
		}

		exists, err := s.repo.ExistsInPeriodTx(tx, ev.PlatilloID, ev.MenuID, desde, hasta)
		if err != nil {
			return err
		}
		if exists {
			if ev.SoloCrear {
				return nil
			}
			n, err := s.repo.UpdateGrupoTx(tx, ev.PlatilloID, ev.MenuID, desde, hasta, ev.PrecioVenta, ev.CostoPorcentual)
			if err != nil {
				return err
			}
			res.Actualizado = true
			res.Filas = int(n)
			return nil
		}

		menu, err := s.menuRepo.FindConJerarquia(ctx, ev.MenuID)
		if err != nil {
			return fmt.Errorf("menu %s: %w", ev.MenuID, err)
		}
		if menu.Restaurante == nil {
			return fmt.Errorf("menu %s sin restaurante", ev.MenuID)
		}

		recetas, err := s.platilloRepo.ListRecetas(ctx, ev.PlatilloID)
		if err != nil {
			return err
		}
		ingredientes, err := s.platilloRepo.ListIngredientes(ctx, ev.PlatilloID)
		if err != nil {
			return err
		}

		rows := make([]model.Historico, 0, len(recetas)+len(ingredientes))
		for i := range recetas {
			rid := recetas[i].RecetaID
			rows = append(rows, model.Historico{
				HotelID:         menu.Restaurante.HotelID,
				RestauranteID:   menu.RestauranteID,
				MenuID:          ev.MenuID,
				PlatilloID:      ev.PlatilloID,
				RecetaID:        &rid,
				Costo:           recetas[i].CostoParcial,
				Activo:          true,
				FechaCreacion:   fecha,
				PrecioVenta:     ev.PrecioVenta,
				CostoPorcentual: ev.CostoPorcentual,
			})
		}
		for i := range ingredientes {
			iid := ingredientes[i].IngredienteID
			cant := ingredientes[i].Cantidad
			rows = append(rows, model.Historico{
				HotelID:         menu.Restaurante.HotelID,
				RestauranteID:   menu.RestauranteID,
				MenuID:          ev.MenuID,
				PlatilloID:      ev.PlatilloID,
				IngredienteID:   &iid,
				Cantidad:        &cant,
				Costo:           ingredientes[i].CostoParcial,
				Activo:          true,
				FechaCreacion:   fecha,
				PrecioVenta:     ev.PrecioVenta,
				CostoPorcentual: ev.CostoPorcentual,
			})
		}

		// A platillo with no componentes snapshots zero rows; the month's
		// group simply stays empty until componentes exist.
		res.Creado = true
		res.Filas = len(rows)
		return s.repo.InsertBatchTx(tx, rows)
	})
	if err != nil {
		return ResultadoHistorico{Err: err}
	}
	return res
}

func (s *historicoService) AplicarSiFalta(ctx context.Context, platilloID, menuID uuid.UUID, precioVenta, costoPorcentual decimal.Decimal) error {
	res := s.AplicarPolitica(ctx, EventoPrecio{
		PlatilloID:      platilloID,
		MenuID:          menuID,
		PrecioVenta:     precioVenta,
		CostoPorcentual: costoPorcentual,
		SoloCrear:       true,
	})
	return res.Err
}

func (s *historicoService) Listar(ctx context.Context, filter dto.HistoricoFilter) (*dto.HistoricoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Mes == "" {
		filter.Mes = time.Now().UTC().Format("2006-01")
	}

	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.HistoricoItem, 0, len(rows))
	for i := range rows {
		items = append(items, *historicoToItem(&rows[i]))
	}
	return &dto.HistoricoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func historicoToItem(h *model.Historico) *dto.HistoricoItem {
	item := &dto.HistoricoItem{
		ID:              h.ID.String(),
		HotelID:         h.HotelID.String(),
		RestauranteID:   h.RestauranteID.String(),
		MenuID:          h.MenuID.String(),
		PlatilloID:      h.PlatilloID.String(),
		Costo:           h.Costo,
		PrecioVenta:     h.PrecioVenta,
		CostoPorcentual: h.CostoPorcentual,
		FechaCreacion:   h.FechaCreacion.Format("2006-01-02T15:04:05Z"),
	}
	if h.RecetaID != nil {
		rid := h.RecetaID.String()
		item.RecetaID = &rid
		item.Componente = "receta"
		if h.Receta != nil {
			item.Componente = h.Receta.Nombre
		}
	}
	if h.IngredienteID != nil {
		iid := h.IngredienteID.String()
		item.IngredienteID = &iid
		item.Componente = "ingrediente"
		if h.Ingrediente != nil {
			item.Componente = h.Ingrediente.Nombre
		}
	}
	if h.Cantidad != nil {
		cant := *h.Cantidad
		item.Cantidad = &cant
	}
	return item
}
