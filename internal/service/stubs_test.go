package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/adornodavid/aybcosteo-sub001/internal/dto"
	"github.com/adornodavid/aybcosteo-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
// In-memory repository implementations. DB() returns nil, so runTx executes
// the transaction body directly.

var errNotFound = errors.New("not found")

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// stubHistoricoRepo is an in-memory snapshot ledger. The period channel
// stands in for the transaction-scoped advisory lock: LockPeriodTx acquires
// it and UnlockPeriod releases it. The service calls UnlockPeriod once the
// policy transaction has finished, on success and on error alike.
type stubHistoricoRepo struct {
	mu     sync.Mutex
	period chan struct{}
	rows   []model.Historico

	existsErr error

	lastFilter dto.HistoricoFilter
	listRows   []model.Historico
}

func newStubHistoricoRepo() *stubHistoricoRepo {
	return &stubHistoricoRepo{period: make(chan struct{}, 1)}
}

func (r *stubHistoricoRepo) LockPeriodTx(_ *gorm.DB, _ int64) error {
	r.period <- struct{}{}
	return nil
}

func (r *stubHistoricoRepo) UnlockPeriod(int64) {
	select {
	case <-r.period:
	default:
	}
}

func (r *stubHistoricoRepo) ExistsInPeriodTx(_ *gorm.DB, platilloID, menuID uuid.UUID, desde, hasta time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.existsErr != nil {
		return false, r.existsErr
	}
	for i := range r.rows {
		h := &r.rows[i]
		if h.PlatilloID == platilloID && h.MenuID == menuID &&
			!h.FechaCreacion.Before(desde) && h.FechaCreacion.Before(hasta) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubHistoricoRepo) UpdateGrupoTx(_ *gorm.DB, platilloID, menuID uuid.UUID, desde, hasta time.Time, precio, costoPct decimal.Decimal) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for i := range r.rows {
		h := &r.rows[i]
		if h.PlatilloID == platilloID && h.MenuID == menuID &&
			!h.FechaCreacion.Before(desde) && h.FechaCreacion.Before(hasta) {
			h.PrecioVenta = precio
			h.CostoPorcentual = costoPct
			n++
		}
	}
	return n, nil
}

func (r *stubHistoricoRepo) InsertBatchTx(_ *gorm.DB, rows []model.Historico) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range rows {
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
	}
	r.rows = append(r.rows, rows...)
	return nil
}

func (r *stubHistoricoRepo) List(_ context.Context, filter dto.HistoricoFilter) ([]model.Historico, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = filter
	return r.listRows, int64(len(r.listRows)), nil
}

func (r *stubHistoricoRepo) DB() *gorm.DB { return nil }

// grupo returns the rows of one (platillo, menu) pair inside [desde, hasta).
func (r *stubHistoricoRepo) grupo(platilloID, menuID uuid.UUID, desde, hasta time.Time) []model.Historico {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Historico
	for i := range r.rows {
		h := &r.rows[i]
		if h.PlatilloID == platilloID && h.MenuID == menuID &&
			!h.FechaCreacion.Before(desde) && h.FechaCreacion.Before(hasta) {
			out = append(out, *h)
		}
	}
	return out
}

// stubMenuRepo backs MenuService and the snapshot fan-out hierarchy lookup.
type stubMenuRepo struct {
	mu           sync.Mutex
	menus        map[uuid.UUID]*model.Menu
	asignaciones map[uuid.UUID]*model.PlatilloMenu
}

func newStubMenuRepo() *stubMenuRepo {
	return &stubMenuRepo{
		menus:        make(map[uuid.UUID]*model.Menu),
		asignaciones: make(map[uuid.UUID]*model.PlatilloMenu),
	}
}

func (r *stubMenuRepo) Create(_ context.Context, m *model.Menu) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.menus[m.ID] = m
	return nil
}

func (r *stubMenuRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Menu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.menus[id]
	if !ok {
		return nil, errNotFound
	}
	return m, nil
}

func (r *stubMenuRepo) FindConJerarquia(ctx context.Context, id uuid.UUID) (*model.Menu, error) {
	return r.FindByID(ctx, id)
}

func (r *stubMenuRepo) ListByRestaurante(_ context.Context, restauranteID uuid.UUID) ([]model.Menu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Menu
	for _, m := range r.menus {
		if m.RestauranteID == restauranteID && m.Activo {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubMenuRepo) Update(_ context.Context, m *model.Menu) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.menus[m.ID] = m
	return nil
}

func (r *stubMenuRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.menus[id]; ok {
		m.Activo = false
	}
	return nil
}

func (r *stubMenuRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.menus[id]; ok {
		m.Activo = true
	}
	return nil
}

func (r *stubMenuRepo) CrearAsignacion(_ context.Context, a *model.PlatilloMenu) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.FechaCreacion.IsZero() {
		a.FechaCreacion = time.Now().UTC()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.asignaciones[a.ID] = a
	return nil
}

func (r *stubMenuRepo) FindAsignacion(_ context.Context, menuID, platilloID uuid.UUID) (*model.PlatilloMenu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.asignaciones {
		if a.MenuID == menuID && a.PlatilloID == platilloID {
			return a, nil
		}
	}
	return nil, errNotFound
}

func (r *stubMenuRepo) ActualizarPrecio(_ context.Context, menuID, platilloID uuid.UUID, precio, conIVA, margen decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.asignaciones {
		if a.MenuID == menuID && a.PlatilloID == platilloID {
			a.PrecioVenta = precio
			a.PrecioConIVA = conIVA
			a.MargenUtilidad = margen
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubMenuRepo) ListAsignaciones(_ context.Context, menuID uuid.UUID) ([]model.PlatilloMenu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.PlatilloMenu
	for _, a := range r.asignaciones {
		if a.MenuID == menuID && a.Activo {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubMenuRepo) ListAsignacionesActivas(_ context.Context) ([]model.PlatilloMenu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.PlatilloMenu
	for _, a := range r.asignaciones {
		if a.Activo {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubMenuRepo) DesactivarAsignacion(_ context.Context, menuID, platilloID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.asignaciones {
		if a.MenuID == menuID && a.PlatilloID == platilloID {
			a.Activo = false
		}
	}
	return nil
}

func (r *stubMenuRepo) DB() *gorm.DB { return nil }

// stubPlatilloRepo holds platillos plus their componente rows.
type stubPlatilloRepo struct {
	mu           sync.Mutex
	platillos    map[uuid.UUID]*model.Platillo
	recetas      []model.RecetaPlatillo
	ingredientes []model.IngredientePlatillo
}

func newStubPlatilloRepo() *stubPlatilloRepo {
	return &stubPlatilloRepo{platillos: make(map[uuid.UUID]*model.Platillo)}
}

func (r *stubPlatilloRepo) Create(_ context.Context, p *model.Platillo) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.platillos[p.ID] = p
	return nil
}

func (r *stubPlatilloRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Platillo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.platillos[id]
	if !ok {
		return nil, errNotFound
	}
	return p, nil
}

func (r *stubPlatilloRepo) List(_ context.Context, _ dto.PlatilloFilter) ([]model.Platillo, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Platillo
	for _, p := range r.platillos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPlatilloRepo) Update(_ context.Context, p *model.Platillo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.platillos[p.ID] = p
	return nil
}

func (r *stubPlatilloRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.platillos[id]; ok {
		p.Activo = false
	}
	return nil
}

func (r *stubPlatilloRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.platillos[id]; ok {
		p.Activo = true
	}
	return nil
}

func (r *stubPlatilloRepo) ListRecetas(_ context.Context, platilloID uuid.UUID) ([]model.RecetaPlatillo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.RecetaPlatillo
	for i := range r.recetas {
		if r.recetas[i].PlatilloID == platilloID {
			out = append(out, r.recetas[i])
		}
	}
	return out, nil
}

func (r *stubPlatilloRepo) ListIngredientes(_ context.Context, platilloID uuid.UUID) ([]model.IngredientePlatillo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.IngredientePlatillo
	for i := range r.ingredientes {
		if r.ingredientes[i].PlatilloID == platilloID {
			out = append(out, r.ingredientes[i])
		}
	}
	return out, nil
}

func (r *stubPlatilloRepo) AddRecetaTx(_ *gorm.DB, rp *model.RecetaPlatillo) error {
	if rp.ID == uuid.Nil {
		rp.ID = uuid.New()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recetas = append(r.recetas, *rp)
	return nil
}

func (r *stubPlatilloRepo) AddIngredienteTx(_ *gorm.DB, ip *model.IngredientePlatillo) error {
	if ip.ID == uuid.Nil {
		ip.ID = uuid.New()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ingredientes = append(r.ingredientes, *ip)
	return nil
}

func (r *stubPlatilloRepo) RemoveRecetaTx(_ *gorm.DB, platilloID, recetaID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.recetas[:0]
	for i := range r.recetas {
		if !(r.recetas[i].PlatilloID == platilloID && r.recetas[i].RecetaID == recetaID) {
			out = append(out, r.recetas[i])
		}
	}
	r.recetas = out
	return nil
}

func (r *stubPlatilloRepo) RemoveIngredienteTx(_ *gorm.DB, platilloID, ingredienteID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.ingredientes[:0]
	for i := range r.ingredientes {
		if !(r.ingredientes[i].PlatilloID == platilloID && r.ingredientes[i].IngredienteID == ingredienteID) {
			out = append(out, r.ingredientes[i])
		}
	}
	r.ingredientes = out
	return nil
}

func (r *stubPlatilloRepo) SumParcialesTx(_ *gorm.DB, platilloID uuid.UUID) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for i := range r.recetas {
		if r.recetas[i].PlatilloID == platilloID {
			total = total.Add(r.recetas[i].CostoParcial)
		}
	}
	for i := range r.ingredientes {
		if r.ingredientes[i].PlatilloID == platilloID {
			total = total.Add(r.ingredientes[i].CostoParcial)
		}
	}
	return total, nil
}

func (r *stubPlatilloRepo) UpdateCostoTotalTx(_ *gorm.DB, platilloID uuid.UUID, costoTotal decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.platillos[platilloID]; ok {
		p.CostoTotal = costoTotal
	}
	return nil
}

func (r *stubPlatilloRepo) DB() *gorm.DB { return nil }

// stubRecetaRepo re-prices componente rows directly in the platillo stub,
// the same cascade the SQL implementation performs.
type stubRecetaRepo struct {
	recetas   map[uuid.UUID]*model.Receta
	platillos *stubPlatilloRepo
}

func newStubRecetaRepo(platillos *stubPlatilloRepo) *stubRecetaRepo {
	return &stubRecetaRepo{recetas: make(map[uuid.UUID]*model.Receta), platillos: platillos}
}

func (r *stubRecetaRepo) Create(_ context.Context, rec *model.Receta) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	r.recetas[rec.ID] = rec
	return nil
}

func (r *stubRecetaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Receta, error) {
	rec, ok := r.recetas[id]
	if !ok {
		return nil, errNotFound
	}
	return rec, nil
}

func (r *stubRecetaRepo) List(_ context.Context, _ string) ([]model.Receta, error) {
	var out []model.Receta
	for _, rec := range r.recetas {
		out = append(out, *rec)
	}
	return out, nil
}

func (r *stubRecetaRepo) Update(_ context.Context, rec *model.Receta) error {
	r.recetas[rec.ID] = rec
	return nil
}

func (r *stubRecetaRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if rec, ok := r.recetas[id]; ok {
		rec.Activo = false
	}
	return nil
}

func (r *stubRecetaRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if rec, ok := r.recetas[id]; ok {
		rec.Activo = true
	}
	return nil
}

func (r *stubRecetaRepo) UpdateCostoTx(_ *gorm.DB, id uuid.UUID, costo decimal.Decimal) error {
	if rec, ok := r.recetas[id]; ok {
		rec.Costo = costo
	}
	return nil
}

func (r *stubRecetaRepo) RepreciarComponentesTx(_ *gorm.DB, id uuid.UUID, costo decimal.Decimal) ([]uuid.UUID, error) {
	r.platillos.mu.Lock()
	defer r.platillos.mu.Unlock()
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for i := range r.platillos.recetas {
		rp := &r.platillos.recetas[i]
		if rp.RecetaID == id {
			rp.CostoParcial = rp.Cantidad.Mul(costo)
			if !seen[rp.PlatilloID] {
				seen[rp.PlatilloID] = true
				ids = append(ids, rp.PlatilloID)
			}
		}
	}
	return ids, nil
}

func (r *stubRecetaRepo) DB() *gorm.DB { return nil }

type stubIngredienteRepo struct {
	ingredientes map[uuid.UUID]*model.Ingrediente
	platillos    *stubPlatilloRepo
}

func newStubIngredienteRepo(platillos *stubPlatilloRepo) *stubIngredienteRepo {
	return &stubIngredienteRepo{ingredientes: make(map[uuid.UUID]*model.Ingrediente), platillos: platillos}
}

func (r *stubIngredienteRepo) Create(_ context.Context, i *model.Ingrediente) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	r.ingredientes[i.ID] = i
	return nil
}

func (r *stubIngredienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Ingrediente, error) {
	i, ok := r.ingredientes[id]
	if !ok {
		return nil, errNotFound
	}
	return i, nil
}

func (r *stubIngredienteRepo) List(_ context.Context, _ string) ([]model.Ingrediente, error) {
	var out []model.Ingrediente
	for _, i := range r.ingredientes {
		out = append(out, *i)
	}
	return out, nil
}

func (r *stubIngredienteRepo) Update(_ context.Context, i *model.Ingrediente) error {
	r.ingredientes[i.ID] = i
	return nil
}

func (r *stubIngredienteRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if i, ok := r.ingredientes[id]; ok {
		i.Activo = false
	}
	return nil
}

func (r *stubIngredienteRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if i, ok := r.ingredientes[id]; ok {
		i.Activo = true
	}
	return nil
}

func (r *stubIngredienteRepo) UpdateCostoTx(_ *gorm.DB, id uuid.UUID, costo decimal.Decimal) error {
	if i, ok := r.ingredientes[id]; ok {
		i.CostoUnitario = costo
	}
	return nil
}

func (r *stubIngredienteRepo) RepreciarComponentesTx(_ *gorm.DB, id uuid.UUID, costo decimal.Decimal) ([]uuid.UUID, error) {
	r.platillos.mu.Lock()
	defer r.platillos.mu.Unlock()
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for i := range r.platillos.ingredientes {
		ip := &r.platillos.ingredientes[i]
		if ip.IngredienteID == id {
			ip.CostoParcial = ip.Cantidad.Mul(costo)
			if !seen[ip.PlatilloID] {
				seen[ip.PlatilloID] = true
				ids = append(ids, ip.PlatilloID)
			}
		}
	}
	return ids, nil
}

func (r *stubIngredienteRepo) DB() *gorm.DB { return nil }

type stubRestauranteRepo struct {
	restaurantes map[uuid.UUID]*model.Restaurante
}

func newStubRestauranteRepo() *stubRestauranteRepo {
	return &stubRestauranteRepo{restaurantes: make(map[uuid.UUID]*model.Restaurante)}
}

func (r *stubRestauranteRepo) Create(_ context.Context, rest *model.Restaurante) error {
	if rest.ID == uuid.Nil {
		rest.ID = uuid.New()
	}
	r.restaurantes[rest.ID] = rest
	return nil
}

func (r *stubRestauranteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Restaurante, error) {
	rest, ok := r.restaurantes[id]
	if !ok {
		return nil, errNotFound
	}
	return rest, nil
}

func (r *stubRestauranteRepo) ListByHotel(_ context.Context, hotelID uuid.UUID) ([]model.Restaurante, error) {
	var out []model.Restaurante
	for _, rest := range r.restaurantes {
		if rest.HotelID == hotelID && rest.Activo {
			out = append(out, *rest)
		}
	}
	return out, nil
}

func (r *stubRestauranteRepo) List(_ context.Context) ([]model.Restaurante, error) {
	var out []model.Restaurante
	for _, rest := range r.restaurantes {
		if rest.Activo {
			out = append(out, *rest)
		}
	}
	return out, nil
}

func (r *stubRestauranteRepo) Update(_ context.Context, rest *model.Restaurante) error {
	r.restaurantes[rest.ID] = rest
	return nil
}

func (r *stubRestauranteRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if rest, ok := r.restaurantes[id]; ok {
		rest.Activo = false
	}
	return nil
}

func (r *stubRestauranteRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if rest, ok := r.restaurantes[id]; ok {
		rest.Activo = true
	}
	return nil
}

// stubHistoricoSvc lets MenuService tests control the ledger outcome.
type stubHistoricoSvc struct {
	mu     sync.Mutex
	res    ResultadoHistorico
	events []EventoPrecio
}

func (s *stubHistoricoSvc) AplicarPolitica(_ context.Context, ev EventoPrecio) ResultadoHistorico {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.res
}

func (s *stubHistoricoSvc) AplicarSiFalta(ctx context.Context, platilloID, menuID uuid.UUID, precio, costoPct decimal.Decimal) error {
	return s.AplicarPolitica(ctx, EventoPrecio{
		PlatilloID: platilloID, MenuID: menuID,
		PrecioVenta: precio, CostoPorcentual: costoPct,
		SoloCrear: true,
	}).Err
}

func (s *stubHistoricoSvc) Listar(_ context.Context, _ dto.HistoricoFilter) (*dto.HistoricoListResponse, error) {
	return &dto.HistoricoListResponse{}, nil
}
