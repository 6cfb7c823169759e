package dto

import "github.com/shopspring/decimal"

// ─── Menus ───────────────────────────────────────────────────────────────────

type CrearMenuRequest struct {
	RestauranteID string  `json:"restaurante_id" validate:"required,uuid"`
	Nombre        string  `json:"nombre"         validate:"required,min=2,max=120"`
	Descripcion   *string `json:"descripcion"`
}

type ActualizarMenuRequest struct {
	Nombre      *string `json:"nombre" validate:"omitempty,min=2,max=120"`
	Descripcion *string `json:"descripcion"`
}

type MenuResponse struct {
	ID            string  `json:"id"`
	RestauranteID string  `json:"restaurante_id"`
	Nombre        string  `json:"nombre"`
	Descripcion   *string `json:"descripcion"`
	Activo        bool    `json:"activo"`
}

// ─── Asignaciones platillo ↔ menu ────────────────────────────────────────────

// AgregarPlatilloRequest assigns a platillo to a menu with its sale price.
// CostoAdministrativo is the margin baseline; CostoPorcentual is the cost
// percentage the caller wants stamped on the historico snapshot.
type AgregarPlatilloRequest struct {
	PlatilloID          string          `json:"platillo_id"          validate:"required,uuid"`
	PrecioVenta         decimal.Decimal `json:"precio_venta"         validate:"required"`
	CostoAdministrativo decimal.Decimal `json:"costo_administrativo" validate:"required"`
	CostoPorcentual     decimal.Decimal `json:"costo_porcentual"`
}

type ActualizarPrecioRequest struct {
	PrecioVenta         decimal.Decimal `json:"precio_venta"         validate:"required"`
	CostoAdministrativo decimal.Decimal `json:"costo_administrativo" validate:"required"`
	CostoPorcentual     decimal.Decimal `json:"costo_porcentual"`
}

// HistoricoOutcome reports how the snapshot ledger reacted to a price event.
// The primary mutation (the platillosxmenu row) has already succeeded when
// this is populated; a ledger failure never fails the request, but it is
// visible here and in the dlq:historico list.
type HistoricoOutcome struct {
	Aplicado bool   `json:"aplicado"`         // policy ran without error
	Creado   bool   `json:"creado"`           // fresh snapshot group fanned out
	Filas    int    `json:"filas"`            // rows inserted or patched
	Error    string `json:"error,omitempty"`  // ledger-side error, if any
}

type AsignacionResponse struct {
	ID             string          `json:"id"`
	MenuID         string          `json:"menu_id"`
	PlatilloID     string          `json:"platillo_id"`
	PrecioVenta    decimal.Decimal `json:"precio_venta"`
	PrecioConIVA   decimal.Decimal `json:"precio_con_iva"`
	MargenUtilidad decimal.Decimal `json:"margen_utilidad"`
	Activo         bool            `json:"activo"`
	FechaCreacion  string          `json:"fecha_creacion"`
	Historico      HistoricoOutcome `json:"historico"`
}

// ─── Margenes (cached read) ──────────────────────────────────────────────────

type MargenItem struct {
	PlatilloID          string          `json:"platillo_id"`
	Platillo            string          `json:"platillo"`
	CostoTotal          decimal.Decimal `json:"costo_total"`
	CostoAdministrativo decimal.Decimal `json:"costo_administrativo"`
	PrecioVenta         decimal.Decimal `json:"precio_venta"`
	PrecioConIVA        decimal.Decimal `json:"precio_con_iva"`
	MargenUtilidad      decimal.Decimal `json:"margen_utilidad"`
}

type MargenesResponse struct {
	MenuID   string       `json:"menu_id"`
	Menu     string       `json:"menu"`
	Platillos []MargenItem `json:"platillos"`
}
