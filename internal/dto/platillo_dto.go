package dto

import "github.com/shopspring/decimal"

// ─── Platillos ───────────────────────────────────────────────────────────────

type CrearPlatilloRequest struct {
	Nombre              string          `json:"nombre" validate:"required,min=2,max=120"`
	Descripcion         *string         `json:"descripcion"`
	CostoAdministrativo decimal.Decimal `json:"costo_administrativo" validate:"min=0"`
}

type ActualizarPlatilloRequest struct {
	Nombre              *string          `json:"nombre" validate:"omitempty,min=2,max=120"`
	Descripcion         *string          `json:"descripcion"`
	CostoAdministrativo *decimal.Decimal `json:"costo_administrativo"`
}

type PlatilloFilter struct {
	Nombre string `form:"nombre"`
	Activo string `form:"activo"` // "", "false", "all"
	Page   int    `form:"page,default=1"  validate:"min=1"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type PlatilloResponse struct {
	ID                  string          `json:"id"`
	Nombre              string          `json:"nombre"`
	Descripcion         *string         `json:"descripcion"`
	CostoTotal          decimal.Decimal `json:"costo_total"`
	CostoAdministrativo decimal.Decimal `json:"costo_administrativo"`
	Activo              bool            `json:"activo"`
}

type PlatilloListResponse struct {
	Data  []PlatilloResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// ─── Componentes (receta / ingrediente dentro de un platillo) ────────────────

type AgregarIngredienteRequest struct {
	IngredienteID string          `json:"ingrediente_id" validate:"required,uuid"`
	Cantidad      decimal.Decimal `json:"cantidad"       validate:"required"`
}

type AgregarRecetaRequest struct {
	RecetaID string          `json:"receta_id" validate:"required,uuid"`
	Cantidad decimal.Decimal `json:"cantidad"  validate:"required"`
}

type ComponenteResponse struct {
	ID            string           `json:"id"`
	PlatilloID    string           `json:"platillo_id"`
	IngredienteID *string          `json:"ingrediente_id,omitempty"`
	RecetaID      *string          `json:"receta_id,omitempty"`
	Nombre        string           `json:"nombre"`
	Cantidad      *decimal.Decimal `json:"cantidad,omitempty"`
	CostoParcial  decimal.Decimal  `json:"costo_parcial"`
}

type ComponentesResponse struct {
	PlatilloID   string               `json:"platillo_id"`
	CostoTotal   decimal.Decimal      `json:"costo_total"`
	Recetas      []ComponenteResponse `json:"recetas"`
	Ingredientes []ComponenteResponse `json:"ingredientes"`
}
