package dto

import "github.com/shopspring/decimal"

// ─── Ingredientes ────────────────────────────────────────────────────────────

type CrearIngredienteRequest struct {
	Nombre        string          `json:"nombre"         validate:"required,min=2,max=120"`
	UnidadMedida  string          `json:"unidad_medida"`
	CostoUnitario decimal.Decimal `json:"costo_unitario" validate:"required"`
}

type ActualizarIngredienteRequest struct {
	Nombre       *string `json:"nombre"        validate:"omitempty,min=2,max=120"`
	UnidadMedida *string `json:"unidad_medida"`
}

// ActualizarCostoRequest re-prices an ingrediente or receta. The new unit cost
// propagates to every platillo componente that references it.
type ActualizarCostoRequest struct {
	Costo decimal.Decimal `json:"costo" validate:"required"`
}

type IngredienteResponse struct {
	ID            string          `json:"id"`
	Nombre        string          `json:"nombre"`
	UnidadMedida  string          `json:"unidad_medida"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	Activo        bool            `json:"activo"`
}

// ─── Recetas (sub-recipes) ───────────────────────────────────────────────────

type CrearRecetaRequest struct {
	Nombre string          `json:"nombre" validate:"required,min=2,max=120"`
	Costo  decimal.Decimal `json:"costo"  validate:"required"`
}

type ActualizarRecetaRequest struct {
	Nombre *string `json:"nombre" validate:"omitempty,min=2,max=120"`
}

type RecetaResponse struct {
	ID     string          `json:"id"`
	Nombre string          `json:"nombre"`
	Costo  decimal.Decimal `json:"costo"`
	Activo bool            `json:"activo"`
}
