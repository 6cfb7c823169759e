package dto

import "github.com/shopspring/decimal"

// HistoricoFilter selects snapshot rows. Mes uses "2006-01" format; empty
// means the current month.
type HistoricoFilter struct {
	PlatilloID string `form:"platillo_id" validate:"omitempty,uuid"`
	MenuID     string `form:"menu_id"     validate:"omitempty,uuid"`
	HotelID    string `form:"hotel_id"    validate:"omitempty,uuid"`
	Mes        string `form:"mes"`
	Page       int    `form:"page,default=1"  validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type HistoricoItem struct {
	ID              string           `json:"id"`
	HotelID         string           `json:"hotel_id"`
	RestauranteID   string           `json:"restaurante_id"`
	MenuID          string           `json:"menu_id"`
	PlatilloID      string           `json:"platillo_id"`
	IngredienteID   *string          `json:"ingrediente_id,omitempty"`
	RecetaID        *string          `json:"receta_id,omitempty"`
	Componente      string           `json:"componente"`
	Cantidad        *decimal.Decimal `json:"cantidad,omitempty"`
	Costo           decimal.Decimal  `json:"costo"`
	PrecioVenta     decimal.Decimal  `json:"precio_venta"`
	CostoPorcentual decimal.Decimal  `json:"costo_porcentual"`
	FechaCreacion   string           `json:"fecha_creacion"`
}

type HistoricoListResponse struct {
	Data  []HistoricoItem `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
