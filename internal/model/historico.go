package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Historico is one row of the monthly cost/price snapshot ledger.
//
// A snapshot "group" is the set of rows sharing (platillo, menu, calendar
// month): one row per receta component plus one per ingrediente component,
// all stamped with the same FechaCreacion, PrecioVenta and CostoPorcentual.
// Exactly one of IngredienteID / RecetaID is set per row; Cantidad is NULL
// for receta rows.
//
// At most one group exists per (platillo, menu, month). Price changes inside
// the month patch PrecioVenta / CostoPorcentual on the existing rows and
// leave Cantidad / Costo as originally snapshotted. A new month gets a fresh
// group; prior months are never touched.
type Historico struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	HotelID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	RestauranteID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	MenuID          uuid.UUID  `gorm:"type:uuid;not null;index:idx_historico_grupo"`
	PlatilloID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_historico_grupo"`
	IngredienteID   *uuid.UUID `gorm:"type:uuid"`
	RecetaID        *uuid.UUID `gorm:"type:uuid"`
	Cantidad        *decimal.Decimal `gorm:"type:decimal(10,4)"`
	Costo           decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	Activo          bool             `gorm:"not null;default:true"`
	FechaCreacion   time.Time        `gorm:"not null;index:idx_historico_grupo"`
	PrecioVenta     decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	CostoPorcentual decimal.Decimal  `gorm:"type:decimal(5,2);not null"`

	Ingrediente *Ingrediente `gorm:"foreignKey:IngredienteID"`
	Receta      *Receta      `gorm:"foreignKey:RecetaID"`
}

func (Historico) TableName() string { return "historico" }
