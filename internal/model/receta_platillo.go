package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecetaPlatillo links a platillo to a constituent sub-recipe.
// CostoParcial = Cantidad × receta.Costo, maintained on every receta cost change.
type RecetaPlatillo struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PlatilloID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_platillo_receta;not null"`
	RecetaID     uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_platillo_receta;not null"`
	Cantidad     decimal.Decimal `gorm:"type:decimal(10,4);not null"`
	CostoParcial decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Receta *Receta `gorm:"foreignKey:RecetaID"`
}

func (RecetaPlatillo) TableName() string { return "recetasxplatillo" }
