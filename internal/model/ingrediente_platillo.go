package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IngredientePlatillo links a platillo to a constituent ingredient.
// CostoParcial = Cantidad × ingrediente.CostoUnitario, maintained on every
// unit-cost change.
type IngredientePlatillo struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PlatilloID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_platillo_ingrediente;not null"`
	IngredienteID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_platillo_ingrediente;not null"`
	Cantidad      decimal.Decimal `gorm:"type:decimal(10,4);not null"`
	CostoParcial  decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Ingrediente *Ingrediente `gorm:"foreignKey:IngredienteID"`
}

func (IngredientePlatillo) TableName() string { return "ingredientesxplatillo" }
