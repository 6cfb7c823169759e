package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ingrediente is a purchasable input with a unit cost. Changing CostoUnitario
// re-prices every ingredientesxplatillo row that references it.
type Ingrediente struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre        string    `gorm:"index;not null"`
	UnidadMedida  string    `gorm:"not null;default:'kg'"`
	CostoUnitario decimal.Decimal `gorm:"type:decimal(10,4);not null"`
	Activo        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Ingrediente) TableName() string { return "ingredientes" }
