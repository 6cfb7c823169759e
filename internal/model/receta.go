package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Receta is a sub-recipe (salsa, fondo, guarnición) used as a platillo
// component. Costo is the cost of one batch unit of the receta.
type Receta struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"index;not null"`
	Costo     decimal.Decimal `gorm:"type:decimal(10,4);not null"`
	Activo    bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Receta) TableName() string { return "recetas" }
