package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Platillo is a dish with an ingredient/recipe cost breakdown.
// CostoTotal is derived: the sum of the partial costs of its componentes
// (recetasxplatillo + ingredientesxplatillo), recomputed whenever a componente
// or an underlying unit cost changes. CostoAdministrativo is the fully-loaded
// cost (overhead included) that staff maintain; it is the margin baseline.
// Platillos are never hard-deleted, only deactivated.
type Platillo struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre              string    `gorm:"index;not null"`
	Descripcion         *string
	CostoTotal          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	CostoAdministrativo decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Activo              bool            `gorm:"not null;default:true"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (Platillo) TableName() string { return "platillos" }
