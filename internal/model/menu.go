package model

import (
	"time"

	"github.com/google/uuid"
)

// Menu is a named collection of platillos offered at a restaurante.
// The platillo ↔ menu association (with its sale price) lives in PlatilloMenu.
type Menu struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RestauranteID uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre        string    `gorm:"not null"`
	Descripcion   *string
	Activo        bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Restaurante *Restaurante `gorm:"foreignKey:RestauranteID"`
}

func (Menu) TableName() string { return "menus" }
