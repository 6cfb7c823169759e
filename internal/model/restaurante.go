package model

import (
	"time"

	"github.com/google/uuid"
)

// Restaurante is a dining outlet inside a hotel. Menus hang off restaurantes.
type Restaurante struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	HotelID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre    string    `gorm:"not null"`
	Direccion *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Hotel *Hotel `gorm:"foreignKey:HotelID"`
}

func (Restaurante) TableName() string { return "restaurantes" }
