package model

import (
	"time"

	"github.com/google/uuid"
)

// Hotel is the top-level operating unit. Every restaurante belongs to exactly
// one hotel, and every historico row is tagged with its hotel for reporting.
type Hotel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	Direccion *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default singular → plural logic for Spanish names.
func (Hotel) TableName() string { return "hoteles" }
