package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlatilloMenu assigns a platillo to a menu with its sale price.
// One row per (menu, platillo) pair. MargenUtilidad is derived:
// precioventa − costo administrativo at the time of the last price change.
// PrecioConIVA = PrecioVenta × 1.16.
type PlatilloMenu struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MenuID         uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_menu_platillo;not null"`
	PlatilloID     uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_menu_platillo;not null"`
	PrecioVenta    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecioConIVA   decimal.Decimal `gorm:"column:precio_con_iva;type:decimal(10,2);not null"`
	MargenUtilidad decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Activo         bool            `gorm:"not null;default:true"`
	FechaCreacion  time.Time       `gorm:"autoCreateTime"`

	Menu     *Menu     `gorm:"foreignKey:MenuID"`
	Platillo *Platillo `gorm:"foreignKey:PlatilloID"`
}

func (PlatilloMenu) TableName() string { return "platillosxmenu" }
