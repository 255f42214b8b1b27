package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Material es un ítem de inventario del pañol.
// StockComprometido crece al aprobar presupuestos que lo referencian; no existe
// camino de liberación automática (la cancelación no descompromete stock).
type Material struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre         string          `gorm:"index;not null"`
	Unidad         string          `gorm:"not null;default:'unidad'"`
	StockActual    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	StockComprometido decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Activo         bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// TableName overrides GORM's default pluralization (materials → materiales).
func (Material) TableName() string { return "materiales" }
