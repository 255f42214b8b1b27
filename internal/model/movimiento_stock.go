package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovimientoStock registra cada cambio de stock o de compromiso sobre un
// material. Se crea automáticamente al aprobar un presupuesto (reserva), al
// ajustar stock a mano o al cargar una compra. Es un log append-only.
type MovimientoStock struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MaterialID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tipo       string          `gorm:"not null"` // "reserva" | "ajuste" | "compra"
	Cantidad   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Antes/Despues capturan el contador afectado: stock_comprometido para
	// reservas, stock_actual para ajustes y compras.
	Antes   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Despues decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Motivo  string
	// ReferenciaID apunta al presupuesto que originó la reserva, si aplica.
	ReferenciaID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time

	Material *Material `gorm:"foreignKey:MaterialID"`
}

// TableName overrides GORM's default pluralization (movimiento_stocks → movimientos_stock).
func (MovimientoStock) TableName() string { return "movimientos_stock" }
