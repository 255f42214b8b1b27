package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Presupuesto es el presupuesto (quote) emitido a un cliente.
// Estado: "draft" | "pending" | "approved" | "in_progress" | "completed" | "canceled"
// Invariante: Total = max(Subtotal - Descuento, 0); SaldoPendiente = Total - Σ pagos.
type Presupuesto struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero int       `gorm:"uniqueIndex;not null"`

	// ClienteID apunta al registro de cliente (clave derivada, ver internal/clientid).
	// Se asigna recién al aprobar; los campos Cliente* son el snapshot inmutable
	// tomado al crear el presupuesto y nunca se re-sincronizan.
	ClienteID        *string `gorm:"index"`
	ClienteNombre    string  `gorm:"not null"`
	ClienteDireccion *string
	ClienteTelefono  *string
	ClienteEmail     *string
	ClienteCUIT      *string `gorm:"column:cliente_cuit"`

	Items []PresupuestoItem `gorm:"foreignKey:PresupuestoID;constraint:OnDelete:CASCADE"`

	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descuento decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Estado string `gorm:"type:varchar(20);not null;default:'draft';index"`

	Pagos          []Pago          `gorm:"foreignKey:PresupuestoID"`
	SaldoPendiente decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	// SeguimientoID enlaza al seguimiento de obra creado al aprobar.
	SeguimientoID   *uuid.UUID `gorm:"type:uuid"`
	FechaAprobacion *time.Time

	Nota *string

	// PDFPath es la ruta del último PDF renderizado por el worker asíncrono.
	PDFPath *string

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// PresupuestoItem es una línea del presupuesto.
// Tipo: "material" | "mano_obra"
type PresupuestoItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PresupuestoID uuid.UUID `gorm:"type:uuid;not null;index"`
	Orden         int       `gorm:"not null;default:0"`
	Tipo          string    `gorm:"type:varchar(20);not null"`
	Descripcion   string    `gorm:"not null"`
	Cantidad      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Unidad        string
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalLinea     decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	// MaterialID referencia el material de inventario cuyo stock se compromete
	// al aprobar. Solo tiene sentido para Tipo="material"; nil = línea libre.
	MaterialID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName overrides GORM's default pluralization.
func (PresupuestoItem) TableName() string { return "presupuesto_items" }

// Pago es una entrada inmutable del libro de pagos de un presupuesto.
// Metodo: "efectivo" | "transferencia" | "cheque"
type Pago struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PresupuestoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Monto         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Fecha         time.Time       `gorm:"not null"`
	Metodo        string          `gorm:"type:varchar(20);not null"`
	Nota          *string
	CreatedAt     time.Time
}
