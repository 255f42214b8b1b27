package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Seguimiento es el registro de seguimiento de obra creado exactamente una vez
// por presupuesto aprobado. A partir de la aprobación tiene vida propia: sus
// tareas, materiales y libro de pagos se editan sin tocar el presupuesto.
// Estado: "pending_start" | "in_progress" | "completed" | "canceled"
type Seguimiento struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PresupuestoID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	// Snapshot denormalizado del cliente al momento de la aprobación.
	ClienteID        string `gorm:"index;not null"`
	ClienteNombre    string `gorm:"not null"`
	ClienteDireccion *string
	ClienteTelefono  *string
	ClienteEmail     *string

	Tareas     []Tarea               `gorm:"foreignKey:SeguimientoID;constraint:OnDelete:CASCADE"`
	Materiales []SeguimientoMaterial `gorm:"foreignKey:SeguimientoID;constraint:OnDelete:CASCADE"`
	Registros  []RegistroDiario      `gorm:"foreignKey:SeguimientoID;constraint:OnDelete:CASCADE"`
	Pagos      []PagoSeguimiento     `gorm:"foreignKey:SeguimientoID"`
	Gastos     []Gasto               `gorm:"foreignKey:SeguimientoID"`

	SaldoPendiente decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Estado         string          `gorm:"type:varchar(20);not null;default:'pending_start';index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Tarea se deriva 1:1 de cada línea del presupuesto al aprobar.
type Tarea struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SeguimientoID uuid.UUID `gorm:"type:uuid;not null;index"`
	Orden         int       `gorm:"not null;default:0"`
	Texto         string    `gorm:"not null"`
	Completada    bool      `gorm:"not null;default:false"`
	// ItemOrigenID es la línea de presupuesto que originó esta tarea.
	ItemOrigenID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SeguimientoMaterial es la copia de trabajo de cada línea de material.
// Estado: "planificado" | "comprado" | "usado"
type SeguimientoMaterial struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SeguimientoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Orden         int             `gorm:"not null;default:0"`
	Nombre        string          `gorm:"not null"`
	Cantidad      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Unidad        string
	Estado        string    `gorm:"type:varchar(20);not null;default:'planificado'"`
	ItemOrigenID  uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides GORM's default pluralization.
func (SeguimientoMaterial) TableName() string { return "seguimiento_materiales" }

// RegistroDiario es una entrada libre del diario de obra.
type RegistroDiario struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SeguimientoID uuid.UUID `gorm:"type:uuid;not null;index"`
	Fecha         time.Time `gorm:"not null"`
	Texto         string    `gorm:"not null"`
	CreatedAt     time.Time
}

// PagoSeguimiento es el libro de pagos propio del seguimiento. Se inicializa
// vacío al aprobar y luego se mantiene independiente del presupuesto.
type PagoSeguimiento struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SeguimientoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Monto         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Fecha         time.Time       `gorm:"not null"`
	Metodo        string          `gorm:"type:varchar(20);not null"`
	Nota          *string
	CreatedAt     time.Time
}

// Gasto registra un egreso imputado a la obra (materiales comprados, fletes,
// jornales). Alimenta el reporte de ingresos/egresos.
type Gasto struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SeguimientoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Monto         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Fecha         time.Time       `gorm:"not null;index"`
	Categoria     string          `gorm:"type:varchar(30);not null;default:'otros'"`
	Descripcion   string
	CreatedAt     time.Time
}
