package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cliente es el registro de cliente del negocio.
//
// La clave primaria NO es un uuid: es la clave determinística derivada de los
// datos de contacto (ver internal/clientid). Eso hace que el upsert durante la
// aprobación de presupuestos sea idempotente: aprobar dos presupuestos para
// el mismo email/teléfono siempre resuelve al mismo registro, sin duplicados.
// Contracara asumida: dos personas distintas que comparten contacto colapsan
// en un solo registro.
type Cliente struct {
	ID        string `gorm:"primaryKey"`
	Nombre    string `gorm:"index;not null"`
	Direccion *string
	Telefono  *string
	Email     *string
	CUIT      *string `gorm:"column:cuit"`

	// Punteros al último presupuesto y al seguimiento activo. Aprobar un nuevo
	// presupuesto para el mismo cliente reemplaza SeguimientoActivoID sin
	// archivar el anterior.
	UltimoPresupuestoID     *uuid.UUID `gorm:"type:uuid"`
	UltimoPresupuestoNumero *int
	SeguimientoActivoID     *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
