package service

import "errors"

// Sentinel errors returned by the business services. Handlers map them to
// HTTP status codes with errors.Is; messages are safe to show to clients.
var (
	ErrPresupuestoNoEncontrado = errors.New("presupuesto no encontrado")
	ErrPresupuestoYaAprobado   = errors.New("el presupuesto ya está aprobado")
	ErrPresupuestoNoEditable   = errors.New("el presupuesto ya no admite edición")
	ErrClienteNoEncontrado     = errors.New("cliente no encontrado")
	ErrMaterialNoEncontrado    = errors.New("material no encontrado")
	ErrSeguimientoNoEncontrado = errors.New("seguimiento no encontrado")
	ErrMontoInvalido           = errors.New("el monto debe ser mayor a cero")
)
