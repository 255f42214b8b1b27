package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// PresupuestoFilter is bound from the query string of GET /v1/presupuestos.
type PresupuestoFilter struct {
	Estado    string `form:"estado"` // draft | pending | approved | in_progress | completed | canceled | all
	ClienteID string `form:"cliente_id"`
	Busqueda  string `form:"q"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type PresupuestoListItem struct {
	ID             string          `json:"id"`
	Numero         int             `json:"numero"`
	ClienteNombre  string          `json:"cliente_nombre"`
	Total          decimal.Decimal `json:"total"`
	SaldoPendiente decimal.Decimal `json:"saldo_pendiente"`
	Estado         string          `json:"estado"`
	CreatedAt      string          `json:"created_at"`
}

type PresupuestoListResponse struct {
	Data  []PresupuestoListItem `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ClienteSnapshotRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=2"`
	Direccion *string `json:"direccion"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	CUIT      *string `json:"cuit"`
}

type ItemPresupuestoRequest struct {
	Tipo           string          `json:"tipo"            validate:"required,oneof=material mano_obra"`
	Descripcion    string          `json:"descripcion"     validate:"required"`
	Cantidad       decimal.Decimal `json:"cantidad"        validate:"required"`
	Unidad         string          `json:"unidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"min=0"`
	// MaterialID references an inventory material whose stock gets committed
	// on approval. Optional — free-form lines carry no reservation.
	MaterialID *string `json:"material_id" validate:"omitempty,uuid"`
}

type CrearPresupuestoRequest struct {
	Cliente   ClienteSnapshotRequest   `json:"cliente"   validate:"required"`
	Items     []ItemPresupuestoRequest `json:"items"     validate:"required,min=1,dive"`
	Descuento decimal.Decimal          `json:"descuento" validate:"min=0"`
	Estado    string                   `json:"estado"    validate:"omitempty,oneof=draft pending"`
	Nota      *string                  `json:"nota"`
}

type ActualizarPresupuestoRequest struct {
	Cliente   *ClienteSnapshotRequest  `json:"cliente"`
	Items     []ItemPresupuestoRequest `json:"items"     validate:"omitempty,min=1,dive"`
	Descuento *decimal.Decimal         `json:"descuento" validate:"omitempty"`
	Estado    *string                  `json:"estado"    validate:"omitempty,oneof=draft pending canceled"`
	Nota      *string                  `json:"nota"`
}

type RegistrarPagoRequest struct {
	Monto  decimal.Decimal `json:"monto"  validate:"required"`
	Metodo string          `json:"metodo" validate:"required,oneof=efectivo transferencia cheque"`
	Fecha  string          `json:"fecha"  validate:"omitempty,datetime=2006-01-02"`
	Nota   *string         `json:"nota"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemPresupuestoResponse struct {
	ID             string          `json:"id"`
	Tipo           string          `json:"tipo"`
	Descripcion    string          `json:"descripcion"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	Unidad         string          `json:"unidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	TotalLinea     decimal.Decimal `json:"total_linea"`
	MaterialID     *string         `json:"material_id,omitempty"`
}

type PagoResponse struct {
	ID     string          `json:"id"`
	Monto  decimal.Decimal `json:"monto"`
	Metodo string          `json:"metodo"`
	Fecha  string          `json:"fecha"`
	Nota   *string         `json:"nota,omitempty"`
}

type PresupuestoResponse struct {
	ID              string                    `json:"id"`
	Numero          int                       `json:"numero"`
	ClienteID       *string                   `json:"cliente_id,omitempty"`
	Cliente         ClienteSnapshotRequest    `json:"cliente"`
	Items           []ItemPresupuestoResponse `json:"items"`
	Subtotal        decimal.Decimal           `json:"subtotal"`
	Descuento       decimal.Decimal           `json:"descuento"`
	Total           decimal.Decimal           `json:"total"`
	Estado          string                    `json:"estado"`
	Pagos           []PagoResponse            `json:"pagos"`
	SaldoPendiente  decimal.Decimal           `json:"saldo_pendiente"`
	SeguimientoID   *string                   `json:"seguimiento_id,omitempty"`
	FechaAprobacion *string                   `json:"fecha_aprobacion,omitempty"`
	Nota            *string                   `json:"nota,omitempty"`
	CreatedAt       string                    `json:"created_at"`
}
