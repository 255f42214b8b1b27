package dto

import "github.com/shopspring/decimal"

// SeguimientoFilter is bound from the query string of GET /v1/seguimientos.
type SeguimientoFilter struct {
	Estado    string `form:"estado"` // pending_start | in_progress | completed | canceled | all
	ClienteID string `form:"cliente_id"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ActualizarTareaRequest struct {
	Completada bool `json:"completada"`
}

type ActualizarMaterialSeguimientoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=planificado comprado usado"`
}

type CrearRegistroDiarioRequest struct {
	Fecha string `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
	Texto string `json:"texto" validate:"required,min=1"`
}

type CrearGastoRequest struct {
	Monto       decimal.Decimal `json:"monto"     validate:"required"`
	Fecha       string          `json:"fecha"     validate:"omitempty,datetime=2006-01-02"`
	Categoria   string          `json:"categoria" validate:"omitempty,oneof=materiales fletes jornales otros"`
	Descripcion string          `json:"descripcion"`
}

type ActualizarEstadoSeguimientoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=pending_start in_progress completed canceled"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TareaResponse struct {
	ID         string `json:"id"`
	Texto      string `json:"texto"`
	Completada bool   `json:"completada"`
}

type MaterialSeguimientoResponse struct {
	ID       string          `json:"id"`
	Nombre   string          `json:"nombre"`
	Cantidad decimal.Decimal `json:"cantidad"`
	Unidad   string          `json:"unidad"`
	Estado   string          `json:"estado"`
}

type RegistroDiarioResponse struct {
	ID    string `json:"id"`
	Fecha string `json:"fecha"`
	Texto string `json:"texto"`
}

type GastoResponse struct {
	ID          string          `json:"id"`
	Monto       decimal.Decimal `json:"monto"`
	Fecha       string          `json:"fecha"`
	Categoria   string          `json:"categoria"`
	Descripcion string          `json:"descripcion,omitempty"`
}

type SeguimientoResponse struct {
	ID             string                        `json:"id"`
	PresupuestoID  string                        `json:"presupuesto_id"`
	ClienteID      string                        `json:"cliente_id"`
	ClienteNombre  string                        `json:"cliente_nombre"`
	Tareas         []TareaResponse               `json:"tareas"`
	Materiales     []MaterialSeguimientoResponse `json:"materiales"`
	Registros      []RegistroDiarioResponse      `json:"registros"`
	Pagos          []PagoResponse                `json:"pagos"`
	Gastos         []GastoResponse               `json:"gastos"`
	SaldoPendiente decimal.Decimal               `json:"saldo_pendiente"`
	Estado         string                        `json:"estado"`
	CreatedAt      string                        `json:"created_at"`
}

type SeguimientoListResponse struct {
	Data  []SeguimientoResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}
