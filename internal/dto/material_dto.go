package dto

import "github.com/shopspring/decimal"

// MaterialFilter is bound from the query string of GET /v1/materiales.
type MaterialFilter struct {
	Activo   string `form:"activo"` // "false" = inactivos, "all" = todos, default activos
	Busqueda string `form:"q"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CrearMaterialRequest struct {
	Nombre         string          `json:"nombre"          validate:"required,min=2"`
	Unidad         string          `json:"unidad"          validate:"required"`
	StockActual    decimal.Decimal `json:"stock_actual"    validate:"min=0"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"min=0"`
}

type ActualizarMaterialRequest struct {
	Nombre         string           `json:"nombre" validate:"omitempty,min=2"`
	Unidad         string           `json:"unidad"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario"`
}

// AjustarStockRequest applies a manual delta (positive or negative) to
// stock_actual and records an audit movement.
type AjustarStockRequest struct {
	Delta  decimal.Decimal `json:"delta"  validate:"required"`
	Motivo string          `json:"motivo" validate:"required,min=3"`
}

type MaterialResponse struct {
	ID                string          `json:"id"`
	Nombre            string          `json:"nombre"`
	Unidad            string          `json:"unidad"`
	StockActual       decimal.Decimal `json:"stock_actual"`
	StockComprometido decimal.Decimal `json:"stock_comprometido"`
	StockDisponible   decimal.Decimal `json:"stock_disponible"`
	PrecioUnitario    decimal.Decimal `json:"precio_unitario"`
	Activo            bool            `json:"activo"`
}

type MaterialListResponse struct {
	Data  []MaterialResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type MovimientoStockResponse struct {
	ID        string          `json:"id"`
	Tipo      string          `json:"tipo"`
	Cantidad  decimal.Decimal `json:"cantidad"`
	Antes     decimal.Decimal `json:"antes"`
	Despues   decimal.Decimal `json:"despues"`
	Motivo    string          `json:"motivo,omitempty"`
	CreatedAt string          `json:"created_at"`
}
