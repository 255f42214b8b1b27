package dto

import "github.com/shopspring/decimal"

// ReporteFilter bounds the financial report window. Dates are inclusive-from,
// exclusive-to, formatted YYYY-MM-DD.
type ReporteFilter struct {
	Desde string `form:"desde" validate:"required,datetime=2006-01-02"`
	Hasta string `form:"hasta" validate:"required,datetime=2006-01-02"`
}

// MontoMensual is one month bucket of an aggregation query.
type MontoMensual struct {
	Mes   string          `json:"mes"` // YYYY-MM
	Monto decimal.Decimal `json:"monto"`
}

type ResumenFinancieroResponse struct {
	Desde           string          `json:"desde"`
	Hasta           string          `json:"hasta"`
	TotalIngresos   decimal.Decimal `json:"total_ingresos"`
	TotalGastos     decimal.Decimal `json:"total_gastos"`
	Neto            decimal.Decimal `json:"neto"`
	IngresosPorMes  []MontoMensual  `json:"ingresos_por_mes"`
	GastosPorMes    []MontoMensual  `json:"gastos_por_mes"`
}
