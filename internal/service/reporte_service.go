package service

import (
	"context"

	"github.com/Felipe-Salom-Git/plataforma-jm/internal/dto"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/repository"

	"github.com/shopspring/decimal"
)

// ReporteService builds the income/expense summary: income is the sum of quote
// payments, expenses the sum of job costs, both bucketed per month.
type ReporteService interface {
	ResumenFinanciero(ctx context.Context, filter dto.ReporteFilter) (*dto.ResumenFinancieroResponse, error)
}

type reporteService struct {
	presupuestoRepo repository.PresupuestoRepository
	seguimientoRepo repository.SeguimientoRepository
}

func NewReporteService(presupuestoRepo repository.PresupuestoRepository, seguimientoRepo repository.SeguimientoRepository) ReporteService {
	return &reporteService{presupuestoRepo: presupuestoRepo, seguimientoRepo: seguimientoRepo}
}

func (s *reporteService) ResumenFinanciero(ctx context.Context, filter dto.ReporteFilter) (*dto.ResumenFinancieroResponse, error) {
	ingresos, err := s.presupuestoRepo.SumPagosPorMes(ctx, filter.Desde, filter.Hasta)
	if err != nil {
		return nil, err
	}
	gastos, err := s.seguimientoRepo.SumGastosPorMes(ctx, filter.Desde, filter.Hasta)
	if err != nil {
		return nil, err
	}

	totalIngresos := decimal.Zero
	for _, m := range ingresos {
		totalIngresos = totalIngresos.Add(m.Monto)
	}
	totalGastos := decimal.Zero
	for _, m := range gastos {
		totalGastos = totalGastos.Add(m.Monto)
	}

	return &dto.ResumenFinancieroResponse{
		Desde:          filter.Desde,
		Hasta:          filter.Hasta,
		TotalIngresos:  totalIngresos,
		TotalGastos:    totalGastos,
		Neto:           totalIngresos.Sub(totalGastos),
		IngresosPorMes: ingresos,
		GastosPorMes:   gastos,
	}, nil
}
