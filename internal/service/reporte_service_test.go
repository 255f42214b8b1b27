package service

import (
	"context"
	"testing"

	"github.com/Felipe-Salom-Git/plataforma-jm/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPresupuestoRepoConPagos struct {
	*stubPresupuestoRepo
	pagosPorMes []dto.MontoMensual
}

func (r *stubPresupuestoRepoConPagos) SumPagosPorMes(_ context.Context, _, _ string) ([]dto.MontoMensual, error) {
	return r.pagosPorMes, nil
}

type stubSeguimientoRepoConGastos struct {
	*stubSeguimientoRepo
	gastosPorMes []dto.MontoMensual
}

func (r *stubSeguimientoRepoConGastos) SumGastosPorMes(_ context.Context, _, _ string) ([]dto.MontoMensual, error) {
	return r.gastosPorMes, nil
}

func TestResumenFinanciero(t *testing.T) {
	pRepo := &stubPresupuestoRepoConPagos{
		stubPresupuestoRepo: newStubPresupuestoRepo(),
		pagosPorMes: []dto.MontoMensual{
			{Mes: "2026-01", Monto: dec("1500")},
			{Mes: "2026-02", Monto: dec("2300.50")},
		},
	}
	sRepo := &stubSeguimientoRepoConGastos{
		stubSeguimientoRepo: newStubSeguimientoRepo(),
		gastosPorMes: []dto.MontoMensual{
			{Mes: "2026-01", Monto: dec("800")},
		},
	}
	svc := NewReporteService(pRepo, sRepo)

	resumen, err := svc.ResumenFinanciero(context.Background(), dto.ReporteFilter{Desde: "2026-01-01", Hasta: "2026-02-28"})
	require.NoError(t, err)

	assert.Equal(t, "2026-01-01", resumen.Desde)
	assert.True(t, dec("3800.50").Equal(resumen.TotalIngresos))
	assert.True(t, dec("800").Equal(resumen.TotalGastos))
	assert.True(t, dec("3000.50").Equal(resumen.Neto))
	assert.Len(t, resumen.IngresosPorMes, 2)
	assert.Len(t, resumen.GastosPorMes, 1)
}

func TestResumenFinancieroSinMovimientos(t *testing.T) {
	svc := NewReporteService(
		&stubPresupuestoRepoConPagos{stubPresupuestoRepo: newStubPresupuestoRepo()},
		&stubSeguimientoRepoConGastos{stubSeguimientoRepo: newStubSeguimientoRepo()},
	)

	resumen, err := svc.ResumenFinanciero(context.Background(), dto.ReporteFilter{Desde: "2026-01-01", Hasta: "2026-01-31"})
	require.NoError(t, err)
	assert.True(t, resumen.TotalIngresos.IsZero())
	assert.True(t, resumen.TotalGastos.IsZero())
	assert.True(t, resumen.Neto.IsZero())
}
