package service

import (
	"context"
	"testing"

	"github.com/Felipe-Salom-Git/plataforma-jm/internal/dto"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seguimientoFixture struct {
	svc  SeguimientoService
	repo *stubSeguimientoRepo
}

func newSeguimientoFixture() *seguimientoFixture {
	repo := newStubSeguimientoRepo()
	return &seguimientoFixture{svc: NewSeguimientoService(repo), repo: repo}
}

func (f *seguimientoFixture) seedSeguimiento(t *testing.T, saldo string) *model.Seguimiento {
	t.Helper()
	seg := &model.Seguimiento{
		ID:            uuid.New(),
		PresupuestoID: uuid.New(),
		ClienteID:     "client_test",
		ClienteNombre: "Juan Pérez",
		Tareas: []model.Tarea{
			{ID: uuid.New(), Texto: "Demolición (4 h)", Orden: 0, ItemOrigenID: uuid.New()},
		},
		Materiales: []model.SeguimientoMaterial{
			{ID: uuid.New(), Nombre: "Cemento", Cantidad: dec("10"), Unidad: "kg", Estado: "planificado", ItemOrigenID: uuid.New()},
		},
		SaldoPendiente: dec(saldo),
		Estado:         "pending_start",
	}
	for i := range seg.Tareas {
		seg.Tareas[i].SeguimientoID = seg.ID
	}
	for i := range seg.Materiales {
		seg.Materiales[i].SeguimientoID = seg.ID
	}
	require.NoError(t, f.repo.CreateTx(nil, seg))
	return seg
}

func TestActualizarEstadoSeguimiento(t *testing.T) {
	f := newSeguimientoFixture()
	seg := f.seedSeguimiento(t, "1000")

	err := f.svc.ActualizarEstado(context.Background(), seg.ID, dto.ActualizarEstadoSeguimientoRequest{Estado: "in_progress"})
	require.NoError(t, err)

	got, _ := f.repo.FindByID(context.Background(), seg.ID)
	assert.Equal(t, "in_progress", got.Estado)
}

func TestActualizarEstadoSeguimientoInexistente(t *testing.T) {
	f := newSeguimientoFixture()
	err := f.svc.ActualizarEstado(context.Background(), uuid.New(), dto.ActualizarEstadoSeguimientoRequest{Estado: "completed"})
	assert.ErrorIs(t, err, ErrSeguimientoNoEncontrado)
}

func TestActualizarTareaMarcaCompletada(t *testing.T) {
	f := newSeguimientoFixture()
	seg := f.seedSeguimiento(t, "1000")
	tareaID := seg.Tareas[0].ID

	require.NoError(t, f.svc.ActualizarTarea(context.Background(), seg.ID, tareaID, dto.ActualizarTareaRequest{Completada: true}))

	got, _ := f.repo.FindByID(context.Background(), seg.ID)
	assert.True(t, got.Tareas[0].Completada)

	// Uncheck works too
	require.NoError(t, f.svc.ActualizarTarea(context.Background(), seg.ID, tareaID, dto.ActualizarTareaRequest{Completada: false}))
	got, _ = f.repo.FindByID(context.Background(), seg.ID)
	assert.False(t, got.Tareas[0].Completada)
}

func TestActualizarTareaDeOtroSeguimiento(t *testing.T) {
	f := newSeguimientoFixture()
	seg := f.seedSeguimiento(t, "1000")
	otro := f.seedSeguimiento(t, "500")

	err := f.svc.ActualizarTarea(context.Background(), otro.ID, seg.Tareas[0].ID, dto.ActualizarTareaRequest{Completada: true})
	assert.ErrorIs(t, err, ErrSeguimientoNoEncontrado)
}

func TestActualizarMaterialAvanzaEstado(t *testing.T) {
	f := newSeguimientoFixture()
	seg := f.seedSeguimiento(t, "1000")

	err := f.svc.ActualizarMaterial(context.Background(), seg.ID, seg.Materiales[0].ID, dto.ActualizarMaterialSeguimientoRequest{Estado: "comprado"})
	require.NoError(t, err)

	got, _ := f.repo.FindByID(context.Background(), seg.ID)
	assert.Equal(t, "comprado", got.Materiales[0].Estado)
}

func TestAgregarRegistroDiario(t *testing.T) {
	f := newSeguimientoFixture()
	seg := f.seedSeguimiento(t, "1000")

	err := f.svc.AgregarRegistro(context.Background(), seg.ID, dto.CrearRegistroDiarioRequest{
		Fecha: "2026-03-15", Texto: "Se terminó la demolición",
	})
	require.NoError(t, err)

	got, _ := f.repo.FindByID(context.Background(), seg.ID)
	require.Len(t, got.Registros, 1)
	assert.Equal(t, "Se terminó la demolición", got.Registros[0].Texto)
	assert.Equal(t, "2026-03-15", got.Registros[0].Fecha.Format("2006-01-02"))
}

func TestAgregarGasto(t *testing.T) {
	f := newSeguimientoFixture()
	seg := f.seedSeguimiento(t, "1000")

	err := f.svc.AgregarGasto(context.Background(), seg.ID, dto.CrearGastoRequest{
		Monto: dec("120.50"), Categoria: "fletes", Descripcion: "Traslado de escombros",
	})
	require.NoError(t, err)

	got, _ := f.repo.FindByID(context.Background(), seg.ID)
	require.Len(t, got.Gastos, 1)
	assert.Equal(t, "fletes", got.Gastos[0].Categoria)
	assert.True(t, dec("120.50").Equal(got.Gastos[0].Monto))
}

func TestAgregarGastoSinCategoriaUsaOtros(t *testing.T) {
	f := newSeguimientoFixture()
	seg := f.seedSeguimiento(t, "1000")

	require.NoError(t, f.svc.AgregarGasto(context.Background(), seg.ID, dto.CrearGastoRequest{Monto: dec("50")}))

	got, _ := f.repo.FindByID(context.Background(), seg.ID)
	require.Len(t, got.Gastos, 1)
	assert.Equal(t, "otros", got.Gastos[0].Categoria)
}

func TestAgregarGastoMontoInvalido(t *testing.T) {
	f := newSeguimientoFixture()
	seg := f.seedSeguimiento(t, "1000")

	err := f.svc.AgregarGasto(context.Background(), seg.ID, dto.CrearGastoRequest{Monto: dec("0")})
	assert.ErrorIs(t, err, ErrMontoInvalido)
}

func TestRegistrarPagoSeguimientoDescuentaSaldo(t *testing.T) {
	f := newSeguimientoFixture()
	seg := f.seedSeguimiento(t, "1000")

	err := f.svc.RegistrarPago(context.Background(), seg.ID, dto.RegistrarPagoRequest{
		Monto: dec("400"), Metodo: "efectivo",
	})
	require.NoError(t, err)

	got, _ := f.repo.FindByID(context.Background(), seg.ID)
	require.Len(t, got.Pagos, 1)
	assert.True(t, dec("600").Equal(got.SaldoPendiente), "saldo = %s", got.SaldoPendiente)

	// A second payment keeps discounting from the re-read ledger
	require.NoError(t, f.svc.RegistrarPago(context.Background(), seg.ID, dto.RegistrarPagoRequest{
		Monto: dec("600"), Metodo: "transferencia",
	}))
	got, _ = f.repo.FindByID(context.Background(), seg.ID)
	assert.Len(t, got.Pagos, 2)
	assert.True(t, got.SaldoPendiente.IsZero())
}

func TestRegistrarPagoSeguimientoMontoInvalido(t *testing.T) {
	f := newSeguimientoFixture()
	seg := f.seedSeguimiento(t, "1000")

	err := f.svc.RegistrarPago(context.Background(), seg.ID, dto.RegistrarPagoRequest{Monto: dec("-1"), Metodo: "efectivo"})
	assert.ErrorIs(t, err, ErrMontoInvalido)

	got, _ := f.repo.FindByID(context.Background(), seg.ID)
	assert.Empty(t, got.Pagos)
}
