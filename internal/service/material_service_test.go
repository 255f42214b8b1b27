package service

import (
	"context"
	"testing"

	"github.com/Felipe-Salom-Git/plataforma-jm/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMaterialFixture() (MaterialService, *stubMaterialRepo, *stubMovimientoRepo) {
	matRepo := newStubMaterialRepo()
	movRepo := &stubMovimientoRepo{}
	return NewMaterialService(matRepo, movRepo), matRepo, movRepo
}

func TestAjustarStockPositivoDejaMovimiento(t *testing.T) {
	svc, matRepo, movRepo := newMaterialFixture()
	creado, err := svc.Crear(context.Background(), dto.CrearMaterialRequest{
		Nombre: "Cemento", Unidad: "kg", StockActual: dec("100"), PrecioUnitario: dec("60"),
	})
	require.NoError(t, err)
	id, _ := uuid.Parse(creado.ID)

	resp, err := svc.AjustarStock(context.Background(), id, dto.AjustarStockRequest{
		Delta: dec("25"), Motivo: "Compra corralón",
	})
	require.NoError(t, err)
	assert.True(t, dec("125").Equal(resp.StockActual))

	movs, _ := movRepo.ListByMaterial(context.Background(), id, 10)
	require.Len(t, movs, 1)
	assert.Equal(t, "ajuste", movs[0].Tipo)
	assert.True(t, dec("100").Equal(movs[0].Antes))
	assert.True(t, dec("125").Equal(movs[0].Despues))
	assert.Equal(t, "Compra corralón", movs[0].Motivo)

	stored, _ := matRepo.FindByID(context.Background(), id)
	assert.True(t, dec("125").Equal(stored.StockActual))
}

func TestAjustarStockNegativoPuedeDejarloBajoCero(t *testing.T) {
	svc, _, _ := newMaterialFixture()
	creado, err := svc.Crear(context.Background(), dto.CrearMaterialRequest{
		Nombre: "Arena", Unidad: "m3", StockActual: dec("5"),
	})
	require.NoError(t, err)
	id, _ := uuid.Parse(creado.ID)

	// El ajuste es una corrección manual: no valida contra el stock actual.
	resp, err := svc.AjustarStock(context.Background(), id, dto.AjustarStockRequest{Delta: dec("-8"), Motivo: "Rotura"})
	require.NoError(t, err)
	assert.True(t, dec("-3").Equal(resp.StockActual))
}

func TestAjustarStockMaterialInexistente(t *testing.T) {
	svc, _, _ := newMaterialFixture()
	_, err := svc.AjustarStock(context.Background(), uuid.New(), dto.AjustarStockRequest{Delta: dec("1")})
	assert.ErrorIs(t, err, ErrMaterialNoEncontrado)
}

func TestStockDisponibleDescuentaComprometido(t *testing.T) {
	svc, matRepo, _ := newMaterialFixture()
	creado, err := svc.Crear(context.Background(), dto.CrearMaterialRequest{
		Nombre: "Cal", Unidad: "kg", StockActual: dec("50"),
	})
	require.NoError(t, err)
	id, _ := uuid.Parse(creado.ID)

	m, _ := matRepo.FindByID(context.Background(), id)
	m.StockComprometido = dec("20")
	require.NoError(t, matRepo.Update(context.Background(), m))

	resp, err := svc.ObtenerPorID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, dec("30").Equal(resp.StockDisponible))
}
