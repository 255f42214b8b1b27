package service

import (
	"testing"

	"github.com/Felipe-Salom-Git/plataforma-jm/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTareasFormateaElTexto(t *testing.T) {
	origen := uuid.New()
	items := []model.PresupuestoItem{
		{ID: origen, Tipo: "mano_obra", Descripcion: "Colocación de piso", Cantidad: dec("8"), Unidad: "h"},
		{ID: uuid.New(), Tipo: "material", Descripcion: "Cemento", Cantidad: dec("10"), Unidad: ""},
		{ID: uuid.New(), Tipo: "mano_obra", Descripcion: "Visita inicial", Cantidad: dec("0"), Unidad: "h"},
	}

	tareas := buildTareas(items)
	require.Len(t, tareas, 3)

	// Quantity and unit only appear when both are present
	assert.Equal(t, "Colocación de piso (8 h)", tareas[0].Texto)
	assert.Equal(t, "Cemento", tareas[1].Texto)
	assert.Equal(t, "Visita inicial", tareas[2].Texto)

	for i, tarea := range tareas {
		assert.Equal(t, i, tarea.Orden)
		assert.False(t, tarea.Completada)
	}
	assert.Equal(t, origen, tareas[0].ItemOrigenID)
}

func TestBuildMaterialesSoloLineasDeMaterial(t *testing.T) {
	origen := uuid.New()
	items := []model.PresupuestoItem{
		{ID: uuid.New(), Tipo: "mano_obra", Descripcion: "Demolición", Cantidad: dec("4"), Unidad: "h"},
		{ID: origen, Tipo: "material", Descripcion: "Arena", Cantidad: dec("3"), Unidad: "m3"},
		{ID: uuid.New(), Tipo: "material", Descripcion: "Cal", Cantidad: dec("5"), Unidad: "kg"},
	}

	materiales := buildMateriales(items)
	require.Len(t, materiales, 2)

	assert.Equal(t, "Arena", materiales[0].Nombre)
	assert.Equal(t, 0, materiales[0].Orden)
	assert.Equal(t, "planificado", materiales[0].Estado)
	assert.Equal(t, origen, materiales[0].ItemOrigenID)
	assert.True(t, dec("3").Equal(materiales[0].Cantidad))

	assert.Equal(t, "Cal", materiales[1].Nombre)
	assert.Equal(t, 1, materiales[1].Orden)
}

func TestBuildMaterialesSinMateriales(t *testing.T) {
	materiales := buildMateriales([]model.PresupuestoItem{
		{ID: uuid.New(), Tipo: "mano_obra", Descripcion: "Pintura", Cantidad: dec("6"), Unidad: "h"},
	})
	assert.Empty(t, materiales)
}
