package service

import (
	"fmt"

	"github.com/Felipe-Salom-Git/plataforma-jm/internal/model"
)

// snapshot.go — pure builders that translate quote line items into the
// tracking record's working copies at approval time. Both are order- and
// count-preserving; a nil source slice yields an empty result.

// buildTareas derives one task per quote line item. The display text combines
// the description with "(cantidad unidad)" when both are present.
func buildTareas(items []model.PresupuestoItem) []model.Tarea {
	tareas := make([]model.Tarea, 0, len(items))
	for i, item := range items {
		texto := item.Descripcion
		if !item.Cantidad.IsZero() && item.Unidad != "" {
			texto = fmt.Sprintf("%s (%s %s)", item.Descripcion, item.Cantidad.String(), item.Unidad)
		}
		tareas = append(tareas, model.Tarea{
			Orden:        i,
			Texto:        texto,
			Completada:   false,
			ItemOrigenID: item.ID,
		})
	}
	return tareas
}

// buildMateriales derives the working material list from the quote's
// material-kind line items, each starting in estado "planificado".
func buildMateriales(items []model.PresupuestoItem) []model.SeguimientoMaterial {
	materiales := make([]model.SeguimientoMaterial, 0)
	for _, item := range items {
		if item.Tipo != "material" {
			continue
		}
		materiales = append(materiales, model.SeguimientoMaterial{
			Orden:        len(materiales),
			Nombre:       item.Descripcion,
			Cantidad:     item.Cantidad,
			Unidad:       item.Unidad,
			Estado:       "planificado",
			ItemOrigenID: item.ID,
		})
	}
	return materiales
}
