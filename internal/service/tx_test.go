package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestEsConflictoSerializacion(t *testing.T) {
	assert.True(t, esConflictoSerializacion(&pgconn.PgError{Code: "40001"}))
	assert.True(t, esConflictoSerializacion(fmt.Errorf("aprobar: %w", &pgconn.PgError{Code: "40P01"})))

	assert.False(t, esConflictoSerializacion(&pgconn.PgError{Code: "23505"}),
		"una violación de unicidad no se resuelve reintentando")
	assert.False(t, esConflictoSerializacion(gorm.ErrRecordNotFound))
	assert.False(t, esConflictoSerializacion(nil))
}

func TestRunTxSinBaseEjecutaUnaSolaVez(t *testing.T) {
	llamadas := 0
	err := runTx(context.Background(), nil, func(tx *gorm.DB) error {
		llamadas++
		return &pgconn.PgError{Code: "40001"}
	})
	assert.Error(t, err)
	assert.Equal(t, 1, llamadas, "sin base de datos no hay transacción que reintentar")
}
