package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// txMaxIntentos bounds how many times a transaction is re-run on a
// serialization conflict before the error surfaces to the caller.
const txMaxIntentos = 3

// runTx executes fn inside a SERIALIZABLE transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode with stub repos).
// GORM rolls the whole transaction back when fn returns an error, which is
// what gives the approval and payment flows their all-or-nothing guarantee.
//
// Serialization conflicts and deadlocks re-run fn from scratch, so fn must
// confine its writes to the transaction and only assign captured result
// variables; both are safe to repeat.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	var err error
	for intento := 1; intento <= txMaxIntentos; intento++ {
		err = db.WithContext(ctx).Transaction(fn, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if !esConflictoSerializacion(err) {
			return err
		}
		log.Warn().Int("intento", intento).Msg("tx: conflicto de serialización, reintentando")
		time.Sleep(time.Duration(intento) * 10 * time.Millisecond)
	}
	return err
}

// esConflictoSerializacion reports whether err is a postgres serialization
// failure (40001) or deadlock (40P01), the two SQLSTATEs SERIALIZABLE asks
// the client to resolve by retrying.
func esConflictoSerializacion(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
