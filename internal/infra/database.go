package infra

import (
	"fmt"

	"github.com/Felipe-Salom-Git/plataforma-jm/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that GORM
// cannot express (sequences, partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies AutoMigrate plus schema patches. Exposed separately so
// integration tests can migrate a throwaway database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Cliente{},
		&model.Material{},
		&model.MovimientoStock{},
		&model.Presupuesto{},
		&model.PresupuestoItem{},
		&model.Pago{},
		&model.Seguimiento{},
		&model.Tarea{},
		&model.SeguimientoMaterial{},
		&model.RegistroDiario{},
		&model.PagoSeguimiento{},
		&model.Gasto{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Sequential quote numbering must survive deletes, so it lives in a
		// PostgreSQL sequence rather than a MAX(numero)+1 query.
		{"presupuestos numero sequence",
			`CREATE SEQUENCE IF NOT EXISTS presupuestos_numero_seq START 1`},
		// gen_random_uuid() requires pgcrypto on PostgreSQL < 13.
		{"pgcrypto extension",
			`CREATE EXTENSION IF NOT EXISTS pgcrypto`},
		// Partial index for the approval hot path: open quotes by client.
		{"open quotes by client index", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_presupuestos_abiertos_cliente') THEN
    CREATE INDEX idx_presupuestos_abiertos_cliente
        ON presupuestos (cliente_id)
        WHERE estado IN ('approved', 'in_progress') AND deleted_at IS NULL;
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
