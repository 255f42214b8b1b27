package repository

import (
	"context"

	"github.com/Felipe-Salom-Git/plataforma-jm/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovimientoStockRepository persists the append-only stock audit log.
type MovimientoStockRepository interface {
	Create(ctx context.Context, mov *model.MovimientoStock) error
	CreateTx(tx *gorm.DB, mov *model.MovimientoStock) error
	ListByMaterial(ctx context.Context, materialID uuid.UUID, limit int) ([]model.MovimientoStock, error)
}

type movimientoStockRepo struct{ db *gorm.DB }

func NewMovimientoStockRepository(db *gorm.DB) MovimientoStockRepository {
	return &movimientoStockRepo{db: db}
}

func (r *movimientoStockRepo) Create(ctx context.Context, mov *model.MovimientoStock) error {
	return r.db.WithContext(ctx).Create(mov).Error
}

func (r *movimientoStockRepo) CreateTx(tx *gorm.DB, mov *model.MovimientoStock) error {
	return tx.Create(mov).Error
}

func (r *movimientoStockRepo) ListByMaterial(ctx context.Context, materialID uuid.UUID, limit int) ([]model.MovimientoStock, error) {
	if limit <= 0 {
		limit = 100
	}
	var movs []model.MovimientoStock
	err := r.db.WithContext(ctx).
		Where("material_id = ?", materialID).
		Order("created_at DESC").Limit(limit).
		Find(&movs).Error
	return movs, err
}
