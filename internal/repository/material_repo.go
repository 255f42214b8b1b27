package repository

import (
	"context"

	"github.com/Felipe-Salom-Git/plataforma-jm/internal/dto"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaterialRepository defines data access for inventory materials.
type MaterialRepository interface {
	Create(ctx context.Context, m *model.Material) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Material, error)
	List(ctx context.Context, filter dto.MaterialFilter) ([]model.Material, int64, error)
	Update(ctx context.Context, m *model.Material) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// Transactional variants. Reads lock the row; stock counters only move
	// through relative UPDATEs so concurrent writers accumulate instead of
	// overwriting each other.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Material, error)
	ReservarStockTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error
	AjustarStockTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error

	DB() *gorm.DB
}

type materialRepo struct{ db *gorm.DB }

func NewMaterialRepository(db *gorm.DB) MaterialRepository { return &materialRepo{db: db} }

func (r *materialRepo) DB() *gorm.DB { return r.db }

func (r *materialRepo) Create(ctx context.Context, m *model.Material) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *materialRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Material, error) {
	var m model.Material
	err := r.db.WithContext(ctx).First(&m, id).Error
	return &m, err
}

// FindByIDForUpdateTx locks the material row for the rest of the transaction,
// so the before/after values recorded in the audit movement cannot be staled
// by a concurrent writer.
func (r *materialRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Material, error) {
	var m model.Material
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, id).Error
	return &m, err
}

func (r *materialRepo) List(ctx context.Context, filter dto.MaterialFilter) ([]model.Material, int64, error) {
	var materiales []model.Material
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Material{})

	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
		// no filter
	default:
		q = q.Where("activo = true")
	}
	if filter.Busqueda != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Busqueda+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&materiales).Error
	return materiales, total, err
}

func (r *materialRepo) Update(ctx context.Context, m *model.Material) error {
	return r.db.WithContext(ctx).Save(m).Error
}

// ReservarStockTx grows the committed quantity with a relative UPDATE; the
// database applies the delta atomically, so two reservations landing on the
// same material both take effect.
func (r *materialRepo) ReservarStockTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	return tx.Model(&model.Material{}).Where("id = ?", id).
		Update("stock_comprometido", gorm.Expr("stock_comprometido + ?", delta)).Error
}

// AjustarStockTx applies a manual delta to stock_actual, same relative form.
func (r *materialRepo) AjustarStockTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	return tx.Model(&model.Material{}).Where("id = ?", id).
		Update("stock_actual", gorm.Expr("stock_actual + ?", delta)).Error
}

func (r *materialRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Material{}).Where("id = ?", id).Update("activo", false).Error
}
