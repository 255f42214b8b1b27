package repository

import (
	"context"

	"github.com/Felipe-Salom-Git/plataforma-jm/internal/dto"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PresupuestoRepository defines the data access contract for quotes.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type PresupuestoRepository interface {
	Create(ctx context.Context, p *model.Presupuesto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Presupuesto, error)
	List(ctx context.Context, filter dto.PresupuestoFilter) ([]model.Presupuesto, int64, error)
	Update(ctx context.Context, p *model.Presupuesto) error
	UpdateCampos(ctx context.Context, id uuid.UUID, campos map[string]interface{}) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	NextNumero(ctx context.Context) (int, error)

	// Used inside transactions — callers must pass the tx instance. A nil tx
	// means unit-test mode (stub implementations ignore it).
	FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Presupuesto, error)
	UpdateCamposTx(tx *gorm.DB, id uuid.UUID, campos map[string]interface{}) error
	CreatePagoTx(tx *gorm.DB, pago *model.Pago) error

	// SumPagosPorMes aggregates registered payments (income) between two dates,
	// bucketed by month, for the financial report.
	SumPagosPorMes(ctx context.Context, desde, hasta string) ([]dto.MontoMensual, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type presupuestoRepo struct{ db *gorm.DB }

func NewPresupuestoRepository(db *gorm.DB) PresupuestoRepository { return &presupuestoRepo{db: db} }

func (r *presupuestoRepo) DB() *gorm.DB { return r.db }

func (r *presupuestoRepo) Create(ctx context.Context, p *model.Presupuesto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *presupuestoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Presupuesto, error) {
	var p model.Presupuesto
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("orden ASC") }).
		Preload("Pagos", func(db *gorm.DB) *gorm.DB { return db.Order("fecha ASC") }).
		First(&p, id).Error
	return &p, err
}

func (r *presupuestoRepo) FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Presupuesto, error) {
	var p model.Presupuesto
	err := tx.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("orden ASC") }).
		Preload("Pagos").
		First(&p, id).Error
	return &p, err
}

func (r *presupuestoRepo) List(ctx context.Context, filter dto.PresupuestoFilter) ([]model.Presupuesto, int64, error) {
	var presupuestos []model.Presupuesto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Presupuesto{})

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}
	if filter.Busqueda != "" {
		q = q.Where("cliente_nombre ILIKE ?", "%"+filter.Busqueda+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("numero DESC").Limit(filter.Limit).Offset(offset).
		Preload("Items").Preload("Pagos").Find(&presupuestos).Error
	return presupuestos, total, err
}

func (r *presupuestoRepo) Update(ctx context.Context, p *model.Presupuesto) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(p).Error
}

func (r *presupuestoRepo) UpdateCampos(ctx context.Context, id uuid.UUID, campos map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Presupuesto{}).Where("id = ?", id).Updates(campos).Error
}

func (r *presupuestoRepo) UpdateCamposTx(tx *gorm.DB, id uuid.UUID, campos map[string]interface{}) error {
	return tx.Model(&model.Presupuesto{}).Where("id = ?", id).Updates(campos).Error
}

func (r *presupuestoRepo) CreatePagoTx(tx *gorm.DB, pago *model.Pago) error {
	return tx.Create(pago).Error
}

func (r *presupuestoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Presupuesto{}, id).Error
}

func (r *presupuestoRepo) NextNumero(ctx context.Context) (int, error) {
	// PostgreSQL sequence keeps numbering atomic across concurrent creates.
	var num int
	err := r.db.WithContext(ctx).Raw("SELECT nextval('presupuestos_numero_seq')").Scan(&num).Error
	return num, err
}

func (r *presupuestoRepo) SumPagosPorMes(ctx context.Context, desde, hasta string) ([]dto.MontoMensual, error) {
	var filas []dto.MontoMensual
	err := r.db.WithContext(ctx).Raw(`
		SELECT to_char(date_trunc('month', fecha), 'YYYY-MM') AS mes,
		       COALESCE(SUM(monto), 0) AS monto
		FROM pagos
		WHERE fecha >= ? AND fecha < ?
		GROUP BY 1 ORDER BY 1`, desde, hasta).Scan(&filas).Error
	return filas, err
}
