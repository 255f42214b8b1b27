package repository

import (
	"context"

	"github.com/Felipe-Salom-Git/plataforma-jm/internal/dto"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeguimientoRepository defines data access for job-tracking records and
// everything they own (tasks, working materials, daily log, ledger, expenses).
type SeguimientoRepository interface {
	CreateTx(tx *gorm.DB, s *model.Seguimiento) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Seguimiento, error)
	FindByPresupuestoID(ctx context.Context, presupuestoID uuid.UUID) (*model.Seguimiento, error)
	List(ctx context.Context, filter dto.SeguimientoFilter) ([]model.Seguimiento, int64, error)
	UpdateCampos(ctx context.Context, id uuid.UUID, campos map[string]interface{}) error

	FindTarea(ctx context.Context, seguimientoID, tareaID uuid.UUID) (*model.Tarea, error)
	SaveTarea(ctx context.Context, t *model.Tarea) error
	FindMaterial(ctx context.Context, seguimientoID, materialID uuid.UUID) (*model.SeguimientoMaterial, error)
	SaveMaterial(ctx context.Context, m *model.SeguimientoMaterial) error

	CreateRegistro(ctx context.Context, r *model.RegistroDiario) error
	CreateGasto(ctx context.Context, g *model.Gasto) error

	// Transactional variants for the tracking-side payment ledger.
	FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Seguimiento, error)
	CreatePagoTx(tx *gorm.DB, pago *model.PagoSeguimiento) error
	UpdateCamposTx(tx *gorm.DB, id uuid.UUID, campos map[string]interface{}) error

	// SumGastosPorMes aggregates job expenses between two dates, bucketed by
	// month, for the financial report.
	SumGastosPorMes(ctx context.Context, desde, hasta string) ([]dto.MontoMensual, error)

	DB() *gorm.DB
}

type seguimientoRepo struct{ db *gorm.DB }

func NewSeguimientoRepository(db *gorm.DB) SeguimientoRepository { return &seguimientoRepo{db: db} }

func (r *seguimientoRepo) DB() *gorm.DB { return r.db }

func (r *seguimientoRepo) CreateTx(tx *gorm.DB, s *model.Seguimiento) error {
	return tx.Create(s).Error
}

func (r *seguimientoRepo) preloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Tareas", func(db *gorm.DB) *gorm.DB { return db.Order("orden ASC") }).
		Preload("Materiales", func(db *gorm.DB) *gorm.DB { return db.Order("orden ASC") }).
		Preload("Registros", func(db *gorm.DB) *gorm.DB { return db.Order("fecha ASC") }).
		Preload("Pagos", func(db *gorm.DB) *gorm.DB { return db.Order("fecha ASC") }).
		Preload("Gastos", func(db *gorm.DB) *gorm.DB { return db.Order("fecha ASC") })
}

func (r *seguimientoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Seguimiento, error) {
	var s model.Seguimiento
	err := r.preloads(r.db.WithContext(ctx)).First(&s, id).Error
	return &s, err
}

func (r *seguimientoRepo) FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Seguimiento, error) {
	var s model.Seguimiento
	err := tx.WithContext(ctx).Preload("Pagos").First(&s, id).Error
	return &s, err
}

func (r *seguimientoRepo) FindByPresupuestoID(ctx context.Context, presupuestoID uuid.UUID) (*model.Seguimiento, error) {
	var s model.Seguimiento
	err := r.preloads(r.db.WithContext(ctx)).Where("presupuesto_id = ?", presupuestoID).First(&s).Error
	return &s, err
}

func (r *seguimientoRepo) List(ctx context.Context, filter dto.SeguimientoFilter) ([]model.Seguimiento, int64, error) {
	var seguimientos []model.Seguimiento
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Seguimiento{})
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at DESC").Limit(filter.Limit).Offset(offset).
		Preload("Tareas").Preload("Materiales").Find(&seguimientos).Error
	return seguimientos, total, err
}

func (r *seguimientoRepo) UpdateCampos(ctx context.Context, id uuid.UUID, campos map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Seguimiento{}).Where("id = ?", id).Updates(campos).Error
}

func (r *seguimientoRepo) UpdateCamposTx(tx *gorm.DB, id uuid.UUID, campos map[string]interface{}) error {
	return tx.Model(&model.Seguimiento{}).Where("id = ?", id).Updates(campos).Error
}

func (r *seguimientoRepo) FindTarea(ctx context.Context, seguimientoID, tareaID uuid.UUID) (*model.Tarea, error) {
	var t model.Tarea
	err := r.db.WithContext(ctx).
		Where("id = ? AND seguimiento_id = ?", tareaID, seguimientoID).First(&t).Error
	return &t, err
}

func (r *seguimientoRepo) SaveTarea(ctx context.Context, t *model.Tarea) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *seguimientoRepo) FindMaterial(ctx context.Context, seguimientoID, materialID uuid.UUID) (*model.SeguimientoMaterial, error) {
	var m model.SeguimientoMaterial
	err := r.db.WithContext(ctx).
		Where("id = ? AND seguimiento_id = ?", materialID, seguimientoID).First(&m).Error
	return &m, err
}

func (r *seguimientoRepo) SaveMaterial(ctx context.Context, m *model.SeguimientoMaterial) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *seguimientoRepo) CreateRegistro(ctx context.Context, reg *model.RegistroDiario) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *seguimientoRepo) CreateGasto(ctx context.Context, g *model.Gasto) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *seguimientoRepo) CreatePagoTx(tx *gorm.DB, pago *model.PagoSeguimiento) error {
	return tx.Create(pago).Error
}

func (r *seguimientoRepo) SumGastosPorMes(ctx context.Context, desde, hasta string) ([]dto.MontoMensual, error) {
	var filas []dto.MontoMensual
	err := r.db.WithContext(ctx).Raw(`
		SELECT to_char(date_trunc('month', fecha), 'YYYY-MM') AS mes,
		       COALESCE(SUM(monto), 0) AS monto
		FROM gastos
		WHERE fecha >= ? AND fecha < ?
		GROUP BY 1 ORDER BY 1`, desde, hasta).Scan(&filas).Error
	return filas, err
}
