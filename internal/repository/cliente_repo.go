package repository

import (
	"context"

	"github.com/Felipe-Salom-Git/plataforma-jm/internal/dto"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClienteRepository defines data access for client records. The primary key is
// the deterministic contact-derived key (see internal/clientid).
type ClienteRepository interface {
	FindByID(ctx context.Context, id string) (*model.Cliente, error)
	List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error)
	Update(ctx context.Context, c *model.Cliente) error
	SoftDelete(ctx context.Context, id string) error

	// UpsertTx is the write used by the approval flow.
	UpsertTx(tx *gorm.DB, c *model.Cliente) error
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) FindByID(ctx context.Context, id string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	return &c, err
}

func (r *clienteRepo) List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error) {
	var clientes []model.Cliente
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Cliente{})
	if filter.Busqueda != "" {
		q = q.Where("nombre ILIKE ? OR email ILIKE ? OR telefono ILIKE ?",
			"%"+filter.Busqueda+"%", "%"+filter.Busqueda+"%", "%"+filter.Busqueda+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&clientes).Error
	return clientes, total, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// UpsertTx inserts or overwrites the client row in a single statement. Two
// concurrent approvals resolving to the same contact key converge on one row
// instead of one of them dying on a primary-key conflict: contact fields are
// last-write-wins and the tracking pointers always end up at the newest
// approval.
func (r *clienteRepo) UpsertTx(tx *gorm.DB, c *model.Cliente) error {
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"nombre", "direccion", "telefono", "email", "cuit",
			"ultimo_presupuesto_id", "ultimo_presupuesto_numero",
			"seguimiento_activo_id", "updated_at",
		}),
	}).Create(c).Error
}

func (r *clienteRepo) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Cliente{}, "id = ?", id).Error
}
