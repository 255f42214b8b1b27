package service

import (
	"context"
	"time"

	"github.com/Felipe-Salom-Git/plataforma-jm/internal/dto"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/model"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaterialService manages the inventory catalog. Stock adjustments always
// leave an audit movement behind; committed quantities are only ever touched
// by the approval transaction.
type MaterialService interface {
	Crear(ctx context.Context, req dto.CrearMaterialRequest) (*dto.MaterialResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.MaterialResponse, error)
	Listar(ctx context.Context, filter dto.MaterialFilter) (*dto.MaterialListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarMaterialRequest) (*dto.MaterialResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.MaterialResponse, error)
	ListarMovimientos(ctx context.Context, id uuid.UUID, limit int) ([]dto.MovimientoStockResponse, error)
}

type materialService struct {
	repo           repository.MaterialRepository
	movimientoRepo repository.MovimientoStockRepository
}

func NewMaterialService(repo repository.MaterialRepository, movimientoRepo repository.MovimientoStockRepository) MaterialService {
	return &materialService{repo: repo, movimientoRepo: movimientoRepo}
}

func (s *materialService) Crear(ctx context.Context, req dto.CrearMaterialRequest) (*dto.MaterialResponse, error) {
	m := &model.Material{
		Nombre:         req.Nombre,
		Unidad:         req.Unidad,
		StockActual:    req.StockActual,
		PrecioUnitario: req.PrecioUnitario,
		Activo:         true,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return materialToResponse(m), nil
}

func (s *materialService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.MaterialResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrMaterialNoEncontrado
	}
	return materialToResponse(m), nil
}

func (s *materialService) Listar(ctx context.Context, filter dto.MaterialFilter) (*dto.MaterialListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	materiales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(materiales))
	for i := range materiales {
		items = append(items, *materialToResponse(&materiales[i]))
	}
	return &dto.MaterialListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *materialService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarMaterialRequest) (*dto.MaterialResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrMaterialNoEncontrado
	}
	if req.Nombre != "" {
		m.Nombre = req.Nombre
	}
	if req.Unidad != "" {
		m.Unidad = req.Unidad
	}
	if req.PrecioUnitario != nil {
		m.PrecioUnitario = *req.PrecioUnitario
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return materialToResponse(m), nil
}

func (s *materialService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrMaterialNoEncontrado
	}
	return s.repo.SoftDelete(ctx, id)
}

// AjustarStock aplica un delta manual (positivo o negativo) y deja el
// movimiento asentado en la misma transacción.
func (s *materialService) AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.MaterialResponse, error) {
	var actualizado *model.Material
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		m, err := s.repo.FindByIDForUpdateTx(tx, id)
		if err != nil {
			return ErrMaterialNoEncontrado
		}
		antes := m.StockActual
		m.StockActual = antes.Add(req.Delta)
		if err := s.repo.AjustarStockTx(tx, m.ID, req.Delta); err != nil {
			return err
		}
		mov := &model.MovimientoStock{
			MaterialID: m.ID,
			Tipo:       "ajuste",
			Cantidad:   req.Delta,
			Antes:      antes,
			Despues:    m.StockActual,
			Motivo:     req.Motivo,
		}
		if err := s.movimientoRepo.CreateTx(tx, mov); err != nil {
			return err
		}
		actualizado = m
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return materialToResponse(actualizado), nil
}

func (s *materialService) ListarMovimientos(ctx context.Context, id uuid.UUID, limit int) ([]dto.MovimientoStockResponse, error) {
	movs, err := s.movimientoRepo.ListByMaterial(ctx, id, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MovimientoStockResponse, 0, len(movs))
	for _, mov := range movs {
		resp = append(resp, dto.MovimientoStockResponse{
			ID:        mov.ID.String(),
			Tipo:      mov.Tipo,
			Cantidad:  mov.Cantidad,
			Antes:     mov.Antes,
			Despues:   mov.Despues,
			Motivo:    mov.Motivo,
			CreatedAt: mov.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}

func materialToResponse(m *model.Material) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		ID:                m.ID.String(),
		Nombre:            m.Nombre,
		Unidad:            m.Unidad,
		StockActual:       m.StockActual,
		StockComprometido: m.StockComprometido,
		StockDisponible:   m.StockActual.Sub(m.StockComprometido),
		PrecioUnitario:    m.PrecioUnitario,
		Activo:            m.Activo,
	}
}
