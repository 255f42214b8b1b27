package service

import (
	"context"
	"time"

	"github.com/Felipe-Salom-Git/plataforma-jm/internal/dto"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/model"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeguimientoService maneja el día a día de la obra: tareas, materiales,
// diario, gastos y el libro de pagos propio del seguimiento. Nada de esto
// toca el presupuesto de origen — desde la aprobación viven separados.
type SeguimientoService interface {
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.SeguimientoResponse, error)
	Listar(ctx context.Context, filter dto.SeguimientoFilter) (*dto.SeguimientoListResponse, error)
	ActualizarEstado(ctx context.Context, id uuid.UUID, req dto.ActualizarEstadoSeguimientoRequest) error

	ActualizarTarea(ctx context.Context, id, tareaID uuid.UUID, req dto.ActualizarTareaRequest) error
	ActualizarMaterial(ctx context.Context, id, materialID uuid.UUID, req dto.ActualizarMaterialSeguimientoRequest) error
	AgregarRegistro(ctx context.Context, id uuid.UUID, req dto.CrearRegistroDiarioRequest) error
	AgregarGasto(ctx context.Context, id uuid.UUID, req dto.CrearGastoRequest) error

	// RegistrarPago appends to the tracking-side ledger and recomputes its
	// balance, atomically — same discipline as the quote-side ledger.
	RegistrarPago(ctx context.Context, id uuid.UUID, req dto.RegistrarPagoRequest) error
}

type seguimientoService struct {
	repo repository.SeguimientoRepository
}

func NewSeguimientoService(repo repository.SeguimientoRepository) SeguimientoService {
	return &seguimientoService{repo: repo}
}

func (s *seguimientoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.SeguimientoResponse, error) {
	seg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrSeguimientoNoEncontrado
	}
	return seguimientoToResponse(seg), nil
}

func (s *seguimientoService) Listar(ctx context.Context, filter dto.SeguimientoFilter) (*dto.SeguimientoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	seguimientos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SeguimientoResponse, 0, len(seguimientos))
	for i := range seguimientos {
		items = append(items, *seguimientoToResponse(&seguimientos[i]))
	}
	return &dto.SeguimientoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ActualizarEstado no libera stock comprometido al cancelar: la reserva es
// monotónica y queda asentada en movimientos_stock.
func (s *seguimientoService) ActualizarEstado(ctx context.Context, id uuid.UUID, req dto.ActualizarEstadoSeguimientoRequest) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrSeguimientoNoEncontrado
	}
	return s.repo.UpdateCampos(ctx, id, map[string]interface{}{"estado": req.Estado})
}

func (s *seguimientoService) ActualizarTarea(ctx context.Context, id, tareaID uuid.UUID, req dto.ActualizarTareaRequest) error {
	t, err := s.repo.FindTarea(ctx, id, tareaID)
	if err != nil {
		return ErrSeguimientoNoEncontrado
	}
	t.Completada = req.Completada
	return s.repo.SaveTarea(ctx, t)
}

func (s *seguimientoService) ActualizarMaterial(ctx context.Context, id, materialID uuid.UUID, req dto.ActualizarMaterialSeguimientoRequest) error {
	m, err := s.repo.FindMaterial(ctx, id, materialID)
	if err != nil {
		return ErrSeguimientoNoEncontrado
	}
	m.Estado = req.Estado
	return s.repo.SaveMaterial(ctx, m)
}

func (s *seguimientoService) AgregarRegistro(ctx context.Context, id uuid.UUID, req dto.CrearRegistroDiarioRequest) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrSeguimientoNoEncontrado
	}
	return s.repo.CreateRegistro(ctx, &model.RegistroDiario{
		SeguimientoID: id,
		Fecha:         parseFechaODefault(req.Fecha),
		Texto:         req.Texto,
	})
}

func (s *seguimientoService) AgregarGasto(ctx context.Context, id uuid.UUID, req dto.CrearGastoRequest) error {
	if !req.Monto.GreaterThan(decimal.Zero) {
		return ErrMontoInvalido
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrSeguimientoNoEncontrado
	}
	categoria := req.Categoria
	if categoria == "" {
		categoria = "otros"
	}
	return s.repo.CreateGasto(ctx, &model.Gasto{
		SeguimientoID: id,
		Monto:         req.Monto,
		Fecha:         parseFechaODefault(req.Fecha),
		Categoria:     categoria,
		Descripcion:   req.Descripcion,
	})
}

func (s *seguimientoService) RegistrarPago(ctx context.Context, id uuid.UUID, req dto.RegistrarPagoRequest) error {
	if !req.Monto.GreaterThan(decimal.Zero) {
		return ErrMontoInvalido
	}
	fecha := parseFechaODefault(req.Fecha)

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		seg, err := s.repo.FindByIDTx(ctx, tx, id)
		if err != nil {
			return ErrSeguimientoNoEncontrado
		}
		pago := &model.PagoSeguimiento{
			SeguimientoID: seg.ID,
			Monto:         req.Monto,
			Fecha:         fecha,
			Metodo:        req.Metodo,
			Nota:          req.Nota,
		}
		if err := s.repo.CreatePagoTx(tx, pago); err != nil {
			return err
		}
		// El saldo se decrementa sobre el valor releído dentro de la tx; el
		// libro de pagos es el rastro de auditoría. El aislamiento
		// SERIALIZABLE de runTx impide que dos pagos partan del mismo saldo.
		saldo := seg.SaldoPendiente.Sub(req.Monto).Round(2)
		return s.repo.UpdateCamposTx(tx, seg.ID, map[string]interface{}{"saldo_pendiente": saldo})
	})
}

func parseFechaODefault(s string) time.Time {
	if s != "" {
		if f, err := time.Parse("2006-01-02", s); err == nil {
			return f
		}
	}
	return time.Now()
}

func seguimientoToResponse(seg *model.Seguimiento) *dto.SeguimientoResponse {
	tareas := make([]dto.TareaResponse, 0, len(seg.Tareas))
	for _, t := range seg.Tareas {
		tareas = append(tareas, dto.TareaResponse{
			ID: t.ID.String(), Texto: t.Texto, Completada: t.Completada,
		})
	}
	materiales := make([]dto.MaterialSeguimientoResponse, 0, len(seg.Materiales))
	for _, m := range seg.Materiales {
		materiales = append(materiales, dto.MaterialSeguimientoResponse{
			ID: m.ID.String(), Nombre: m.Nombre, Cantidad: m.Cantidad,
			Unidad: m.Unidad, Estado: m.Estado,
		})
	}
	registros := make([]dto.RegistroDiarioResponse, 0, len(seg.Registros))
	for _, r := range seg.Registros {
		registros = append(registros, dto.RegistroDiarioResponse{
			ID: r.ID.String(), Fecha: r.Fecha.Format("2006-01-02"), Texto: r.Texto,
		})
	}
	pagos := make([]dto.PagoResponse, 0, len(seg.Pagos))
	for _, p := range seg.Pagos {
		pagos = append(pagos, dto.PagoResponse{
			ID: p.ID.String(), Monto: p.Monto, Metodo: p.Metodo,
			Fecha: p.Fecha.Format("2006-01-02"), Nota: p.Nota,
		})
	}
	gastos := make([]dto.GastoResponse, 0, len(seg.Gastos))
	for _, g := range seg.Gastos {
		gastos = append(gastos, dto.GastoResponse{
			ID: g.ID.String(), Monto: g.Monto, Fecha: g.Fecha.Format("2006-01-02"),
			Categoria: g.Categoria, Descripcion: g.Descripcion,
		})
	}
	return &dto.SeguimientoResponse{
		ID:             seg.ID.String(),
		PresupuestoID:  seg.PresupuestoID.String(),
		ClienteID:      seg.ClienteID,
		ClienteNombre:  seg.ClienteNombre,
		Tareas:         tareas,
		Materiales:     materiales,
		Registros:      registros,
		Pagos:          pagos,
		Gastos:         gastos,
		SaldoPendiente: seg.SaldoPendiente,
		Estado:         seg.Estado,
		CreatedAt:      seg.CreatedAt.Format(time.RFC3339),
	}
}
