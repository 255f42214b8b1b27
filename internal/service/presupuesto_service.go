package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Felipe-Salom-Git/plataforma-jm/internal/clientid"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/config"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/dto"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/infra"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/model"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/repository"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PresupuestoService interface {
	Crear(ctx context.Context, req dto.CrearPresupuestoRequest) (*dto.PresupuestoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.PresupuestoResponse, error)
	Listar(ctx context.Context, filter dto.PresupuestoFilter) (*dto.PresupuestoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPresupuestoRequest) (*dto.PresupuestoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error

	// Aprobar runs the budget-approval transaction: client upsert, tracking
	// record creation, stock reservation and quote state transition, all or
	// nothing.
	Aprobar(ctx context.Context, id uuid.UUID) error

	// RegistrarPago appends an immutable payment to the quote's ledger and
	// recomputes balance and lifecycle state atomically.
	RegistrarPago(ctx context.Context, id uuid.UUID, req dto.RegistrarPagoRequest) (*dto.PresupuestoResponse, error)

	// GenerarPDF renders (or reuses) the quote PDF on disk and returns its path.
	GenerarPDF(ctx context.Context, id uuid.UUID) (string, error)
}

type presupuestoService struct {
	repo            repository.PresupuestoRepository
	clienteRepo     repository.ClienteRepository
	materialRepo    repository.MaterialRepository
	movimientoRepo  repository.MovimientoStockRepository
	seguimientoRepo repository.SeguimientoRepository
	dispatcher      *worker.Dispatcher
	cfg             *config.Config
}

func NewPresupuestoService(
	repo repository.PresupuestoRepository,
	clienteRepo repository.ClienteRepository,
	materialRepo repository.MaterialRepository,
	movimientoRepo repository.MovimientoStockRepository,
	seguimientoRepo repository.SeguimientoRepository,
	dispatcher *worker.Dispatcher,
	cfg *config.Config,
) PresupuestoService {
	return &presupuestoService{
		repo:            repo,
		clienteRepo:     clienteRepo,
		materialRepo:    materialRepo,
		movimientoRepo:  movimientoRepo,
		seguimientoRepo: seguimientoRepo,
		dispatcher:      dispatcher,
		cfg:             cfg,
	}
}

// ── Crear ─────────────────────────────────────────────────────────────────────

func (s *presupuestoService) Crear(ctx context.Context, req dto.CrearPresupuestoRequest) (*dto.PresupuestoResponse, error) {
	numero, err := s.repo.NextNumero(ctx)
	if err != nil {
		return nil, fmt.Errorf("numeración de presupuestos: %w", err)
	}

	items, subtotal, err := buildItems(req.Items)
	if err != nil {
		return nil, err
	}

	total := subtotal.Sub(req.Descuento)
	if total.IsNegative() {
		total = decimal.Zero
	}

	estado := req.Estado
	if estado == "" {
		estado = "draft"
	}

	p := &model.Presupuesto{
		Numero:           numero,
		ClienteNombre:    req.Cliente.Nombre,
		ClienteDireccion: req.Cliente.Direccion,
		ClienteTelefono:  req.Cliente.Telefono,
		ClienteEmail:     req.Cliente.Email,
		ClienteCUIT:      req.Cliente.CUIT,
		Items:            items,
		Subtotal:         subtotal,
		Descuento:        req.Descuento,
		Total:            total,
		Estado:           estado,
		SaldoPendiente:   total,
		Nota:             req.Nota,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return presupuestoToResponse(p), nil
}

// buildItems computes line totals and the running subtotal in creation order.
func buildItems(reqs []dto.ItemPresupuestoRequest) ([]model.PresupuestoItem, decimal.Decimal, error) {
	items := make([]model.PresupuestoItem, 0, len(reqs))
	subtotal := decimal.Zero
	for i, it := range reqs {
		var materialID *uuid.UUID
		if it.MaterialID != nil {
			mid, err := uuid.Parse(*it.MaterialID)
			if err != nil {
				return nil, decimal.Zero, fmt.Errorf("material_id inválido: %w", err)
			}
			materialID = &mid
		}
		totalLinea := it.Cantidad.Mul(it.PrecioUnitario).Round(2)
		subtotal = subtotal.Add(totalLinea)
		items = append(items, model.PresupuestoItem{
			Orden:          i,
			Tipo:           it.Tipo,
			Descripcion:    it.Descripcion,
			Cantidad:       it.Cantidad,
			Unidad:         it.Unidad,
			PrecioUnitario: it.PrecioUnitario,
			TotalLinea:     totalLinea,
			MaterialID:     materialID,
		})
	}
	return items, subtotal, nil
}

// ── Aprobar ───────────────────────────────────────────────────────────────────
// One ACID transaction:
//   1. Re-read the quote inside the tx (a stale pre-read must not drive the decision)
//   2. Guard: already approved → typed error, nothing touched
//   3. Resolve every referenced inventory material up front — any missing
//      material aborts before the first write
//   4. Upsert the client at its deterministic contact-derived key
//   5. Commit stock per material line + audit movement
//   6. Create the tracking record (tasks/materials derived from the items)
//   7. Flip the quote to approved
// On any failure GORM rolls everything back; no partial state survives.

func (s *presupuestoService) Aprobar(ctx context.Context, id uuid.UUID) error {
	var clienteEmail *string
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		p, err := s.repo.FindByIDTx(ctx, tx, id)
		if err != nil {
			return ErrPresupuestoNoEncontrado
		}
		if p.Estado == "approved" {
			return ErrPresupuestoYaAprobado
		}
		now := time.Now()

		// 3. Pre-resolve reservations. All reads happen before any write so a
		// missing material can never leave a half-reserved state behind. The
		// rows stay locked until commit, which keeps the audit before/after
		// values honest.
		type reserva struct {
			material *model.Material
			cantidad decimal.Decimal
		}
		var reservas []reserva
		for _, item := range p.Items {
			if item.Tipo != "material" || item.MaterialID == nil {
				continue
			}
			m, err := s.materialRepo.FindByIDForUpdateTx(tx, *item.MaterialID)
			if err != nil {
				return fmt.Errorf("%w: ítem %q", ErrMaterialNoEncontrado, item.Descripcion)
			}
			reservas = append(reservas, reserva{material: m, cantidad: item.Cantidad})
		}

		seguimientoID := uuid.New()
		clienteID := clientid.Derive(strDeref(p.ClienteEmail), strDeref(p.ClienteTelefono), p.ClienteNombre)

		// 4. Client upsert at the deterministic key, as a single ON CONFLICT
		// statement: concurrent approvals for the same contact converge on one
		// record instead of racing a find-then-create. Contact fields are
		// last-write-wins, and the active-tracking pointer is replaced
		// unconditionally.
		cliente := &model.Cliente{
			ID:                      clienteID,
			Nombre:                  p.ClienteNombre,
			Direccion:               p.ClienteDireccion,
			Telefono:                p.ClienteTelefono,
			Email:                   p.ClienteEmail,
			CUIT:                    p.ClienteCUIT,
			UltimoPresupuestoID:     &p.ID,
			UltimoPresupuestoNumero: &p.Numero,
			SeguimientoActivoID:     &seguimientoID,
		}
		if err := s.clienteRepo.UpsertTx(tx, cliente); err != nil {
			return err
		}

		// 5. Stock reservation + audit trail. The commit is a relative UPDATE,
		// never an absolute write, so a concurrent reservation on the same
		// material cannot be erased. Committed quantities only grow; there is
		// no release path (cancellation does not decommit).
		for _, r := range reservas {
			antes := r.material.StockComprometido
			if err := s.materialRepo.ReservarStockTx(tx, r.material.ID, r.cantidad); err != nil {
				return err
			}
			mov := &model.MovimientoStock{
				MaterialID:   r.material.ID,
				Tipo:         "reserva",
				Cantidad:     r.cantidad,
				Antes:        antes,
				Despues:      antes.Add(r.cantidad),
				Motivo:       fmt.Sprintf("Presupuesto #%d", p.Numero),
				ReferenciaID: &p.ID,
			}
			if err := s.movimientoRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}

		// 6. Tracking record — its own copies of tasks/materials/ledger; from
		// here on it lives independently of the quote.
		seg := &model.Seguimiento{
			ID:               seguimientoID,
			PresupuestoID:    p.ID,
			ClienteID:        clienteID,
			ClienteNombre:    p.ClienteNombre,
			ClienteDireccion: p.ClienteDireccion,
			ClienteTelefono:  p.ClienteTelefono,
			ClienteEmail:     p.ClienteEmail,
			Tareas:           buildTareas(p.Items),
			Materiales:       buildMateriales(p.Items),
			SaldoPendiente:   p.Total,
			Estado:           "pending_start",
		}
		if err := s.seguimientoRepo.CreateTx(tx, seg); err != nil {
			return err
		}

		// 7. Quote transition.
		if err := s.repo.UpdateCamposTx(tx, p.ID, map[string]interface{}{
			"estado":           "approved",
			"fecha_aprobacion": now,
			"seguimiento_id":   seguimientoID,
			"cliente_id":       clienteID,
			"saldo_pendiente":  p.Total,
		}); err != nil {
			return err
		}

		clienteEmail = p.ClienteEmail
		return nil
	})
	if txErr != nil {
		return txErr
	}

	// Async PDF + mail job — best effort, fire & forget.
	if s.dispatcher != nil {
		payload := worker.PDFJobPayload{PresupuestoID: id.String()}
		if clienteEmail != nil && *clienteEmail != "" {
			payload.ClienteEmail = clienteEmail
		}
		_ = s.dispatcher.EnqueuePDF(ctx, payload)
	}
	return nil
}

// ── RegistrarPago ─────────────────────────────────────────────────────────────
// The ledger is re-read inside the transaction before appending, so concurrent
// registrations against the same quote serialize without lost updates.
// Over-payment is permitted: the balance goes negative and is not clamped.

func (s *presupuestoService) RegistrarPago(ctx context.Context, id uuid.UUID, req dto.RegistrarPagoRequest) (*dto.PresupuestoResponse, error) {
	if !req.Monto.GreaterThan(decimal.Zero) {
		return nil, ErrMontoInvalido
	}
	fecha := time.Now()
	if req.Fecha != "" {
		if f, err := time.Parse("2006-01-02", req.Fecha); err == nil {
			fecha = f
		}
	}

	var actualizado *model.Presupuesto
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		p, err := s.repo.FindByIDTx(ctx, tx, id)
		if err != nil {
			return ErrPresupuestoNoEncontrado
		}

		pago := &model.Pago{
			PresupuestoID: p.ID,
			Monto:         req.Monto,
			Fecha:         fecha,
			Metodo:        req.Metodo,
			Nota:          req.Nota,
		}
		if err := s.repo.CreatePagoTx(tx, pago); err != nil {
			return err
		}

		totalPagado := req.Monto
		for _, pg := range p.Pagos {
			totalPagado = totalPagado.Add(pg.Monto)
		}
		saldo := p.Total.Sub(totalPagado).Round(2)

		campos := map[string]interface{}{"saldo_pendiente": saldo}
		switch {
		case !saldo.GreaterThan(decimal.Zero) && p.Estado != "completed":
			campos["estado"] = "completed"
		case saldo.GreaterThan(decimal.Zero) && p.Estado == "approved":
			// First partial payment activates the work.
			campos["estado"] = "in_progress"
		}
		if err := s.repo.UpdateCamposTx(tx, p.ID, campos); err != nil {
			return err
		}

		p.Pagos = append(p.Pagos, *pago)
		p.SaldoPendiente = saldo
		if e, ok := campos["estado"].(string); ok {
			p.Estado = e
		}
		actualizado = p
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return presupuestoToResponse(actualizado), nil
}

// ── CRUD restante ─────────────────────────────────────────────────────────────

func (s *presupuestoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.PresupuestoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrPresupuestoNoEncontrado
	}
	return presupuestoToResponse(p), nil
}

func (s *presupuestoService) Listar(ctx context.Context, filter dto.PresupuestoFilter) (*dto.PresupuestoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	presupuestos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PresupuestoListItem, 0, len(presupuestos))
	for _, p := range presupuestos {
		items = append(items, dto.PresupuestoListItem{
			ID:             p.ID.String(),
			Numero:         p.Numero,
			ClienteNombre:  p.ClienteNombre,
			Total:          p.Total,
			SaldoPendiente: p.SaldoPendiente,
			Estado:         p.Estado,
			CreatedAt:      p.CreatedAt.Format(time.RFC3339),
		})
	}
	return &dto.PresupuestoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *presupuestoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPresupuestoRequest) (*dto.PresupuestoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrPresupuestoNoEncontrado
	}
	// Quotes freeze once approved; only cancellation remains possible.
	if p.Estado != "draft" && p.Estado != "pending" {
		if req.Estado == nil || *req.Estado != "canceled" {
			return nil, ErrPresupuestoNoEditable
		}
	}

	if req.Cliente != nil {
		p.ClienteNombre = req.Cliente.Nombre
		p.ClienteDireccion = req.Cliente.Direccion
		p.ClienteTelefono = req.Cliente.Telefono
		p.ClienteEmail = req.Cliente.Email
		p.ClienteCUIT = req.Cliente.CUIT
	}
	if req.Items != nil {
		items, subtotal, err := buildItems(req.Items)
		if err != nil {
			return nil, err
		}
		p.Items = items
		p.Subtotal = subtotal
	}
	if req.Descuento != nil {
		p.Descuento = *req.Descuento
	}
	p.Total = p.Subtotal.Sub(p.Descuento)
	if p.Total.IsNegative() {
		p.Total = decimal.Zero
	}
	p.SaldoPendiente = p.Total
	if req.Estado != nil {
		p.Estado = *req.Estado
	}
	if req.Nota != nil {
		p.Nota = req.Nota
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return presupuestoToResponse(p), nil
}

func (s *presupuestoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrPresupuestoNoEncontrado
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *presupuestoService) GenerarPDF(ctx context.Context, id uuid.UUID) (string, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", ErrPresupuestoNoEncontrado
	}
	return infra.GenerarPresupuestoPDF(p, s.cfg.EmpresaNombre, s.cfg.PDFStoragePath)
}

// ── Mapping helpers ───────────────────────────────────────────────────────────

func presupuestoToResponse(p *model.Presupuesto) *dto.PresupuestoResponse {
	items := make([]dto.ItemPresupuestoResponse, 0, len(p.Items))
	for _, item := range p.Items {
		var materialID *string
		if item.MaterialID != nil {
			mid := item.MaterialID.String()
			materialID = &mid
		}
		items = append(items, dto.ItemPresupuestoResponse{
			ID:             item.ID.String(),
			Tipo:           item.Tipo,
			Descripcion:    item.Descripcion,
			Cantidad:       item.Cantidad,
			Unidad:         item.Unidad,
			PrecioUnitario: item.PrecioUnitario,
			TotalLinea:     item.TotalLinea,
			MaterialID:     materialID,
		})
	}
	pagos := make([]dto.PagoResponse, 0, len(p.Pagos))
	for _, pg := range p.Pagos {
		pagos = append(pagos, dto.PagoResponse{
			ID:     pg.ID.String(),
			Monto:  pg.Monto,
			Metodo: pg.Metodo,
			Fecha:  pg.Fecha.Format("2006-01-02"),
			Nota:   pg.Nota,
		})
	}

	var seguimientoID *string
	if p.SeguimientoID != nil {
		sid := p.SeguimientoID.String()
		seguimientoID = &sid
	}
	var fechaAprobacion *string
	if p.FechaAprobacion != nil {
		fa := p.FechaAprobacion.Format(time.RFC3339)
		fechaAprobacion = &fa
	}

	return &dto.PresupuestoResponse{
		ID:     p.ID.String(),
		Numero: p.Numero,
		ClienteID: p.ClienteID,
		Cliente: dto.ClienteSnapshotRequest{
			Nombre:    p.ClienteNombre,
			Direccion: p.ClienteDireccion,
			Telefono:  p.ClienteTelefono,
			Email:     p.ClienteEmail,
			CUIT:      p.ClienteCUIT,
		},
		Items:           items,
		Subtotal:        p.Subtotal,
		Descuento:       p.Descuento,
		Total:           p.Total,
		Estado:          p.Estado,
		Pagos:           pagos,
		SaldoPendiente:  p.SaldoPendiente,
		SeguimientoID:   seguimientoID,
		FechaAprobacion: fechaAprobacion,
		Nota:            p.Nota,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
	}
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
