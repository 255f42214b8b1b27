package service

import (
	"context"
	"time"

	"github.com/Felipe-Salom-Git/plataforma-jm/internal/dto"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/model"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/repository"
)

// ClienteService exposes the client directory. Clients are born exclusively
// through quote approvals; here they can only be consulted, corrected or
// soft-deleted.
type ClienteService interface {
	ObtenerPorID(ctx context.Context, id string) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error)
	Actualizar(ctx context.Context, id string, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, id string) error
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) ObtenerPorID(ctx context.Context, id string) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrClienteNoEncontrado
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	clientes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		items = append(items, *clienteToResponse(&clientes[i]))
	}
	return &dto.ClienteListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// Actualizar corrige datos de contacto. La clave NO se recalcula: renombrar o
// cambiar el email de un cliente existente no lo muda de registro — la clave
// derivada solo se usa al nacer, durante la aprobación.
func (s *clienteService) Actualizar(ctx context.Context, id string, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrClienteNoEncontrado
	}
	if req.Nombre != "" {
		c.Nombre = req.Nombre
	}
	if req.Direccion != nil {
		c.Direccion = req.Direccion
	}
	if req.Telefono != nil {
		c.Telefono = req.Telefono
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.CUIT != nil {
		c.CUIT = req.CUIT
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Eliminar(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrClienteNoEncontrado
	}
	return s.repo.SoftDelete(ctx, id)
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	resp := &dto.ClienteResponse{
		ID:                      c.ID,
		Nombre:                  c.Nombre,
		Direccion:               c.Direccion,
		Telefono:                c.Telefono,
		Email:                   c.Email,
		CUIT:                    c.CUIT,
		UltimoPresupuestoNumero: c.UltimoPresupuestoNumero,
		CreatedAt:               c.CreatedAt.Format(time.RFC3339),
	}
	if c.UltimoPresupuestoID != nil {
		id := c.UltimoPresupuestoID.String()
		resp.UltimoPresupuestoID = &id
	}
	if c.SeguimientoActivoID != nil {
		id := c.SeguimientoActivoID.String()
		resp.SeguimientoActivoID = &id
	}
	return resp
}
