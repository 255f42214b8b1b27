package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Felipe-Salom-Git/plataforma-jm/internal/apierror"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/dto"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PresupuestosHandler struct{ svc service.PresupuestoService }

func NewPresupuestosHandler(svc service.PresupuestoService) *PresupuestosHandler {
	return &PresupuestosHandler{svc: svc}
}

// statusForPresupuestoErr maps service sentinels to HTTP codes.
func statusForPresupuestoErr(err error) int {
	switch {
	case errors.Is(err, service.ErrPresupuestoNoEncontrado):
		return http.StatusNotFound
	case errors.Is(err, service.ErrPresupuestoYaAprobado):
		return http.StatusConflict
	case errors.Is(err, service.ErrPresupuestoNoEditable):
		return http.StatusConflict
	case errors.Is(err, service.ErrMaterialNoEncontrado):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrMontoInvalido):
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}

// Crear godoc
// @Summary      Crear presupuesto
// @Description  Crea un presupuesto en borrador con snapshot de cliente e ítems. No toca inventario ni clientes.
// @Tags         presupuestos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearPresupuestoRequest true "Detalle del presupuesto"
// @Success      201  {object} dto.PresupuestoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/presupuestos [post]
func (h *PresupuestosHandler) Crear(c *gin.Context) {
	var req dto.CrearPresupuestoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusForPresupuestoErr(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar returns a paginated, filtered list of quotes.
func (h *PresupuestosHandler) Listar(c *gin.Context) {
	var filter dto.PresupuestoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar presupuestos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PresupuestosHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusForPresupuestoErr(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PresupuestosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarPresupuestoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(statusForPresupuestoErr(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PresupuestosHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		c.JSON(statusForPresupuestoErr(err), apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Aprobar godoc
// @Summary      Aprobar presupuesto
// @Description  Transacción ACID: upsert de cliente por clave derivada, creación de seguimiento, reserva de stock y transición de estado. Todo o nada.
// @Tags         presupuestos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del presupuesto"
// @Success      200  {object} dto.PresupuestoResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/presupuestos/{id}/aprobar [post]
func (h *PresupuestosHandler) Aprobar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Aprobar(c.Request.Context(), id); err != nil {
		c.JSON(statusForPresupuestoErr(err), apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusForPresupuestoErr(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarPago godoc
// @Summary      Registrar pago sobre un presupuesto
// @Description  Agrega un pago inmutable al libro de pagos y recalcula saldo y estado atómicamente.
// @Tags         presupuestos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                   true "UUID del presupuesto"
// @Param        body body dto.RegistrarPagoRequest true "Detalle del pago"
// @Success      201  {object} dto.PresupuestoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/presupuestos/{id}/pagos [post]
func (h *PresupuestosHandler) RegistrarPago(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.RegistrarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarPago(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(statusForPresupuestoErr(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// DescargarPDF renders (or reuses) the quote PDF and streams it as a download.
func (h *PresupuestosHandler) DescargarPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	path, err := h.svc.GenerarPDF(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusForPresupuestoErr(err), apierror.New(err.Error()))
		return
	}
	c.FileAttachment(path, fmt.Sprintf("presupuesto_%s.pdf", c.Param("id")))
}
