package handler

import (
	"errors"
	"net/http"

	"github.com/Felipe-Salom-Git/plataforma-jm/internal/apierror"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/dto"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SeguimientosHandler struct{ svc service.SeguimientoService }

func NewSeguimientosHandler(svc service.SeguimientoService) *SeguimientosHandler {
	return &SeguimientosHandler{svc: svc}
}

func statusForSeguimientoErr(err error) int {
	switch {
	case errors.Is(err, service.ErrSeguimientoNoEncontrado):
		return http.StatusNotFound
	case errors.Is(err, service.ErrMontoInvalido):
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}

func (h *SeguimientosHandler) Listar(c *gin.Context) {
	var filter dto.SeguimientoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar seguimientos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SeguimientosHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusForSeguimientoErr(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SeguimientosHandler) ActualizarEstado(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarEstadoSeguimientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ActualizarEstado(c.Request.Context(), id, req); err != nil {
		c.JSON(statusForSeguimientoErr(err), apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ActualizarTarea toggles completion on a checklist task.
func (h *SeguimientosHandler) ActualizarTarea(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	tareaID, err := uuid.Parse(c.Param("tareaId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de tarea invalido"))
		return
	}
	var req dto.ActualizarTareaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ActualizarTarea(c.Request.Context(), id, tareaID, req); err != nil {
		c.JSON(statusForSeguimientoErr(err), apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ActualizarMaterial advances a planned material through planificado →
// comprado → usado.
func (h *SeguimientosHandler) ActualizarMaterial(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	materialID, err := uuid.Parse(c.Param("materialId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de material invalido"))
		return
	}
	var req dto.ActualizarMaterialSeguimientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ActualizarMaterial(c.Request.Context(), id, materialID, req); err != nil {
		c.JSON(statusForSeguimientoErr(err), apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SeguimientosHandler) AgregarRegistro(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.CrearRegistroDiarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AgregarRegistro(c.Request.Context(), id, req); err != nil {
		c.JSON(statusForSeguimientoErr(err), apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusCreated)
}

func (h *SeguimientosHandler) AgregarGasto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.CrearGastoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AgregarGasto(c.Request.Context(), id, req); err != nil {
		c.JSON(statusForSeguimientoErr(err), apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusCreated)
}

// RegistrarPago godoc
// @Summary      Registrar pago sobre un seguimiento
// @Description  Agrega un pago al libro del seguimiento y recalcula su saldo atómicamente.
// @Tags         seguimientos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                   true "UUID del seguimiento"
// @Param        body body dto.RegistrarPagoRequest true "Detalle del pago"
// @Success      201
// @Failure      400  {object} apierror.APIError
// @Router       /v1/seguimientos/{id}/pagos [post]
func (h *SeguimientosHandler) RegistrarPago(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.RegistrarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.RegistrarPago(c.Request.Context(), id, req); err != nil {
		c.JSON(statusForSeguimientoErr(err), apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusCreated)
}
