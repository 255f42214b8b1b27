package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Felipe-Salom-Git/plataforma-jm/internal/apierror"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/dto"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MaterialesHandler struct{ svc service.MaterialService }

func NewMaterialesHandler(svc service.MaterialService) *MaterialesHandler {
	return &MaterialesHandler{svc: svc}
}

func statusForMaterialErr(err error) int {
	if errors.Is(err, service.ErrMaterialNoEncontrado) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func (h *MaterialesHandler) Crear(c *gin.Context) {
	var req dto.CrearMaterialRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MaterialesHandler) Listar(c *gin.Context) {
	var filter dto.MaterialFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar materiales"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MaterialesHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusForMaterialErr(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MaterialesHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarMaterialRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(statusForMaterialErr(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MaterialesHandler) Desactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		c.JSON(statusForMaterialErr(err), apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// AjustarStock godoc
// @Summary      Ajustar stock de un material
// @Description  Aplica un delta manual (positivo o negativo) sobre stock_actual y deja un movimiento de auditoría.
// @Tags         materiales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                 true "UUID del material"
// @Param        body body dto.AjustarStockRequest true "Delta y motivo"
// @Success      200  {object} dto.MaterialResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/materiales/{id}/ajustar-stock [post]
func (h *MaterialesHandler) AjustarStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AjustarStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjustarStock(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(statusForMaterialErr(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MaterialesHandler) ListarMovimientos(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	resp, err := h.svc.ListarMovimientos(c.Request.Context(), id, limit)
	if err != nil {
		c.JSON(statusForMaterialErr(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
