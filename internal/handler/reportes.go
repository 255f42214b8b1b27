package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Felipe-Salom-Git/plataforma-jm/internal/apierror"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/dto"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const reporteCacheTTL = 10 * time.Minute

// ReportesHandler serves the financial summary endpoint. Results are cached
// in Redis for a short TTL since the underlying aggregation scans two tables.
type ReportesHandler struct {
	svc service.ReporteService
	rdb *redis.Client
}

func NewReportesHandler(svc service.ReporteService, rdb *redis.Client) *ReportesHandler {
	return &ReportesHandler{svc: svc, rdb: rdb}
}

// ResumenFinanciero godoc
// @Summary Resumen financiero mensual (ingresos vs gastos)
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Param desde query string true "Fecha desde YYYY-MM-DD (inclusiva)"
// @Param hasta query string true "Fecha hasta YYYY-MM-DD (exclusiva)"
// @Success 200 {object} dto.ResumenFinancieroResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/reportes/resumen [get]
func (h *ReportesHandler) ResumenFinanciero(c *gin.Context) {
	var filter dto.ReporteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Rango de fechas invalido (YYYY-MM-DD)"))
		return
	}

	ctx := c.Request.Context()
	cacheKey := "reporte:resumen:" + filter.Desde + ":" + filter.Hasta

	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.ResumenFinancieroResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	resp, err := h.svc.ResumenFinanciero(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el resumen"))
		return
	}

	// Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, reporteCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
