package handler

import (
	"net/http"

	"github.com/adornodavid/aybcosteo-sub001/internal/apierror"
	"github.com/adornodavid/aybcosteo-sub001/internal/dto"
	"github.com/adornodavid/aybcosteo-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type HistoricoHandler struct{ svc service.HistoricoService }

func NewHistoricoHandler(svc service.HistoricoService) *HistoricoHandler {
	return &HistoricoHandler{svc: svc}
}

// Listar godoc
// @Summary Consulta del ledger de snapshots mensuales
// @Tags historico
// @Produce json
// @Param platillo_id query string false "Platillo ID"
// @Param menu_id query string false "Menu ID"
// @Param hotel_id query string false "Hotel ID"
// @Param mes query string false "Mes (YYYY-MM, default mes actual)"
// @Success 200 {object} dto.HistoricoListResponse
// @Router /v1/historico [get]
func (h *HistoricoHandler) Listar(c *gin.Context) {
	var filter dto.HistoricoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar historico"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
