package handler

import (
	"net/http"

	"github.com/adornodavid/aybcosteo-sub001/internal/apierror"
	"github.com/adornodavid/aybcosteo-sub001/internal/dto"
	"github.com/adornodavid/aybcosteo-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type PlatillosHandler struct{ svc service.PlatilloService }

func NewPlatillosHandler(svc service.PlatilloService) *PlatillosHandler {
	return &PlatillosHandler{svc: svc}
}

func (h *PlatillosHandler) Crear(c *gin.Context) {
	var req dto.CrearPlatilloRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearPlatillo(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PlatillosHandler) Listar(c *gin.Context) {
	var filter dto.PlatilloFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarPlatillos(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar platillos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlatillosHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPlatillo(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Platillo no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlatillosHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarPlatilloRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarPlatillo(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlatillosHandler) Desactivar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DesactivarPlatillo(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PlatillosHandler) Reactivar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.ReactivarPlatillo(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Componentes ───────────────────────────────────────────────────────────────

func (h *PlatillosHandler) ListarComponentes(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarComponentes(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlatillosHandler) AgregarReceta(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AgregarRecetaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarReceta(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PlatillosHandler) AgregarIngrediente(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AgregarIngredienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarIngrediente(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PlatillosHandler) QuitarReceta(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	recetaID, ok := parseIDParam(c, "recetaId")
	if !ok {
		return
	}
	if err := h.svc.QuitarReceta(c.Request.Context(), id, recetaID); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PlatillosHandler) QuitarIngrediente(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	ingredienteID, ok := parseIDParam(c, "ingredienteId")
	if !ok {
		return
	}
	if err := h.svc.QuitarIngrediente(c.Request.Context(), id, ingredienteID); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
