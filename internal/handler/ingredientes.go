package handler

import (
	"net/http"

	"github.com/adornodavid/aybcosteo-sub001/internal/apierror"
	"github.com/adornodavid/aybcosteo-sub001/internal/dto"
	"github.com/adornodavid/aybcosteo-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type IngredientesHandler struct{ svc service.IngredienteService }

func NewIngredientesHandler(svc service.IngredienteService) *IngredientesHandler {
	return &IngredientesHandler{svc: svc}
}

func (h *IngredientesHandler) Crear(c *gin.Context) {
	var req dto.CrearIngredienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearIngrediente(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *IngredientesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListarIngredientes(c.Request.Context(), c.Query("nombre"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar ingredientes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IngredientesHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerIngrediente(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Ingrediente no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IngredientesHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarIngredienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarIngrediente(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarCosto re-prices the ingrediente; the new cost cascades to every
// platillo that uses it.
func (h *IngredientesHandler) ActualizarCosto(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarCostoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarCosto(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IngredientesHandler) Desactivar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DesactivarIngrediente(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *IngredientesHandler) Reactivar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.ReactivarIngrediente(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
