package handler

import (
	"net/http"

	"github.com/adornodavid/aybcosteo-sub001/internal/apierror"
	"github.com/adornodavid/aybcosteo-sub001/internal/dto"
	"github.com/adornodavid/aybcosteo-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MenusHandler struct{ svc service.MenuService }

func NewMenusHandler(svc service.MenuService) *MenusHandler {
	return &MenusHandler{svc: svc}
}

func (h *MenusHandler) Crear(c *gin.Context) {
	var req dto.CrearMenuRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearMenu(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MenusHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerMenu(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Menu no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MenusHandler) Listar(c *gin.Context) {
	restauranteID, err := uuid.Parse(c.Query("restaurante_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("restaurante_id requerido"))
		return
	}
	resp, err := h.svc.ListarMenus(c.Request.Context(), restauranteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar menus"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MenusHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarMenuRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarMenu(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MenusHandler) Eliminar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.EliminarMenu(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MenusHandler) Reactivar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.ReactivarMenu(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Asignaciones ──────────────────────────────────────────────────────────────

// AgregarPlatillo godoc
// @Summary Asigna un platillo al menu con su precio de venta
// @Tags menus
// @Accept json
// @Produce json
// @Param id path string true "Menu ID"
// @Param body body dto.AgregarPlatilloRequest true "Asignacion"
// @Success 201 {object} dto.AsignacionResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/menus/{id}/platillos [post]
func (h *MenusHandler) AgregarPlatillo(c *gin.Context) {
	menuID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AgregarPlatilloRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarPlatillo(c.Request.Context(), menuID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MenusHandler) ActualizarPrecio(c *gin.Context) {
	menuID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	platilloID, ok := parseIDParam(c, "platilloId")
	if !ok {
		return
	}
	var req dto.ActualizarPrecioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarPrecioVenta(c.Request.Context(), menuID, platilloID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MenusHandler) ListarAsignaciones(c *gin.Context) {
	menuID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarAsignaciones(c.Request.Context(), menuID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar asignaciones"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MenusHandler) QuitarPlatillo(c *gin.Context) {
	menuID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	platilloID, ok := parseIDParam(c, "platilloId")
	if !ok {
		return
	}
	if err := h.svc.QuitarPlatillo(c.Request.Context(), menuID, platilloID); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Margenes godoc
// @Summary Costos y margenes por platillo de un menu (cacheado)
// @Tags menus
// @Produce json
// @Param id path string true "Menu ID"
// @Success 200 {object} dto.MargenesResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/menus/{id}/margenes [get]
func (h *MenusHandler) Margenes(c *gin.Context) {
	menuID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Margenes(c.Request.Context(), menuID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
