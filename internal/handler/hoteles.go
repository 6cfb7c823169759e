package handler

import (
	"net/http"

	"github.com/adornodavid/aybcosteo-sub001/internal/apierror"
	"github.com/adornodavid/aybcosteo-sub001/internal/dto"
	"github.com/adornodavid/aybcosteo-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type HotelesHandler struct{ svc service.HotelService }

func NewHotelesHandler(svc service.HotelService) *HotelesHandler {
	return &HotelesHandler{svc: svc}
}

func (h *HotelesHandler) Crear(c *gin.Context) {
	var req dto.CrearHotelRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearHotel(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *HotelesHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerHotel(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Hotel no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HotelesHandler) Listar(c *gin.Context) {
	incluirInactivos := c.Query("incluir_inactivos") == "true"
	resp, err := h.svc.ListarHoteles(c.Request.Context(), incluirInactivos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar hoteles"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HotelesHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarHotelRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarHotel(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HotelesHandler) Desactivar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DesactivarHotel(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HotelesHandler) Reactivar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.ReactivarHotel(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
