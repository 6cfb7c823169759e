package handler

import (
	"net/http"

	"github.com/adornodavid/aybcosteo-sub001/internal/apierror"
	"github.com/adornodavid/aybcosteo-sub001/internal/dto"
	"github.com/adornodavid/aybcosteo-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RestaurantesHandler struct{ svc service.RestauranteService }

func NewRestaurantesHandler(svc service.RestauranteService) *RestaurantesHandler {
	return &RestaurantesHandler{svc: svc}
}

func (h *RestaurantesHandler) Crear(c *gin.Context) {
	var req dto.CrearRestauranteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearRestaurante(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RestaurantesHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerRestaurante(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Restaurante no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar accepts an optional ?hotel_id= filter.
func (h *RestaurantesHandler) Listar(c *gin.Context) {
	var hotelID *uuid.UUID
	if raw := c.Query("hotel_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("hotel_id invalido"))
			return
		}
		hotelID = &parsed
	}
	resp, err := h.svc.ListarRestaurantes(c.Request.Context(), hotelID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar restaurantes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RestaurantesHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarRestauranteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarRestaurante(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RestaurantesHandler) Desactivar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DesactivarRestaurante(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RestaurantesHandler) Reactivar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.ReactivarRestaurante(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
