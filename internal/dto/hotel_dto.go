package dto

// ─── Hoteles ─────────────────────────────────────────────────────────────────

type CrearHotelRequest struct {
	Nombre    string  `json:"nombre" validate:"required,min=2,max=120"`
	Direccion *string `json:"direccion"`
}

type ActualizarHotelRequest struct {
	Nombre    *string `json:"nombre" validate:"omitempty,min=2,max=120"`
	Direccion *string `json:"direccion"`
}

type HotelResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Direccion *string `json:"direccion"`
	Activo    bool    `json:"activo"`
}

// ─── Restaurantes ────────────────────────────────────────────────────────────

type CrearRestauranteRequest struct {
	HotelID   string  `json:"hotel_id" validate:"required,uuid"`
	Nombre    string  `json:"nombre"   validate:"required,min=2,max=120"`
	Direccion *string `json:"direccion"`
}

type ActualizarRestauranteRequest struct {
	Nombre    *string `json:"nombre" validate:"omitempty,min=2,max=120"`
	Direccion *string `json:"direccion"`
}

type RestauranteResponse struct {
	ID        string  `json:"id"`
	HotelID   string  `json:"hotel_id"`
	Nombre    string  `json:"nombre"`
	Direccion *string `json:"direccion"`
	Activo    bool    `json:"activo"`
}
