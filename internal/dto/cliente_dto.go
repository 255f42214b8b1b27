package dto

// ClienteFilter is bound from the query string of GET /v1/clientes.
type ClienteFilter struct {
	Busqueda string `form:"q"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ActualizarClienteRequest struct {
	Nombre    string  `json:"nombre" validate:"omitempty,min=2"`
	Direccion *string `json:"direccion"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email" validate:"omitempty,email"`
	CUIT      *string `json:"cuit"`
}

type ClienteResponse struct {
	ID                      string  `json:"id"`
	Nombre                  string  `json:"nombre"`
	Direccion               *string `json:"direccion,omitempty"`
	Telefono                *string `json:"telefono,omitempty"`
	Email                   *string `json:"email,omitempty"`
	CUIT                    *string `json:"cuit,omitempty"`
	UltimoPresupuestoID     *string `json:"ultimo_presupuesto_id,omitempty"`
	UltimoPresupuestoNumero *int    `json:"ultimo_presupuesto_numero,omitempty"`
	SeguimientoActivoID     *string `json:"seguimiento_activo_id,omitempty"`
	CreatedAt               string  `json:"created_at"`
}

type ClienteListResponse struct {
	Data  []ClienteResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
