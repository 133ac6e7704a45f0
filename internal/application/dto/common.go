package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// FaltanteDTO detalle de stock insuficiente para una línea de comanda.
type FaltanteDTO struct {
	CodProd     string `json:"codprod"`
	Descripcion string `json:"descripcion"`
	StkActual   int64  `json:"stkactual"`
	Solicitado  int64  `json:"solicitado"`
}

// ErrorDetail cuerpo del nodo err en respuestas de error.
type ErrorDetail struct {
	Message   string        `json:"message"`
	Productos []FaltanteDTO `json:"productos,omitempty"`
}

// ErrorEnvelope respuesta de error: {ok:false, err:{message, productos?}}.
type ErrorEnvelope struct {
	OK  bool        `json:"ok"`
	Err ErrorDetail `json:"err"`
}

// NewError construye el sobre de error con el mensaje dado.
func NewError(message string) ErrorEnvelope {
	return ErrorEnvelope{OK: false, Err: ErrorDetail{Message: message}}
}

// NewErrorConProductos construye el sobre de error con la lista de faltantes.
func NewErrorConProductos(message string, productos []FaltanteDTO) ErrorEnvelope {
	return ErrorEnvelope{OK: false, Err: ErrorDetail{Message: message, Productos: productos}}
}
