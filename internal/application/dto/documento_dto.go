package dto

// ItemDocumentoRequest línea del body de POST /documentos.
// Cantidad llega como número JSON: el caso de uso valida que sea un entero
// distinto de cero (rechaza 0 y fraccionarios como -1.5).
type ItemDocumentoRequest struct {
	Cantidad float64 `json:"cantidad"`
	Producto string  `json:"producto"`
	CodProd  string  `json:"codprod"`
}

// CrearDocumentoRequest body de POST /documentos.
// numeroSugerido y nroSugerido son alias: el frontend histórico usa ambos.
type CrearDocumentoRequest struct {
	Tipo            string                 `json:"tipo"`
	Prefijo         string                 `json:"prefijo"`
	Proveedor       string                 `json:"proveedor"`
	FechaRemito     string                 `json:"fechaRemito"`
	Items           []ItemDocumentoRequest `json:"items"`
	AjusteOperacion string                 `json:"ajusteOperacion,omitempty"`
	NumeroSugerido  string                 `json:"numeroSugerido,omitempty"`
	NroSugerido     string                 `json:"nroSugerido,omitempty"`
	Notas           string                 `json:"notas,omitempty"`
}

// Sugerido devuelve el número sugerido en cualquiera de sus dos alias.
func (r *CrearDocumentoRequest) Sugerido() string {
	if r.NumeroSugerido != "" {
		return r.NumeroSugerido
	}
	return r.NroSugerido
}

// ItemDocumentoResponse línea de documento en respuestas.
type ItemDocumentoResponse struct {
	Cantidad int64  `json:"cantidad"`
	Producto string `json:"producto"`
	CodProd  string `json:"codprod"`
}

// DocumentoResponse representación JSON de un documento.
type DocumentoResponse struct {
	ID             string                  `json:"id"`
	Tipo           string                  `json:"tipo"`
	Prefijo        string                  `json:"prefijo"`
	Secuencia      int64                   `json:"secuencia"`
	NroDeDocumento string                  `json:"nroDeDocumento"`
	Proveedor      string                  `json:"proveedor"`
	FechaRemito    string                  `json:"fechaRemito"`
	FechaRegistro  string                  `json:"fechaRegistro"`
	CreadoPor      string                  `json:"creadoPor"`
	Items          []ItemDocumentoResponse `json:"items"`
	Notas          string                  `json:"notas,omitempty"`
	Activo         bool                    `json:"activo"`
}

// StockUpdateDTO delta aplicado a un producto por la creación del documento.
// Lleva incremento o decremento según el signo; operacion repite el sentido.
type StockUpdateDTO struct {
	Producto   string `json:"producto"`
	CodProd    string `json:"codprod"`
	Incremento int64  `json:"incremento,omitempty"`
	Decremento int64  `json:"decremento,omitempty"`
	Operacion  string `json:"operacion"`
}

// StockUpdatesDTO nodo stock de la respuesta de creación.
type StockUpdatesDTO struct {
	Updates []StockUpdateDTO `json:"updates"`
}

// CrearDocumentoResponse respuesta 201 de POST /documentos.
type CrearDocumentoResponse struct {
	OK        bool              `json:"ok"`
	Documento DocumentoResponse `json:"documento"`
	Stock     StockUpdatesDTO   `json:"stock"`
}

// ActualizarDocumentoRequest body de PUT /documentos/:id. Solo campos ajenos
// a la numeración; tipo, prefijo y secuencia son inmutables.
type ActualizarDocumentoRequest struct {
	Proveedor   string                 `json:"proveedor,omitempty"`
	FechaRemito string                 `json:"fechaRemito,omitempty"`
	Items       []ItemDocumentoRequest `json:"items,omitempty"`
	Notas       string                 `json:"notas,omitempty"`
}

// ReservarNumeroRequest body de POST /documentos/reservar-numero.
type ReservarNumeroRequest struct {
	Tipo    string `json:"tipo"`
	Prefijo string `json:"prefijo"`
}

// ReservaResponse respuesta de una reserva de número.
type ReservaResponse struct {
	OK        bool   `json:"ok"`
	Tipo      string `json:"tipo"`
	Prefijo   string `json:"prefijo"`
	Secuencia int64  `json:"secuencia"`
	Numero    string `json:"numero"`
	ExpiresAt string `json:"expiresAt"`
}
