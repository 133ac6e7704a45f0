package entity

import "time"

// Tipos de documento de inventario.
const (
	TipoRemito        = "R"  // remito de proveedor (entrada por compra)
	TipoNotaRecepcion = "NR" // nota de recepción (mercadería que vuelve de reparto)
	TipoAjuste        = "AJ" // ajuste de stock (con signo)
)

// TipoDocumentoValido indica si el código pertenece a los tres tipos conocidos.
func TipoDocumentoValido(tipo string) bool {
	return tipo == TipoRemito || tipo == TipoNotaRecepcion || tipo == TipoAjuste
}

// Documento representa un documento de inventario (remito, nota de recepción o ajuste).
// (Tipo, Prefijo, Secuencia) es único; NroDeDocumento = prefijo + tipo + secuencia
// con padding y es único entre documentos activos. Nunca se borra físicamente:
// se desactiva con Activo=false y su secuencia no se reutiliza.
type Documento struct {
	ID             string
	Tipo           string
	Prefijo        string // siempre normalizado a 4 dígitos
	Secuencia      int64
	NroDeDocumento string
	ProveedorID    string
	FechaRemito    time.Time
	FechaRegistro  time.Time
	CreadoPor      string
	Items          []LineaDocumento
	Notas          string
	Activo         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LineaDocumento ítem de un documento. Cantidad es un entero distinto de cero;
// negativo solo en ajustes de decremento.
type LineaDocumento struct {
	ProductoID string
	CodProd    string
	Cantidad   int64
}
