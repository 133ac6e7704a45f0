package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovimientoCompra     = "compra"     // entrada por remito de proveedor
	MovimientoVenta      = "venta"      // salida por comanda
	MovimientoDevolucion = "devolucion" // entrada por nota de recepción
	MovimientoAjustePos  = "ajuste+"    // ajuste positivo
	MovimientoAjusteNeg  = "ajuste-"    // ajuste negativo
)

// MovimientoStock registro inmutable de auditoría: un cambio de cantidad sobre
// un producto, referenciando el documento o la comanda que lo originó.
// Nunca se modifica después de creado; permite reconstruir el stock histórico
// con independencia del contador vivo en productos.
type MovimientoStock struct {
	ID            string
	ProductoID    string
	CodProd       string
	ReferenciaID  string // ID del documento o comanda
	Tipo          string
	Cantidad      int64 // con signo: positivo entrada, negativo salida
	Fecha         time.Time
	RegistradoPor string
}
