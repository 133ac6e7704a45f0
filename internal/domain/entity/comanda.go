package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Comanda pedido de venta numerado por el contador global. El número se
// asigna con incremento atómico dentro de la misma transacción que descuenta
// el stock y escribe los movimientos. Los estados de preparación y logística
// los manejan colaboradores externos; el motor solo crea y desactiva.
type Comanda struct {
	ID        string
	Numero    int64
	ClienteID string
	CodCli    string
	RepartoID string // camión de reparto (opcional)
	Fecha     time.Time
	Items     []LineaComanda
	CreadoPor string
	Activo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LineaComanda ítem de una comanda. Cantidad entero positivo; Monto es el
// importe de la línea según la lista de precios indicada.
type LineaComanda struct {
	ProductoID string
	CodProd    string
	Lista      string
	Cantidad   int64
	Monto      decimal.Decimal
}
