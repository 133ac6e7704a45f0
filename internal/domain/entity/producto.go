package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto artículo de distribución. Stock es la existencia actual; el motor
// de documentos y comandas es el único que la muta, siempre con deltas
// atómicos dentro de una transacción. Una venta nunca puede dejarlo negativo;
// un ajuste sí puede.
type Producto struct {
	ID          string
	CodProd     string // código único del producto
	Descripcion string
	MarcaID     string
	UnidadID    string
	Precio      decimal.Decimal
	Stock       int64
	Activo      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
