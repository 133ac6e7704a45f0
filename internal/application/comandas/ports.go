package comandas

import (
	"context"

	"github.com/distrisur/gestion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de comandas atados a esa tx. El número de comanda, el
// descuento de stock y el ledger se comprometen o revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		comandaRepo repository.ComandaRepository,
		contadorRepo repository.ContadorRepository,
		productoRepo repository.ProductoRepository,
		movRepo repository.MovimientoRepository,
	) error) error
}
