package documentos

import (
	"context"

	"github.com/distrisur/gestion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad del pipeline de
// creación de documentos: asignar secuencia, mutar stock, persistir
// documento y movimientos, todo o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		docRepo repository.DocumentoRepository,
		reservaRepo repository.ReservaRepository,
		productoRepo repository.ProductoRepository,
		movRepo repository.MovimientoRepository,
	) error) error
}
