package repository

import (
	"context"
	"time"

	"github.com/distrisur/gestion-api/internal/domain/entity"
)

// MovimientoRepository puerto del ledger de movimientos de stock.
// Solo alta y lectura: los movimientos jamás se modifican.
type MovimientoRepository interface {
	Create(ctx context.Context, mov *entity.MovimientoStock) error
	ListByProducto(ctx context.Context, productoID string, from, to *time.Time, limit, offset int) ([]*entity.MovimientoStock, error)
	ListByReferencia(ctx context.Context, referenciaID string) ([]*entity.MovimientoStock, error)
}
