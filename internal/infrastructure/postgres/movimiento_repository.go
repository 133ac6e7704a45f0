package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/distrisur/gestion-api/internal/domain/entity"
	"github.com/distrisur/gestion-api/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// MovimientoRepo implementación del ledger sobre PostgreSQL (usable con pool
// o tx). Solo INSERT y SELECT: las filas jamás se actualizan ni borran.
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

const movimientoColumnas = `id, producto_id, codprod, referencia_id, tipo, cantidad, fecha, registrado_por`

// Create persiste un movimiento de stock.
func (r *MovimientoRepo) Create(ctx context.Context, mov *entity.MovimientoStock) error {
	if mov.ID == "" {
		mov.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movimientos_stock (` + movimientoColumnas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		mov.ID, mov.ProductoID, mov.CodProd, mov.ReferenciaID,
		mov.Tipo, mov.Cantidad, mov.Fecha, mov.RegistradoPor,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// ListByProducto lista movimientos de un producto en un rango de fechas.
func (r *MovimientoRepo) ListByProducto(ctx context.Context, productoID string, from, to *time.Time, limit, offset int) ([]*entity.MovimientoStock, error) {
	query := `SELECT ` + movimientoColumnas + ` FROM movimientos_stock WHERE producto_id = $1`
	args := []any{productoID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND fecha >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND fecha <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY fecha DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	return r.list(ctx, query, args...)
}

// ListByReferencia lista los movimientos originados por un documento o comanda.
func (r *MovimientoRepo) ListByReferencia(ctx context.Context, referenciaID string) ([]*entity.MovimientoStock, error) {
	return r.list(ctx, `
		SELECT `+movimientoColumnas+` FROM movimientos_stock
		WHERE referencia_id = $1 ORDER BY fecha`, referenciaID)
}

func (r *MovimientoRepo) list(ctx context.Context, query string, args ...any) ([]*entity.MovimientoStock, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovimientoStock
	for rows.Next() {
		var m entity.MovimientoStock
		if err := rows.Scan(
			&m.ID, &m.ProductoID, &m.CodProd, &m.ReferenciaID,
			&m.Tipo, &m.Cantidad, &m.Fecha, &m.RegistradoPor,
		); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
