package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/distrisur/gestion-api/internal/domain"
	"github.com/distrisur/gestion-api/internal/domain/entity"
	"github.com/distrisur/gestion-api/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo implementación de ProductoRepository sobre PostgreSQL (usable
// con pool o tx). El stock solo se muta con UPDATEs de delta atómico, nunca
// leyendo y escribiendo en dos llamadas.
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

const productoColumnas = `id, codprod, descripcion, marca_id, unidad_id, precio, stock, activo, created_at, updated_at`

// Create persiste un nuevo producto.
func (r *ProductoRepo) Create(ctx context.Context, p *entity.Producto) error {
	query := `
		INSERT INTO productos (` + productoColumnas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CodProd, p.Descripcion, p.MarcaID, p.UnidadID,
		p.Precio, p.Stock, p.Activo, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID, o nil si no existe.
func (r *ProductoRepo) GetByID(ctx context.Context, id string) (*entity.Producto, error) {
	return r.getOne(ctx, `SELECT `+productoColumnas+` FROM productos WHERE id = $1`, id)
}

// GetByCodigo obtiene un producto por código, o nil si no existe.
func (r *ProductoRepo) GetByCodigo(ctx context.Context, codProd string) (*entity.Producto, error) {
	return r.getOne(ctx, `SELECT `+productoColumnas+` FROM productos WHERE codprod = $1`, codProd)
}

func (r *ProductoRepo) getOne(ctx context.Context, query string, arg any) (*entity.Producto, error) {
	var p entity.Producto
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.CodProd, &p.Descripcion, &p.MarcaID, &p.UnidadID,
		&p.Precio, &p.Stock, &p.Activo, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

// AjustarStock aplica un delta con signo al stock (UPDATE atómico).
// Un ajuste puede dejar el stock negativo.
func (r *ProductoRepo) AjustarStock(ctx context.Context, productoID string, delta int64) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE productos SET stock = stock + $2, updated_at = now()
		WHERE id = $1`, productoID, delta)
	if err != nil {
		return fmt.Errorf("ajustar stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DescontarStock resta cantidad solo si hay existencia suficiente. El WHERE
// condicional revalida el stock dentro de la transacción: si otra comanda lo
// consumió entre el pre-chequeo y acá, no afecta filas y se devuelve
// domain.ErrInsufficientStock.
func (r *ProductoRepo) DescontarStock(ctx context.Context, productoID string, cantidad int64) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE productos SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2`, productoID, cantidad)
	if err != nil {
		return fmt.Errorf("descontar stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}
