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

var _ repository.ComandaRepository = (*ComandaRepo)(nil)

// ComandaRepo implementación de ComandaRepository sobre PostgreSQL (usable
// con pool o tx).
type ComandaRepo struct {
	q Querier
}

// NewComandaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewComandaRepository(q Querier) *ComandaRepo {
	return &ComandaRepo{q: q}
}

const comandaColumnas = `id, numero, cliente_id, codcli, reparto_id, fecha, creado_por, activo, created_at, updated_at`

// Create persiste la comanda y sus ítems.
func (r *ComandaRepo) Create(ctx context.Context, c *entity.Comanda) error {
	query := `
		INSERT INTO comandas (` + comandaColumnas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Numero, c.ClienteID, c.CodCli, c.RepartoID,
		c.Fecha, c.CreadoPor, c.Activo, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert comanda: %w", err)
	}
	for i, item := range c.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO comanda_items (comanda_id, orden, producto_id, codprod, lista, cantidad, monto)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			c.ID, i, item.ProductoID, item.CodProd, item.Lista, item.Cantidad, item.Monto,
		)
		if err != nil {
			return fmt.Errorf("insert item comanda: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una comanda con sus ítems, o nil si no existe.
func (r *ComandaRepo) GetByID(ctx context.Context, id string) (*entity.Comanda, error) {
	var c entity.Comanda
	err := r.q.QueryRow(ctx, `SELECT `+comandaColumnas+` FROM comandas WHERE id = $1`, id).Scan(
		&c.ID, &c.Numero, &c.ClienteID, &c.CodCli, &c.RepartoID,
		&c.Fecha, &c.CreadoPor, &c.Activo, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comanda: %w", err)
	}
	items, err := r.itemsDe(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Items = items
	return &c, nil
}

func (r *ComandaRepo) itemsDe(ctx context.Context, comandaID string) ([]entity.LineaComanda, error) {
	rows, err := r.q.Query(ctx, `
		SELECT producto_id, codprod, lista, cantidad, monto FROM comanda_items
		WHERE comanda_id = $1 ORDER BY orden`, comandaID)
	if err != nil {
		return nil, fmt.Errorf("items comanda: %w", err)
	}
	defer rows.Close()
	var items []entity.LineaComanda
	for rows.Next() {
		var it entity.LineaComanda
		if err := rows.Scan(&it.ProductoID, &it.CodProd, &it.Lista, &it.Cantidad, &it.Monto); err != nil {
			return nil, fmt.Errorf("scan item comanda: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Deactivate baja lógica de la comanda.
func (r *ComandaRepo) Deactivate(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE comandas SET activo = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate comanda: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista comandas con sus ítems, más recientes primero.
func (r *ComandaRepo) List(ctx context.Context, limit, offset int) ([]*entity.Comanda, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+comandaColumnas+` FROM comandas
		ORDER BY numero DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list comandas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Comanda
	for rows.Next() {
		var c entity.Comanda
		if err := rows.Scan(
			&c.ID, &c.Numero, &c.ClienteID, &c.CodCli, &c.RepartoID,
			&c.Fecha, &c.CreadoPor, &c.Activo, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan comanda: %w", err)
		}
		list = append(list, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, c := range list {
		items, err := r.itemsDe(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		c.Items = items
	}
	return list, nil
}
