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

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación de ClienteRepository sobre PostgreSQL.
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

const clienteColumnas = `id, codcli, nombre, domicilio, reparto_id, activo, created_at`

// Create persiste un cliente.
func (r *ClienteRepo) Create(ctx context.Context, c *entity.Cliente) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO clientes (`+clienteColumnas+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.CodCli, c.Nombre, c.Domicilio, c.RepartoID, c.Activo, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID, o nil si no existe.
func (r *ClienteRepo) GetByID(ctx context.Context, id string) (*entity.Cliente, error) {
	return r.getOne(ctx, `SELECT `+clienteColumnas+` FROM clientes WHERE id = $1`, id)
}

// GetByCodigo obtiene un cliente por código, o nil si no existe.
func (r *ClienteRepo) GetByCodigo(ctx context.Context, codCli string) (*entity.Cliente, error) {
	return r.getOne(ctx, `SELECT `+clienteColumnas+` FROM clientes WHERE codcli = $1`, codCli)
}

func (r *ClienteRepo) getOne(ctx context.Context, query string, arg any) (*entity.Cliente, error) {
	var c entity.Cliente
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.CodCli, &c.Nombre, &c.Domicilio, &c.RepartoID, &c.Activo, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return &c, nil
}
