package repository

import (
	"context"

	"github.com/distrisur/gestion-api/internal/domain/entity"
)

// ClienteRepository puerto de persistencia para clientes.
type ClienteRepository interface {
	Create(ctx context.Context, c *entity.Cliente) error
	GetByID(ctx context.Context, id string) (*entity.Cliente, error)
	GetByCodigo(ctx context.Context, codCli string) (*entity.Cliente, error)
}
