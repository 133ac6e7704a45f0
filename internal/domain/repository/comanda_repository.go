package repository

import (
	"context"

	"github.com/distrisur/gestion-api/internal/domain/entity"
)

// ComandaRepository puerto de persistencia para comandas.
type ComandaRepository interface {
	Create(ctx context.Context, c *entity.Comanda) error
	GetByID(ctx context.Context, id string) (*entity.Comanda, error)
	// Deactivate baja lógica (Creada -> Desactivada); la preparación y la
	// logística viven en colaboradores externos.
	Deactivate(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*entity.Comanda, error)
}
