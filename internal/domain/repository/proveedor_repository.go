package repository

import (
	"context"

	"github.com/distrisur/gestion-api/internal/domain/entity"
)

// ProveedorRepository puerto de persistencia para proveedores.
// El motor solo necesita el chequeo de existencia previo a crear documentos.
type ProveedorRepository interface {
	Create(ctx context.Context, p *entity.Proveedor) error
	GetByID(ctx context.Context, id string) (*entity.Proveedor, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Proveedor, error)
}
