package repository

import (
	"context"

	"github.com/distrisur/gestion-api/internal/domain/entity"
)

// UsuarioRepository puerto de persistencia para usuarios.
type UsuarioRepository interface {
	Create(ctx context.Context, u *entity.Usuario) error
	GetByID(ctx context.Context, id string) (*entity.Usuario, error)
	FindByEmail(ctx context.Context, email string) (*entity.Usuario, error)
}
