package comandas

import (
	"context"

	"github.com/distrisur/gestion-api/internal/domain"
	"github.com/distrisur/gestion-api/internal/domain/entity"
	"github.com/distrisur/gestion-api/internal/domain/repository"
)

// ComandaUseCase lecturas y baja lógica de comandas. Los estados de
// preparación y reparto los gestionan colaboradores externos.
type ComandaUseCase struct {
	comandaRepo repository.ComandaRepository
}

// NewComandaUseCase construye el caso de uso.
func NewComandaUseCase(comandaRepo repository.ComandaRepository) *ComandaUseCase {
	return &ComandaUseCase{comandaRepo: comandaRepo}
}

// GetByID obtiene una comanda.
func (uc *ComandaUseCase) GetByID(ctx context.Context, id string) (*entity.Comanda, error) {
	c, err := uc.comandaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// List lista comandas paginadas.
func (uc *ComandaUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Comanda, error) {
	return uc.comandaRepo.List(ctx, limit, offset)
}

// Desactivar baja lógica de la comanda. No repone stock: la devolución de
// mercadería se registra con una nota de recepción.
func (uc *ComandaUseCase) Desactivar(ctx context.Context, id string) error {
	c, err := uc.comandaRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.comandaRepo.Deactivate(ctx, id)
}
