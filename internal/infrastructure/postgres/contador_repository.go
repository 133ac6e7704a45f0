package postgres

import (
	"context"
	"fmt"

	"github.com/distrisur/gestion-api/internal/domain/repository"
)

var _ repository.ContadorRepository = (*ContadorRepo)(nil)

// ContadorRepo implementación del contador singleton sobre PostgreSQL.
// Read-and-increment en una sola sentencia: el UPDATE ... RETURNING toma el
// lock de fila, así dos comandas concurrentes nunca reciben el mismo número.
type ContadorRepo struct {
	q Querier
}

// NewContadorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewContadorRepository(q Querier) *ContadorRepo {
	return &ContadorRepo{q: q}
}

// ProximoNumero incrementa el contador y devuelve el número asignado.
// Crea la fila en 1 si el contador todavía no existe.
func (r *ContadorRepo) ProximoNumero(ctx context.Context, nombre string) (int64, error) {
	var numero int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO contadores (nombre, proximo) VALUES ($1, 2)
		ON CONFLICT (nombre) DO UPDATE SET proximo = contadores.proximo + 1
		RETURNING proximo - 1`, nombre).Scan(&numero)
	if err != nil {
		return 0, fmt.Errorf("proximo numero: %w", err)
	}
	return numero, nil
}
