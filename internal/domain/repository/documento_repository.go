package repository

import (
	"context"

	"github.com/distrisur/gestion-api/internal/domain/entity"
)

// DocumentoRepository puerto de persistencia para documentos de inventario.
// El índice único sobre (tipo, prefijo, secuencia) es la fuente de verdad de
// la numeración: Create devuelve domain.ErrDuplicate ante una violación, y el
// asignador reintenta con un candidato recalculado.
type DocumentoRepository interface {
	Create(ctx context.Context, doc *entity.Documento) error

	// MaxSecuencia devuelve la mayor secuencia comprometida para (tipo, prefijo);
	// 0 si no hay documentos en ese bucket. Cuenta también los desactivados:
	// una secuencia asignada a un documento comprometido nunca se reutiliza.
	MaxSecuencia(ctx context.Context, tipo, prefijo string) (int64, error)

	GetByID(ctx context.Context, id string) (*entity.Documento, error)

	// GetActivoByNumero devuelve el documento activo con ese número visible,
	// o nil si no existe. Guardia de idempotencia ante reenvíos.
	GetActivoByNumero(ctx context.Context, numero string) (*entity.Documento, error)

	// Update modifica solo campos ajenos a la numeración (proveedor, fecha,
	// items, notas). Tipo, prefijo, secuencia y número son inmutables.
	Update(ctx context.Context, doc *entity.Documento) error

	// Deactivate baja lógica: Activo=false. Nunca se borra físicamente.
	Deactivate(ctx context.Context, id string) error

	List(ctx context.Context, limit, offset int) ([]*entity.Documento, error)
}
