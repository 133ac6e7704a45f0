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

var _ repository.DocumentoRepository = (*DocumentoRepo)(nil)

// DocumentoRepo implementación de DocumentoRepository sobre PostgreSQL
// (usable con pool o tx). El índice único sobre (tipo, prefijo, secuencia)
// y el índice parcial único sobre nro_de_documento WHERE activo sostienen
// los invariantes de numeración.
type DocumentoRepo struct {
	q Querier
}

// NewDocumentoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentoRepository(q Querier) *DocumentoRepo {
	return &DocumentoRepo{q: q}
}

const documentoColumnas = `id, tipo, prefijo, secuencia, nro_de_documento, proveedor_id, fecha_remito, fecha_registro, creado_por, notas, activo, created_at, updated_at`

// Create persiste el documento y sus ítems. Devuelve domain.ErrDuplicate si
// (tipo, prefijo, secuencia) o el número activo ya existen (carrera de
// asignación concurrente).
func (r *DocumentoRepo) Create(ctx context.Context, doc *entity.Documento) error {
	query := `
		INSERT INTO documentos (` + documentoColumnas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		doc.ID, doc.Tipo, doc.Prefijo, doc.Secuencia, doc.NroDeDocumento,
		doc.ProveedorID, doc.FechaRemito, doc.FechaRegistro, doc.CreadoPor,
		doc.Notas, doc.Activo, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert documento: %w", err)
	}
	for i, item := range doc.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO documento_items (documento_id, orden, producto_id, codprod, cantidad)
			VALUES ($1, $2, $3, $4, $5)`,
			doc.ID, i, item.ProductoID, item.CodProd, item.Cantidad,
		)
		if err != nil {
			return fmt.Errorf("insert item documento: %w", err)
		}
	}
	return nil
}

// MaxSecuencia devuelve la mayor secuencia comprometida para (tipo, prefijo),
// contando también los documentos desactivados.
func (r *DocumentoRepo) MaxSecuencia(ctx context.Context, tipo, prefijo string) (int64, error) {
	var max int64
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(MAX(secuencia), 0) FROM documentos
		WHERE tipo = $1 AND prefijo = $2`, tipo, prefijo).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max secuencia: %w", err)
	}
	return max, nil
}

// GetByID obtiene un documento con sus ítems, o nil si no existe.
func (r *DocumentoRepo) GetByID(ctx context.Context, id string) (*entity.Documento, error) {
	return r.getOne(ctx, `SELECT `+documentoColumnas+` FROM documentos WHERE id = $1`, id)
}

// GetActivoByNumero obtiene el documento activo con ese número visible, o nil.
func (r *DocumentoRepo) GetActivoByNumero(ctx context.Context, numero string) (*entity.Documento, error) {
	return r.getOne(ctx, `SELECT `+documentoColumnas+` FROM documentos WHERE nro_de_documento = $1 AND activo = true`, numero)
}

func (r *DocumentoRepo) getOne(ctx context.Context, query string, arg any) (*entity.Documento, error) {
	var d entity.Documento
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&d.ID, &d.Tipo, &d.Prefijo, &d.Secuencia, &d.NroDeDocumento,
		&d.ProveedorID, &d.FechaRemito, &d.FechaRegistro, &d.CreadoPor,
		&d.Notas, &d.Activo, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get documento: %w", err)
	}
	items, err := r.itemsDe(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	d.Items = items
	return &d, nil
}

func (r *DocumentoRepo) itemsDe(ctx context.Context, documentoID string) ([]entity.LineaDocumento, error) {
	rows, err := r.q.Query(ctx, `
		SELECT producto_id, codprod, cantidad FROM documento_items
		WHERE documento_id = $1 ORDER BY orden`, documentoID)
	if err != nil {
		return nil, fmt.Errorf("items documento: %w", err)
	}
	defer rows.Close()
	var items []entity.LineaDocumento
	for rows.Next() {
		var it entity.LineaDocumento
		if err := rows.Scan(&it.ProductoID, &it.CodProd, &it.Cantidad); err != nil {
			return nil, fmt.Errorf("scan item documento: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Update modifica solo campos ajenos a la numeración y reemplaza los ítems.
func (r *DocumentoRepo) Update(ctx context.Context, doc *entity.Documento) error {
	_, err := r.q.Exec(ctx, `
		UPDATE documentos
		SET proveedor_id = $2, fecha_remito = $3, notas = $4, updated_at = $5
		WHERE id = $1`,
		doc.ID, doc.ProveedorID, doc.FechaRemito, doc.Notas, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update documento: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM documento_items WHERE documento_id = $1`, doc.ID); err != nil {
		return fmt.Errorf("delete items documento: %w", err)
	}
	for i, item := range doc.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO documento_items (documento_id, orden, producto_id, codprod, cantidad)
			VALUES ($1, $2, $3, $4, $5)`,
			doc.ID, i, item.ProductoID, item.CodProd, item.Cantidad,
		)
		if err != nil {
			return fmt.Errorf("insert item documento: %w", err)
		}
	}
	return nil
}

// Deactivate baja lógica del documento.
func (r *DocumentoRepo) Deactivate(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE documentos SET activo = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate documento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista documentos con sus ítems, más recientes primero.
func (r *DocumentoRepo) List(ctx context.Context, limit, offset int) ([]*entity.Documento, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+documentoColumnas+` FROM documentos
		ORDER BY fecha_registro DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list documentos: %w", err)
	}
	defer rows.Close()
	var docs []*entity.Documento
	for rows.Next() {
		var d entity.Documento
		if err := rows.Scan(
			&d.ID, &d.Tipo, &d.Prefijo, &d.Secuencia, &d.NroDeDocumento,
			&d.ProveedorID, &d.FechaRemito, &d.FechaRegistro, &d.CreadoPor,
			&d.Notas, &d.Activo, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan documento: %w", err)
		}
		docs = append(docs, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, d := range docs {
		items, err := r.itemsDe(ctx, d.ID)
		if err != nil {
			return nil, err
		}
		d.Items = items
	}
	return docs, nil
}
