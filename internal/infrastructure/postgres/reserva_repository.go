package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/distrisur/gestion-api/internal/domain"
	"github.com/distrisur/gestion-api/internal/domain/entity"
	"github.com/distrisur/gestion-api/internal/domain/repository"
)

var _ repository.ReservaRepository = (*ReservaRepo)(nil)

// ReservaRepo implementación de ReservaRepository sobre PostgreSQL (usable
// con pool o tx). La vigencia se evalúa por comparación contra expires_at en
// cada consulta: no se depende del TTL del almacén.
type ReservaRepo struct {
	q Querier
}

// NewReservaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReservaRepository(q Querier) *ReservaRepo {
	return &ReservaRepo{q: q}
}

const reservaColumnas = `id, tipo, prefijo, secuencia, solicitada_por, estado, expires_at, consumed_at, released_at, created_at`

// Create inserta la reserva. Devuelve domain.ErrDuplicate si el número ya
// está reservado (índice único parcial sobre (tipo, prefijo, secuencia) en
// estado reservada/consumida).
func (r *ReservaRepo) Create(ctx context.Context, reserva *entity.ReservaSecuencia) error {
	query := `
		INSERT INTO reservas_secuencia (` + reservaColumnas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		reserva.ID, reserva.Tipo, reserva.Prefijo, reserva.Secuencia,
		reserva.SolicitadaPor, reserva.Estado, reserva.ExpiresAt,
		reserva.ConsumedAt, reserva.ReleasedAt, reserva.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert reserva: %w", err)
	}
	return nil
}

// GetVivaPorSolicitante devuelve la reserva reservada y no vencida del
// solicitante para (tipo, prefijo), o nil.
func (r *ReservaRepo) GetVivaPorSolicitante(ctx context.Context, tipo, prefijo, solicitante string, ahora time.Time) (*entity.ReservaSecuencia, error) {
	return r.getOne(ctx, `
		SELECT `+reservaColumnas+` FROM reservas_secuencia
		WHERE tipo = $1 AND prefijo = $2 AND solicitada_por = $3
		  AND estado = 'reservada' AND expires_at > $4`,
		tipo, prefijo, solicitante, ahora)
}

// GetViva devuelve la reserva viva para (tipo, prefijo, secuencia), o nil.
func (r *ReservaRepo) GetViva(ctx context.Context, tipo, prefijo string, secuencia int64, ahora time.Time) (*entity.ReservaSecuencia, error) {
	return r.getOne(ctx, `
		SELECT `+reservaColumnas+` FROM reservas_secuencia
		WHERE tipo = $1 AND prefijo = $2 AND secuencia = $3
		  AND estado = 'reservada' AND expires_at > $4`,
		tipo, prefijo, secuencia, ahora)
}

func (r *ReservaRepo) getOne(ctx context.Context, query string, args ...any) (*entity.ReservaSecuencia, error) {
	var res entity.ReservaSecuencia
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&res.ID, &res.Tipo, &res.Prefijo, &res.Secuencia, &res.SolicitadaPor,
		&res.Estado, &res.ExpiresAt, &res.ConsumedAt, &res.ReleasedAt, &res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reserva: %w", err)
	}
	return &res, nil
}

// MaxSecuenciaViva mayor secuencia con reserva viva o consumida para
// (tipo, prefijo). Las vencidas no cuentan contra la unicidad.
func (r *ReservaRepo) MaxSecuenciaViva(ctx context.Context, tipo, prefijo string, ahora time.Time) (int64, error) {
	var max int64
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(MAX(secuencia), 0) FROM reservas_secuencia
		WHERE tipo = $1 AND prefijo = $2
		  AND (estado = 'consumida' OR (estado = 'reservada' AND expires_at > $3))`,
		tipo, prefijo, ahora).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max secuencia reservas: %w", err)
	}
	return max, nil
}

// Consumir marca la reserva como consumida dentro de la misma transacción
// que persiste el documento.
func (r *ReservaRepo) Consumir(ctx context.Context, id string, ahora time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE reservas_secuencia
		SET estado = 'consumida', consumed_at = $2
		WHERE id = $1 AND estado = 'reservada'`, id, ahora)
	if err != nil {
		return fmt.Errorf("consumir reserva: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// LiberarExpiradas pasa a liberada toda reserva reservada y vencida.
func (r *ReservaRepo) LiberarExpiradas(ctx context.Context, ahora time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE reservas_secuencia
		SET estado = 'liberada', released_at = $1
		WHERE estado = 'reservada' AND expires_at <= $1`, ahora)
	if err != nil {
		return 0, fmt.Errorf("liberar reservas expiradas: %w", err)
	}
	return tag.RowsAffected(), nil
}
