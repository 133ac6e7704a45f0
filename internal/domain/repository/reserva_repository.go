package repository

import (
	"context"
	"time"

	"github.com/distrisur/gestion-api/internal/domain/entity"
)

// ReservaRepository puerto de persistencia para reservas de secuencia.
type ReservaRepository interface {
	// Create inserta la reserva en estado reservada. Devuelve domain.ErrDuplicate
	// si (tipo, prefijo, secuencia) ya está reservado o si el solicitante ya
	// tiene una reserva viva para ese bucket.
	Create(ctx context.Context, reserva *entity.ReservaSecuencia) error

	// GetVivaPorSolicitante devuelve la reserva en estado reservada y no vencida
	// del solicitante para (tipo, prefijo), o nil si no tiene.
	GetVivaPorSolicitante(ctx context.Context, tipo, prefijo, solicitante string, ahora time.Time) (*entity.ReservaSecuencia, error)

	// GetViva devuelve la reserva viva para (tipo, prefijo, secuencia), o nil.
	GetViva(ctx context.Context, tipo, prefijo string, secuencia int64, ahora time.Time) (*entity.ReservaSecuencia, error)

	// MaxSecuenciaViva devuelve la mayor secuencia con reserva viva o consumida
	// para (tipo, prefijo); 0 si no hay. Las vencidas no cuentan contra la
	// unicidad.
	MaxSecuenciaViva(ctx context.Context, tipo, prefijo string, ahora time.Time) (int64, error)

	// Consumir marca la reserva como consumida. Se invoca dentro de la misma
	// transacción que persiste el documento.
	Consumir(ctx context.Context, id string, ahora time.Time) error

	// LiberarExpiradas pasa a liberada toda reserva reservada y vencida.
	// Devuelve cuántas liberó. Barrido periódico; la asignación igual hace el
	// chequeo perezoso y no depende de este barrido.
	LiberarExpiradas(ctx context.Context, ahora time.Time) (int64, error)
}
