package documentos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/distrisur/gestion-api/internal/domain"
	"github.com/distrisur/gestion-api/internal/domain/entity"
	"github.com/distrisur/gestion-api/internal/domain/numbering"
	"github.com/distrisur/gestion-api/internal/domain/repository"
)

// maxIntentosAsignacion reintentos ante carrera de secuencias: si dos
// escritores concurrentes calculan el mismo candidato, el índice único sobre
// (tipo, prefijo, secuencia) rechaza al segundo y se recalcula.
const maxIntentosAsignacion = 3

// ReservaTTLDefault vigencia por defecto de una reserva de número.
const ReservaTTLDefault = 15 * time.Minute

// secuenciaCandidata calcula 1 + max(secuencia) para (tipo, prefijo),
// considerando tanto documentos comprometidos como reservas vivas o
// consumidas. Las reservas vencidas no cuentan contra la unicidad.
func secuenciaCandidata(
	ctx context.Context,
	docRepo repository.DocumentoRepository,
	reservaRepo repository.ReservaRepository,
	tipo, prefijo string,
	ahora time.Time,
) (int64, error) {
	maxDoc, err := docRepo.MaxSecuencia(ctx, tipo, prefijo)
	if err != nil {
		return 0, fmt.Errorf("max secuencia documentos: %w", err)
	}
	maxReserva, err := reservaRepo.MaxSecuenciaViva(ctx, tipo, prefijo, ahora)
	if err != nil {
		return 0, fmt.Errorf("max secuencia reservas: %w", err)
	}
	if maxReserva > maxDoc {
		return maxReserva + 1, nil
	}
	return maxDoc + 1, nil
}

// ReservarNumeroUseCase reserva un número de secuencia con vencimiento para
// que el solicitante pueda mostrarlo antes de confirmar el documento.
// La reserva se consume textualmente (sin recálculo) dentro de la misma
// transacción que persiste el documento, o vence sola por TTL si el
// solicitante abandona: no requiere limpieza sincrónica.
type ReservarNumeroUseCase struct {
	docRepo     repository.DocumentoRepository
	reservaRepo repository.ReservaRepository
	ttl         time.Duration
}

// NewReservarNumeroUseCase construye el caso de uso. ttl cero usa el default.
func NewReservarNumeroUseCase(
	docRepo repository.DocumentoRepository,
	reservaRepo repository.ReservaRepository,
	ttl time.Duration,
) *ReservarNumeroUseCase {
	if ttl <= 0 {
		ttl = ReservaTTLDefault
	}
	return &ReservarNumeroUseCase{docRepo: docRepo, reservaRepo: reservaRepo, ttl: ttl}
}

// Reservar obtiene (o reutiliza) la reserva viva del solicitante para
// (tipo, prefijo). A lo sumo una reserva viva por (tipo, prefijo, solicitante):
// pedir dos veces devuelve la misma.
func (uc *ReservarNumeroUseCase) Reservar(ctx context.Context, tipo, prefijo string, solicitante domain.Solicitante) (*entity.ReservaSecuencia, error) {
	if !entity.TipoDocumentoValido(tipo) {
		return nil, domain.NewValidationError("Tipo de documento desconocido")
	}
	if !solicitante.Valida() {
		return nil, domain.ErrUnauthorized
	}
	prefijo = numbering.NormalizarPrefijo(prefijo)
	ahora := time.Now()

	if existente, err := uc.reservaRepo.GetVivaPorSolicitante(ctx, tipo, prefijo, solicitante.ID, ahora); err != nil {
		return nil, err
	} else if existente != nil {
		return existente, nil
	}

	for intento := 1; intento <= maxIntentosAsignacion; intento++ {
		sec, err := secuenciaCandidata(ctx, uc.docRepo, uc.reservaRepo, tipo, prefijo, ahora)
		if err != nil {
			return nil, err
		}
		reserva := &entity.ReservaSecuencia{
			ID:            uuid.New().String(),
			Tipo:          tipo,
			Prefijo:       prefijo,
			Secuencia:     sec,
			SolicitadaPor: solicitante.ID,
			Estado:        entity.ReservaReservada,
			ExpiresAt:     ahora.Add(uc.ttl),
			CreatedAt:     ahora,
		}
		err = uc.reservaRepo.Create(ctx, reserva)
		if err == nil {
			return reserva, nil
		}
		if err != domain.ErrDuplicate {
			return nil, err
		}
		// Otro solicitante ganó la carrera por ese número: recalcular.
	}
	return nil, domain.NewConflictError("No se pudo reservar un número de documento, reintente")
}
