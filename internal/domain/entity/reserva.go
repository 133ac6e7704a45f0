package entity

import "time"

// Estados de una reserva de secuencia.
const (
	ReservaReservada = "reservada"
	ReservaConsumida = "consumida"
	ReservaLiberada  = "liberada"
)

// ReservaSecuencia reserva temporal de un número de secuencia para un
// solicitante, previa al alta del documento. Única por (Tipo, Prefijo, Secuencia);
// a lo sumo una en estado reservada por (Tipo, Prefijo, SolicitadaPor).
// Una reserva vencida (ExpiresAt pasado) se trata como liberada aunque la fila
// siga en estado reservada: la limpieza es perezosa más un barrido periódico.
type ReservaSecuencia struct {
	ID            string
	Tipo          string
	Prefijo       string
	Secuencia     int64
	SolicitadaPor string
	Estado        string
	ExpiresAt     time.Time
	ConsumedAt    *time.Time
	ReleasedAt    *time.Time
	CreatedAt     time.Time
}

// Viva indica si la reserva sigue en estado reservada y no venció.
func (r *ReservaSecuencia) Viva(ahora time.Time) bool {
	return r.Estado == ReservaReservada && ahora.Before(r.ExpiresAt)
}
