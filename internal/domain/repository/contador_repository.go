package repository

import "context"

// ContadorRepository puerto del contador singleton de comandas.
// Nadie más accede al contador: preserva el invariante de incremento atómico.
type ContadorRepository interface {
	// ProximoNumero incrementa el contador y devuelve el número asignado, en
	// una sola operación atómica (read-and-increment). Dentro de la transacción
	// de la comanda: si la transacción aborta, el incremento se revierte con ella.
	ProximoNumero(ctx context.Context, nombre string) (int64, error)
}
