package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// ValidationError violación de reglas de negocio con mensaje para el cliente.
// Se detecta siempre antes de cualquier mutación; nunca se reintenta.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError construye un ValidationError con el mensaje dado.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// ConflictError conflicto de numeración: número de documento ya usado por un
// documento activo, o carrera de secuencias agotada tras los reintentos.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// Unwrap permite errors.Is(err, ErrConflict).
func (e *ConflictError) Unwrap() error { return ErrConflict }

// NewConflictError construye un ConflictError con el mensaje dado.
func NewConflictError(msg string) *ConflictError {
	return &ConflictError{Message: msg}
}

// FaltanteStock detalle de un producto sin stock suficiente para una comanda.
type FaltanteStock struct {
	CodProd     string
	Descripcion string
	StkActual   int64
	Solicitado  int64
}

// StockInsuficienteError rechazo total de una comanda: lista TODOS los
// faltantes, no solo el primero. La comanda no se crea parcialmente.
type StockInsuficienteError struct {
	Productos []FaltanteStock
}

func (e *StockInsuficienteError) Error() string { return ErrInsufficientStock.Error() }

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *StockInsuficienteError) Unwrap() error { return ErrInsufficientStock }
