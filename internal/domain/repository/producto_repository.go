package repository

import (
	"context"

	"github.com/distrisur/gestion-api/internal/domain/entity"
)

// ProductoRepository puerto de persistencia para productos.
// El stock se muta únicamente con deltas atómicos (AjustarStock /
// DescontarStock), nunca con read-modify-write en dos llamadas.
type ProductoRepository interface {
	Create(ctx context.Context, p *entity.Producto) error
	GetByID(ctx context.Context, id string) (*entity.Producto, error)
	GetByCodigo(ctx context.Context, codProd string) (*entity.Producto, error)

	// AjustarStock aplica un delta con signo al stock del producto
	// (UPDATE stock = stock + delta). Puede dejarlo negativo: los ajustes
	// no tienen piso.
	AjustarStock(ctx context.Context, productoID string, delta int64) error

	// DescontarStock resta cantidad solo si hay existencia suficiente
	// (UPDATE condicional stock >= cantidad). Devuelve domain.ErrInsufficientStock
	// si la condición no se cumple; la fila no se toca. Revalida dentro de la
	// transacción lo que el pre-chequeo vio fuera de ella.
	DescontarStock(ctx context.Context, productoID string, cantidad int64) error
}
