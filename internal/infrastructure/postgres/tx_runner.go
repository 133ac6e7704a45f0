package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/distrisur/gestion-api/internal/application/comandas"
	"github.com/distrisur/gestion-api/internal/application/documentos"
	"github.com/distrisur/gestion-api/internal/domain/repository"
)

// Ensure TxRunner implements documentos.TxRunner y comandas.TxRunner.
var _ documentos.TxRunner = (*DocumentoTxRunner)(nil)
var _ comandas.TxRunner = (*ComandaTxRunner)(nil)

// DocumentoTxRunner ejecuta el pipeline de documentos dentro de una
// transacción PostgreSQL: repos atados a la tx, Commit si todo ok, Rollback
// si algo falla.
type DocumentoTxRunner struct {
	pool *pgxpool.Pool
}

// NewDocumentoTxRunner construye el runner con el pool.
func NewDocumentoTxRunner(pool *pgxpool.Pool) *DocumentoTxRunner {
	return &DocumentoTxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *DocumentoTxRunner) Run(ctx context.Context, fn func(
	docRepo repository.DocumentoRepository,
	reservaRepo repository.ReservaRepository,
	productoRepo repository.ProductoRepository,
	movRepo repository.MovimientoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	docRepo := NewDocumentoRepository(tx)
	reservaRepo := NewReservaRepository(tx)
	productoRepo := NewProductoRepository(tx)
	movRepo := NewMovimientoRepository(tx)

	if err := fn(docRepo, reservaRepo, productoRepo, movRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ComandaTxRunner ejecuta el pipeline de comandas dentro de una transacción
// PostgreSQL. El incremento del contador va dentro de la tx: si la comanda
// aborta, el número se revierte con ella.
type ComandaTxRunner struct {
	pool *pgxpool.Pool
}

// NewComandaTxRunner construye el runner con el pool.
func NewComandaTxRunner(pool *pgxpool.Pool) *ComandaTxRunner {
	return &ComandaTxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *ComandaTxRunner) Run(ctx context.Context, fn func(
	comandaRepo repository.ComandaRepository,
	contadorRepo repository.ContadorRepository,
	productoRepo repository.ProductoRepository,
	movRepo repository.MovimientoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	comandaRepo := NewComandaRepository(tx)
	contadorRepo := NewContadorRepository(tx)
	productoRepo := NewProductoRepository(tx)
	movRepo := NewMovimientoRepository(tx)

	if err := fn(comandaRepo, contadorRepo, productoRepo, movRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
