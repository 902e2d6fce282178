package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/distribuidora-api/internal/application/kardex"
	"github.com/jhoicas/distribuidora-api/internal/application/pedidos"
	"github.com/jhoicas/distribuidora-api/internal/application/ventas"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// Ensure TxRunner implements los puertos de transacción de aplicación.
var _ kardex.TxRunner = (*TxRunner)(nil)
var _ ventas.TxRunner = (*TxRunner)(nil)
var _ pedidos.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	kardexRepo repository.KardexRepository,
	movRepo repository.MovimientoRepository,
	productoRepo repository.ProductoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	kardexRepo := NewKardexRepository(tx)
	movRepo := NewMovimientoRepository(tx)
	productoRepo := NewProductoRepository(tx)

	if err := fn(kardexRepo, movRepo, productoRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunVenta inicia una transacción con repos de inventario y ventas (para RegisterSale).
func (r *TxRunner) RunVenta(ctx context.Context, fn func(
	kardexRepo repository.KardexRepository,
	movRepo repository.MovimientoRepository,
	productoRepo repository.ProductoRepository,
	ventaRepo repository.VentaRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	kardexRepo := NewKardexRepository(tx)
	movRepo := NewMovimientoRepository(tx)
	productoRepo := NewProductoRepository(tx)
	ventaRepo := NewVentaRepository(tx)

	if err := fn(kardexRepo, movRepo, productoRepo, ventaRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPedido inicia una transacción con el repo de pedidos (para transiciones de estado).
func (r *TxRunner) RunPedido(ctx context.Context, fn func(pedidoRepo repository.PedidoRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	pedidoRepo := NewPedidoRepository(tx)

	if err := fn(pedidoRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
