package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/temucosoft/retail-api/internal/application/ports"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción READ COMMITTED, ejecuta fn con repos atados a ella y hace
// Commit o Rollback. Los bloqueos de fila (FOR UPDATE) se liberan al terminar.
func (r *TxRunner) Run(ctx context.Context, fn func(tx repository.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(pgTx{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// pgTx repositorios sobre la misma pgx.Tx.
type pgTx struct {
	q Querier
}

func (t pgTx) Branches() repository.BranchRepository     { return NewBranchRepository(t.q) }
func (t pgTx) Products() repository.ProductRepository    { return NewProductRepository(t.q) }
func (t pgTx) Inventory() repository.InventoryRepository { return NewInventoryRepository(t.q) }
func (t pgTx) Sales() repository.SaleRepository          { return NewSaleRepository(t.q) }
func (t pgTx) Purchases() repository.PurchaseRepository  { return NewPurchaseRepository(t.q) }
func (t pgTx) Orders() repository.OrderRepository        { return NewOrderRepository(t.q) }
func (t pgTx) Carts() repository.CartRepository          { return NewCartRepository(t.q) }
