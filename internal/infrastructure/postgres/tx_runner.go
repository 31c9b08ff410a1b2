package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Backoffice-api/internal/application/inventory"
	"github.com/jhoicas/Backoffice-api/internal/application/sales"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and sales.SalesTxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ sales.SalesTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run transacción de compras: lotes, compras y costo de variantes.
func (r *TxRunner) Run(ctx context.Context, fn func(
	lotRepo repository.StockLotRepository,
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewStockLotRepository(tx), NewPurchaseRepository(tx), NewProductRepository(tx))
	})
}

// RunSales transacción de ventas: lotes bloqueados y la venta con sus líneas.
func (r *TxRunner) RunSales(ctx context.Context, fn func(
	lotRepo repository.StockLotRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewStockLotRepository(tx), NewSaleRepository(tx))
	})
}

// inTx hace Commit si fn no falla; en cualquier otro caso Rollback.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
