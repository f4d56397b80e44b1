package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/farmacia-api/internal/application/inventory"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(txRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func txRepos(tx pgx.Tx) repository.TxRepos {
	return repository.TxRepos{
		Movements:     NewInventoryMovementRepository(tx),
		Stock:         NewStockRepository(tx),
		Products:      NewProductRepository(tx),
		Deliveries:    NewDeliveryRepository(tx),
		Prescriptions: NewPrescriptionRepository(tx),
		Returns:       NewReturnRepository(tx),
		Receipts:      NewPurchaseReceiptRepository(tx),
		Transfers:     NewTransferRepository(tx),
		Scores:        NewSupplierScoreRepository(tx),
	}
}
