package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/dental-inventory-api/internal/application/inventory"
	"github.com/jhoicas/dental-inventory-api/internal/domain/repository"
	"github.com/jhoicas/dental-inventory-api/pkg/logger"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// maxTxAttempts intentos totales ante conflicto de serialización o deadlock.
const maxTxAttempts = 3

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL (READ COMMITTED + SELECT FOR UPDATE).
// Ante 40001/40P01 repite la unidad completa; cualquier otro error hace Rollback y se devuelve.
type TxRunner struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewTxRunner construye el runner con el pool. log puede ser nil.
func NewTxRunner(pool *pgxpool.Pool, log *logger.Logger) *TxRunner {
	if log == nil {
		log = logger.Nop()
	}
	return &TxRunner{pool: pool, log: log}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	materialRepo repository.MaterialRepository,
	stockRepo repository.ClinicStockRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = r.runOnce(ctx, func(tx pgx.Tx) error {
			return fn(NewMaterialRepository(tx), NewClinicStockRepository(tx), NewStockMovementRepository(tx))
		})
		if err == nil || !isRetryable(err) {
			return err
		}
		r.log.Warn().Err(err).Int("attempt", attempt).Msg("conflicto de transacción, reintentando")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt*20) * time.Millisecond):
		}
	}
	return err
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
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
