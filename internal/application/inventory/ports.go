package inventory

import (
	"context"

	"github.com/jhoicas/dental-inventory-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ningún efecto parcial (Rollback).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		materialRepo repository.MaterialRepository,
		stockRepo repository.ClinicStockRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
