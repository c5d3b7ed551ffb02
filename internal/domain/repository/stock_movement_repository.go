package repository

import (
	"context"
	"time"

	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockMovementView movimiento con nombres resueltos y el costo vigente del material.
type StockMovementView struct {
	entity.StockMovement
	MaterialName     string
	MaterialCategory entity.MaterialCategory
	MaterialCost     decimal.Decimal
	PerformedByName  string
}

// MovementFilter filtro para reportes de movimientos. Kinds vacío = todos.
type MovementFilter struct {
	From     time.Time
	To       time.Time
	ClinicID *string
	Kinds    []entity.MovementKind
}

// StockMovementRepository define el puerto del registro de movimientos (append-only: no hay Update).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*StockMovementView, error)
	// ListByClinic más recientes primero.
	ListByClinic(ctx context.Context, clinicID string, limit, offset int) ([]StockMovementView, error)
	ListInRange(ctx context.Context, filter MovementFilter) ([]StockMovementView, error)
	// DeleteByClinic limpia el registro de una clínica y devuelve cuántas filas se eliminaron.
	DeleteByClinic(ctx context.Context, clinicID string) (int64, error)
}
