package repository

import (
	"context"

	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
)

// ClinicSummary resumen de una clínica para "mis clínicas".
type ClinicSummary struct {
	ClinicID          string
	ClinicName        string
	DistinctMaterials int
	TotalQuantity     int
}

// ClinicRepository define el puerto de persistencia para Clinic (DIP).
// GetByID devuelve (nil, nil) si no existe.
type ClinicRepository interface {
	Create(ctx context.Context, clinic *entity.Clinic) error
	GetByID(ctx context.Context, id string) (*entity.Clinic, error)
	Update(ctx context.Context, clinic *entity.Clinic) error
	List(ctx context.Context) ([]*entity.Clinic, error)
	ListSummaries(ctx context.Context) ([]ClinicSummary, error)
	// Delete elimina la clínica y en cascada su stock, movimientos y transacciones.
	Delete(ctx context.Context, id string) error
}
