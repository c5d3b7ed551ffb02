package repository

import (
	"context"
	"time"

	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
)

// ClinicStockView fila de stock de clínica con los datos del material y la clínica para lectura.
type ClinicStockView struct {
	ClinicID          string
	ClinicName        string
	MaterialID        string
	MaterialName      string
	Category          entity.MaterialCategory
	QuantityAvailable int
	IsOpen            bool
	OpenedAt          *time.Time
}

// ClinicStockRepository define el puerto para el stock por clínica+material.
// Get y GetForUpdate devuelven (nil, nil) si el par aún no tiene fila.
type ClinicStockRepository interface {
	Get(ctx context.Context, clinicID, materialID string) (*entity.ClinicStock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, clinicID, materialID string) (*entity.ClinicStock, error)
	Upsert(ctx context.Context, stock *entity.ClinicStock) error
	// ListByClinic ordenado por nombre de material, incluye filas con cantidad cero.
	ListByClinic(ctx context.Context, clinicID string) ([]ClinicStockView, error)
	ListAll(ctx context.Context) ([]ClinicStockView, error)
}
