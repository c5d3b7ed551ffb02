package repository

import (
	"context"

	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia para Material (usable con pool o tx).
type MaterialRepository interface {
	Create(ctx context.Context, material *entity.Material) error
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	// GetForUpdate bloquea la fila del material (SELECT FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Material, error)
	// FindByNameAndCategory busca por nombre (sin distinguir mayúsculas) y categoría.
	FindByNameAndCategory(ctx context.Context, name string, category entity.MaterialCategory) (*entity.Material, error)
	Update(ctx context.Context, material *entity.Material) error
	List(ctx context.Context) ([]*entity.Material, error)
	ListByCategory(ctx context.Context, category entity.MaterialCategory) ([]*entity.Material, error)
	Delete(ctx context.Context, id string) error
}
