package repository

import (
	"context"

	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUserName(ctx context.Context, userName string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
}
