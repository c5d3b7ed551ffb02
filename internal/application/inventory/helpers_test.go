package inventory_test

import (
	"time"

	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/dental-inventory-api/internal/domain/repository"
)

func warehouseRange(kinds ...entity.MovementKind) repository.MovementFilter {
	return repository.MovementFilter{
		From:  t0.Add(-time.Hour),
		To:    t0.Add(48 * time.Hour),
		Kinds: kinds,
	}
}
