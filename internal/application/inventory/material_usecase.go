package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/dental-inventory-api/internal/application/dto"
	"github.com/jhoicas/dental-inventory-api/internal/domain"
	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/dental-inventory-api/internal/domain/repository"
)

// BatchError agrupa los errores por ítem de una creación masiva. Ningún ítem se guarda.
type BatchError struct {
	Errors []string
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("creación masiva rechazada: %s", strings.Join(e.Errors, "; "))
}

// Unwrap permite errors.Is(err, domain.ErrInvalidInput).
func (e *BatchError) Unwrap() error { return domain.ErrInvalidInput }

// insertConflictError duplicado detectado por el índice único al insertar (carrera con otra tx).
// En PostgreSQL la transacción queda abortada y no admite más sentencias.
type insertConflictError struct{ err error }

func (e *insertConflictError) Error() string { return e.err.Error() }
func (e *insertConflictError) Unwrap() error { return e.err }

// materialDraft entrada ya validada.
type materialDraft struct {
	in       dto.MaterialCreateRequest
	category entity.MaterialCategory
}

func parseDraft(in dto.MaterialCreateRequest) (materialDraft, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return materialDraft{}, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	cat, ok := entity.ParseMaterialCategory(in.Category)
	if !ok {
		return materialDraft{}, fmt.Errorf("%w: %s", domain.ErrInvalidCategory, in.Category)
	}
	if in.Quantity < 0 {
		return materialDraft{}, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
	}
	if in.Cost.IsNegative() || in.Total.IsNegative() {
		return materialDraft{}, fmt.Errorf("%w: el costo no puede ser negativo", domain.ErrInvalidInput)
	}
	return materialDraft{in: in, category: cat}, nil
}

func duplicateErr(name string, cat entity.MaterialCategory) error {
	return fmt.Errorf("%w: el material '%s' ya existe en la categoría '%s'; agregue la cantidad al material existente",
		domain.ErrDuplicate, name, cat)
}

// insertMaterial crea el material y, si trae cantidad, su movimiento Inbound de stock inicial.
func (uc *StockUseCase) insertMaterial(
	ctx context.Context,
	materialRepo repository.MaterialRepository,
	movRepo repository.StockMovementRepository,
	actorID string,
	d materialDraft,
) (*entity.Material, error) {
	existing, err := materialRepo.FindByNameAndCategory(ctx, d.in.Name, d.category)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, duplicateErr(d.in.Name, d.category)
	}
	now := uc.now()
	m := &entity.Material{
		ID:                uuid.New().String(),
		Name:              d.in.Name,
		Category:          d.category,
		Quantity:          d.in.Quantity,
		Cost:              d.in.Cost,
		LastAddedQuantity: d.in.Quantity,
		LastAddedTotal:    d.in.Total,
		LastAddedAt:       now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := materialRepo.Create(ctx, m); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, &insertConflictError{err: duplicateErr(d.in.Name, d.category)}
		}
		return nil, err
	}
	if m.Quantity > 0 {
		if err := movRepo.Create(ctx, warehouseMovement(m.ID, m.Quantity, entity.MovementInbound, actorID, NoteInitialStock, now)); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// CreateMaterial crea un material en la bodega general. Nombre+categoría debe ser único (sin distinguir mayúsculas).
func (uc *StockUseCase) CreateMaterial(ctx context.Context, actorID string, in dto.MaterialCreateRequest) (*dto.MaterialResponse, error) {
	d, err := parseDraft(in)
	if err != nil {
		return nil, err
	}
	var out dto.MaterialResponse
	err = uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		_ repository.ClinicStockRepository,
		movRepo repository.StockMovementRepository,
	) error {
		m, err := uc.insertMaterial(ctx, materialRepo, movRepo, actorID, d)
		if err != nil {
			return err
		}
		out = ToMaterialResponse(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateBatch crea varios materiales: o se guardan todos o ninguno. Los errores de validación se reportan por ítem.
func (uc *StockUseCase) CreateBatch(ctx context.Context, actorID string, in dto.MaterialCreateBatchRequest) ([]dto.MaterialResponse, error) {
	if len(in.Materials) == 0 {
		return nil, fmt.Errorf("%w: la lista de materiales está vacía", domain.ErrInvalidInput)
	}
	drafts := make([]materialDraft, 0, len(in.Materials))
	var errs []string
	seen := make(map[string]bool, len(in.Materials))
	for _, item := range in.Materials {
		d, err := parseDraft(item)
		if err != nil {
			errs = append(errs, fmt.Sprintf("'%s': %v", item.Name, err))
			continue
		}
		key := fmt.Sprintf("%d|%s", d.category, entity.NormalizeMaterialName(d.in.Name))
		if seen[key] {
			errs = append(errs, fmt.Sprintf("'%s': repetido en la solicitud", item.Name))
			continue
		}
		seen[key] = true
		drafts = append(drafts, d)
	}
	if len(errs) > 0 {
		return nil, &BatchError{Errors: errs}
	}

	out := make([]dto.MaterialResponse, 0, len(drafts))
	err := uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		_ repository.ClinicStockRepository,
		movRepo repository.StockMovementRepository,
	) error {
		out = out[:0]
		var dupErrs []string
		for _, d := range drafts {
			m, err := uc.insertMaterial(ctx, materialRepo, movRepo, actorID, d)
			var conflict *insertConflictError
			if errors.As(err, &conflict) {
				// La tx ya no acepta sentencias: se corta aquí con lo acumulado.
				return &BatchError{Errors: append(dupErrs, err.Error())}
			}
			if errors.Is(err, domain.ErrDuplicate) {
				dupErrs = append(dupErrs, err.Error())
				continue
			}
			if err != nil {
				return err
			}
			out = append(out, ToMaterialResponse(m))
		}
		if len(dupErrs) > 0 {
			return &BatchError{Errors: dupErrs}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateMaterial actualización administrativa. Un cambio de cantidad queda registrado como movimiento
// de bodega (Inbound si sube, Outbound si baja) para que el registro explique el saldo.
func (uc *StockUseCase) UpdateMaterial(ctx context.Context, actorID, id string, in dto.MaterialUpdateRequest) (*dto.MaterialResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	cat, ok := entity.ParseMaterialCategory(in.Category)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidCategory, in.Category)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
	}
	if in.Cost.IsNegative() {
		return nil, fmt.Errorf("%w: el costo no puede ser negativo", domain.ErrInvalidInput)
	}
	var out dto.MaterialResponse
	err := uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		_ repository.ClinicStockRepository,
		movRepo repository.StockMovementRepository,
	) error {
		now := uc.now()
		m, err := materialRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		if !m.SameIdentity(name, cat) {
			other, err := materialRepo.FindByNameAndCategory(ctx, name, cat)
			if err != nil {
				return err
			}
			if other != nil && other.ID != m.ID {
				return duplicateErr(name, cat)
			}
		}
		delta := in.Quantity - m.Quantity
		m.Name = name
		m.Category = cat
		m.Quantity = in.Quantity
		m.Cost = in.Cost
		m.UpdatedAt = now
		if err := materialRepo.Update(ctx, m); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return duplicateErr(name, cat)
			}
			return err
		}
		if delta != 0 {
			kind := entity.MovementInbound
			if delta < 0 {
				kind = entity.MovementOutbound
			}
			if err := movRepo.Create(ctx, warehouseMovement(m.ID, delta, kind, actorID, NoteAdminAdjust, now)); err != nil {
				return err
			}
		}
		out = ToMaterialResponse(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
