package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/dental-inventory-api/internal/application/dto"
	"github.com/jhoicas/dental-inventory-api/internal/application/inventory"
	"github.com/jhoicas/dental-inventory-api/internal/domain"
	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/dental-inventory-api/internal/domain/repository"
)

// clinicDetailMovements movimientos recientes incluidos en el detalle de una clínica.
const clinicDetailMovements = 50

// ClinicUseCase casos de uso CRUD para clínicas y su vista de detalle.
type ClinicUseCase struct {
	repo      repository.ClinicRepository
	stockRepo repository.ClinicStockRepository
	movRepo   repository.StockMovementRepository
}

// NewClinicUseCase construye el caso de uso.
func NewClinicUseCase(
	repo repository.ClinicRepository,
	stockRepo repository.ClinicStockRepository,
	movRepo repository.StockMovementRepository,
) *ClinicUseCase {
	return &ClinicUseCase{repo: repo, stockRepo: stockRepo, movRepo: movRepo}
}

// Create crea una nueva clínica.
func (uc *ClinicUseCase) Create(ctx context.Context, in dto.ClinicRequest) (*dto.ClinicResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	clinic := &entity.Clinic{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, clinic); err != nil {
		return nil, err
	}
	return toClinicResponse(clinic), nil
}

// Get devuelve la clínica con su stock (ordenado por material, incluye cantidades en cero)
// y los últimos movimientos.
func (uc *ClinicUseCase) Get(ctx context.Context, id string) (*dto.ClinicDetailResponse, error) {
	clinic, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, domain.ErrNotFound
	}
	stocks, err := uc.stockRepo.ListByClinic(ctx, id)
	if err != nil {
		return nil, err
	}
	movements, err := uc.movRepo.ListByClinic(ctx, id, clinicDetailMovements, 0)
	if err != nil {
		return nil, err
	}
	out := &dto.ClinicDetailResponse{
		ID:        clinic.ID,
		Name:      clinic.Name,
		Stocks:    make([]dto.ClinicStockResponse, 0, len(stocks)),
		Movements: inventory.ToMovementResponses(movements),
	}
	for _, s := range stocks {
		out.Stocks = append(out.Stocks, inventory.ToClinicStockViewResponse(s))
	}
	return out, nil
}

// Update renombra una clínica.
func (uc *ClinicUseCase) Update(ctx context.Context, id string, in dto.ClinicRequest) (*dto.ClinicResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	clinic, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, domain.ErrNotFound
	}
	clinic.Name = name
	clinic.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, clinic); err != nil {
		return nil, err
	}
	return toClinicResponse(clinic), nil
}

// Delete elimina la clínica (en cascada: stock, movimientos y transacciones).
func (uc *ClinicUseCase) Delete(ctx context.Context, id string) error {
	clinic, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if clinic == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// List lista todas las clínicas por nombre.
func (uc *ClinicUseCase) List(ctx context.Context) ([]dto.ClinicResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClinicResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClinicResponse(c))
	}
	return items, nil
}

// MyClinics resumen de todas las clínicas: cualquier usuario puede navegar entre ellas.
func (uc *ClinicUseCase) MyClinics(ctx context.Context) ([]dto.ClinicSummaryResponse, error) {
	list, err := uc.repo.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClinicSummaryResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.ClinicSummaryResponse{
			ClinicID:          s.ClinicID,
			ClinicName:        s.ClinicName,
			DistinctMaterials: s.DistinctMaterials,
			TotalQuantity:     s.TotalQuantity,
		})
	}
	return items, nil
}

func toClinicResponse(c *entity.Clinic) *dto.ClinicResponse {
	return &dto.ClinicResponse{ID: c.ID, Name: c.Name}
}
