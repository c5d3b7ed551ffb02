package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/dental-inventory-api/internal/application/dto"
	"github.com/jhoicas/dental-inventory-api/internal/application/inventory"
	"github.com/jhoicas/dental-inventory-api/internal/domain"
	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/dental-inventory-api/internal/domain/repository"
)

// MaterialUseCase consultas del catálogo de materiales y su distribución por clínica.
// Las mutaciones de cantidad viven en inventory.StockUseCase.
type MaterialUseCase struct {
	repo      repository.MaterialRepository
	stockRepo repository.ClinicStockRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(repo repository.MaterialRepository, stockRepo repository.ClinicStockRepository) *MaterialUseCase {
	return &MaterialUseCase{repo: repo, stockRepo: stockRepo}
}

// List lista todos los materiales.
func (uc *MaterialUseCase) List(ctx context.Context) ([]dto.MaterialResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toMaterialResponses(list), nil
}

// ListWithOpenStatus agrega la cantidad distribuida y el estado abierto/cerrado por clínica.
// Solo los materiales de uso y desechables reportan estado abierto.
func (uc *MaterialUseCase) ListWithOpenStatus(ctx context.Context) ([]dto.MaterialWithOpenStatusResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	stocks, err := uc.stockRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byMaterial := make(map[string][]repository.ClinicStockView)
	for _, s := range stocks {
		byMaterial[s.MaterialID] = append(byMaterial[s.MaterialID], s)
	}
	out := make([]dto.MaterialWithOpenStatusResponse, 0, len(list))
	for _, m := range list {
		item := dto.MaterialWithOpenStatusResponse{
			ID:                m.ID,
			Name:              m.Name,
			Category:          m.Category.String(),
			WarehouseQuantity: m.Quantity,
			Clinics:           []dto.ClinicOpenStatusResponse{},
		}
		tracksOpen := m.Category == entity.CategoryUsageMaterials || m.Category == entity.CategoryDisposables
		for _, s := range byMaterial[m.ID] {
			item.DistributedQuantity += s.QuantityAvailable
			if tracksOpen {
				item.Clinics = append(item.Clinics, dto.ClinicOpenStatusResponse{
					ClinicID:   s.ClinicID,
					ClinicName: s.ClinicName,
					IsOpen:     s.IsOpen,
					OpenedAt:   s.OpenedAt,
				})
			}
		}
		out = append(out, item)
	}
	return out, nil
}

// Summary stock general: bodega + cantidades por clínica (mayor primero), ordenado por nombre de material.
func (uc *MaterialUseCase) Summary(ctx context.Context) ([]dto.MaterialGeneralStockResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	stocks, err := uc.stockRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byMaterial := make(map[string][]dto.MaterialClinicStockResponse)
	for _, s := range stocks {
		byMaterial[s.MaterialID] = append(byMaterial[s.MaterialID], dto.MaterialClinicStockResponse{
			ClinicID:   s.ClinicID,
			ClinicName: s.ClinicName,
			Quantity:   s.QuantityAvailable,
		})
	}
	sorted := make([]*entity.Material, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	out := make([]dto.MaterialGeneralStockResponse, 0, len(sorted))
	for _, m := range sorted {
		clinics := byMaterial[m.ID]
		if clinics == nil {
			clinics = []dto.MaterialClinicStockResponse{}
		}
		sort.SliceStable(clinics, func(i, j int) bool { return clinics[i].Quantity > clinics[j].Quantity })
		total := 0
		for _, c := range clinics {
			total += c.Quantity
		}
		out = append(out, dto.MaterialGeneralStockResponse{
			ID:                  m.ID,
			Name:                m.Name,
			Category:            m.Category.String(),
			WarehouseQuantity:   m.Quantity,
			TotalClinicQuantity: total,
			Cost:                m.Cost,
			CreatedAt:           m.CreatedAt,
			LastAddedQuantity:   m.LastAddedQuantity,
			LastAddedTotal:      m.LastAddedTotal,
			Clinics:             clinics,
		})
	}
	return out, nil
}

// Categories devuelve la enumeración de categorías.
func (uc *MaterialUseCase) Categories() []dto.CategoryResponse {
	all := entity.AllCategories()
	out := make([]dto.CategoryResponse, 0, len(all))
	for _, c := range all {
		out = append(out, dto.CategoryResponse{Value: int(c), Name: c.String()})
	}
	return out
}

// ByCategory lista los materiales de una categoría (nombre sin distinguir mayúsculas o número).
func (uc *MaterialUseCase) ByCategory(ctx context.Context, category string) ([]dto.MaterialResponse, error) {
	cat, ok := entity.ParseMaterialCategory(category)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidCategory, category)
	}
	list, err := uc.repo.ListByCategory(ctx, cat)
	if err != nil {
		return nil, err
	}
	return toMaterialResponses(list), nil
}

// Get obtiene un material por ID.
func (uc *MaterialUseCase) Get(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	out := inventory.ToMaterialResponse(m)
	return &out, nil
}

// Delete elimina un material (y en cascada su stock por clínica y movimientos).
func (uc *MaterialUseCase) Delete(ctx context.Context, id string) error {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toMaterialResponses(list []*entity.Material) []dto.MaterialResponse {
	out := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		out = append(out, inventory.ToMaterialResponse(m))
	}
	return out
}
