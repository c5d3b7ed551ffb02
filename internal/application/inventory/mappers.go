package inventory

import (
	"github.com/jhoicas/dental-inventory-api/internal/application/dto"
	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/dental-inventory-api/internal/domain/repository"
)

// ToMaterialResponse mapea la entidad a su DTO.
func ToMaterialResponse(m *entity.Material) dto.MaterialResponse {
	return dto.MaterialResponse{
		ID:                m.ID,
		Name:              m.Name,
		Category:          m.Category.String(),
		Quantity:          m.Quantity,
		Cost:              m.Cost,
		CreatedAt:         m.CreatedAt,
		LastAddedQuantity: m.LastAddedQuantity,
		LastAddedTotal:    m.LastAddedTotal,
		LastAddedAt:       m.LastAddedAt,
	}
}

// ToClinicStockResponse combina la fila de stock con los datos del material.
func ToClinicStockResponse(s *entity.ClinicStock, m *entity.Material) dto.ClinicStockResponse {
	return dto.ClinicStockResponse{
		MaterialID:        s.MaterialID,
		MaterialName:      m.Name,
		QuantityAvailable: s.QuantityAvailable,
		Category:          m.Category.String(),
		IsOpen:            s.IsOpen,
		OpenedAt:          s.OpenedAt,
	}
}

// ToClinicStockViewResponse mapea la vista de lectura.
func ToClinicStockViewResponse(v repository.ClinicStockView) dto.ClinicStockResponse {
	return dto.ClinicStockResponse{
		MaterialID:        v.MaterialID,
		MaterialName:      v.MaterialName,
		QuantityAvailable: v.QuantityAvailable,
		Category:          v.Category.String(),
		IsOpen:            v.IsOpen,
		OpenedAt:          v.OpenedAt,
	}
}

// ToMovementResponse mapea un movimiento con nombres resueltos.
func ToMovementResponse(v repository.StockMovementView) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:              v.ID,
		ClinicID:        v.ClinicID,
		MaterialID:      v.MaterialID,
		MaterialName:    v.MaterialName,
		Quantity:        v.Quantity,
		MovementType:    string(v.Kind),
		PerformedBy:     v.PerformedBy,
		PerformedByName: v.PerformedByName,
		CreatedAt:       v.CreatedAt,
		Note:            v.Note,
	}
}

// ToMovementResponses mapea una lista (nunca nil, para serializar []).
func ToMovementResponses(views []repository.StockMovementView) []dto.StockMovementResponse {
	out := make([]dto.StockMovementResponse, 0, len(views))
	for _, v := range views {
		out = append(out, ToMovementResponse(v))
	}
	return out
}
