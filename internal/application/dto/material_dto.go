package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialCreateRequest entrada para crear un material. Category se valida contra la enumeración cerrada.
type MaterialCreateRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Category string          `json:"category" validate:"required"`
	Quantity int             `json:"quantity" validate:"min=0"`
	Cost     decimal.Decimal `json:"cost"`
	Total    decimal.Decimal `json:"total"`
}

// MaterialCreateBatchRequest creación masiva (todo o nada).
type MaterialCreateBatchRequest struct {
	Materials []MaterialCreateRequest `json:"materials"`
}

// MaterialUpdateRequest actualización administrativa (Master).
type MaterialUpdateRequest struct {
	Name     string          `json:"name" validate:"required"`
	Category string          `json:"category" validate:"required"`
	Quantity int             `json:"quantity" validate:"min=0"`
	Cost     decimal.Decimal `json:"cost"`
}

// MaterialResponse salida de un material.
type MaterialResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Quantity          int             `json:"quantity"`
	Cost              decimal.Decimal `json:"cost"`
	CreatedAt         time.Time       `json:"created_at"`
	LastAddedQuantity int             `json:"last_added_quantity"`
	LastAddedTotal    decimal.Decimal `json:"last_added_total"`
	LastAddedAt       time.Time       `json:"last_added_at"`
}

// ClinicOpenStatusResponse estado abierto/cerrado de un material en una clínica.
type ClinicOpenStatusResponse struct {
	ClinicID   string     `json:"clinic_id"`
	ClinicName string     `json:"clinic_name"`
	IsOpen     bool       `json:"is_open"`
	OpenedAt   *time.Time `json:"opened_at"`
}

// MaterialWithOpenStatusResponse GET /materials?with_open_status=true.
type MaterialWithOpenStatusResponse struct {
	ID                  string                     `json:"id"`
	Name                string                     `json:"name"`
	Category            string                     `json:"category"`
	WarehouseQuantity   int                        `json:"warehouse_quantity"`
	DistributedQuantity int                        `json:"distributed_quantity"`
	Clinics             []ClinicOpenStatusResponse `json:"clinics"`
}

// MaterialClinicStockResponse cantidad de un material en una clínica.
type MaterialClinicStockResponse struct {
	ClinicID   string `json:"clinic_id"`
	ClinicName string `json:"clinic_name"`
	Quantity   int    `json:"quantity"`
}

// MaterialGeneralStockResponse GET /materials/summary.
type MaterialGeneralStockResponse struct {
	ID                  string                        `json:"id"`
	Name                string                        `json:"name"`
	Category            string                        `json:"category"`
	WarehouseQuantity   int                           `json:"warehouse_quantity"`
	TotalClinicQuantity int                           `json:"total_clinic_quantity"`
	Cost                decimal.Decimal               `json:"cost"`
	CreatedAt           time.Time                     `json:"created_at"`
	LastAddedQuantity   int                           `json:"last_added_quantity"`
	LastAddedTotal      decimal.Decimal               `json:"last_added_total"`
	Clinics             []MaterialClinicStockResponse `json:"clinics"`
}

// CategoryResponse miembro de la enumeración de categorías.
type CategoryResponse struct {
	Value int    `json:"value"`
	Name  string `json:"name"`
}
