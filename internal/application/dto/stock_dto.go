package dto

import "github.com/shopspring/decimal"

// ClinicAllocateRequest body de POST /clinics/{id}/allocate y /stock/add.
type ClinicAllocateRequest struct {
	MaterialID string `json:"material_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"gt=0"`
	Note       string `json:"note,omitempty"`
}

// ClinicConsumeRequest body de POST /clinics/{id}/consume.
type ClinicConsumeRequest struct {
	MaterialID string `json:"material_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"gt=0"`
	Note       string `json:"note,omitempty"`
}

// ClinicStockOpenRequest body de POST /clinics/{id}/stock/{materialId}/open.
type ClinicStockOpenRequest struct {
	IsOpen bool `json:"is_open"`
}

// AllocateResponse resultado de un traslado bodega -> clínica.
type AllocateResponse struct {
	Material    MaterialResponse    `json:"material"`
	ClinicStock ClinicStockResponse `json:"clinic_stock"`
}

// ConsumeResponse resultado de un consumo.
type ConsumeResponse struct {
	Message           string `json:"message"`
	RemainingQuantity int    `json:"remaining_quantity"`
}

// MaterialAdjustQuantityRequest body de POST /materials/{id}/add-stock.
type MaterialAdjustQuantityRequest struct {
	Quantity int             `json:"quantity" validate:"gt=0"`
	Cost     decimal.Decimal `json:"cost"`
	Total    decimal.Decimal `json:"total"`
}

// MaterialAssignToClinicRequest body de POST /materials/{id}/assign-to-clinic.
type MaterialAssignToClinicRequest struct {
	ClinicID string `json:"clinic_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

// AssignToClinicResponse resultado de asignar material a una clínica.
type AssignToClinicResponse struct {
	Message           string `json:"message"`
	WarehouseQuantity int    `json:"warehouse_quantity"`
	ClinicQuantity    int    `json:"clinic_quantity"`
}
