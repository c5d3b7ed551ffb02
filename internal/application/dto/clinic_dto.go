package dto

import "time"

// ClinicRequest entrada para crear o renombrar una clínica.
type ClinicRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// ClinicResponse salida de una clínica.
type ClinicResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ClinicSummaryResponse elemento de GET /clinics/my-clinics.
type ClinicSummaryResponse struct {
	ClinicID          string `json:"clinic_id"`
	ClinicName        string `json:"clinic_name"`
	DistinctMaterials int    `json:"distinct_materials"`
	TotalQuantity     int    `json:"total_quantity"`
}

// ClinicStockResponse stock de un material en una clínica.
type ClinicStockResponse struct {
	MaterialID        string     `json:"material_id"`
	MaterialName      string     `json:"material_name"`
	QuantityAvailable int        `json:"quantity_available"`
	Category          string     `json:"category"`
	IsOpen            bool       `json:"is_open"`
	OpenedAt          *time.Time `json:"opened_at"`
}

// StockMovementResponse movimiento del registro de stock.
type StockMovementResponse struct {
	ID              string    `json:"id"`
	ClinicID        *string   `json:"clinic_id"` // null = bodega general
	MaterialID      string    `json:"material_id"`
	MaterialName    string    `json:"material_name"`
	Quantity        int       `json:"quantity"`
	MovementType    string    `json:"movement_type"`
	PerformedBy     string    `json:"performed_by"`
	PerformedByName string    `json:"performed_by_name"`
	CreatedAt       time.Time `json:"created_at"`
	Note            string    `json:"note"`
}

// ClinicDetailResponse GET /clinics/{id}: stock + últimos movimientos.
type ClinicDetailResponse struct {
	ID        string                  `json:"id"`
	Name      string                  `json:"name"`
	Stocks    []ClinicStockResponse   `json:"stocks"`
	Movements []StockMovementResponse `json:"movements"`
}

// StockMovementListResponse lista paginada de movimientos.
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// ClearMovementsResponse DELETE /clinics/{id}/movements.
type ClearMovementsResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}
