package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllClinicsID identificador del grupo agregado "todas las clínicas".
const AllClinicsID = "00000000-0000-0000-0000-000000000000"

// MaterialExpense gasto por material+categoría.
type MaterialExpense struct {
	MaterialName  string          `json:"material_name"`
	Category      string          `json:"category"`
	QuantityAdded int             `json:"quantity_added"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	LastAdded     time.Time       `json:"last_added"`
}

// ClinicExpense gasto de una clínica (o del agregado, con ClinicID = AllClinicsID).
type ClinicExpense struct {
	ClinicID       string            `json:"clinic_id"`
	ClinicName     string            `json:"clinic_name"`
	TotalSpent     decimal.Decimal   `json:"total_spent"`
	MaterialsAdded int               `json:"materials_added"`
	Materials      []MaterialExpense `json:"materials"`
}

// DashboardFinancialSummary GET /dashboard/financial-summary.
type DashboardFinancialSummary struct {
	StartDate           time.Time       `json:"start_date"`
	EndDate             time.Time       `json:"end_date"`
	TotalSpent          decimal.Decimal `json:"total_spent"`
	TotalMaterialsAdded int             `json:"total_materials_added"`
	ClinicExpenses      []ClinicExpense `json:"clinic_expenses"`
}

// DashboardClinicDetail GET /dashboard/clinic/{id}.
type DashboardClinicDetail struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	Stocks          []ClinicStockResponse   `json:"stocks"`
	RecentMovements []StockMovementResponse `json:"recent_movements"`
}
