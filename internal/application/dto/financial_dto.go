package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialTransactionCreateRequest body de POST /financial-transactions.
// TransactionDate acepta "2006-01-02" o RFC3339; se guarda solo la fecha.
type FinancialTransactionCreateRequest struct {
	ClinicID        string          `json:"clinic_id" validate:"required"`
	TransactionType string          `json:"transaction_type" validate:"required"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	TransactionDate string          `json:"transaction_date" validate:"required"`
}

// FinancialTransactionResponse salida de una transacción.
type FinancialTransactionResponse struct {
	ID                string          `json:"id"`
	ClinicID          string          `json:"clinic_id"`
	ClinicName        string          `json:"clinic_name"`
	TransactionType   string          `json:"transaction_type"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
	TransactionDate   time.Time       `json:"transaction_date"`
	CreatedByUserID   string          `json:"created_by_user_id"`
	CreatedByUserName string          `json:"created_by_user_name"`
	CreatedAt         time.Time       `json:"created_at"`
}

// DailyBalanceResponse GET /financial-transactions/daily-balance.
type DailyBalanceResponse struct {
	Date          time.Time                      `json:"date"`
	TotalIncome   decimal.Decimal                `json:"total_income"`
	TotalExpenses decimal.Decimal                `json:"total_expenses"`
	Balance       decimal.Decimal                `json:"balance"`
	Transactions  []FinancialTransactionResponse `json:"transactions"`
}

// DailyFinancialStats totales de un día.
type DailyFinancialStats struct {
	Date    time.Time       `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// ClinicFinancialPerformance totales de una clínica.
type ClinicFinancialPerformance struct {
	ClinicID   string          `json:"clinic_id"`
	ClinicName string          `json:"clinic_name"`
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
	Balance    decimal.Decimal `json:"balance"`
}

// FinancialDashboardSummary GET /financial-transactions/dashboard.
type FinancialDashboardSummary struct {
	StartDate         time.Time                    `json:"start_date"`
	EndDate           time.Time                    `json:"end_date"`
	TotalIncome       decimal.Decimal              `json:"total_income"`
	TotalExpense      decimal.Decimal              `json:"total_expense"`
	NetBalance        decimal.Decimal              `json:"net_balance"`
	DailyHistory      []DailyFinancialStats        `json:"daily_history"`
	ClinicPerformance []ClinicFinancialPerformance `json:"clinic_performance"`
}
