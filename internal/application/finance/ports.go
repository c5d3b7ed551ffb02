package finance

import (
	"context"
	"time"

	"github.com/jhoicas/dental-inventory-api/internal/application/dto"
)

// DailyBalanceReport datos del balance diario de una clínica listos para renderizar.
type DailyBalanceReport struct {
	ClinicName string
	Balance    dto.DailyBalanceResponse
}

// TransactionExport transacciones de un rango con sus totales.
type TransactionExport struct {
	ClinicName   string // vacío = todas las clínicas
	StartDate    time.Time
	EndDate      time.Time
	Transactions []dto.FinancialTransactionResponse
	Summary      dto.FinancialDashboardSummary
}

// DailyBalancePDFGenerator genera la representación PDF del balance diario.
type DailyBalancePDFGenerator interface {
	GenerateDailyBalancePDF(ctx context.Context, report DailyBalanceReport) ([]byte, error)
}

// TransactionExporter genera la hoja de cálculo (XLSX) con las transacciones.
type TransactionExporter interface {
	ExportTransactions(ctx context.Context, export TransactionExport) ([]byte, error)
}
