package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-inventory-api/internal/application/dto"
	"github.com/jhoicas/dental-inventory-api/internal/application/finance"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]decimal.Decimal{
		"$0,00":         decimal.Zero,
		"$999,90":       decimal.RequireFromString("999.9"),
		"$25.000,00":    decimal.NewFromInt(25000),
		"$1.234.567,50": decimal.RequireFromString("1234567.5"),
		"-$1.000,25":    decimal.RequireFromString("-1000.25"),
	}
	for want, in := range cases {
		assert.Equal(t, want, formatMoney(in))
	}
}

func TestGenerateDailyBalancePDF(t *testing.T) {
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	report := finance.DailyBalanceReport{
		ClinicName: "Sede Norte",
		Balance: dto.DailyBalanceResponse{
			Date:          day,
			TotalIncome:   decimal.NewFromInt(150000),
			TotalExpenses: decimal.NewFromInt(40000),
			Balance:       decimal.NewFromInt(110000),
			Transactions: []dto.FinancialTransactionResponse{
				{TransactionType: "Income", Amount: decimal.NewFromInt(150000), Description: "Consulta", CreatedAt: day.Add(9 * time.Hour)},
				{TransactionType: "Expense", Amount: decimal.NewFromInt(40000), Description: "Insumos", CreatedAt: day.Add(11 * time.Hour)},
			},
		},
	}

	out, err := NewDailyBalanceGenerator().GenerateDailyBalancePDF(context.Background(), report)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerateDailyBalancePDF_SinTransacciones(t *testing.T) {
	out, err := NewDailyBalanceGenerator().GenerateDailyBalancePDF(context.Background(), finance.DailyBalanceReport{
		ClinicName: "Sede Sur",
		Balance:    dto.DailyBalanceResponse{Date: time.Now().UTC()},
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}
