package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
)

func d(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func TestSum(t *testing.T) {
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	tot := Sum([]Line{
		{ClinicID: "y", Type: entity.TransactionIncome, Amount: d(500), Date: day},
		{ClinicID: "y", Type: entity.TransactionExpense, Amount: d(200), Date: day},
	})
	assert.True(t, tot.Income.Equal(d(500)))
	assert.True(t, tot.Expense.Equal(d(200)))
	assert.True(t, tot.Balance.Equal(d(300)))

	zero := Sum(nil)
	assert.True(t, zero.Balance.IsZero())
}

func TestByDayYByClinic(t *testing.T) {
	d1 := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	lines := []Line{
		{ClinicID: "b", ClinicName: "Beta", Type: entity.TransactionIncome, Amount: d(100), Date: d2},
		{ClinicID: "a", ClinicName: "Alfa", Type: entity.TransactionIncome, Amount: d(100), Date: d1},
		{ClinicID: "c", ClinicName: "Gamma", Type: entity.TransactionExpense, Amount: d(40), Date: d1},
	}

	days := ByDay(lines)
	require.Len(t, days, 2)
	assert.Equal(t, d1, days[0].Date)
	assert.True(t, days[0].Balance.Equal(d(60)))

	clinics := ByClinic(lines)
	require.Len(t, clinics, 3)
	assert.Equal(t, "Alfa", clinics[0].ClinicName, "empate de balance: por nombre")
	assert.Equal(t, "Beta", clinics[1].ClinicName)
	assert.Equal(t, "Gamma", clinics[2].ClinicName)
	assert.True(t, clinics[2].Balance.Equal(d(-40)))
}
