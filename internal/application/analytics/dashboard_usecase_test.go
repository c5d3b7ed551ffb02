package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-inventory-api/internal/application/analytics"
	"github.com/jhoicas/dental-inventory-api/internal/application/dto"
	"github.com/jhoicas/dental-inventory-api/internal/application/inventory"
	"github.com/jhoicas/dental-inventory-api/internal/domain"
	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/dental-inventory-api/internal/testutil/memstore"
)

var (
	movedAt = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	now     = time.Date(2025, 3, 14, 18, 0, 0, 0, time.UTC)
)

type fixture struct {
	store     *memstore.Store
	stock     *inventory.StockUseCase
	dashboard *analytics.DashboardUseCase
}

// newFixture: Guantes (costo 5) con 10 en bodega; 4 trasladados a Norte y 2 como entrada directa a Norte.
func newFixture(t *testing.T) (*fixture, string) {
	t.Helper()
	ctx := context.Background()
	s := memstore.New()
	f := &fixture{
		store:     s,
		stock:     inventory.NewStockUseCase(s.TxRunner(), s.Clinics(), s.Movements()).WithClock(func() time.Time { return movedAt }),
		dashboard: analytics.NewDashboardUseCase(s.Clinics(), s.Stocks(), s.Movements()).WithClock(func() time.Time { return now }),
	}
	require.NoError(t, s.Clinics().Create(ctx, &entity.Clinic{ID: "c-norte", Name: "Norte"}))
	require.NoError(t, s.Clinics().Create(ctx, &entity.Clinic{ID: "c-sur", Name: "Sur"}))

	m, err := f.stock.CreateMaterial(ctx, "u1", dto.MaterialCreateRequest{
		Name: "Guantes", Category: "Disposables", Quantity: 10, Cost: decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	_, err = f.stock.Allocate(ctx, "u1", "c-norte", dto.ClinicAllocateRequest{MaterialID: m.ID, Quantity: 4})
	require.NoError(t, err)
	_, err = f.stock.AddToClinic(ctx, "u1", "c-norte", dto.ClinicAllocateRequest{MaterialID: m.ID, Quantity: 2})
	require.NoError(t, err)
	return f, m.ID
}

func TestSpendingRange(t *testing.T) {
	from, to := analytics.SpendingRange(nil, nil, now)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, now, to)

	end := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	_, to = analytics.SpendingRange(nil, &end, now)
	assert.Equal(t, time.Date(2025, 3, 10, 23, 59, 59, 999999999, time.UTC), to)
}

func TestFinancialSummary(t *testing.T) {
	f, _ := newFixture(t)

	sum, err := f.dashboard.FinancialSummary(context.Background(), nil, nil, "")
	require.NoError(t, err)

	// global: solo entradas (stock inicial 10 + entrada directa 2) × 5
	assert.True(t, sum.TotalSpent.Equal(decimal.NewFromInt(60)), sum.TotalSpent.String())
	assert.Equal(t, 12, sum.TotalMaterialsAdded)

	require.Len(t, sum.ClinicExpenses, 3)
	all := sum.ClinicExpenses[0]
	assert.Equal(t, dto.AllClinicsID, all.ClinicID)
	assert.Equal(t, "Todas las clínicas", all.ClinicName)

	norte := sum.ClinicExpenses[1]
	assert.Equal(t, "Norte", norte.ClinicName)
	assert.True(t, norte.TotalSpent.Equal(decimal.NewFromInt(30)), "traslado 4 + entrada 2")
	assert.Equal(t, 6, norte.MaterialsAdded)
	require.Len(t, norte.Materials, 1)
	assert.Equal(t, "Disposables", norte.Materials[0].Category)

	sur := sum.ClinicExpenses[2]
	assert.True(t, sur.TotalSpent.IsZero())
	assert.Empty(t, sur.Materials)
}

func TestFinancialSummary_FueraDeRango(t *testing.T) {
	f, _ := newFixture(t)
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)

	sum, err := f.dashboard.FinancialSummary(context.Background(), &start, &end, "")
	require.NoError(t, err)
	assert.True(t, sum.TotalSpent.IsZero())
	assert.Equal(t, 0, sum.TotalMaterialsAdded)
}

func TestClinicDetails(t *testing.T) {
	f, materialID := newFixture(t)
	ctx := context.Background()
	_, err := f.stock.Consume(ctx, "u1", "c-norte", dto.ClinicConsumeRequest{MaterialID: materialID, Quantity: 6})
	require.NoError(t, err)

	d, err := f.dashboard.ClinicDetails(ctx, "c-norte")
	require.NoError(t, err)
	assert.Equal(t, "Norte", d.Name)
	assert.Empty(t, d.Stocks, "solo stock con cantidad > 0")
	assert.Len(t, d.RecentMovements, 3)

	_, err = f.dashboard.ClinicDetails(ctx, "c-x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
