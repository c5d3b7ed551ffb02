package finance_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-inventory-api/internal/application/dto"
	"github.com/jhoicas/dental-inventory-api/internal/application/finance"
	"github.com/jhoicas/dental-inventory-api/internal/domain"
	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/dental-inventory-api/internal/testutil/memstore"
)

// ─── Fakes ───────────────────────────────────────────────────────────────────

type fakePDF struct{ got finance.DailyBalanceReport }

func (f *fakePDF) GenerateDailyBalancePDF(_ context.Context, r finance.DailyBalanceReport) ([]byte, error) {
	f.got = r
	return []byte("%PDF-fake"), nil
}

type fakeExporter struct{ got finance.TransactionExport }

func (f *fakeExporter) ExportTransactions(_ context.Context, e finance.TransactionExport) ([]byte, error) {
	f.got = e
	return []byte("xlsx"), nil
}

// ─── Fixture ─────────────────────────────────────────────────────────────────

var now = time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)

type fixture struct {
	store    *memstore.Store
	uc       *finance.TransactionUseCase
	pdf      *fakePDF
	exporter *fakeExporter
	clock    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: memstore.New(), pdf: &fakePDF{}, exporter: &fakeExporter{}, clock: now}
	f.uc = finance.NewTransactionUseCase(f.store.Transactions(), f.store.Clinics(), f.pdf, f.exporter).
		WithClock(func() time.Time { return f.clock })
	ctx := context.Background()
	require.NoError(t, f.store.Users().Create(ctx, &entity.User{ID: "u-ana", UserName: "ana", Role: entity.RoleUser}))
	require.NoError(t, f.store.Users().Create(ctx, &entity.User{ID: "u-luis", UserName: "luis", Role: entity.RoleUser}))
	require.NoError(t, f.store.Clinics().Create(ctx, &entity.Clinic{ID: "c-norte", Name: "Norte"}))
	require.NoError(t, f.store.Clinics().Create(ctx, &entity.Clinic{ID: "c-sur", Name: "Sur"}))
	return f
}

func (f *fixture) add(t *testing.T, actor, clinic, typ string, amount int64, date string) *dto.FinancialTransactionResponse {
	t.Helper()
	f.clock = f.clock.Add(time.Second)
	out, err := f.uc.Create(context.Background(), actor, dto.FinancialTransactionCreateRequest{
		ClinicID: clinic, TransactionType: typ, Amount: decimal.NewFromInt(amount), TransactionDate: date,
	})
	require.NoError(t, err)
	return out
}

// ─── Tests ───────────────────────────────────────────────────────────────────

func TestParseDate(t *testing.T) {
	d, err := finance.ParseDate("2025-03-14")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), d)

	d, err = finance.ParseDate("2025-03-14T22:10:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), d)

	_, err = finance.ParseDate("14/03/2025")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out := f.add(t, "u-ana", "c-norte", "income", 500, "2025-03-14")
	assert.Equal(t, "Income", out.TransactionType)
	assert.Equal(t, "Norte", out.ClinicName)
	assert.Equal(t, "ana", out.CreatedByUserName)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), out.TransactionDate)

	got, err := f.uc.Get(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, *out, *got)

	cases := []struct {
		name string
		in   dto.FinancialTransactionCreateRequest
		err  error
	}{
		{"tipo inválido", dto.FinancialTransactionCreateRequest{ClinicID: "c-norte", TransactionType: "Transfer", TransactionDate: "2025-03-14"}, domain.ErrInvalidType},
		{"monto negativo", dto.FinancialTransactionCreateRequest{ClinicID: "c-norte", TransactionType: "Expense", Amount: decimal.NewFromInt(-1), TransactionDate: "2025-03-14"}, domain.ErrInvalidInput},
		{"fecha inválida", dto.FinancialTransactionCreateRequest{ClinicID: "c-norte", TransactionType: "Expense", TransactionDate: "ayer"}, domain.ErrInvalidInput},
		{"clínica inexistente", dto.FinancialTransactionCreateRequest{ClinicID: "c-x", TransactionType: "Expense", TransactionDate: "2025-03-14"}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Create(ctx, "u-ana", tc.in)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestDailyBalance(t *testing.T) {
	f := newFixture(t)
	f.add(t, "u-ana", "c-sur", "Income", 500, "2025-03-14")
	f.add(t, "u-ana", "c-sur", "Expense", 200, "2025-03-14")
	f.add(t, "u-ana", "c-sur", "Income", 999, "2025-03-13")
	f.add(t, "u-ana", "c-norte", "Income", 999, "2025-03-14")

	b, err := f.uc.DailyBalance(context.Background(), "c-sur", time.Date(2025, 3, 14, 18, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, b.TotalIncome.Equal(decimal.NewFromInt(500)))
	assert.True(t, b.TotalExpenses.Equal(decimal.NewFromInt(200)))
	assert.True(t, b.Balance.Equal(decimal.NewFromInt(300)))
	require.Len(t, b.Transactions, 2)
	assert.Equal(t, "Income", b.Transactions[0].TransactionType, "orden de creación")

	_, err = f.uc.DailyBalance(context.Background(), "", now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDailyBalancePDF(t *testing.T) {
	f := newFixture(t)
	f.add(t, "u-ana", "c-sur", "Income", 500, "2025-03-14")

	doc, name, err := f.uc.DailyBalancePDF(context.Background(), "c-sur", time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(doc))
	assert.Equal(t, "balance-2025-03-14.pdf", name)
	assert.Equal(t, "Sur", f.pdf.got.ClinicName)
	assert.Len(t, f.pdf.got.Balance.Transactions, 1)

	_, _, err = f.uc.DailyBalancePDF(context.Background(), "c-x", now)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList(t *testing.T) {
	f := newFixture(t)
	f.add(t, "u-ana", "c-sur", "Income", 1, "2025-03-12")
	f.add(t, "u-ana", "c-sur", "Income", 2, "2025-03-14")
	f.add(t, "u-ana", "c-norte", "Income", 3, "2025-03-14")

	all, err := f.uc.List(context.Background(), "", nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2025-03-14", all[0].TransactionDate.Format(time.DateOnly), "fecha descendente")

	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	sur, err := f.uc.List(context.Background(), "c-sur", &day)
	require.NoError(t, err)
	require.Len(t, sur, 1)
	assert.True(t, sur[0].Amount.Equal(decimal.NewFromInt(2)))
}

func TestDelete_Permisos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tx := f.add(t, "u-ana", "c-sur", "Income", 10, "2025-03-14")

	assert.ErrorIs(t, f.uc.Delete(ctx, "u-luis", entity.RoleUser, tx.ID), domain.ErrForbidden)
	require.NoError(t, f.uc.Delete(ctx, "u-ana", entity.RoleUser, tx.ID))
	assert.ErrorIs(t, f.uc.Delete(ctx, "u-ana", entity.RoleUser, tx.ID), domain.ErrNotFound)

	other := f.add(t, "u-ana", "c-sur", "Income", 10, "2025-03-14")
	assert.NoError(t, f.uc.Delete(ctx, "u-master", entity.RoleMaster, other.ID), "Master elimina cualquiera")
}

func TestDashboardRange(t *testing.T) {
	from, to := finance.DashboardRange(nil, nil, now)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), to)

	start := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 20, 23, 0, 0, 0, time.UTC)
	from, to = finance.DashboardRange(&start, &end, now)
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC), to)
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	f.add(t, "u-ana", "c-norte", "Income", 100, "2025-03-02")
	f.add(t, "u-ana", "c-norte", "Expense", 30, "2025-03-02")
	f.add(t, "u-ana", "c-sur", "Income", 500, "2025-03-10")
	f.add(t, "u-ana", "c-sur", "Income", 777, "2025-02-27")

	d, err := f.uc.Dashboard(context.Background(), nil, nil, "")
	require.NoError(t, err)
	assert.True(t, d.TotalIncome.Equal(decimal.NewFromInt(600)))
	assert.True(t, d.TotalExpense.Equal(decimal.NewFromInt(30)))
	assert.True(t, d.NetBalance.Equal(decimal.NewFromInt(570)))

	require.Len(t, d.DailyHistory, 2)
	assert.True(t, d.DailyHistory[0].Date.Before(d.DailyHistory[1].Date), "historial ascendente")
	assert.True(t, d.DailyHistory[0].Balance.Equal(decimal.NewFromInt(70)))

	require.Len(t, d.ClinicPerformance, 2)
	assert.Equal(t, "Sur", d.ClinicPerformance[0].ClinicName, "mayor balance primero")

	norte, err := f.uc.Dashboard(context.Background(), nil, nil, "c-norte")
	require.NoError(t, err)
	assert.True(t, norte.NetBalance.Equal(decimal.NewFromInt(70)))

	all, err := f.uc.Dashboard(context.Background(), nil, nil, dto.AllClinicsID)
	require.NoError(t, err)
	assert.True(t, all.NetBalance.Equal(d.NetBalance))
}

func TestExport(t *testing.T) {
	f := newFixture(t)
	f.add(t, "u-ana", "c-norte", "Income", 100, "2025-03-05")
	f.add(t, "u-ana", "c-norte", "Expense", 30, "2025-03-02")

	doc, name, err := f.uc.Export(context.Background(), nil, nil, "c-norte")
	require.NoError(t, err)
	assert.Equal(t, "xlsx", string(doc))
	assert.Equal(t, "transacciones-2025-03-01-2025-03-14.xlsx", name)

	got := f.exporter.got
	assert.Equal(t, "Norte", got.ClinicName)
	require.Len(t, got.Transactions, 2)
	assert.Equal(t, "Expense", got.Transactions[0].TransactionType, "orden cronológico")
	assert.True(t, got.Summary.NetBalance.Equal(decimal.NewFromInt(70)))

	_, _, err = f.uc.Export(context.Background(), nil, nil, "c-x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
