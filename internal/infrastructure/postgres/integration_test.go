//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/dental-inventory-api/internal/application/dto"
	"github.com/jhoicas/dental-inventory-api/internal/application/inventory"
	"github.com/jhoicas/dental-inventory-api/internal/domain"
	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/dental-inventory-api/internal/domain/repository"
	"github.com/jhoicas/dental-inventory-api/internal/infrastructure/postgres"
	"github.com/jhoicas/dental-inventory-api/pkg/config"
)

// ─── Infraestructura ─────────────────────────────────────────────────────────

type env struct {
	pool    *pgxpool.Pool
	stock   *inventory.StockUseCase
	clinics *postgres.ClinicRepo
	movs    *postgres.StockMovementRepo
	txs     *postgres.FinancialTransactionRepo
	userID  string
}

func setup(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("dental_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, postgres.MigrateUp(dsn))

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn}, nil)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	users := postgres.NewUserRepository(pool)
	user := &entity.User{
		ID: uuid.New().String(), UserName: "master", PasswordHash: "x",
		Role: entity.RoleMaster, CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, users.Create(ctx, user))

	clinics := postgres.NewClinicRepository(pool)
	movs := postgres.NewStockMovementRepository(pool)
	return &env{
		pool:    pool,
		stock:   inventory.NewStockUseCase(postgres.NewTxRunner(pool, nil), clinics, movs),
		clinics: clinics,
		movs:    movs,
		txs:     postgres.NewFinancialTransactionRepository(pool),
		userID:  user.ID,
	}
}

func (e *env) clinic(t *testing.T, name string) string {
	t.Helper()
	now := time.Now().UTC()
	c := &entity.Clinic{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, e.clinics.Create(context.Background(), c))
	return c.ID
}

// ─── Tests ───────────────────────────────────────────────────────────────────

func TestIntegracion_ConsumoConcurrenteNoDejaStockNegativo(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	clinicID := e.clinic(t, "Sede Norte")

	m, err := e.stock.CreateMaterial(ctx, e.userID, dto.MaterialCreateRequest{
		Name: "Guantes", Category: "Disposables", Quantity: 10, Cost: decimal.NewFromInt(2),
	})
	require.NoError(t, err)
	_, err = e.stock.Allocate(ctx, e.userID, clinicID, dto.ClinicAllocateRequest{MaterialID: m.ID, Quantity: 10})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, insufficient := 0, 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.stock.Consume(ctx, e.userID, clinicID, dto.ClinicConsumeRequest{MaterialID: m.ID, Quantity: 1})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				insufficient++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, 10, insufficient)
	s, err := postgres.NewClinicStockRepository(e.pool).Get(ctx, clinicID, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, s.QuantityAvailable)
}

func TestIntegracion_NombreDuplicadoSinDistinguirMayusculas(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	_, err := e.stock.CreateMaterial(ctx, e.userID, dto.MaterialCreateRequest{Name: "Resina A2", Category: "RestorationMaterials"})
	require.NoError(t, err)
	_, err = e.stock.CreateMaterial(ctx, e.userID, dto.MaterialCreateRequest{Name: "RESINA a2", Category: "RestorationMaterials"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = e.stock.CreateMaterial(ctx, e.userID, dto.MaterialCreateRequest{Name: "resina a2", Category: "Disposables"})
	assert.NoError(t, err, "misma clave en otra categoría es válida")
}

func TestIntegracion_EliminarClinicaEnCascada(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	clinicID := e.clinic(t, "Sede Sur")

	m, err := e.stock.CreateMaterial(ctx, e.userID, dto.MaterialCreateRequest{Name: "Anestesia", Category: "UsageMaterials", Quantity: 5})
	require.NoError(t, err)
	_, err = e.stock.Allocate(ctx, e.userID, clinicID, dto.ClinicAllocateRequest{MaterialID: m.ID, Quantity: 2})
	require.NoError(t, err)
	require.NoError(t, e.txs.Create(ctx, &entity.FinancialTransaction{
		ID: uuid.New().String(), ClinicID: clinicID, Type: entity.TransactionIncome,
		Amount: decimal.NewFromInt(100), TransactionDate: time.Now().UTC(),
		CreatedBy: e.userID, CreatedAt: time.Now().UTC(),
	}))

	require.NoError(t, e.clinics.Delete(ctx, clinicID))

	moves, err := e.movs.ListByClinic(ctx, clinicID, 50, 0)
	require.NoError(t, err)
	assert.Empty(t, moves)
	list, err := e.txs.List(ctx, repository.TransactionFilter{ClinicID: &clinicID})
	require.NoError(t, err)
	assert.Empty(t, list)

	// la bodega conserva lo que quedaba
	mat, err := postgres.NewMaterialRepository(e.pool).GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, mat.Quantity)
}

func TestIntegracion_IDInvalidoEsNoEncontrado(t *testing.T) {
	e := setup(t)
	c, err := e.clinics.GetByID(context.Background(), "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, c)
}
