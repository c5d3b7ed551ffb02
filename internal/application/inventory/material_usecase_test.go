package inventory_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-inventory-api/internal/application/dto"
	"github.com/jhoicas/dental-inventory-api/internal/application/inventory"
	"github.com/jhoicas/dental-inventory-api/internal/domain"
	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/dental-inventory-api/internal/domain/repository"
)

func TestCreateMaterial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m, err := f.uc.CreateMaterial(ctx, actorID, dto.MaterialCreateRequest{
		Name: "  Guantes de nitrilo ", Category: "disposables", Quantity: 100,
		Cost: decimal.NewFromInt(2), Total: decimal.NewFromInt(200),
	})
	require.NoError(t, err)
	assert.Equal(t, "Guantes de nitrilo", m.Name)
	assert.Equal(t, "Disposables", m.Category)
	assert.Equal(t, 100, m.LastAddedQuantity)
	assert.Equal(t, 1, f.store.MovementCount(), "stock inicial como Inbound de bodega")

	t.Run("duplicado sin distinguir mayúsculas", func(t *testing.T) {
		_, err := f.uc.CreateMaterial(ctx, actorID, dto.MaterialCreateRequest{Name: "GUANTES DE NITRILO", Category: "Disposables"})
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})

	t.Run("mismo nombre en otra categoría", func(t *testing.T) {
		_, err := f.uc.CreateMaterial(ctx, actorID, dto.MaterialCreateRequest{Name: "Guantes de nitrilo", Category: "Durables"})
		assert.NoError(t, err)
	})

	t.Run("sin cantidad no registra movimiento", func(t *testing.T) {
		before := f.store.MovementCount()
		_, err := f.uc.CreateMaterial(ctx, actorID, dto.MaterialCreateRequest{Name: "Fresas", Category: "Burs"})
		require.NoError(t, err)
		assert.Equal(t, before, f.store.MovementCount())
	})

	t.Run("validaciones", func(t *testing.T) {
		_, err := f.uc.CreateMaterial(ctx, actorID, dto.MaterialCreateRequest{Name: " ", Category: "Burs"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		_, err = f.uc.CreateMaterial(ctx, actorID, dto.MaterialCreateRequest{Name: "X", Category: "Juguetes"})
		assert.ErrorIs(t, err, domain.ErrInvalidCategory)
		_, err = f.uc.CreateMaterial(ctx, actorID, dto.MaterialCreateRequest{Name: "X", Category: "Burs", Quantity: -1})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		_, err = f.uc.CreateMaterial(ctx, actorID, dto.MaterialCreateRequest{Name: "X", Category: "Burs", Cost: decimal.NewFromInt(-1)})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestCreateBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("todos válidos", func(t *testing.T) {
		f := newFixture(t)
		out, err := f.uc.CreateBatch(ctx, actorID, dto.MaterialCreateBatchRequest{Materials: []dto.MaterialCreateRequest{
			{Name: "Guantes", Category: "Disposables", Quantity: 10},
			{Name: "Resina", Category: "RestorationMaterials", Quantity: 2},
		}})
		require.NoError(t, err)
		assert.Len(t, out, 2)
		list, _ := f.store.Materials().List(ctx)
		assert.Len(t, list, 2)
	})

	t.Run("un ítem inválido rechaza todo con errores por ítem", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.CreateBatch(ctx, actorID, dto.MaterialCreateBatchRequest{Materials: []dto.MaterialCreateRequest{
			{Name: "Guantes", Category: "Disposables"},
			{Name: "Resina", Category: "Nada"},
			{Name: "guantes", Category: "disposables"},
		}})
		var be *inventory.BatchError
		require.True(t, errors.As(err, &be))
		assert.Len(t, be.Errors, 2)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		list, _ := f.store.Materials().List(ctx)
		assert.Empty(t, list)
	})

	t.Run("duplicado contra la base revierte los ya insertados", func(t *testing.T) {
		f := newFixture(t)
		f.material(t, "Guantes", 1)
		_, err := f.uc.CreateBatch(ctx, actorID, dto.MaterialCreateBatchRequest{Materials: []dto.MaterialCreateRequest{
			{Name: "Resina", Category: "RestorationMaterials", Quantity: 3},
			{Name: "GUANTES", Category: "Disposables"},
		}})
		var be *inventory.BatchError
		require.True(t, errors.As(err, &be))
		require.Len(t, be.Errors, 1)
		assert.Contains(t, be.Errors[0], "GUANTES")
		list, _ := f.store.Materials().List(ctx)
		assert.Len(t, list, 1)
		assert.Equal(t, 1, f.store.MovementCount())
	})

	t.Run("lista vacía", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.CreateBatch(ctx, actorID, dto.MaterialCreateBatchRequest{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

// ─── Carrera en creación masiva ─────────────────────────────────────────────

var errTxAborted = errors.New("current transaction is aborted, commands ignored until end of transaction block")

// racingMaterials simula que otra tx insertó `hidden` entre la consulta previa y el INSERT:
// la consulta no lo ve, el índice único sí, y tras el 23505 la tx queda abortada.
type racingMaterials struct {
	repository.MaterialRepository
	hidden  string
	aborted bool
}

func (r *racingMaterials) FindByNameAndCategory(ctx context.Context, name string, cat entity.MaterialCategory) (*entity.Material, error) {
	if r.aborted {
		return nil, errTxAborted
	}
	if strings.EqualFold(name, r.hidden) {
		return nil, nil
	}
	return r.MaterialRepository.FindByNameAndCategory(ctx, name, cat)
}

func (r *racingMaterials) Create(ctx context.Context, m *entity.Material) error {
	if r.aborted {
		return errTxAborted
	}
	err := r.MaterialRepository.Create(ctx, m)
	if errors.Is(err, domain.ErrDuplicate) {
		r.aborted = true
	}
	return err
}

type racingTx struct {
	inner  inventory.TxRunner
	hidden string
}

func (r *racingTx) Run(ctx context.Context, fn func(
	materialRepo repository.MaterialRepository,
	stockRepo repository.ClinicStockRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return r.inner.Run(ctx, func(m repository.MaterialRepository, s repository.ClinicStockRepository, mv repository.StockMovementRepository) error {
		return fn(&racingMaterials{MaterialRepository: m, hidden: r.hidden}, s, mv)
	})
}

func TestCreateBatch_DuplicadoAlInsertarCortaElLote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.material(t, "Guantes", 1)
	uc := inventory.NewStockUseCase(&racingTx{inner: f.store.TxRunner(), hidden: "Guantes"}, f.store.Clinics(), f.store.Movements()).
		WithClock(func() time.Time { return f.clock })

	_, err := uc.CreateBatch(ctx, actorID, dto.MaterialCreateBatchRequest{Materials: []dto.MaterialCreateRequest{
		{Name: "Resina", Category: "RestorationMaterials", Quantity: 3},
		{Name: "Guantes", Category: "Disposables", Quantity: 5},
		{Name: "Algodón", Category: "Disposables", Quantity: 2},
	}})

	var be *inventory.BatchError
	require.True(t, errors.As(err, &be), "el conflicto se informa por ítem, no como error interno: %v", err)
	assert.NotErrorIs(t, err, errTxAborted)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	require.Len(t, be.Errors, 1)
	assert.Contains(t, be.Errors[0], "Guantes")

	list, _ := f.store.Materials().List(ctx)
	assert.Len(t, list, 1, "se revierte Resina")
	assert.Equal(t, 1, f.store.MovementCount())
}

func TestUpdateMaterial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	gloves := f.material(t, "Guantes", 10)
	f.material(t, "Mascarillas", 0)

	t.Run("baja de cantidad registra Outbound negativo", func(t *testing.T) {
		before := f.store.MovementCount()
		out, err := f.uc.UpdateMaterial(ctx, actorID, gloves.ID, dto.MaterialUpdateRequest{
			Name: "Guantes talla M", Category: "Disposables", Quantity: 6, Cost: decimal.NewFromInt(3),
		})
		require.NoError(t, err)
		assert.Equal(t, "Guantes talla M", out.Name)
		assert.Equal(t, 6, out.Quantity)
		assert.Equal(t, before+1, f.store.MovementCount())

		moves, err := f.store.Movements().ListInRange(ctx, warehouseRange(entity.MovementOutbound))
		require.NoError(t, err)
		require.Len(t, moves, 1)
		assert.Equal(t, -4, moves[0].Quantity)
		assert.Equal(t, inventory.NoteAdminAdjust, moves[0].Note)
	})

	t.Run("sin cambio de cantidad no registra movimiento", func(t *testing.T) {
		before := f.store.MovementCount()
		_, err := f.uc.UpdateMaterial(ctx, actorID, gloves.ID, dto.MaterialUpdateRequest{
			Name: "Guantes talla M", Category: "Disposables", Quantity: 6, Cost: decimal.NewFromInt(4),
		})
		require.NoError(t, err)
		assert.Equal(t, before, f.store.MovementCount())
	})

	t.Run("renombrar a un material existente", func(t *testing.T) {
		_, err := f.uc.UpdateMaterial(ctx, actorID, gloves.ID, dto.MaterialUpdateRequest{
			Name: "mascarillas", Category: "Disposables", Quantity: 6,
		})
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})

	t.Run("no existe", func(t *testing.T) {
		_, err := f.uc.UpdateMaterial(ctx, actorID, "no-existe", dto.MaterialUpdateRequest{Name: "X", Category: "Burs"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
