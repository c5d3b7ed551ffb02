package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-inventory-api/internal/application/dto"
	"github.com/jhoicas/dental-inventory-api/internal/application/inventory"
	"github.com/jhoicas/dental-inventory-api/internal/domain"
	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/dental-inventory-api/internal/testutil/memstore"
)

// ─── Fixtures ────────────────────────────────────────────────────────────────

const actorID = "user-1"

var t0 = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store *memstore.Store
	uc    *inventory.StockUseCase
	clock time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: memstore.New(), clock: t0}
	f.uc = inventory.NewStockUseCase(f.store.TxRunner(), f.store.Clinics(), f.store.Movements()).
		WithClock(func() time.Time { return f.clock })
	require.NoError(t, f.store.Users().Create(context.Background(), &entity.User{
		ID: actorID, UserName: "ana", Role: entity.RoleUser,
	}))
	return f
}

func (f *fixture) clinic(t *testing.T, id, name string) {
	t.Helper()
	require.NoError(t, f.store.Clinics().Create(context.Background(), &entity.Clinic{ID: id, Name: name}))
}

func (f *fixture) material(t *testing.T, name string, qty int) *dto.MaterialResponse {
	t.Helper()
	m, err := f.uc.CreateMaterial(context.Background(), actorID, dto.MaterialCreateRequest{
		Name: name, Category: "Disposables", Quantity: qty, Cost: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	return m
}

func (f *fixture) clinicQty(t *testing.T, clinicID, materialID string) int {
	t.Helper()
	s, err := f.store.Stocks().Get(context.Background(), clinicID, materialID)
	require.NoError(t, err)
	if s == nil {
		return 0
	}
	return s.QuantityAvailable
}

func (f *fixture) warehouseQty(t *testing.T, materialID string) int {
	t.Helper()
	m, err := f.store.Materials().GetByID(context.Background(), materialID)
	require.NoError(t, err)
	require.NotNil(t, m)
	return m.Quantity
}

// ─── Traslados ───────────────────────────────────────────────────────────────

func TestAllocate_TrasladaDeBodegaAClinica(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.clinic(t, "c1", "Sede Norte")
	gloves := f.material(t, "Guantes", 100)

	out, err := f.uc.Allocate(ctx, actorID, "c1", dto.ClinicAllocateRequest{MaterialID: gloves.ID, Quantity: 30})
	require.NoError(t, err)

	assert.Equal(t, 70, out.Material.Quantity)
	assert.Equal(t, 30, out.ClinicStock.QuantityAvailable)
	assert.Equal(t, 70, f.warehouseQty(t, gloves.ID))
	assert.Equal(t, 30, f.clinicQty(t, "c1", gloves.ID))

	moves, err := f.uc.ListMovements(ctx, "c1", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, moves.Items, 1)
	mv := moves.Items[0]
	assert.Equal(t, string(entity.MovementTransfer), mv.MovementType)
	assert.Equal(t, 30, mv.Quantity)
	assert.Equal(t, inventory.NoteAllocate, mv.Note)
	assert.Equal(t, "ana", mv.PerformedByName)
}

func TestAllocate_StockInsuficienteNoCambiaNada(t *testing.T) {
	f := newFixture(t)
	f.clinic(t, "c1", "Sede Norte")
	gloves := f.material(t, "Guantes", 5)
	before := f.store.MovementCount()

	_, err := f.uc.Allocate(context.Background(), actorID, "c1", dto.ClinicAllocateRequest{MaterialID: gloves.ID, Quantity: 6})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, f.warehouseQty(t, gloves.ID))
	assert.Equal(t, 0, f.clinicQty(t, "c1", gloves.ID))
	assert.Equal(t, before, f.store.MovementCount())
}

func TestAllocate_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.clinic(t, "c1", "Sede Norte")
	gloves := f.material(t, "Guantes", 5)

	_, err := f.uc.Allocate(ctx, actorID, "c1", dto.ClinicAllocateRequest{MaterialID: gloves.ID, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = f.uc.Allocate(ctx, actorID, "c1", dto.ClinicAllocateRequest{MaterialID: gloves.ID, Quantity: -3})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = f.uc.Allocate(ctx, actorID, "no-existe", dto.ClinicAllocateRequest{MaterialID: gloves.ID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.uc.Allocate(ctx, actorID, "c1", dto.ClinicAllocateRequest{MaterialID: "no-existe", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAllocate_CantidadInvalidaAntesQueClinica(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	gloves := f.material(t, "Guantes", 5)

	_, err := f.uc.Allocate(ctx, actorID, "no-existe", dto.ClinicAllocateRequest{MaterialID: gloves.ID, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = f.uc.AddToClinic(ctx, actorID, "no-existe", dto.ClinicAllocateRequest{MaterialID: gloves.ID, Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestAddToClinic_RegistraInbound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.clinic(t, "c1", "Sede Norte")
	gloves := f.material(t, "Guantes", 10)

	out, err := f.uc.AddToClinic(ctx, actorID, "c1", dto.ClinicAllocateRequest{MaterialID: gloves.ID, Quantity: 4, Note: "compra local"})
	require.NoError(t, err)
	assert.Equal(t, 4, out.QuantityAvailable)
	assert.Equal(t, 6, f.warehouseQty(t, gloves.ID))

	moves, err := f.uc.ListMovements(ctx, "c1", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, moves.Items, 1)
	assert.Equal(t, string(entity.MovementInbound), moves.Items[0].MovementType)
	assert.Equal(t, "compra local", moves.Items[0].Note)
}

func TestAddToClinic_StockInsuficienteNoCambiaNada(t *testing.T) {
	f := newFixture(t)
	f.clinic(t, "c1", "Sede Norte")
	gloves := f.material(t, "Guantes", 3)
	before := f.store.MovementCount()

	_, err := f.uc.AddToClinic(context.Background(), actorID, "c1", dto.ClinicAllocateRequest{MaterialID: gloves.ID, Quantity: 4})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, f.warehouseQty(t, gloves.ID))
	assert.Equal(t, 0, f.clinicQty(t, "c1", gloves.ID))
	assert.Equal(t, before, f.store.MovementCount())
}

func TestAddToClinic_NoEncontrados(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.clinic(t, "c1", "Sede Norte")
	gloves := f.material(t, "Guantes", 3)
	before := f.store.MovementCount()

	t.Run("material inexistente", func(t *testing.T) {
		_, err := f.uc.AddToClinic(ctx, actorID, "c1", dto.ClinicAllocateRequest{MaterialID: "no-existe", Quantity: 1})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("clínica inexistente", func(t *testing.T) {
		_, err := f.uc.AddToClinic(ctx, actorID, "no-existe", dto.ClinicAllocateRequest{MaterialID: gloves.ID, Quantity: 1})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.Equal(t, 3, f.warehouseQty(t, gloves.ID))
	assert.Equal(t, before, f.store.MovementCount())
}

func TestAssignToClinic_NotaConNombreDeClinica(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.clinic(t, "c1", "Sede Norte")
	gloves := f.material(t, "Guantes", 10)

	out, err := f.uc.AssignToClinic(ctx, actorID, gloves.ID, dto.MaterialAssignToClinicRequest{ClinicID: "c1", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 7, out.WarehouseQuantity)
	assert.Equal(t, 3, out.ClinicQuantity)

	moves, err := f.uc.ListMovements(ctx, "c1", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Transferido desde bodega a Sede Norte", moves.Items[0].Note)
}

// ─── Consumo ─────────────────────────────────────────────────────────────────

func TestConsume(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.clinic(t, "c1", "Sede Norte")
	gloves := f.material(t, "Guantes", 100)
	_, err := f.uc.Allocate(ctx, actorID, "c1", dto.ClinicAllocateRequest{MaterialID: gloves.ID, Quantity: 30})
	require.NoError(t, err)

	t.Run("más de lo disponible se rechaza sin cambios", func(t *testing.T) {
		before := f.store.MovementCount()
		_, err := f.uc.Consume(ctx, actorID, "c1", dto.ClinicConsumeRequest{MaterialID: gloves.ID, Quantity: 40})
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		assert.Equal(t, 30, f.clinicQty(t, "c1", gloves.ID))
		assert.Equal(t, before, f.store.MovementCount())
	})

	t.Run("descuenta y registra Outbound negativo", func(t *testing.T) {
		out, err := f.uc.Consume(ctx, actorID, "c1", dto.ClinicConsumeRequest{MaterialID: gloves.ID, Quantity: 12})
		require.NoError(t, err)
		assert.Equal(t, 18, out.RemainingQuantity)
		assert.Equal(t, 70, f.warehouseQty(t, gloves.ID), "el consumo no toca la bodega")

		moves, err := f.uc.ListMovements(ctx, "c1", dto.PageRequest{})
		require.NoError(t, err)
		assert.Equal(t, string(entity.MovementOutbound), moves.Items[0].MovementType)
		assert.Equal(t, -12, moves.Items[0].Quantity)
		assert.Equal(t, inventory.NoteConsume, moves.Items[0].Note)
	})

	t.Run("consumir todo deja cero", func(t *testing.T) {
		out, err := f.uc.Consume(ctx, actorID, "c1", dto.ClinicConsumeRequest{MaterialID: gloves.ID, Quantity: 18})
		require.NoError(t, err)
		assert.Equal(t, 0, out.RemainingQuantity)
	})

	t.Run("material nunca asignado a la clínica", func(t *testing.T) {
		other := f.material(t, "Mascarillas", 10)
		_, err := f.uc.Consume(ctx, actorID, "c1", dto.ClinicConsumeRequest{MaterialID: other.ID, Quantity: 1})
		assert.ErrorIs(t, err, domain.ErrClinicStockMissing)
	})
}

func TestConsume_Concurrente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.clinic(t, "c1", "Sede Norte")
	gloves := f.material(t, "Guantes", 10)
	_, err := f.uc.Allocate(ctx, actorID, "c1", dto.ClinicAllocateRequest{MaterialID: gloves.ID, Quantity: 10})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Consume(ctx, actorID, "c1", dto.ClinicConsumeRequest{MaterialID: gloves.ID, Quantity: 1})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			} else if !errors.Is(err, domain.ErrInsufficientStock) {
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 10, ok)
	assert.Equal(t, 0, f.clinicQty(t, "c1", gloves.ID))
}

// ─── Conservación y rollback ─────────────────────────────────────────────────

func TestConservacion_BodegaMasClinicasMasConsumido(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.clinic(t, "c1", "Sede Norte")
	f.clinic(t, "c2", "Sede Sur")
	gloves := f.material(t, "Guantes", 50)

	_, err := f.uc.Allocate(ctx, actorID, "c1", dto.ClinicAllocateRequest{MaterialID: gloves.ID, Quantity: 20})
	require.NoError(t, err)
	_, err = f.uc.AssignToClinic(ctx, actorID, gloves.ID, dto.MaterialAssignToClinicRequest{ClinicID: "c2", Quantity: 15})
	require.NoError(t, err)
	_, err = f.uc.Consume(ctx, actorID, "c1", dto.ClinicConsumeRequest{MaterialID: gloves.ID, Quantity: 7})
	require.NoError(t, err)
	_, err = f.uc.Consume(ctx, actorID, "c2", dto.ClinicConsumeRequest{MaterialID: gloves.ID, Quantity: 15})
	require.NoError(t, err)

	total := f.warehouseQty(t, gloves.ID) + f.clinicQty(t, "c1", gloves.ID) + f.clinicQty(t, "c2", gloves.ID)
	assert.Equal(t, 50-7-15, total)
}

func TestRollback_FallaAlRegistrarMovimiento(t *testing.T) {
	f := newFixture(t)
	f.clinic(t, "c1", "Sede Norte")
	gloves := f.material(t, "Guantes", 20)

	boom := errors.New("falla de escritura")
	f.store.FailMovementCreate = boom
	_, err := f.uc.Allocate(context.Background(), actorID, "c1", dto.ClinicAllocateRequest{MaterialID: gloves.ID, Quantity: 5})
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, 20, f.warehouseQty(t, gloves.ID))
	s, err := f.store.Stocks().Get(context.Background(), "c1", gloves.ID)
	require.NoError(t, err)
	assert.Nil(t, s, "no debe quedar fila de stock parcial")
}

// ─── Abierto / cerrado ───────────────────────────────────────────────────────

func TestSetOpen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.clinic(t, "c1", "Sede Norte")
	gloves := f.material(t, "Guantes", 10)
	_, err := f.uc.Allocate(ctx, actorID, "c1", dto.ClinicAllocateRequest{MaterialID: gloves.ID, Quantity: 3})
	require.NoError(t, err)

	t1 := t0.Add(time.Hour)
	f.clock = t1
	out, err := f.uc.SetOpen(ctx, "c1", gloves.ID, true)
	require.NoError(t, err)
	assert.True(t, out.IsOpen)
	require.NotNil(t, out.OpenedAt)
	assert.True(t, out.OpenedAt.Equal(t1))

	f.clock = t1.Add(time.Hour)
	again, err := f.uc.SetOpen(ctx, "c1", gloves.ID, true)
	require.NoError(t, err)
	assert.True(t, again.OpenedAt.Equal(t1), "abrir dos veces conserva la fecha original")

	closed, err := f.uc.SetOpen(ctx, "c1", gloves.ID, false)
	require.NoError(t, err)
	assert.False(t, closed.IsOpen)
	assert.Nil(t, closed.OpenedAt)

	_, err = f.uc.SetOpen(ctx, "c1", "no-existe", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	other := f.material(t, "Mascarillas", 1)
	_, err = f.uc.SetOpen(ctx, "c1", other.ID, true)
	assert.ErrorIs(t, err, domain.ErrClinicStockMissing)
}

// ─── Bodega ──────────────────────────────────────────────────────────────────

func TestAddWarehouseStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	gloves := f.material(t, "Guantes", 10)

	f.clock = t0.Add(24 * time.Hour)
	out, err := f.uc.AddWarehouseStock(ctx, actorID, gloves.ID, dto.MaterialAdjustQuantityRequest{
		Quantity: 5, Cost: decimal.NewFromInt(12), Total: decimal.NewFromInt(60),
	})
	require.NoError(t, err)
	assert.Equal(t, 15, out.Quantity)
	assert.True(t, out.Cost.Equal(decimal.NewFromInt(12)))
	assert.Equal(t, 5, out.LastAddedQuantity)
	assert.True(t, out.LastAddedTotal.Equal(decimal.NewFromInt(60)))
	assert.True(t, out.LastAddedAt.Equal(f.clock))
	assert.True(t, out.CreatedAt.Equal(t0), "created_at no cambia")

	_, err = f.uc.AddWarehouseStock(ctx, actorID, gloves.ID, dto.MaterialAdjustQuantityRequest{Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = f.uc.AddWarehouseStock(ctx, actorID, "no-existe", dto.MaterialAdjustQuantityRequest{Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─── Registro de movimientos ─────────────────────────────────────────────────

func TestMovimientos_GetListClear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.clinic(t, "c1", "Sede Norte")
	gloves := f.material(t, "Guantes", 10)
	for i := 0; i < 3; i++ {
		f.clock = t0.Add(time.Duration(i) * time.Minute)
		_, err := f.uc.Allocate(ctx, actorID, "c1", dto.ClinicAllocateRequest{MaterialID: gloves.ID, Quantity: i + 1})
		require.NoError(t, err)
	}

	page, err := f.uc.ListMovements(ctx, "c1", dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 3, page.Items[0].Quantity, "más reciente primero")

	got, err := f.uc.GetMovement(ctx, page.Items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, page.Items[0], *got)
	_, err = f.uc.GetMovement(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	n, err := f.uc.ClearMovements(ctx, "c1")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	assert.Equal(t, 6, f.clinicQty(t, "c1", gloves.ID), "limpiar el registro no cambia cantidades")
}
