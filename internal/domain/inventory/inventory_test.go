package inventory

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-inventory-api/internal/domain"
	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
)

func TestWithdraw(t *testing.T) {
	left, err := Withdraw(30, 12)
	require.NoError(t, err)
	assert.Equal(t, 18, left)

	left, err = Withdraw(30, 30)
	require.NoError(t, err)
	assert.Equal(t, 0, left)

	left, err = Withdraw(30, 40)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 30, left)

	_, err = Withdraw(30, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestSpending(t *testing.T) {
	north, south := "c-norte", "c-sur"
	t1 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(48 * time.Hour)
	five, two := decimal.NewFromInt(5), decimal.NewFromInt(2)
	lines := []SpendingLine{
		{MaterialName: "Guantes", Category: entity.CategoryDisposables, Kind: entity.MovementInbound, Quantity: 10, UnitCost: five, CreatedAt: t1},
		{ClinicID: &north, MaterialName: "Guantes", Category: entity.CategoryDisposables, Kind: entity.MovementTransfer, Quantity: 4, UnitCost: five, CreatedAt: t2},
		{ClinicID: &north, MaterialName: "Algodón", Category: entity.CategoryDisposables, Kind: entity.MovementInbound, Quantity: 3, UnitCost: two, CreatedAt: t1},
		{ClinicID: &north, MaterialName: "Guantes", Category: entity.CategoryDisposables, Kind: entity.MovementOutbound, Quantity: -2, UnitCost: five, CreatedAt: t2},
		{ClinicID: &south, MaterialName: "Guantes", Category: entity.CategoryDisposables, Kind: entity.MovementTransfer, Quantity: 1, UnitCost: five, CreatedAt: t2},
	}

	g := GlobalSpending(lines)
	assert.True(t, g.TotalSpent.Equal(decimal.NewFromInt(56)), g.TotalSpent.String())
	assert.Equal(t, 13, g.MaterialsAdded)
	require.Len(t, g.Materials, 2)
	assert.Equal(t, "Guantes", g.Materials[0].MaterialName, "mayor costo primero")

	n := ClinicSpending(lines, north)
	assert.True(t, n.TotalSpent.Equal(decimal.NewFromInt(26)), n.TotalSpent.String())
	assert.Equal(t, 7, n.MaterialsAdded)
	require.Len(t, n.Materials, 2)
	assert.Equal(t, t2, n.Materials[0].LastAdded)

	s := ClinicSpending(lines, south)
	assert.True(t, s.TotalSpent.Equal(five))

	empty := ClinicSpending(lines, "c-x")
	assert.True(t, empty.TotalSpent.IsZero())
	assert.Empty(t, empty.Materials)
}
