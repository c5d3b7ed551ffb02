package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseMaterialCategory(t *testing.T) {
	cases := []struct {
		in   string
		want MaterialCategory
		ok   bool
	}{
		{"Disposables", CategoryDisposables, true},
		{" usagematerials ", CategoryUsageMaterials, true},
		{"ENDODONTICSRCT", CategoryEndodonticsRCT, true},
		{"9", CategoryBurs, true},
		{"13", CategoryEndodonticsRCT, true},
		{"0", 0, false},
		{"14", 0, false},
		{"", 0, false},
		{"-1", 0, false},
		{"Juguetes", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseMaterialCategory(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, tc.in)
		}
	}
	assert.Len(t, AllCategories(), 13)
	assert.Equal(t, "Unknown", MaterialCategory(99).String())
}

func TestNormalizeMaterialName(t *testing.T) {
	assert.Equal(t, NormalizeMaterialName("Algodón"), NormalizeMaterialName("  ALGODÓN "))
	assert.NotEqual(t, NormalizeMaterialName("Algodon"), NormalizeMaterialName("Algodón"))

	m := &Material{Name: "Guantes", Category: CategoryDisposables}
	assert.True(t, m.SameIdentity("guantes", CategoryDisposables))
	assert.False(t, m.SameIdentity("guantes", CategoryDurables))
}

func TestClinicStock_SetOpen(t *testing.T) {
	t1 := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	s := NewClinicStock("c1", "m1", t1)
	assert.False(t, s.IsOpen)
	assert.Nil(t, s.OpenedAt)

	assert.True(t, s.SetOpen(true, t1))
	assert.True(t, s.IsOpen)
	assert.Equal(t, t1, *s.OpenedAt)

	assert.False(t, s.SetOpen(true, t2), "mismo estado no cambia")
	assert.Equal(t, t1, *s.OpenedAt)

	assert.True(t, s.SetOpen(false, t2))
	assert.False(t, s.IsOpen)
	assert.Nil(t, s.OpenedAt)
	assert.Equal(t, t2, s.UpdatedAt)
}

func TestParseTransactionType(t *testing.T) {
	for in, want := range map[string]TransactionType{"income": TransactionIncome, "Expense": TransactionExpense, "1": TransactionIncome, "2": TransactionExpense} {
		got, ok := ParseTransactionType(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got)
	}
	_, ok := ParseTransactionType("Transfer")
	assert.False(t, ok)
}

func TestFinancialTransaction_CanBeDeletedBy(t *testing.T) {
	tx := &FinancialTransaction{CreatedBy: "u1"}
	assert.True(t, tx.CanBeDeletedBy("u1", RoleUser))
	assert.False(t, tx.CanBeDeletedBy("u2", RoleUser))
	assert.True(t, tx.CanBeDeletedBy("u2", RoleMaster))
}

func TestParseMovementKind(t *testing.T) {
	k, ok := ParseMovementKind("transfer")
	assert.True(t, ok)
	assert.Equal(t, MovementTransfer, k)
	_, ok = ParseMovementKind("Adjust")
	assert.False(t, ok)
}
