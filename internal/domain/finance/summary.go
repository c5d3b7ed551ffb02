// Package finance agrega el libro de ingresos/egresos por día y por clínica.
// Son vistas derivadas: se recalculan en cada consulta y no guardan estado.
package finance

import (
	"sort"
	"time"

	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Line transacción mínima para agregar.
type Line struct {
	ClinicID   string
	ClinicName string
	Type       entity.TransactionType
	Amount     decimal.Decimal
	Date       time.Time
}

// Totals ingresos, egresos y balance (ingresos - egresos).
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// DayTotals totales de un día calendario.
type DayTotals struct {
	Date time.Time
	Totals
}

// ClinicTotals totales de una clínica.
type ClinicTotals struct {
	ClinicID   string
	ClinicName string
	Totals
}

// Sum calcula los totales del conjunto de líneas.
func Sum(lines []Line) Totals {
	t := Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, l := range lines {
		switch l.Type {
		case entity.TransactionIncome:
			t.Income = t.Income.Add(l.Amount)
		case entity.TransactionExpense:
			t.Expense = t.Expense.Add(l.Amount)
		}
	}
	t.Balance = t.Income.Sub(t.Expense)
	return t
}

// ByDay agrupa por día calendario (UTC), ordenado ascendente.
func ByDay(lines []Line) []DayTotals {
	groups := make(map[time.Time][]Line)
	for _, l := range lines {
		d := entity.DateOnly(l.Date)
		groups[d] = append(groups[d], l)
	}
	out := make([]DayTotals, 0, len(groups))
	for d, g := range groups {
		out = append(out, DayTotals{Date: d, Totals: Sum(g)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// ByClinic agrupa por clínica, ordenado por balance descendente.
func ByClinic(lines []Line) []ClinicTotals {
	groups := make(map[string][]Line)
	names := make(map[string]string)
	for _, l := range lines {
		groups[l.ClinicID] = append(groups[l.ClinicID], l)
		names[l.ClinicID] = l.ClinicName
	}
	out := make([]ClinicTotals, 0, len(groups))
	for id, g := range groups {
		out = append(out, ClinicTotals{ClinicID: id, ClinicName: names[id], Totals: Sum(g)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Balance.Equal(out[j].Balance) {
			return out[i].ClinicName < out[j].ClinicName
		}
		return out[i].Balance.GreaterThan(out[j].Balance)
	})
	return out
}
