package inventory

import (
	"sort"
	"time"

	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SpendingLine movimiento valorizado (cantidad × costo vigente del material).
type SpendingLine struct {
	ClinicID     *string
	MaterialName string
	Category     entity.MaterialCategory
	Kind         entity.MovementKind
	Quantity     int
	UnitCost     decimal.Decimal
	CreatedAt    time.Time
}

// MaterialSpending gasto agregado por material+categoría.
type MaterialSpending struct {
	MaterialName  string
	Category      entity.MaterialCategory
	QuantityAdded int
	TotalCost     decimal.Decimal
	LastAdded     time.Time
}

// SpendingGroup total de un grupo (todas las clínicas o una clínica) con su desglose por material.
type SpendingGroup struct {
	TotalSpent     decimal.Decimal
	MaterialsAdded int
	Materials      []MaterialSpending
}

// GlobalSpending suma solo las entradas (Inbound): los traslados son movimientos internos, no compras.
func GlobalSpending(lines []SpendingLine) SpendingGroup {
	inbound := make([]SpendingLine, 0, len(lines))
	for _, l := range lines {
		if l.Kind == entity.MovementInbound {
			inbound = append(inbound, l)
		}
	}
	return group(inbound)
}

// ClinicSpending para una clínica cuenta entradas directas y traslados recibidos.
func ClinicSpending(lines []SpendingLine, clinicID string) SpendingGroup {
	own := make([]SpendingLine, 0)
	for _, l := range lines {
		if l.ClinicID == nil || *l.ClinicID != clinicID {
			continue
		}
		if l.Kind == entity.MovementInbound || l.Kind == entity.MovementTransfer {
			own = append(own, l)
		}
	}
	return group(own)
}

func group(lines []SpendingLine) SpendingGroup {
	type key struct {
		name     string
		category entity.MaterialCategory
	}
	byKey := make(map[key]*MaterialSpending)
	var order []key
	out := SpendingGroup{TotalSpent: decimal.Zero}
	for _, l := range lines {
		cost := l.UnitCost.Mul(decimal.NewFromInt(int64(l.Quantity)))
		out.TotalSpent = out.TotalSpent.Add(cost)
		out.MaterialsAdded += l.Quantity

		k := key{l.MaterialName, l.Category}
		ms, ok := byKey[k]
		if !ok {
			ms = &MaterialSpending{MaterialName: l.MaterialName, Category: l.Category, TotalCost: decimal.Zero}
			byKey[k] = ms
			order = append(order, k)
		}
		ms.QuantityAdded += l.Quantity
		ms.TotalCost = ms.TotalCost.Add(cost)
		if l.CreatedAt.After(ms.LastAdded) {
			ms.LastAdded = l.CreatedAt
		}
	}
	out.Materials = make([]MaterialSpending, 0, len(order))
	for _, k := range order {
		out.Materials = append(out.Materials, *byKey[k])
	}
	sort.SliceStable(out.Materials, func(i, j int) bool {
		return out.Materials[i].TotalCost.GreaterThan(out.Materials[j].TotalCost)
	})
	return out
}
