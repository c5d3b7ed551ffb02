package entity

import (
	"strings"
	"time"
)

// MovementKind clasificación de un movimiento de stock.
type MovementKind string

// Tipos de movimiento.
const (
	MovementInbound  MovementKind = "Inbound"  // entrada nueva a bodega o clínica
	MovementOutbound MovementKind = "Outbound" // consumo
	MovementTransfer MovementKind = "Transfer" // bodega -> clínica
)

// ParseMovementKind convierte un string (sin distinguir mayúsculas) a MovementKind.
func ParseMovementKind(s string) (MovementKind, bool) {
	for _, k := range []MovementKind{MovementInbound, MovementOutbound, MovementTransfer} {
		if strings.EqualFold(string(k), strings.TrimSpace(s)) {
			return k, true
		}
	}
	return "", false
}

// StockMovement registro inmutable (append-only) de un cambio de cantidad.
// Quantity es positiva para Inbound/Transfer y negativa para Outbound.
type StockMovement struct {
	ID          string
	ClinicID    *string // nil = bodega general
	MaterialID  string
	Quantity    int
	Kind        MovementKind
	PerformedBy string // UserID
	Note        string
	CreatedAt   time.Time
}

// IsWarehouse indica si el movimiento afecta a la bodega general.
func (m *StockMovement) IsWarehouse() bool {
	return m.ClinicID == nil
}
