package entity

import "time"

// ClinicStock cantidad disponible de un material en una clínica (una fila por par clínica+material).
// Invariante: OpenedAt != nil si y solo si IsOpen.
type ClinicStock struct {
	ClinicID          string
	MaterialID        string
	QuantityAvailable int
	IsOpen            bool
	OpenedAt          *time.Time
	UpdatedAt         time.Time
}

// NewClinicStock crea la fila vacía (cerrada) usada en la primera asignación a la clínica.
func NewClinicStock(clinicID, materialID string, now time.Time) *ClinicStock {
	return &ClinicStock{
		ClinicID:   clinicID,
		MaterialID: materialID,
		UpdatedAt:  now,
	}
}

// SetOpen aplica la transición Cerrado <-> Abierto. Si el estado ya es el pedido no cambia nada
// (OpenedAt se conserva) y devuelve false.
func (s *ClinicStock) SetOpen(open bool, now time.Time) bool {
	if s.IsOpen == open {
		return false
	}
	s.IsOpen = open
	if open {
		t := now
		s.OpenedAt = &t
	} else {
		s.OpenedAt = nil
	}
	s.UpdatedAt = now
	return true
}
