package entity

import "time"

// Clinic representa una clínica odontológica con su propio inventario y caja.
type Clinic struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
