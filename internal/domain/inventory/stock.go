// Package inventory contiene las reglas puras del libro de stock (bodega general y clínicas).
package inventory

import "github.com/jhoicas/dental-inventory-api/internal/domain"

// ValidateQuantity rechaza cantidades no positivas antes de cualquier mutación.
func ValidateQuantity(qty int) error {
	if qty <= 0 {
		return domain.ErrInvalidQuantity
	}
	return nil
}

// Withdraw devuelve el saldo resultante de retirar requested de available.
// Nunca produce un saldo negativo: si no alcanza devuelve ErrInsufficientStock.
func Withdraw(available, requested int) (int, error) {
	if err := ValidateQuantity(requested); err != nil {
		return available, err
	}
	if available < requested {
		return available, domain.ErrInsufficientStock
	}
	return available - requested, nil
}
