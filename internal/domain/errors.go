package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrUserNameExists     = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidQuantity    = errors.New("la cantidad debe ser mayor que cero")
	ErrInvalidCategory    = errors.New("categoría inválida")
	ErrInvalidType        = errors.New("tipo de transacción inválido")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrClinicStockMissing = errors.New("el material no existe en el inventario de la clínica")
)
