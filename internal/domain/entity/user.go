package entity

import "time"

// Roles válidos para User.
const (
	RoleMaster = "Master" // administrador: clínicas, materiales, reportes
	RoleUser   = "User"   // operador de clínica
)

// User representa un usuario del sistema. Es el actor que queda registrado en movimientos y transacciones.
type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash string // bcrypt hash
	Role         string // Master, User
	CreatedAt    time.Time
}

// IsValidRole indica si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	return role == RoleMaster || role == RoleUser
}
