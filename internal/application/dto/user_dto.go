package dto

import "time"

// CreateUserRequest entrada para crear un usuario (solo Master). La password se hashea en el use case.
type CreateUserRequest struct {
	UserName string `json:"user_name" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=Master User"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	UserName  string    `json:"user_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	UserName string `json:"user_name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT más datos básicos del usuario.
type LoginResponse struct {
	Token    string `json:"token"`
	UserName string `json:"user_name"`
	Role     string `json:"role"`
}

// MeResponse actor autenticado.
type MeResponse struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Role     string `json:"role"`
}
