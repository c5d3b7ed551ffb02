package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/dental-inventory-api/internal/application/dto"
	"github.com/jhoicas/dental-inventory-api/internal/domain"
	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/dental-inventory-api/internal/domain/repository"
	"github.com/jhoicas/dental-inventory-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y alta de usuarios.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// CreateUser crea un usuario con password hasheada con bcrypt. Role vacío = User.
func (uc *AuthUseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	userName := strings.TrimSpace(in.UserName)
	if userName == "" || len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: user_name obligatorio y password de al menos 8 caracteres", domain.ErrInvalidInput)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if !entity.IsValidRole(role) {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, role)
	}
	existing, err := uc.userRepo.GetByUserName(ctx, userName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUserNameExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		UserName:     userName,
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrUserNameExists
		}
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica user_name/password y genera el JWT. Usuario inexistente y password incorrecta
// devuelven el mismo error para no revelar qué nombres existen.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if strings.TrimSpace(in.UserName) == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: usuario y contraseña son obligatorios", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetByUserName(ctx, strings.TrimSpace(in.UserName))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.UserName, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:    token,
		UserName: user.UserName,
		Role:     user.Role,
	}, nil
}

// List lista los usuarios registrados.
func (uc *AuthUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		UserName:  u.UserName,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
