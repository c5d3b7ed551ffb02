package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/dental-inventory-api/internal/application/dto"
	"github.com/jhoicas/dental-inventory-api/pkg/jwt"
)

// Claves en Locals para el actor autenticado.
const (
	LocalsUserID   = "user_id"
	LocalsUserName = "user_name"
	LocalsRole     = "role"
)

// AuthMiddleware valida el JWT Bearer y carga user_id, user_name y role en Locals.
func AuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_TOKEN",
				Message: "token de autorización requerido",
			})
		}
		const prefix = "Bearer "
		if !strings.HasPrefix(auth, prefix) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: "formato de token inválido",
			})
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(auth, prefix))
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_TOKEN",
				Message: "token vacío",
			})
		}
		claims, err := jwt.Parse(secret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: "token inválido o expirado",
			})
		}
		c.Locals(LocalsUserID, claims.UserID)
		c.Locals(LocalsUserName, claims.UserName)
		c.Locals(LocalsRole, claims.Role)
		return c.Next()
	}
}

// RequireRole deja pasar solo a los roles indicados. Debe ir después de AuthMiddleware.
//
//	Token sin rol  -> 401 MISSING_ROLE
//	Rol no incluido -> 403 FORBIDDEN
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "el token no contiene rol",
			})
		}
		if _, ok := allowed[role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "no tiene permisos para esta operación",
			})
		}
		return c.Next()
	}
}

// GetUserID devuelve el user_id del token (tras AuthMiddleware).
func GetUserID(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalsUserID).(string)
	return v
}

// GetUserName devuelve el user_name del token.
func GetUserName(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalsUserName).(string)
	return v
}

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalsRole).(string)
	return v
}
