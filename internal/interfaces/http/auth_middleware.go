package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ferreteria-api/internal/application/dto"
	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/Ferreteria-api/pkg/jwt"
)

// Locals keys para UserID y Role en Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID y Role a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get("Authorization") == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		return authenticate(c, jwtSecret)
	}
}

// OptionalAuth como AuthMiddleware, pero sin header la petición sigue como invitado.
// Un token presente e inválido sigue siendo 401.
func OptionalAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get("Authorization") == "" {
			return c.Next()
		}
		return authenticate(c, jwtSecret)
	}
}

func authenticate(c *fiber.Ctx, jwtSecret string) error {
	parts := strings.SplitN(c.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
	}
	userID, role, err := jwt.Parse(jwtSecret, tokenString)
	if err != nil || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
	}
	c.Locals(LocalUserID, userID)
	c.Locals(LocalRole, role)
	return c.Next()
}

// RequireRole autoriza solo a los roles indicados. Debe ir después de AuthMiddleware/OptionalAuth.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "se requiere una sesión con rol"})
		}
		for _, allowed := range roles {
			if string(allowed) == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para este recurso"})
	}
}

// GetUserID devuelve el UserID del contexto ("" para invitados).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del token tal como viene en el claim.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// CurrentIdentity identidad de la petición; nil para invitados. Un rol desconocido paga como client.
func CurrentIdentity(c *fiber.Ctx) *entity.Identity {
	userID := GetUserID(c)
	if userID == "" {
		return nil
	}
	role, err := entity.ParseRole(GetRole(c))
	if err != nil {
		role = entity.RoleClient
	}
	return &entity.Identity{ID: userID, Role: role}
}

// isBackOffice admin o vendedor.
func isBackOffice(ident *entity.Identity) bool {
	return ident != nil && (ident.Role == entity.RoleAdmin || ident.Role == entity.RoleSalesperson)
}
