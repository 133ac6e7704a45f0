package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/distrisur/gestion-api/internal/application/dto"
	"github.com/distrisur/gestion-api/internal/domain"
	"github.com/distrisur/gestion-api/pkg/jwt"
)

// Locals keys para la identidad del solicitante en Fiber.
const (
	LocalUserID = "user_id"
	LocalRol    = "rol"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID y Rol a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("Authorization header requerido"))
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("formato: Bearer <token>"))
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("token vacío"))
		}
		userID, rol, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("token inválido o expirado"))
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRol, rol)
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados. Debe ir después de
// AuthMiddleware. Token sin rol es 401; rol no permitido es 403.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rol, _ := c.Locals(LocalRol).(string)
		if rol == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("token sin rol"))
		}
		for _, r := range roles {
			if rol == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.NewError("rol sin permiso para esta operación"))
	}
}

// GetSolicitante devuelve la identidad del contexto (después del middleware de auth).
func GetSolicitante(c *fiber.Ctx) domain.Solicitante {
	var s domain.Solicitante
	if v, ok := c.Locals(LocalUserID).(string); ok {
		s.ID = v
	}
	if v, ok := c.Locals(LocalRol).(string); ok {
		s.Rol = v
	}
	return s
}
