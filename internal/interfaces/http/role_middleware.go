package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// RequireRole deja pasar solo si el rol del usuario es exactamente uno de roles.
// Debe usarse después de AuthMiddleware. No hay jerarquía: admin no hereda warehouse.
func RequireRole(roles ...entity.RoleName) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		for _, r := range roles {
			if string(r) == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}

// RequireCapability resuelve el rol de la capacidad con entity.CapabilityRole.
func RequireCapability(capability entity.Capability) fiber.Handler {
	return RequireRole(entity.CapabilityRole[capability])
}
