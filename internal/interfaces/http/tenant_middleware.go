package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-api/internal/application/dto"
)

// TenantChecker informa si la empresa puede operar. Lo implementa *usecase.CompanyUseCase.
type TenantChecker interface {
	IsActive(ctx context.Context, companyID string) (bool, error)
}

// RequireActiveTenant bloquea a las empresas suspendidas. Debe usarse DESPUÉS de AuthMiddleware.
//
//   - 403 Forbidden → empresa suspendida o inexistente.
//   - 503 Service Unavailable → fallo al consultar la DB.
func RequireActiveTenant(checker TenantChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id no encontrado en el token",
			})
		}

		active, err := checker.IsActive(c.UserContext(), companyID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "TENANT_CHECK_FAILED",
				Message: "no se pudo verificar la empresa, intente más tarde",
			})
		}
		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "TENANT_SUSPENDED",
				Message: "la empresa no está activa",
			})
		}
		return c.Next()
	}
}
