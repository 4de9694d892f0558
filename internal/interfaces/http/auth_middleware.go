package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/pkg/jwt"
)

// Locals keys de la identidad resuelta.
const (
	LocalUserID       = "user_id"
	LocalCompanyID    = "company_id"
	LocalDepartmentID = "department_id"
	LocalRole         = "role"
)

// AuthMiddleware valida el Bearer Token JWT y deja la identidad en c.Locals.
// Con resolver, rol y departamento salen del usuario guardado y no del token;
// un usuario inexistente o de otra empresa invalida el token. Sin resolver se confía en los claims.
func AuthMiddleware(jwtSecret string, resolver IdentityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}

		actor := entity.Actor{
			UserID:       claims.UserID,
			CompanyID:    claims.CompanyID,
			DepartmentID: claims.DepartmentID,
			Role:         entity.RoleName(claims.Role),
		}
		if resolver != nil {
			resolved, err := resolver.ResolveActor(c.UserContext(), claims.UserID, claims.CompanyID)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "usuario no válido"})
				}
				return err
			}
			actor = *resolved
		}

		c.Locals(LocalUserID, actor.UserID)
		c.Locals(LocalCompanyID, actor.CompanyID)
		c.Locals(LocalDepartmentID, actor.DepartmentID)
		c.Locals(LocalRole, string(actor.Role))
		return c.Next()
	}
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetCompanyID devuelve el CompanyID del contexto.
func GetCompanyID(c *fiber.Ctx) string { return localString(c, LocalCompanyID) }

// GetDepartmentID devuelve el departamento del usuario autenticado.
func GetDepartmentID(c *fiber.Ctx) string { return localString(c, LocalDepartmentID) }

// GetRole devuelve el rol vigente del usuario autenticado.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

// GetActor arma el Actor que reciben los casos de uso.
func GetActor(c *fiber.Ctx) entity.Actor {
	return entity.Actor{
		UserID:       GetUserID(c),
		CompanyID:    GetCompanyID(c),
		DepartmentID: GetDepartmentID(c),
		Role:         entity.RoleName(GetRole(c)),
	}
}
