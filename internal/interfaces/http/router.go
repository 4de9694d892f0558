package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Auth        Authenticator
	Identity    IdentityResolver // nil: se confía en los claims del token
	Ledger      StockLedger
	Catalog     StockCatalog
	Audit       AuditService
	Departments DepartmentService
	Users       UserService
	Tenants     TenantChecker // nil: no se verifica el estado de la empresa
	Health      func(ctx context.Context) error
	JWTSecret   string
	Logger      zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps.Health))

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.Auth, deps.Logger)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	guards := []fiber.Handler{AuthMiddleware(deps.JWTSecret, deps.Identity)}
	if deps.Tenants != nil {
		guards = append(guards, RequireActiveTenant(deps.Tenants))
	}
	protected := api.Group("/", guards...)
	protected.Get("/me", authHandler.Me)

	mutateStock := RequireCapability(entity.CapMutateStock)
	readAudit := RequireCapability(entity.CapReadAudit)
	manageTenant := RequireCapability(entity.CapManageTenant)

	// Stock: mutaciones solo warehouse, consultas cualquier rol autenticado
	stockHandler := NewStockHandler(deps.Ledger, deps.Catalog, deps.Logger)
	stockGroup := protected.Group("/stock")
	stockGroup.Post("/add", mutateStock, stockHandler.Add)
	stockGroup.Post("/assign", mutateStock, stockHandler.Assign)
	stockGroup.Post("/return", mutateStock, stockHandler.Return)
	stockGroup.Post("/faulty", mutateStock, stockHandler.Faulty)
	stockGroup.Post("/transfer", mutateStock, stockHandler.Transfer)
	stockGroup.Get("/", stockHandler.List)
	stockGroup.Get("/my-equipment", stockHandler.MyEquipment)
	stockGroup.Get("/:id/history", stockHandler.History)
	stockGroup.Get("/:id", stockHandler.GetByID)
	stockGroup.Delete("/:id", mutateStock, stockHandler.Delete)

	// Auditoría (admin)
	auditHandler := NewAuditHandler(deps.Audit, deps.Logger)
	auditGroup := protected.Group("/audit")
	auditGroup.Get("/logs", readAudit, auditHandler.Logs)
	auditGroup.Get("/logs/report.pdf", readAudit, auditHandler.Report)

	// Departamentos y usuarios: lectura autenticada, alta admin
	departmentHandler := NewDepartmentHandler(deps.Departments, deps.Logger)
	departments := protected.Group("/departments")
	departments.Get("/", departmentHandler.List)
	departments.Post("/", manageTenant, departmentHandler.Create)

	userHandler := NewUserHandler(deps.Users, deps.Logger)
	users := protected.Group("/users")
	users.Get("/", userHandler.List)
	users.Post("/", manageTenant, userHandler.Create)
}

func healthHandler(check func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "DB_UNAVAILABLE", Message: "base de datos no disponible"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
