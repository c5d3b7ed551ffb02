package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/dental-inventory-api/internal/application/analytics"
	"github.com/jhoicas/dental-inventory-api/internal/application/auth"
	"github.com/jhoicas/dental-inventory-api/internal/application/finance"
	"github.com/jhoicas/dental-inventory-api/internal/application/inventory"
	"github.com/jhoicas/dental-inventory-api/internal/application/usecase"
	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ClinicUC    *usecase.ClinicUseCase
	MaterialUC  *usecase.MaterialUseCase
	StockUC     *inventory.StockUseCase
	FinanceUC   *finance.TransactionUseCase
	DashboardUC *appanalytics.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Todo requiere Bearer token salvo POST /auth/login.
func Router(app fiber.Router, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.AuthUC)
	clinicHandler := NewClinicHandler(deps.ClinicUC)
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	inventoryHandler := NewInventoryHandler(deps.StockUC)
	financialHandler := NewFinancialHandler(deps.FinanceUC)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)

	requireAuth := AuthMiddleware(deps.JWTSecret)
	anyRole := RequireRole(entity.RoleMaster, entity.RoleUser)
	masterOnly := RequireRole(entity.RoleMaster)

	// Auth
	authGroup := app.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", requireAuth, authHandler.Me)
	authGroup.Post("/users", requireAuth, masterOnly, authHandler.CreateUser)
	authGroup.Get("/users", requireAuth, masterOnly, authHandler.ListUsers)

	// Clinics. Las rutas fijas van antes que /:id.
	clinics := app.Group("/clinics", requireAuth)
	clinics.Get("/", clinicHandler.List)
	clinics.Get("/my-clinics", anyRole, clinicHandler.MyClinics)
	clinics.Get("/:id", anyRole, clinicHandler.Get)
	clinics.Post("/", masterOnly, clinicHandler.Create)
	clinics.Put("/:id", masterOnly, clinicHandler.Update)
	clinics.Delete("/:id", masterOnly, clinicHandler.Delete)
	clinics.Post("/:id/allocate", anyRole, inventoryHandler.Allocate)
	clinics.Post("/:id/stock/add", anyRole, inventoryHandler.AddStock)
	clinics.Post("/:id/stock/:materialId/open", anyRole, inventoryHandler.SetOpen)
	clinics.Post("/:id/consume", anyRole, inventoryHandler.Consume)
	clinics.Get("/:id/movements", anyRole, inventoryHandler.ListMovements)
	clinics.Delete("/:id/movements", anyRole, inventoryHandler.ClearMovements)

	// Materials
	materials := app.Group("/materials", requireAuth)
	materials.Get("/", materialHandler.List)
	materials.Get("/summary", materialHandler.Summary)
	materials.Get("/categories", materialHandler.Categories)
	materials.Get("/by-category/:category", materialHandler.ByCategory)
	materials.Get("/:id", materialHandler.Get)
	materials.Post("/", anyRole, inventoryHandler.CreateMaterial)
	materials.Post("/batch", anyRole, inventoryHandler.CreateBatch)
	materials.Put("/:id", masterOnly, inventoryHandler.UpdateMaterial)
	materials.Delete("/:id", masterOnly, materialHandler.Delete)
	materials.Post("/:id/add-stock", anyRole, inventoryHandler.AddWarehouseStock)
	materials.Post("/:id/assign-to-clinic", masterOnly, inventoryHandler.AssignToClinic)

	app.Get("/stock-movements/:id", requireAuth, inventoryHandler.GetMovement)

	// Financial transactions
	fin := app.Group("/financial-transactions", requireAuth)
	fin.Get("/", financialHandler.List)
	fin.Get("/daily-balance", financialHandler.DailyBalance)
	fin.Get("/daily-balance/pdf", financialHandler.DailyBalancePDF)
	fin.Get("/export", financialHandler.Export)
	fin.Get("/dashboard", masterOnly, financialHandler.Dashboard)
	fin.Get("/:id", financialHandler.Get)
	fin.Post("/", financialHandler.Create)
	fin.Delete("/:id", financialHandler.Delete)

	// Dashboard (Master)
	dashboard := app.Group("/dashboard", requireAuth, masterOnly)
	dashboard.Get("/financial-summary", dashboardHandler.FinancialSummary)
	dashboard.Get("/clinic/:id", dashboardHandler.ClinicDetails)
}
