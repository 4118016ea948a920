package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/zaiko-api/internal/application/auth"
	"github.com/jhoicas/zaiko-api/internal/application/inventory"
	"github.com/jhoicas/zaiko-api/internal/application/usecase"
	"github.com/jhoicas/zaiko-api/internal/domain/entity"
	"github.com/jhoicas/zaiko-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	SetStockUC *inventory.SetStockUseCase
	HistoryUC  *inventory.HistoryUseCase
	LowStockUC *inventory.LowStockUseCase
	ExportUC   *inventory.ExportUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
	Log        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleGuest)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Libro de stock
	inventoryHandler := NewInventoryHandler(deps.SetStockUC, deps.HistoryUC, deps.LowStockUC, deps.ExportUC, deps.Log)
	variants := protected.Group("/variants")
	variants.Patch("/:id/stock", adminOnly, inventoryHandler.SetStock)
	variants.Get("/:id/history", anyRole, inventoryHandler.VariantHistory)

	invGroup := protected.Group("/inventory")
	invGroup.Get("/history", anyRole, inventoryHandler.RecentHistory)
	invGroup.Get("/low-stock", anyRole, inventoryHandler.LowStock)
	invGroup.Get("/export.csv", anyRole, inventoryHandler.ExportCSV)
	invGroup.Get("/export.pdf", anyRole, inventoryHandler.ExportPDF)
}
