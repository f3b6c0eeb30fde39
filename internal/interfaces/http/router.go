package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stocks-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC *usecase.ProductUseCase
	StockUC   *usecase.StockUseCase
	AdminUC   *usecase.AdminUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Stocks (almacenes con posiciones anidadas)
	stocks := api.Group("/stocks")
	stockHandler := NewStockHandler(deps.StockUC)
	stocks.Get("/", stockHandler.List)
	stocks.Post("/", stockHandler.Create)
	stocks.Get("/:id", stockHandler.GetByID)
	stocks.Put("/:id", stockHandler.Update)
	stocks.Patch("/:id", stockHandler.Update)
	stocks.Delete("/:id", stockHandler.Delete)

	// Administración (gestión directa de registros)
	admin := api.Group("/admin")
	adminHandler := NewAdminHandler(deps.AdminUC)
	admin.Get("/stocks/summary", adminHandler.StocksSummary)
	admin.Get("/positions", adminHandler.ListPositions)
	admin.Post("/positions", adminHandler.CreatePosition)
	admin.Put("/positions/:id", adminHandler.UpdatePosition)
	admin.Delete("/positions/:id", adminHandler.DeletePosition)
}
