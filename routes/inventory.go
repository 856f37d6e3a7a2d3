package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/medimind/clinic-backend/controllers"
	"github.com/medimind/clinic-backend/middleware"
)

// SetupInventoryRoutes configures all pharmacy inventory related routes
func SetupInventoryRoutes(app *fiber.App) {
	inventory := app.Group("/inventory", middleware.Protected())

	inventory.Get("/categories", middleware.RequirePermission("inventory", "read"), controllers.GetCategories)
	inventory.Post("/categories", middleware.RequirePermission("inventory", "create"), controllers.CreateCategory)

	inventory.Get("/medicines", middleware.RequirePermission("inventory", "read"), controllers.GetAllMedicines)
	inventory.Get("/medicines/low-stock", middleware.RequirePermission("inventory", "read"), controllers.GetLowStockMedicines)
	inventory.Get("/medicines/:id", middleware.RequirePermission("inventory", "read"), controllers.GetMedicine)
	inventory.Post("/medicines", middleware.RequirePermission("inventory", "create"), controllers.CreateMedicine)
	inventory.Put("/medicines/:id/stock", middleware.RequirePermission("inventory", "update"), controllers.UpdateStock)
}
