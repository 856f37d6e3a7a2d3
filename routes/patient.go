package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/medimind/clinic-backend/controllers"
	"github.com/medimind/clinic-backend/middleware"
)

// SetupPatientRoutes configures all patient related routes
func SetupPatientRoutes(app *fiber.App) {
	patient := app.Group("/patients", middleware.Protected())
	patient.Get("/", middleware.RequirePermission("patients", "read"), controllers.GetAllPatients)
	patient.Get("/:id", middleware.RequirePermission("patients", "read"), controllers.GetPatient)
	patient.Post("/", middleware.RequirePermission("patients", "create"), controllers.CreatePatient)
	patient.Patch("/:id", middleware.RequirePermission("patients", "update"), controllers.UpdatePatient)
	patient.Delete("/:id", middleware.RequirePermission("patients", "delete"), controllers.DeletePatient)
}
