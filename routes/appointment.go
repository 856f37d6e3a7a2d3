package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/medimind/clinic-backend/controllers"
	"github.com/medimind/clinic-backend/middleware"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/appointments", middleware.Protected())
	appointment.Get("/", middleware.RequirePermission("appointments", "read"), controllers.GetAllAppointments)
	appointment.Get("/recent", middleware.RequirePermission("appointments", "read"), controllers.GetRecentAppointments)
	appointment.Get("/:id", middleware.RequirePermission("appointments", "read"), controllers.GetAppointment)
	appointment.Post("/", middleware.RequirePermission("appointments", "create"), controllers.BookAppointment)
	appointment.Post("/:id/complete", middleware.RequirePermission("appointments", "update"), controllers.CompleteAppointment)
	appointment.Delete("/:id", middleware.RequirePermission("appointments", "delete"), controllers.CancelAppointment)
}
