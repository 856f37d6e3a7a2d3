package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/medimind/clinic-backend/controllers"
	"github.com/medimind/clinic-backend/middleware"
)

// SetupDoctorRoutes configures all doctor related routes
func SetupDoctorRoutes(app *fiber.App) {
	doctor := app.Group("/doctors")
	doctor.Get("/", controllers.GetAllDoctors)
	doctor.Get("/:id", controllers.GetDoctor)
	doctor.Get("/:id/availability", controllers.GetDoctorAvailability)
	doctor.Post("/", middleware.Protected(), middleware.RequirePermission("doctors", "create"), controllers.CreateDoctor)
	doctor.Patch("/:id", middleware.Protected(), middleware.RequirePermission("doctors", "update"), controllers.UpdateDoctor)
	doctor.Put("/:id/availability", middleware.Protected(), middleware.RequirePermission("availability", "update"), controllers.SetDoctorAvailability)

	specialization := app.Group("/specializations")
	specialization.Get("/", controllers.GetSpecializations)
	specialization.Post("/", middleware.Protected(), middleware.RequireRole("admin"), controllers.CreateSpecialization)

	department := app.Group("/departments")
	department.Get("/", controllers.GetDepartments)
	department.Post("/", middleware.Protected(), middleware.RequireRole("admin"), controllers.CreateDepartment)
}
