package db

import (
	"fmt"
	"log"

	"github.com/medimind/clinic-backend/models"
)

func Migrate() {
	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.Address{},
		&models.Organisation{},
		&models.Specialization{},
		&models.Department{},
		&models.Doctor{},
		&models.WeeklyAvailability{},
		&models.UnavailableSlot{},
		&models.Patient{},
		&models.Appointment{},
		&models.Prescription{},
		&models.Category{},
		&models.Medicine{},
		&models.MedicineStock{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	seedRolesAndPermissions()

	fmt.Println("✅ Migrations applied successfully!")
}

// seedRolesAndPermissions makes sure the default roles and the permissions
// the route middleware checks against exist.
func seedRolesAndPermissions() {
	roles := []models.Role{
		{Name: "admin", Description: "Administrator with full access"},
		{Name: "doctor", Description: "Doctor who manages availability and consultations"},
		{Name: "pharmacist", Description: "Pharmacy staff managing inventory and billing"},
		{Name: "receptionist", Description: "Front desk staff who schedule appointments"},
	}
	for _, role := range roles {
		var existing models.Role
		if DB.Where("name = ?", role.Name).First(&existing).RowsAffected == 0 {
			DB.Create(&role)
		}
	}

	for _, resource := range models.KnownResources {
		for _, action := range models.KnownActions {
			name := fmt.Sprintf("%s_%s", action, resource)
			var existing models.Permission
			if DB.Where("name = ?", name).First(&existing).RowsAffected == 0 {
				DB.Create(&models.Permission{
					Name:     name,
					Resource: resource,
					Action:   action,
				})
			}
		}
	}

	// Admin gets everything.
	var adminRole models.Role
	if DB.Where("name = ?", "admin").First(&adminRole).RowsAffected > 0 {
		var allPermissions []models.Permission
		DB.Find(&allPermissions)
		DB.Model(&adminRole).Association("Permissions").Clear()
		DB.Model(&adminRole).Association("Permissions").Append(allPermissions)
	}

	// Doctors manage their own availability and read/update appointments.
	var doctorRole models.Role
	if DB.Where("name = ?", "doctor").First(&doctorRole).RowsAffected > 0 {
		var doctorPermissions []models.Permission
		DB.Where("resource IN (?)", []string{"availability", "appointments", "patients"}).
			Where("action IN (?)", []string{"create", "read", "update"}).
			Find(&doctorPermissions)
		DB.Model(&doctorRole).Association("Permissions").Clear()
		DB.Model(&doctorRole).Association("Permissions").Append(doctorPermissions)
	}

	// Receptionists run scheduling and patient intake.
	var receptionistRole models.Role
	if DB.Where("name = ?", "receptionist").First(&receptionistRole).RowsAffected > 0 {
		var receptionistPermissions []models.Permission
		DB.Where("resource IN (?)", []string{"appointments", "patients", "doctors"}).
			Where("action IN (?)", []string{"create", "read", "update", "delete"}).
			Find(&receptionistPermissions)
		DB.Model(&receptionistRole).Association("Permissions").Clear()
		DB.Model(&receptionistRole).Association("Permissions").Append(receptionistPermissions)
	}

	// Pharmacists own the inventory.
	var pharmacistRole models.Role
	if DB.Where("name = ?", "pharmacist").First(&pharmacistRole).RowsAffected > 0 {
		var pharmacistPermissions []models.Permission
		DB.Where("resource = ? OR (resource IN (?) AND action = ?)",
			"inventory", []string{"patients", "appointments"}, "read").
			Find(&pharmacistPermissions)
		DB.Model(&pharmacistRole).Association("Permissions").Clear()
		DB.Model(&pharmacistRole).Association("Permissions").Append(pharmacistPermissions)
	}
}
