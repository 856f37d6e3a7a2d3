package controllers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/medimind/clinic-backend/db"
	"github.com/medimind/clinic-backend/models"
	"github.com/medimind/clinic-backend/utils"
	"gorm.io/gorm"
)

// CreatePatientInput registers a patient, optionally with an address.
type CreatePatientInput struct {
	FirstName    string          `json:"first_name" validate:"required"`
	LastName     string          `json:"last_name"`
	DOB          string          `json:"dob" validate:"required,len=10"`
	Gender       string          `json:"gender" validate:"required,oneof=M F O"`
	MobileNumber string          `json:"mobile_number" validate:"required"`
	Email        string          `json:"email" validate:"omitempty,email"`
	Address      *models.Address `json:"address"`
}

// CreatePatient registers a new patient
func CreatePatient(c *fiber.Ctx) error {
	input := new(CreatePatientInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid patient payload",
			Error:   err.Error(),
		})
	}

	patient := models.Patient{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		DOB:          input.DOB,
		Gender:       models.Gender(input.Gender),
		MobileNumber: input.MobileNumber,
		Email:        input.Email,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if input.Address != nil {
			if err := tx.Create(input.Address).Error; err != nil {
				return err
			}
			patient.AddressID = input.Address.ID
		}
		return tx.Create(&patient).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create patient",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(patient)
}

// GetAllPatients returns patients with pagination and optional search on
// name or mobile number.
func GetAllPatients(c *fiber.Ctx) error {
	var patients []models.Patient

	// Get pagination parameters
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	offset := (page - 1) * limit

	query := db.DB.Model(&models.Patient{})
	if q := c.Query("q"); q != "" {
		searchQuery := fmt.Sprintf("%%%s%%", q)
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR mobile_number LIKE ?",
			searchQuery, searchQuery, searchQuery)
	}

	var count int64
	query.Count(&count)

	if err := query.Limit(limit).Offset(offset).Order("id DESC").Find(&patients).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch patients",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"patients": patients,
		"total":    count,
		"page":     page,
		"limit":    limit,
		"pages":    (int(count) + limit - 1) / limit,
	})
}

// GetPatient returns a patient with their appointment history
func GetPatient(c *fiber.Ctx) error {
	id := c.Params("id")
	var patient models.Patient
	if err := db.DB.Preload("Address").Preload("Appointments").First(&patient, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(patient)
}

// UpdatePatient updates patient contact details
func UpdatePatient(c *fiber.Ctx) error {
	id := c.Params("id")
	var patient models.Patient
	if err := db.DB.First(&patient, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}

	type UpdatePatientInput struct {
		FirstName    *string `json:"first_name"`
		LastName     *string `json:"last_name"`
		MobileNumber *string `json:"mobile_number"`
		Email        *string `json:"email"`
	}
	input := new(UpdatePatientInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.FirstName != nil {
		patient.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		patient.LastName = *input.LastName
	}
	if input.MobileNumber != nil {
		patient.MobileNumber = *input.MobileNumber
	}
	if input.Email != nil {
		patient.Email = *input.Email
	}

	if err := db.DB.Save(&patient).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update patient",
			Error:   err.Error(),
		})
	}
	return c.JSON(patient)
}

// DeletePatient removes a patient record
func DeletePatient(c *fiber.Ctx) error {
	id := c.Params("id")
	var patient models.Patient
	if err := db.DB.First(&patient, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}
	if err := db.DB.Delete(&patient).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete patient",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
