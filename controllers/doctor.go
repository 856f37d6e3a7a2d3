package controllers

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/medimind/clinic-backend/db"
	"github.com/medimind/clinic-backend/models"
	"github.com/medimind/clinic-backend/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var validate = validator.New()

// AvailabilityEntryInput is one weekly template window in a doctor
// create/update payload.
type AvailabilityEntryInput struct {
	DayOfWeek string `json:"day_of_week" validate:"required"`
	StartTime string `json:"start_time" validate:"required,len=5"`
	EndTime   string `json:"end_time" validate:"required,len=5"`
}

// CreateDoctorInput registers a doctor together with their login, address
// and weekly availability template in one shot.
type CreateDoctorInput struct {
	User struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	} `json:"user" validate:"required"`
	OrganisationID   uint                     `json:"organisation_id"`
	SpecializationID uint                     `json:"specialization_id" validate:"required"`
	DepartmentID     uint                     `json:"department_id" validate:"required"`
	Experience       int                      `json:"experience"`
	License          string                   `json:"license" validate:"required"`
	OPFee            float64                  `json:"op_fee"`
	Address          models.Address           `json:"address"`
	Availability     []AvailabilityEntryInput `json:"availability" validate:"dive"`
}

// CreateDoctor godoc
// @Summary Register a new doctor
// @Description Creates the doctor's user account, address and weekly availability template in one transaction
// @Tags doctors
// @Accept json
// @Produce json
// @Param doctor body CreateDoctorInput true "Doctor"
// @Success 201 {object} models.Doctor
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /doctors [post]
func CreateDoctor(c *fiber.Ctx) error {
	input := new(CreateDoctorInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid doctor payload",
			Error:   err.Error(),
		})
	}

	// Weekday codes are validated up front so a bad entry fails the whole
	// request before anything is written.
	entries, err := availabilityRows(input.Availability)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Code:    "INVALID_WEEKDAY",
			Message: "Invalid availability entry",
			Error:   err.Error(),
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.User.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to hash password",
			Error:   err.Error(),
		})
	}

	var doctor models.Doctor
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var doctorRole models.Role
		if err := tx.Where("name = ?", "doctor").First(&doctorRole).Error; err != nil {
			return err
		}

		user := models.User{
			Name:     input.User.Name,
			Email:    input.User.Email,
			Password: string(hashedPassword),
			RoleID:   doctorRole.ID,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		address := input.Address
		if err := tx.Create(&address).Error; err != nil {
			return err
		}

		doctor = models.Doctor{
			UserID:           user.ID,
			OrganisationID:   input.OrganisationID,
			SpecializationID: input.SpecializationID,
			DepartmentID:     input.DepartmentID,
			Experience:       input.Experience,
			License:          input.License,
			OPFee:            input.OPFee,
			AddressID:        address.ID,
		}
		if err := tx.Create(&doctor).Error; err != nil {
			return err
		}

		for i := range entries {
			entries[i].DoctorID = doctor.ID
		}
		if len(entries) > 0 {
			if err := tx.Create(&entries).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create doctor",
			Error:   err.Error(),
		})
	}

	db.DB.Preload("User").Preload("Specialization").Preload("Department").
		Preload("Address").Preload("Availability").First(&doctor, doctor.ID)
	doctor.User.Password = ""

	return c.Status(fiber.StatusCreated).JSON(doctor)
}

// GetAllDoctors returns doctors with pagination
func GetAllDoctors(c *fiber.Ctx) error {
	var doctors []models.Doctor

	// Get pagination parameters
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	offset := (page - 1) * limit

	if err := db.DB.Preload("User").Preload("Specialization").Preload("Department").
		Limit(limit).
		Offset(offset).
		Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch doctors",
			Error:   err.Error(),
		})
	}

	for i := range doctors {
		doctors[i].User.Password = ""
	}

	var count int64
	db.DB.Model(&models.Doctor{}).Count(&count)

	return c.JSON(fiber.Map{
		"doctors": doctors,
		"total":   count,
		"page":    page,
		"limit":   limit,
		"pages":   (int(count) + limit - 1) / limit,
	})
}

// GetDoctor returns one doctor with their weekly template
func GetDoctor(c *fiber.Ctx) error {
	id := c.Params("id")

	var doctor models.Doctor
	if err := db.DB.Preload("User").Preload("Specialization").Preload("Department").
		Preload("Address").Preload("Availability").First(&doctor, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}

	doctor.User.Password = ""

	return c.JSON(doctor)
}

// UpdateDoctor updates doctor fields; the availability template has its
// own endpoint with full-replace semantics.
func UpdateDoctor(c *fiber.Ctx) error {
	id := c.Params("id")

	var doctor models.Doctor
	if err := db.DB.First(&doctor, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}

	type UpdateDoctorInput struct {
		SpecializationID *uint    `json:"specialization_id"`
		DepartmentID     *uint    `json:"department_id"`
		Experience       *int     `json:"experience"`
		OPFee            *float64 `json:"op_fee"`
	}
	input := new(UpdateDoctorInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.SpecializationID != nil {
		doctor.SpecializationID = *input.SpecializationID
	}
	if input.DepartmentID != nil {
		doctor.DepartmentID = *input.DepartmentID
	}
	if input.Experience != nil {
		doctor.Experience = *input.Experience
	}
	if input.OPFee != nil {
		doctor.OPFee = *input.OPFee
	}

	if err := db.DB.Save(&doctor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update doctor",
			Error:   err.Error(),
		})
	}

	return c.JSON(doctor)
}

// CreateSpecialization creates a new specialization
func CreateSpecialization(c *fiber.Ctx) error {
	specialization := new(models.Specialization)
	if err := c.BodyParser(specialization); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if specialization.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Specialization name is required",
		})
	}
	if userID, ok := c.Locals("userID").(uint); ok {
		specialization.CreatedByID = userID
	}
	if err := db.DB.Create(specialization).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create specialization",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(specialization)
}

// GetSpecializations returns all specializations
func GetSpecializations(c *fiber.Ctx) error {
	var specializations []models.Specialization
	if err := db.DB.Find(&specializations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch specializations",
			Error:   err.Error(),
		})
	}
	return c.JSON(specializations)
}

// CreateDepartment creates a new department
func CreateDepartment(c *fiber.Ctx) error {
	department := new(models.Department)
	if err := c.BodyParser(department); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if department.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Department name is required",
		})
	}
	if userID, ok := c.Locals("userID").(uint); ok {
		department.CreatedByID = userID
	}
	if err := db.DB.Create(department).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create department",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(department)
}

// GetDepartments returns all departments
func GetDepartments(c *fiber.Ctx) error {
	var departments []models.Department
	if err := db.DB.Find(&departments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch departments",
			Error:   err.Error(),
		})
	}
	return c.JSON(departments)
}

// availabilityRows converts validated payload entries to template rows.
// A doctor has one window per weekday, so a repeated day code is rejected
// here instead of tripping the unique index mid-transaction.
func availabilityRows(inputs []AvailabilityEntryInput) ([]models.WeeklyAvailability, error) {
	rows := make([]models.WeeklyAvailability, 0, len(inputs))
	seen := make(map[models.DayOfWeek]bool, len(inputs))
	for _, in := range inputs {
		day, err := models.ParseDayOfWeek(in.DayOfWeek)
		if err != nil {
			return nil, err
		}
		if seen[day] {
			return nil, fmt.Errorf("duplicate day of week: %q", in.DayOfWeek)
		}
		seen[day] = true
		rows = append(rows, models.WeeklyAvailability{
			DayOfWeek: day,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
		})
	}
	return rows, nil
}
