package controllers

import (
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/medimind/clinic-backend/db"
	"github.com/medimind/clinic-backend/models"
	"github.com/medimind/clinic-backend/redis"
	"github.com/medimind/clinic-backend/scheduler"
	"github.com/medimind/clinic-backend/utils"
	"gorm.io/gorm"
)

// monthsAhead is how many full months beyond the current one the booking
// window covers.
func monthsAhead() int {
	if v := os.Getenv("AVAILABILITY_MONTHS_AHEAD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 3
}

// templateEntries projects a doctor's weekly template rows into the
// generator's representation.
func templateEntries(rows []models.WeeklyAvailability) ([]scheduler.TemplateEntry, error) {
	entries := make([]scheduler.TemplateEntry, 0, len(rows))
	for _, row := range rows {
		day, err := row.DayOfWeek.Weekday()
		if err != nil {
			return nil, err
		}
		entries = append(entries, scheduler.TemplateEntry{
			Day:       day,
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
		})
	}
	return entries, nil
}

// doctorExceptions loads a doctor's unavailable slots as reconciler input.
func doctorExceptions(tx *gorm.DB, doctorID uint) ([]scheduler.Exception, error) {
	var rows []models.UnavailableSlot
	if err := tx.Where("doctor_id = ?", doctorID).Find(&rows).Error; err != nil {
		return nil, err
	}
	exceptions := make([]scheduler.Exception, 0, len(rows))
	for _, row := range rows {
		exceptions = append(exceptions, scheduler.Exception{
			Date:      row.Date,
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
		})
	}
	return exceptions, nil
}

// GetDoctorAvailability godoc
// @Summary Get a doctor's bookable slots
// @Description Expands the doctor's weekly template over the rolling booking window and subtracts booked slots
// @Tags doctors
// @Produce json
// @Param id path int true "Doctor ID"
// @Success 200 {array} scheduler.DateSlotGroup
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /doctors/{id}/availability [get]
func GetDoctorAvailability(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid doctor id",
			Error:   err.Error(),
		})
	}
	doctorID := uint(id)

	var doctor models.Doctor
	if err := db.DB.First(&doctor, doctorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}

	if cached := redis.GetCachedAvailability(doctorID); cached != nil {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(cached)
	}

	var rows []models.WeeklyAvailability
	if err := db.DB.Where("doctor_id = ?", doctorID).Find(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch availability template",
			Error:   err.Error(),
		})
	}

	// A doctor with no template has no bookable slots; that is an empty
	// list, not an error.
	groups := []scheduler.DateSlotGroup{}
	if len(rows) > 0 {
		entries, err := templateEntries(rows)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Code:    "INVALID_WEEKDAY",
				Message: "Corrupt availability template",
				Error:   err.Error(),
			})
		}

		now := utils.ToIST(time.Now())
		generated, err := scheduler.Generate(entries, scheduler.MonthRanges(now, monthsAhead()))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to generate slots",
				Error:   err.Error(),
			})
		}

		exceptions, err := doctorExceptions(db.DB, doctorID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to fetch unavailable slots",
				Error:   err.Error(),
			})
		}

		if reconciled := scheduler.Reconcile(generated, exceptions, now); reconciled != nil {
			groups = reconciled
		}
	}

	payload, err := json.Marshal(groups)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to encode availability",
			Error:   err.Error(),
		})
	}
	redis.CacheAvailability(doctorID, payload)

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}

// SetDoctorAvailability godoc
// @Summary Replace a doctor's weekly availability template
// @Description Deletes the doctor's existing template rows and inserts the new entries in one transaction
// @Tags doctors
// @Accept json
// @Produce json
// @Param id path int true "Doctor ID"
// @Success 200 {array} models.WeeklyAvailability
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /doctors/{id}/availability [put]
func SetDoctorAvailability(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid doctor id",
			Error:   err.Error(),
		})
	}
	doctorID := uint(id)

	var doctor models.Doctor
	if err := db.DB.First(&doctor, doctorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}

	type SetAvailabilityInput struct {
		Entries []AvailabilityEntryInput `json:"entries" validate:"required,dive"`
	}
	input := new(SetAvailabilityInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid availability payload",
			Error:   err.Error(),
		})
	}

	rows, err := availabilityRows(input.Entries)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Code:    "INVALID_WEEKDAY",
			Message: "Invalid availability entry",
			Error:   err.Error(),
		})
	}
	for i := range rows {
		rows[i].DoctorID = doctorID
	}

	// Full replace: the old template rows go away with the new ones
	// committed in the same transaction.
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("doctor_id = ?", doctorID).Delete(&models.WeeklyAvailability{}).Error; err != nil {
			return err
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to replace availability template",
			Error:   err.Error(),
		})
	}

	redis.InvalidateAvailability(doctorID)

	return c.JSON(rows)
}
