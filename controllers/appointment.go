package controllers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/medimind/clinic-backend/db"
	"github.com/medimind/clinic-backend/models"
	"github.com/medimind/clinic-backend/redis"
	"github.com/medimind/clinic-backend/scheduler"
	"github.com/medimind/clinic-backend/utils"
	"gorm.io/gorm"
)

// BookAppointmentInput is the booking request payload.
type BookAppointmentInput struct {
	DoctorID  uint   `json:"doctor_id" validate:"required"`
	PatientID uint   `json:"patient_id" validate:"required"`
	Date      string `json:"date" validate:"required,len=10"`
	StartTime string `json:"start_time" validate:"required,len=5"`
	EndTime   string `json:"end_time" validate:"required,len=5"`
}

// BookAppointment godoc
// @Summary Book an appointment slot
// @Description Creates the appointment and the unavailable-slot record that blocks the window, atomically
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointment body BookAppointmentInput true "Booking"
// @Success 201 {object} models.Appointment
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /appointments [post]
func BookAppointment(c *fiber.Ctx) error {
	input := new(BookAppointmentInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid booking payload",
			Error:   err.Error(),
		})
	}

	date, err := time.Parse(scheduler.DateLayout, input.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid date, expected YYYY-MM-DD",
			Error:   err.Error(),
		})
	}

	// Slots only exist inside the rolling window the generator covers;
	// a date before today or past the final month is never offered.
	window := scheduler.MonthRanges(utils.ToIST(time.Now()), monthsAhead())
	first := window[0].Start.Format(scheduler.DateLayout)
	last := window[len(window)-1].End.Format(scheduler.DateLayout)
	if input.Date < first || input.Date > last {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Code:    "SLOT_NOT_OFFERED",
			Message: "Requested date is outside the booking window",
		})
	}

	var doctor models.Doctor
	if err := db.DB.Preload("User").First(&doctor, input.DoctorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}
	var patient models.Patient
	if err := db.DB.First(&patient, input.PatientID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}

	var appointment models.Appointment
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		// The requested window must be one of the slots the weekly
		// template actually generates for that date.
		var rows []models.WeeklyAvailability
		if err := tx.Where("doctor_id = ?", input.DoctorID).Find(&rows).Error; err != nil {
			return err
		}
		entries, err := templateEntries(rows)
		if err != nil {
			return err
		}
		offered, err := scheduler.Offered(entries, date, input.StartTime, input.EndTime)
		if err != nil {
			return err
		}
		if !offered {
			return scheduler.ErrSlotNotOffered
		}

		var existing models.UnavailableSlot
		if tx.Where("doctor_id = ? AND date = ? AND start_time = ? AND end_time = ?",
			input.DoctorID, input.Date, input.StartTime, input.EndTime).
			First(&existing).RowsAffected > 0 {
			return scheduler.ErrSlotTaken
		}

		// The composite unique index turns a concurrent race on the same
		// window into a duplicate-key failure, rolling back both rows.
		blocked := models.UnavailableSlot{
			DoctorID:  input.DoctorID,
			Date:      input.Date,
			StartTime: input.StartTime,
			EndTime:   input.EndTime,
		}
		if err := tx.Create(&blocked).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return scheduler.ErrSlotTaken
			}
			return err
		}

		appointment = models.Appointment{
			DoctorID:  input.DoctorID,
			PatientID: input.PatientID,
			Date:      input.Date,
			StartTime: input.StartTime,
			EndTime:   input.EndTime,
		}
		return tx.Create(&appointment).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrSlotNotOffered):
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Code:    "SLOT_NOT_OFFERED",
				Message: "Doctor does not consult in the requested window",
			})
		case errors.Is(err, scheduler.ErrSlotTaken):
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Code:    "SLOT_TAKEN",
				Message: "The requested slot is already booked",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to book appointment",
				Error:   err.Error(),
			})
		}
	}

	redis.InvalidateAvailability(input.DoctorID)

	// Confirmation mail is best-effort; the booking stands either way.
	if patient.Email != "" {
		body := fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>Your appointment has been booked.</p>
			<ul>
				<li><strong>Doctor:</strong> %s</li>
				<li><strong>Date:</strong> %s</li>
				<li><strong>Time:</strong> %s - %s</li>
			</ul>
		`, patient.FirstName, doctor.User.Name, appointment.Date, appointment.StartTime, appointment.EndTime)
		if err := utils.SendEmail(patient.Email, "Appointment Confirmation", body); err != nil {
			log.Printf("Failed to send confirmation for appointment %d: %v", appointment.ID, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// GetAllAppointments returns appointments, optionally filtered by doctor
// and date range, ordered chronologically.
func GetAllAppointments(c *fiber.Ctx) error {
	query := db.DB.Preload("Doctor.User").Preload("Patient")

	if doctorID := c.Query("doctor_id"); doctorID != "" {
		query = query.Where("doctor_id = ?", doctorID)
	}
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate != "" && endDate != "" {
		query = query.Where("date BETWEEN ? AND ?", startDate, endDate)
	}

	var appointments []models.Appointment
	if err := query.Order("date, start_time").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

// GetRecentAppointments returns the most recently booked appointments,
// newest first.
func GetRecentAppointments(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var appointments []models.Appointment
	if err := db.DB.Preload("Doctor.User").Preload("Patient").
		Order("created_at DESC").Limit(limit).Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch recent appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

// GetAppointment returns an appointment by ID
func GetAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.Preload("Doctor.User").Preload("Patient").Preload("Prescription").
		First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// CancelAppointment deletes a scheduled appointment and the
// unavailable-slot record blocking its window, freeing the slot for
// future bookings.
func CancelAppointment(c *fiber.Ctx) error {
	id := c.Params("id")

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}
	if appointment.Status != models.StatusScheduled {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: fmt.Sprintf("Cannot cancel a %s appointment", appointment.Status),
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("doctor_id = ? AND date = ? AND start_time = ? AND end_time = ?",
				appointment.DoctorID, appointment.Date, appointment.StartTime, appointment.EndTime).
			Delete(&models.UnavailableSlot{}).Error; err != nil {
			return err
		}
		return tx.Delete(&appointment).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to cancel appointment",
			Error:   err.Error(),
		})
	}

	redis.InvalidateAvailability(appointment.DoctorID)

	return c.SendStatus(fiber.StatusNoContent)
}

// CompleteAppointmentInput carries the prescription written at the end of
// a consultation.
type CompleteAppointmentInput struct {
	Observations string              `json:"observations"`
	Diagnosis    string              `json:"diagnosis"`
	Medications  []models.Medication `json:"medications"`
}

// CompleteAppointment transitions a scheduled appointment to completed
// and records its prescription.
func CompleteAppointment(c *fiber.Ctx) error {
	id := c.Params("id")

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	input := new(CompleteAppointmentInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := appointment.UpdateStatus(tx, models.StatusCompleted); err != nil {
			return err
		}
		prescription := models.Prescription{
			AppointmentID: appointment.ID,
			Observations:  input.Observations,
			Diagnosis:     input.Diagnosis,
			Medications:   input.Medications,
		}
		return tx.Create(&prescription).Error
	})
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Failed to complete appointment",
			Error:   err.Error(),
		})
	}

	return c.JSON(appointment)
}
