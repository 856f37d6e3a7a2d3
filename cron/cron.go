package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/medimind/clinic-backend/db"
	"github.com/medimind/clinic-backend/models"
	"github.com/medimind/clinic-backend/scheduler"
	"github.com/medimind/clinic-backend/utils"
	"github.com/robfig/cron/v3"
)

// StartCronJobs initializes and starts the cron scheduler for appointment
// reminders and overdue classification
func StartCronJobs() {
	fmt.Println("Starting cron job scheduler...")
	c := cron.New()
	// Run every minute to check for appointments in the next hour
	_, err := c.AddFunc("* * * * *", sendAppointmentReminders)
	if err != nil {
		log.Fatalf("Failed to add reminder cron job: %v", err)
	}
	// Sweep for elapsed scheduled appointments every 15 minutes
	_, err = c.AddFunc("*/15 * * * *", markOverdueAppointments)
	if err != nil {
		log.Fatalf("Failed to add overdue cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for appointment reminders and overdue sweep")
}

// markOverdueAppointments flags scheduled appointments whose window has
// elapsed. The unavailable-slot record stays; past slots are pruned from
// availability reads anyway.
func markOverdueAppointments() {
	now := utils.ToIST(time.Now())
	today := now.Format(scheduler.DateLayout)
	clock := now.Format(scheduler.TimeLayout)

	result := db.DB.Model(&models.Appointment{}).
		Where("status = ?", models.StatusScheduled).
		Where("date < ? OR (date = ? AND end_time < ?)", today, today, clock).
		Update("status", models.StatusOverdue)
	if result.Error != nil {
		log.Printf("Error marking overdue appointments: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Marked %d appointments overdue", result.RowsAffected)
	}
}

// sendAppointmentReminders checks for appointments and sends reminders
func sendAppointmentReminders() {
	now := utils.ToIST(time.Now())
	today := now.Format(scheduler.DateLayout)
	// Look for appointments starting in the next hour
	startWindow := now.Add(55 * time.Minute).Format(scheduler.TimeLayout)
	endWindow := now.Add(65 * time.Minute).Format(scheduler.TimeLayout)
	if endWindow < startWindow {
		// Window crosses midnight; tomorrow's slots get their reminder
		// on the next run after the date flips.
		return
	}

	var appointments []models.Appointment
	err := db.DB.Preload("Patient").Preload("Doctor.User").
		Where("status = ? AND date = ? AND start_time BETWEEN ? AND ?",
			models.StatusScheduled, today, startWindow, endWindow).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		if appointment.Patient.Email == "" {
			continue
		}
		// Send reminder email to patient
		err := sendReminderEmail(&appointment)
		if err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.Patient.Email)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(appointment *models.Appointment) error {
	subject := "Reminder: Upcoming Appointment"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming appointment scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Doctor:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Start Time:</strong> %s</li>
			<li><strong>End Time:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to cancel, contact the clinic as soon as possible.</p>
		<p>Best regards,</p>
		<p>Your Clinic Team</p>
	`, appointment.Patient.FirstName, appointment.Doctor.User.Name,
		appointment.Date, appointment.StartTime, appointment.EndTime)

	return utils.SendEmail(appointment.Patient.Email, subject, body)
}
