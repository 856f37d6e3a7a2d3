package models

import (
	"fmt"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "SHD"
	StatusCompleted AppointmentStatus = "COM"
	StatusOverdue   AppointmentStatus = "OD"
)

type Appointment struct {
	gorm.Model
	DoctorID           uint              `json:"doctor_id" gorm:"index"`
	Doctor             Doctor            `json:"doctor" gorm:"foreignKey:DoctorID"`
	PatientID          uint              `json:"patient_id" gorm:"index"`
	Patient            Patient           `json:"patient" gorm:"foreignKey:PatientID"`
	Status             AppointmentStatus `json:"status" gorm:"size:3"`
	Date               string            `json:"date" gorm:"size:10;index"` // Format "YYYY-MM-DD"
	StartTime          string            `json:"start_time" gorm:"size:5"`  // Format "HH:MM" in 24h
	EndTime            string            `json:"end_time" gorm:"size:5"`
	PrescriptionBought bool              `json:"prescription_bought"`
	Prescription       *Prescription     `json:"prescription,omitempty" gorm:"foreignKey:AppointmentID"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	return nil
}

// UpdateStatus enforces the appointment state machine: a scheduled
// appointment either completes (visit happened, prescription written) or
// goes overdue (its window elapsed). Completed and overdue are terminal.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	switch a.Status {
	case StatusScheduled:
		if newStatus != StatusCompleted && newStatus != StatusOverdue {
			return fmt.Errorf("invalid transition from %s to %s", a.Status, newStatus)
		}
	default:
		return fmt.Errorf("no transitions allowed from %s", a.Status)
	}

	a.Status = newStatus
	return tx.Save(a).Error
}
