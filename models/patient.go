package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

type Patient struct {
	gorm.Model
	PatientID    string        `json:"patient_id" gorm:"unique;size:50"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	DOB          string        `json:"dob" gorm:"size:10"` // Format "YYYY-MM-DD"
	Gender       Gender        `json:"gender" gorm:"size:1"`
	MobileNumber string        `json:"mobile_number" gorm:"size:15;index"`
	Email        string        `json:"email"`
	AddressID    uint          `json:"address_id"`
	Address      Address       `json:"address,omitempty" gorm:"foreignKey:AddressID"`
	Appointments []Appointment `json:"appointments,omitempty" gorm:"foreignKey:PatientID"`
}

func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.PatientID == "" {
		p.PatientID = uuid.NewString()
	}
	return nil
}
