package models

import (
	"gorm.io/gorm"
)

type Specialization struct {
	gorm.Model
	Name        string `json:"name" gorm:"unique"`
	CreatedByID uint   `json:"created_by_id"`
	CreatedBy   User   `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
}

type Department struct {
	gorm.Model
	Name        string `json:"name" gorm:"unique"`
	CreatedByID uint   `json:"created_by_id"`
	CreatedBy   User   `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
}

type Doctor struct {
	gorm.Model
	UserID           uint                 `json:"user_id"`
	User             User                 `json:"user" gorm:"foreignKey:UserID"`
	OrganisationID   uint                 `json:"organisation_id"`
	Organisation     Organisation         `json:"organisation,omitempty" gorm:"foreignKey:OrganisationID"`
	SpecializationID uint                 `json:"specialization_id"`
	Specialization   Specialization       `json:"specialization,omitempty" gorm:"foreignKey:SpecializationID"`
	DepartmentID     uint                 `json:"department_id"`
	Department       Department           `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	Experience       int                  `json:"experience"`
	License          string               `json:"license" gorm:"unique"`
	OPFee            float64              `json:"op_fee"`
	AddressID        uint                 `json:"address_id"`
	Address          Address              `json:"address,omitempty" gorm:"foreignKey:AddressID"`
	Availability     []WeeklyAvailability `json:"availability,omitempty" gorm:"foreignKey:DoctorID"`
}
