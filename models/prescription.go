package models

import (
	"database/sql/driver"
	"fmt"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
)

// Medication is one prescribed medicine line.
type Medication struct {
	Name   string `json:"name"`
	Count  int    `json:"count"`
	Timing string `json:"timing"` // e.g. "after meals, twice a day"
}

// MedicationList stores the prescribed medicines as a JSONB column.
type MedicationList []Medication

// Value implements the driver.Valuer interface
func (m MedicationList) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil // Return as string for JSONB type
}

// Scan implements the sql.Scanner interface
func (m *MedicationList) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal MedicationList: unsupported type %T", value)
	}

	return json.Unmarshal(data, m)
}

type Prescription struct {
	gorm.Model
	AppointmentID uint           `json:"appointment_id" gorm:"uniqueIndex"`
	Observations  string         `json:"observations"`
	Diagnosis     string         `json:"diagnosis"`
	Medications   MedicationList `json:"medications" gorm:"type:jsonb"`
}
