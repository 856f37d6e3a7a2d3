package models

import (
	"fmt"

	"gorm.io/gorm"
)

// DayOfWeek is the three-letter weekday code used by weekly availability
// templates ("MON" through "SUN").
type DayOfWeek string

const (
	Monday    DayOfWeek = "MON"
	Tuesday   DayOfWeek = "TUE"
	Wednesday DayOfWeek = "WED"
	Thursday  DayOfWeek = "THU"
	Friday    DayOfWeek = "FRI"
	Saturday  DayOfWeek = "SAT"
	Sunday    DayOfWeek = "SUN"
)

var dayIndex = map[DayOfWeek]int{
	Monday:    0,
	Tuesday:   1,
	Wednesday: 2,
	Thursday:  3,
	Friday:    4,
	Saturday:  5,
	Sunday:    6,
}

// Weekday returns the weekday number used by slot generation,
// Monday=0 through Sunday=6.
func (d DayOfWeek) Weekday() (int, error) {
	idx, ok := dayIndex[d]
	if !ok {
		return 0, fmt.Errorf("invalid day of week: %q", d)
	}
	return idx, nil
}

// ParseDayOfWeek validates a weekday code from a request payload.
func ParseDayOfWeek(code string) (DayOfWeek, error) {
	d := DayOfWeek(code)
	if _, ok := dayIndex[d]; !ok {
		return "", fmt.Errorf("invalid day of week: %q", code)
	}
	return d, nil
}

// WeeklyAvailability is one recurring availability window for a doctor.
// A doctor has at most one window per weekday; a schedule update replaces
// all of the doctor's rows wholesale.
type WeeklyAvailability struct {
	gorm.Model
	DoctorID  uint      `json:"doctor_id" gorm:"uniqueIndex:idx_doctor_day"`
	Doctor    Doctor    `json:"-" gorm:"foreignKey:DoctorID"`
	DayOfWeek DayOfWeek `json:"day_of_week" gorm:"size:3;uniqueIndex:idx_doctor_day"`
	StartTime string    `json:"start_time"` // Format "HH:MM" in 24h
	EndTime   string    `json:"end_time"`
}

// UnavailableSlot blocks one concrete slot on one date. Rows are created
// when an appointment is booked and deleted when it is cancelled; the
// composite unique index is what makes concurrent double-booking fail.
type UnavailableSlot struct {
	gorm.Model
	DoctorID  uint   `json:"doctor_id" gorm:"uniqueIndex:idx_doctor_slot"`
	Doctor    Doctor `json:"-" gorm:"foreignKey:DoctorID"`
	Date      string `json:"date" gorm:"size:10;uniqueIndex:idx_doctor_slot"` // Format "YYYY-MM-DD"
	StartTime string `json:"start_time" gorm:"size:5;uniqueIndex:idx_doctor_slot"`
	EndTime   string `json:"end_time" gorm:"size:5;uniqueIndex:idx_doctor_slot"`
}
