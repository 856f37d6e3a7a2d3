package models

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&Role{}, &User{}, &Organisation{}, &Address{},
		&Specialization{}, &Department{}, &Doctor{}, &Patient{},
		&WeeklyAvailability{}, &UnavailableSlot{},
		&Appointment{}, &Prescription{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestAppointmentDefaultsToScheduled(t *testing.T) {
	db := openTestDB(t)

	appt := Appointment{DoctorID: 1, PatientID: 1, Date: "2024-06-10", StartTime: "09:00", EndTime: "09:30"}
	if err := db.Create(&appt).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if appt.Status != StatusScheduled {
		t.Errorf("got status %s, want %s", appt.Status, StatusScheduled)
	}
}

func TestAppointmentStatusTransitions(t *testing.T) {
	cases := []struct {
		name    string
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{"scheduled to completed", StatusScheduled, StatusCompleted, true},
		{"scheduled to overdue", StatusScheduled, StatusOverdue, true},
		{"scheduled to scheduled", StatusScheduled, StatusScheduled, false},
		{"completed is terminal", StatusCompleted, StatusOverdue, false},
		{"overdue is terminal", StatusOverdue, StatusCompleted, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := openTestDB(t)
			appt := Appointment{DoctorID: 1, PatientID: 1, Status: tc.from, Date: "2024-06-10", StartTime: "09:00", EndTime: "09:30"}
			if err := db.Create(&appt).Error; err != nil {
				t.Fatalf("create: %v", err)
			}

			err := appt.UpdateStatus(db, tc.to)
			if tc.allowed {
				if err != nil {
					t.Fatalf("transition rejected: %v", err)
				}
				var reloaded Appointment
				if err := db.First(&reloaded, appt.ID).Error; err != nil {
					t.Fatalf("reload: %v", err)
				}
				if reloaded.Status != tc.to {
					t.Errorf("persisted status %s, want %s", reloaded.Status, tc.to)
				}
			} else {
				if err == nil {
					t.Fatal("expected transition to be rejected")
				}
				var reloaded Appointment
				if err := db.First(&reloaded, appt.ID).Error; err != nil {
					t.Fatalf("reload: %v", err)
				}
				if reloaded.Status != tc.from {
					t.Errorf("status changed to %s despite rejection", reloaded.Status)
				}
			}
		})
	}
}

func TestUnavailableSlotUniqueIndex(t *testing.T) {
	db := openTestDB(t)

	slot := UnavailableSlot{DoctorID: 1, Date: "2024-06-10", StartTime: "09:00", EndTime: "09:30"}
	if err := db.Create(&slot).Error; err != nil {
		t.Fatalf("first create: %v", err)
	}

	dup := UnavailableSlot{DoctorID: 1, Date: "2024-06-10", StartTime: "09:00", EndTime: "09:30"}
	err := db.Create(&dup).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected ErrDuplicatedKey, got %v", err)
	}

	// Same window is fine for another doctor or another date.
	other := UnavailableSlot{DoctorID: 2, Date: "2024-06-10", StartTime: "09:00", EndTime: "09:30"}
	if err := db.Create(&other).Error; err != nil {
		t.Errorf("different doctor should not collide: %v", err)
	}
	nextWeek := UnavailableSlot{DoctorID: 1, Date: "2024-06-17", StartTime: "09:00", EndTime: "09:30"}
	if err := db.Create(&nextWeek).Error; err != nil {
		t.Errorf("different date should not collide: %v", err)
	}
}

func TestPatientGetsPublicID(t *testing.T) {
	db := openTestDB(t)

	p := Patient{FirstName: "Asha", LastName: "Rao", MobileNumber: "9999999999"}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.PatientID == "" {
		t.Error("expected a generated patient id")
	}

	q := Patient{FirstName: "Ira", LastName: "Shah", MobileNumber: "8888888888"}
	if err := db.Create(&q).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if q.PatientID == p.PatientID {
		t.Error("patient ids must be unique")
	}
}
