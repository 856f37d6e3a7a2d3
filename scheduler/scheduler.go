// Package scheduler computes bookable appointment slots for a doctor. A
// weekly availability template is expanded into half-hour slots across
// rolling calendar windows, then reconciled against one-off unavailable
// slots so callers see an up-to-date, date-ordered picture of what can
// still be booked.
package scheduler

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	// SlotMinutes is the booking granularity. A template window whose
	// length is not a multiple of it ends with a truncated final slot.
	SlotMinutes = 30
)

var (
	// ErrInvalidWeekday reports a weekday number outside 0..6. This is a
	// caller bug and fails the whole request.
	ErrInvalidWeekday = errors.New("invalid weekday")

	// ErrSlotNotOffered means the requested window is not part of the
	// doctor's weekly template.
	ErrSlotNotOffered = errors.New("slot not offered")

	// ErrSlotTaken means an unavailable-slot record already blocks the
	// requested window.
	ErrSlotTaken = errors.New("slot already taken")
)

// Slot is one bookable time window on a specific date. It is never
// persisted; slots are recomputed on every availability read.
type Slot struct {
	StartTime   string
	EndTime     string
	IsAvailable bool
}

// MarshalJSON renders the slot in its wire form: ["09:00","09:30",true].
func (s Slot) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]interface{}{s.StartTime, s.EndTime, s.IsAvailable})
}

// UnmarshalJSON accepts the tuple form produced by MarshalJSON.
func (s *Slot) UnmarshalJSON(data []byte) error {
	var tuple [3]json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if err := json.Unmarshal(tuple[0], &s.StartTime); err != nil {
		return fmt.Errorf("slot start_time: %w", err)
	}
	if err := json.Unmarshal(tuple[1], &s.EndTime); err != nil {
		return fmt.Errorf("slot end_time: %w", err)
	}
	if err := json.Unmarshal(tuple[2], &s.IsAvailable); err != nil {
		return fmt.Errorf("slot availability: %w", err)
	}
	return nil
}

// DateSlotGroup is all slots for one calendar date, in chronological order.
type DateSlotGroup struct {
	Date  string `json:"date"`
	Slots []Slot `json:"slots"`
}

// TemplateEntry is one weekly availability window, already translated to
// the Monday=0..Sunday=6 weekday numbering.
type TemplateEntry struct {
	Day       int
	StartTime string
	EndTime   string
}

// Exception is one unavailable slot to subtract during reconciliation.
type Exception struct {
	Date      string
	StartTime string
	EndTime   string
}
