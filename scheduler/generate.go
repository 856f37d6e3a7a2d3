package scheduler

import (
	"fmt"
	"time"
)

// DateRange is a closed calendar interval; both endpoints are included.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// WeekdayIndex translates time.Weekday to the Monday=0..Sunday=6 numbering
// used by the weekly template.
func WeekdayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}

// MonthRanges returns the rolling booking window: the rest of the current
// month starting today, followed by the next n full months.
func MonthRanges(now time.Time, n int) []DateRange {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	ranges := []DateRange{{Start: today, End: firstOfMonth.AddDate(0, 1, -1)}}
	for i := 0; i < n; i++ {
		firstOfMonth = firstOfMonth.AddDate(0, 1, 0)
		ranges = append(ranges, DateRange{Start: firstOfMonth, End: firstOfMonth.AddDate(0, 1, -1)})
	}
	return ranges
}

// SlotsForRange expands one template window across every date in rng whose
// weekday matches day. The generator is range-agnostic: rng need not align
// with month boundaries.
func SlotsForRange(rng DateRange, day int, startTime, endTime string) ([]DateSlotGroup, error) {
	if day < 0 || day > 6 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWeekday, day)
	}
	start, err := time.Parse(TimeLayout, startTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q: %w", startTime, err)
	}
	end, err := time.Parse(TimeLayout, endTime)
	if err != nil {
		return nil, fmt.Errorf("invalid end time %q: %w", endTime, err)
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("start time %q is not before end time %q", startTime, endTime)
	}

	var groups []DateSlotGroup
	for date := rng.Start; !date.After(rng.End); date = date.AddDate(0, 0, 1) {
		if WeekdayIndex(date.Weekday()) != day {
			continue
		}
		groups = append(groups, DateSlotGroup{
			Date:  date.Format(DateLayout),
			Slots: halfHourSlots(start, end),
		})
	}
	return groups, nil
}

// halfHourSlots cuts [start, end) into consecutive SlotMinutes slots. The
// final slot is capped at end when the remainder is shorter than a full
// slot; generation never overruns the template window.
func halfHourSlots(start, end time.Time) []Slot {
	var slots []Slot
	for cur := start; cur.Before(end); {
		next := cur.Add(SlotMinutes * time.Minute)
		if next.After(end) {
			next = end
		}
		slots = append(slots, Slot{
			StartTime:   cur.Format(TimeLayout),
			EndTime:     next.Format(TimeLayout),
			IsAvailable: true,
		})
		cur = next
	}
	return slots
}

// Generate expands every template entry across every date range. A doctor
// with no template entries yields no groups, which is not an error.
func Generate(entries []TemplateEntry, ranges []DateRange) ([]DateSlotGroup, error) {
	var groups []DateSlotGroup
	for _, rng := range ranges {
		for _, entry := range entries {
			expanded, err := SlotsForRange(rng, entry.Day, entry.StartTime, entry.EndTime)
			if err != nil {
				return nil, err
			}
			groups = append(groups, expanded...)
		}
	}
	return groups, nil
}

// Offered reports whether (startTime, endTime) is one of the slots the
// template generates for the given date. Booking a window that fails this
// check is rejected before any write happens.
func Offered(entries []TemplateEntry, date time.Time, startTime, endTime string) (bool, error) {
	day := WeekdayIndex(date.Weekday())
	single := DateRange{Start: date, End: date}
	for _, entry := range entries {
		if entry.Day != day {
			continue
		}
		groups, err := SlotsForRange(single, entry.Day, entry.StartTime, entry.EndTime)
		if err != nil {
			return false, err
		}
		for _, group := range groups {
			for _, slot := range group.Slots {
				if slot.StartTime == startTime && slot.EndTime == endTime {
					return true, nil
				}
			}
		}
	}
	return false, nil
}
