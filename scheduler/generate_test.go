package scheduler

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthRanges(t *testing.T) {
	// Mid-month start: the first range is the rest of June.
	now := time.Date(2024, time.June, 10, 14, 30, 0, 0, time.UTC)
	ranges := MonthRanges(now, 3)

	if len(ranges) != 4 {
		t.Fatalf("expected 4 ranges, got %d", len(ranges))
	}

	expected := []DateRange{
		{Start: date(2024, time.June, 10), End: date(2024, time.June, 30)},
		{Start: date(2024, time.July, 1), End: date(2024, time.July, 31)},
		{Start: date(2024, time.August, 1), End: date(2024, time.August, 31)},
		{Start: date(2024, time.September, 1), End: date(2024, time.September, 30)},
	}
	for i, want := range expected {
		if !ranges[i].Start.Equal(want.Start) || !ranges[i].End.Equal(want.End) {
			t.Errorf("range %d: got [%v, %v], want [%v, %v]",
				i, ranges[i].Start, ranges[i].End, want.Start, want.End)
		}
	}
}

func TestMonthRangesYearRollover(t *testing.T) {
	now := time.Date(2024, time.November, 20, 9, 0, 0, 0, time.UTC)
	ranges := MonthRanges(now, 3)

	last := ranges[len(ranges)-1]
	if !last.Start.Equal(date(2025, time.February, 1)) || !last.End.Equal(date(2025, time.February, 28)) {
		t.Errorf("expected final range to be Feb 2025, got [%v, %v]", last.Start, last.End)
	}
}

func TestWeekdayIndex(t *testing.T) {
	cases := []struct {
		weekday time.Weekday
		want    int
	}{
		{time.Monday, 0},
		{time.Tuesday, 1},
		{time.Saturday, 5},
		{time.Sunday, 6},
	}
	for _, tc := range cases {
		if got := WeekdayIndex(tc.weekday); got != tc.want {
			t.Errorf("WeekdayIndex(%v) = %d, want %d", tc.weekday, got, tc.want)
		}
	}
}

func TestSlotsForRangeExactMultiple(t *testing.T) {
	// 2024-06-10 is a Monday. Two hours yield exactly four slots.
	rng := DateRange{Start: date(2024, time.June, 10), End: date(2024, time.June, 10)}
	groups, err := SlotsForRange(rng, 0, "09:00", "11:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}

	slots := groups[0].Slots
	if len(slots) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(slots))
	}
	want := []Slot{
		{"09:00", "09:30", true},
		{"09:30", "10:00", true},
		{"10:00", "10:30", true},
		{"10:30", "11:00", true},
	}
	for i, s := range slots {
		if s != want[i] {
			t.Errorf("slot %d: got %+v, want %+v", i, s, want[i])
		}
	}
}

func TestSlotsForRangeTruncatedFinalSlot(t *testing.T) {
	rng := DateRange{Start: date(2024, time.June, 10), End: date(2024, time.June, 10)}
	groups, err := SlotsForRange(rng, 0, "09:00", "10:15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	slots := groups[0].Slots
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	last := slots[len(slots)-1]
	if last.StartTime != "10:00" || last.EndTime != "10:15" {
		t.Errorf("final slot should be truncated to 10:00-10:15, got %s-%s", last.StartTime, last.EndTime)
	}
}

func TestSlotsForRangeWeekdayFilter(t *testing.T) {
	// June 2024: Mondays fall on the 3rd, 10th, 17th and 24th.
	rng := DateRange{Start: date(2024, time.June, 1), End: date(2024, time.June, 30)}
	groups, err := SlotsForRange(rng, 0, "09:00", "10:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantDates := []string{"2024-06-03", "2024-06-10", "2024-06-17", "2024-06-24"}
	if len(groups) != len(wantDates) {
		t.Fatalf("expected %d groups, got %d", len(wantDates), len(groups))
	}
	for i, g := range groups {
		if g.Date != wantDates[i] {
			t.Errorf("group %d: got date %s, want %s", i, g.Date, wantDates[i])
		}
	}
}

func TestSlotsForRangeInvalidWeekday(t *testing.T) {
	rng := DateRange{Start: date(2024, time.June, 1), End: date(2024, time.June, 30)}
	for _, day := range []int{-1, 7, 42} {
		_, err := SlotsForRange(rng, day, "09:00", "10:00")
		if !errors.Is(err, ErrInvalidWeekday) {
			t.Errorf("day %d: expected ErrInvalidWeekday, got %v", day, err)
		}
	}
}

func TestSlotsForRangeRejectsInvertedWindow(t *testing.T) {
	rng := DateRange{Start: date(2024, time.June, 10), End: date(2024, time.June, 10)}
	if _, err := SlotsForRange(rng, 0, "10:00", "09:00"); err == nil {
		t.Error("expected error for start after end")
	}
	if _, err := SlotsForRange(rng, 0, "09:00", "09:00"); err == nil {
		t.Error("expected error for zero-length window")
	}
}

func TestGenerateMondayOnlyMonth(t *testing.T) {
	// A doctor consulting Mondays 09:00-10:00 yields one group per Monday
	// in range, each with exactly two half-hour slots, all bookable.
	entries := []TemplateEntry{{Day: 0, StartTime: "09:00", EndTime: "10:00"}}
	ranges := []DateRange{{Start: date(2024, time.June, 1), End: date(2024, time.June, 30)}}

	groups, err := Generate(entries, ranges)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 4 {
		t.Fatalf("expected 4 Monday groups, got %d", len(groups))
	}
	for _, g := range groups {
		if len(g.Slots) != 2 {
			t.Errorf("%s: expected 2 slots, got %d", g.Date, len(g.Slots))
		}
		for _, s := range g.Slots {
			if !s.IsAvailable {
				t.Errorf("%s %s-%s: expected available", g.Date, s.StartTime, s.EndTime)
			}
		}
	}
}

func TestGenerateNoEntries(t *testing.T) {
	ranges := []DateRange{{Start: date(2024, time.June, 1), End: date(2024, time.June, 30)}}
	groups, err := Generate(nil, ranges)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("expected no groups for an empty template, got %d", len(groups))
	}
}

func TestOffered(t *testing.T) {
	entries := []TemplateEntry{{Day: 0, StartTime: "09:00", EndTime: "10:15"}}
	monday := date(2024, time.June, 10)
	tuesday := date(2024, time.June, 11)

	cases := []struct {
		name       string
		day        time.Time
		start, end string
		want       bool
	}{
		{"generated slot", monday, "09:00", "09:30", true},
		{"truncated final slot", monday, "10:00", "10:15", true},
		{"misaligned boundaries", monday, "09:15", "09:45", false},
		{"outside window", monday, "11:00", "11:30", false},
		{"wrong weekday", tuesday, "09:00", "09:30", false},
	}
	for _, tc := range cases {
		got, err := Offered(entries, tc.day, tc.start, tc.end)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("%s: Offered = %v, want %v", tc.name, got, tc.want)
		}
	}
}
