package scheduler

import (
	"sort"
	"time"
)

// Reconcile merges generated slot groups with a doctor's unavailable
// slots. Groups are sorted by date ascending (slot order within a date is
// preserved from generation), an exception marks the slot with the exact
// same (date, start, end) boundaries unavailable, and the earliest group
// is pruned of already-elapsed slots when it falls on now's date. Neither
// input is mutated. Running Reconcile twice over the same inputs yields
// the same output.
func Reconcile(groups []DateSlotGroup, exceptions []Exception, now time.Time) []DateSlotGroup {
	sorted := make([]DateSlotGroup, len(groups))
	copy(sorted, groups)
	for i := range sorted {
		slots := make([]Slot, len(sorted[i].Slots))
		copy(slots, sorted[i].Slots)
		sorted[i].Slots = slots
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	for _, ex := range exceptions {
		for gi := range sorted {
			if sorted[gi].Date != ex.Date {
				continue
			}
			for si := range sorted[gi].Slots {
				slot := &sorted[gi].Slots[si]
				if slot.StartTime == ex.StartTime && slot.EndTime == ex.EndTime {
					slot.IsAvailable = false
				}
			}
		}
	}

	return pruneElapsed(sorted, now)
}

// pruneElapsed removes slots whose start has strictly passed from the
// earliest group when that group is today's. A slot starting exactly at
// now is kept. If nothing survives, the whole group is dropped rather
// than returned empty.
func pruneElapsed(groups []DateSlotGroup, now time.Time) []DateSlotGroup {
	if len(groups) == 0 {
		return groups
	}
	today := now.Format(DateLayout)
	if groups[0].Date != today {
		return groups
	}

	var kept []Slot
	for _, slot := range groups[0].Slots {
		startAt, err := time.ParseInLocation(DateLayout+" "+TimeLayout, groups[0].Date+" "+slot.StartTime, now.Location())
		if err != nil || !startAt.Before(now) {
			kept = append(kept, slot)
		}
	}
	if len(kept) == 0 {
		return groups[1:]
	}
	groups[0] = DateSlotGroup{Date: groups[0].Date, Slots: kept}
	return groups
}
