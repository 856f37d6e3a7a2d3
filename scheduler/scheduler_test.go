package scheduler

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestSlotJSONTupleForm(t *testing.T) {
	data, err := json.Marshal(Slot{StartTime: "09:00", EndTime: "09:30", IsAvailable: true})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `["09:00","09:30",true]` {
		t.Errorf("unexpected wire form: %s", data)
	}

	var slot Slot
	if err := json.Unmarshal(data, &slot); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if slot.StartTime != "09:00" || slot.EndTime != "09:30" || !slot.IsAvailable {
		t.Errorf("round trip lost data: %+v", slot)
	}
}

func TestSlotJSONRejectsMalformedTuple(t *testing.T) {
	cases := []string{
		`["09:00","09:30"]`,
		`["09:00",true,"09:30"]`,
		`{"start":"09:00"}`,
	}
	for _, raw := range cases {
		var slot Slot
		if err := json.Unmarshal([]byte(raw), &slot); err == nil {
			t.Errorf("expected error for %s", raw)
		}
	}
}

func TestDateSlotGroupJSON(t *testing.T) {
	group := DateSlotGroup{
		Date: "2024-06-10",
		Slots: []Slot{
			{"09:00", "09:30", true},
			{"09:30", "10:00", false},
		},
	}

	data, err := json.Marshal(group)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"date":"2024-06-10","slots":[["09:00","09:30",true],["09:30","10:00",false]]}`
	if string(data) != want {
		t.Errorf("got %s\nwant %s", data, want)
	}

	var back DateSlotGroup
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Date != group.Date || len(back.Slots) != 2 || back.Slots[1].IsAvailable {
		t.Errorf("round trip lost data: %+v", back)
	}
}
