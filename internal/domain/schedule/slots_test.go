package schedule

import "testing"

func TestGenerateDayFullWindow(t *testing.T) {
	w := Window{Start: "09:00:00", End: "12:00:00"}

	slots := GenerateDay(w, nil)
	if len(slots) != 12 {
		t.Fatalf("expected 12 slots for a 3h window, got %d", len(slots))
	}
	if slots[0].Start != "09:00:00" {
		t.Fatalf("first slot should start at window start, got %s", slots[0].Start)
	}
	last := slots[len(slots)-1]
	if last.Start != "11:45:00" {
		t.Fatalf("last slot start must be < window end, got %s", last.Start)
	}
	for _, s := range slots {
		if s.Status != SlotFree {
			t.Fatalf("slot %s unexpectedly %s", s.Start, s.Status)
		}
	}
}

func TestGenerateDayMarksExactMatchesBooked(t *testing.T) {
	w := Window{Start: "09:00:00", End: "10:00:00"}
	booked := map[string]bool{
		"09:15:00": true,
		// A start that is not slot-aligned never matches any cell.
		"09:20:00": true,
	}

	slots := GenerateDay(w, booked)
	if len(slots) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(slots))
	}
	want := []SlotStatus{SlotFree, SlotBooked, SlotFree, SlotFree}
	for i, s := range slots {
		if s.Status != want[i] {
			t.Fatalf("slot %d (%s): got %s, want %s", i, s.Start, s.Status, want[i])
		}
	}
}

func TestGenerateDayClosedWindow(t *testing.T) {
	for _, w := range []Window{
		{Start: "09:00:00", End: "09:00:00"},
		{Start: "17:00:00", End: "09:00:00"},
	} {
		if got := GenerateDay(w, nil); len(got) != 0 {
			t.Fatalf("window %v: expected no slots, got %d", w, len(got))
		}
	}
}

func TestGenerateDayPartialTrailingSlot(t *testing.T) {
	// 09:00–09:20 admits the 09:00 and 09:15 starts; the loop stops once the
	// next start would reach the end.
	w := Window{Start: "09:00:00", End: "09:20:00"}
	slots := GenerateDay(w, nil)
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if slots[1].Start != "09:15:00" {
		t.Fatalf("unexpected second slot %s", slots[1].Start)
	}
}

func TestSlotLabel(t *testing.T) {
	s := Slot{Start: "09:15:00", Status: SlotBooked}
	if got := s.Label(); got != "09:15 Booked" {
		t.Fatalf("Label: got %q", got)
	}
}

func TestWindowClosed(t *testing.T) {
	cases := []struct {
		w    Window
		want bool
	}{
		{Window{"09:00:00", "17:00:00"}, false},
		{Window{"09:00:00", "09:00:00"}, true},
		{Window{"10:00:00", "09:00:00"}, true},
	}
	for _, c := range cases {
		if got := c.w.Closed(); got != c.want {
			t.Fatalf("Closed(%v) = %v, want %v", c.w, got, c.want)
		}
	}
}
