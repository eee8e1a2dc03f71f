package schedule

import "time"

type SlotStatus string

const (
	SlotFree   SlotStatus = "Free"
	SlotBooked SlotStatus = "Booked"
)

// Slot is one 15-minute cell of a day grid. Start keeps the full TimeLayout
// form; Label renders the wire form.
type Slot struct {
	Start  string
	Status SlotStatus
}

// Label renders the slot the way the availability endpoint emits it,
// e.g. "09:15 Free".
func (s Slot) Label() string {
	t, err := time.Parse(TimeLayout, s.Start)
	if err != nil {
		return string(s.Status)
	}
	return t.Format("15:04") + " " + string(s.Status)
}

// GenerateDay produces the ordered slot grid for one window. Slots step
// SlotMinutes from the window start while the slot start stays strictly
// before the window end; a closed (or inverted) window yields no slots.
// A slot is Booked only on an exact start-time match against bookedStarts,
// keyed by TimeLayout strings. Pure function.
func GenerateDay(w Window, bookedStarts map[string]bool) []Slot {
	slots := []Slot{}
	if w.Closed() {
		return slots
	}

	start, err := time.Parse(TimeLayout, w.Start)
	if err != nil {
		return slots
	}
	end, err := time.Parse(TimeLayout, w.End)
	if err != nil {
		return slots
	}

	for cur := start; cur.Before(end); cur = cur.Add(SlotMinutes * time.Minute) {
		key := cur.Format(TimeLayout)
		status := SlotFree
		if bookedStarts[key] {
			status = SlotBooked
		}
		slots = append(slots, Slot{Start: key, Status: status})
	}

	return slots
}
