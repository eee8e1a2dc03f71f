// Package schedule holds the pure scheduling domain: availability windows,
// the 15-minute slot grid, and the store contract the use cases run against.
package schedule

import (
	"context"
	"time"
)

const (
	// TimeLayout is the wire and storage encoding of times of day.
	TimeLayout = "15:04:05"
	// DateLayout is the wire and storage encoding of calendar dates.
	DateLayout = "2006-01-02"

	// SlotMinutes is the booking granularity.
	SlotMinutes = 15
)

// Window is a half-open [Start, End) availability interval within one day,
// both bounds encoded as TimeLayout strings.
type Window struct {
	Start string
	End   string
}

// Closed reports whether the window admits no slots. Start == End is the
// documented encoding for a day that is kept on the books but fully
// unavailable. Zero-padded time strings order lexicographically, so plain
// string comparison is chronological.
func (w Window) Closed() bool {
	return w.Start >= w.End
}

// ValidTime reports whether s is a well-formed TimeLayout value.
func ValidTime(s string) bool {
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

// ParseDate parses a DateLayout value.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Weekday maps a date to the recurring-pattern key: 0 = Sunday, matching
// time.Weekday directly.
func Weekday(date time.Time) int {
	return int(date.Weekday())
}

// EffectiveWindow resolves the window in force for a house on a date: the
// date override when one exists, else the recurring pattern for that
// weekday. ok is false when neither layer has a record.
func EffectiveWindow(ctx context.Context, repo Repository, houseID []byte, date time.Time) (Window, bool, error) {
	ov, err := repo.GetOverride(ctx, houseID, date.Format(DateLayout))
	if err != nil {
		return Window{}, false, err
	}
	if ov != nil {
		return Window{Start: ov.StartTime, End: ov.EndTime}, true, nil
	}

	rec, err := repo.GetRecurring(ctx, houseID, Weekday(date))
	if err != nil {
		return Window{}, false, err
	}
	if rec != nil {
		return Window{Start: rec.StartTime, End: rec.EndTime}, true, nil
	}

	return Window{}, false, nil
}
