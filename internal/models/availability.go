package models

import "time"

// AvailabilityPattern is one row of the two-layer availability model.
//
// Recurring rows carry DayOfWeek (0 = Sunday) and leave AvailableDate empty;
// date-override rows carry AvailableDate ("2006-01-02") and a nil DayOfWeek.
// At most one recurring row per (house, weekday) and one override per
// (house, date); writes to an existing key update in place.
//
// Times are zero-padded "15:04:05" strings so the SQL comparisons used by the
// cascade behave chronologically under plain string ordering.
type AvailabilityPattern struct {
	PatternID []byte `gorm:"primaryKey;size:16" json:"-"`
	HouseID   []byte `gorm:"size:16;index;not null" json:"-"`

	Recurring     bool   `json:"is_recurring"`
	DayOfWeek     *int   `gorm:"index" json:"day_of_the_week,omitempty"`
	AvailableDate string `gorm:"size:10;index" json:"available_date,omitempty"`

	StartTime string `gorm:"size:8;not null" json:"start_time"`
	EndTime   string `gorm:"size:8;not null" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AvailabilityPattern) TableName() string {
	return "listing_availability"
}
