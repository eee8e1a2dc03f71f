package models

import "time"

// Appointment is a booked 15-minute viewing slot. EndTime is always derived
// from StartTime at booking, never client-supplied. There is no update path:
// rescheduling is cancel plus rebook.
type Appointment struct {
	ApptID  []byte `gorm:"primaryKey;size:16" json:"-"`
	HouseID []byte `gorm:"size:16;index;not null" json:"-"`
	UserID  []byte `gorm:"size:16;index;not null" json:"-"`

	Date      string `gorm:"size:10;index;not null" json:"date"`
	DayOfWeek int    `json:"day_of_the_week"`
	StartTime string `gorm:"size:8;not null" json:"start_time"`
	EndTime   string `gorm:"size:8;not null" json:"end_time"`

	Name        string `gorm:"size:255" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"created_at"`
}
