package models

import "time"

// House is owned by the listing service; the scheduler only migrates the
// columns it needs for the existence lookup and audit context.
type House struct {
	HouseID []byte `gorm:"primaryKey;size:16" json:"-"`

	Name    string `gorm:"size:255;not null" json:"name"`
	Street  string `gorm:"size:255" json:"street"`
	City    string `gorm:"size:100" json:"city"`
	Country string `gorm:"size:100" json:"country"`
	Zipcode int    `json:"zipcode"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
