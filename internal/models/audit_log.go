package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	HouseID []byte `gorm:"size:16;index" json:"-"`
	ActorID []byte `gorm:"size:16" json:"-"`
	Action  string `gorm:"size:50;not null" json:"action"`

	Entity   string `gorm:"size:50" json:"entity"`
	EntityID []byte `gorm:"size:16" json:"-"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}
