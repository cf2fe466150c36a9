package model

import "time"

// Lab represents a physical lab room available for scheduling.
type Lab struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:256;not null;index:idx_labs_building_name,priority:2" json:"name"`
	Building     string    `gorm:"size:128;not null;index:idx_labs_building_name,priority:1" json:"building"`
	Capacity     int       `gorm:"not null" json:"capacity"`
	HasProjector bool      `gorm:"not null" json:"has_projector"`
	HasAC        bool      `gorm:"column:has_ac;not null" json:"has_ac"`
	IsAvailable  bool      `gorm:"not null" json:"is_available"`
	CreatedAt    time.Time `gorm:"not null" json:"-"`
	UpdatedAt    time.Time `gorm:"not null" json:"-"`
}
