package models

import "time"

// BaseModel is gorm.Model without soft delete; rows are removed for real.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
