package models

type Review struct {
	BaseModel

	CompetenceID uint   `gorm:"not null;index"`
	UserID       uint   `gorm:"not null;index"`
	Rating       int    `gorm:"not null"`
	Comment      string `gorm:"type:text;not null"`
}
