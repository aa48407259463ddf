package models

// MarkedCompetence joins a user to a competence they have marked.
// The same pair may appear more than once.
type MarkedCompetence struct {
	BaseModel

	UserID       uint `gorm:"not null;index"`
	CompetenceID uint `gorm:"not null;index"`

	// Relationships
	Competence Competence `gorm:"foreignKey:CompetenceID"`
}
