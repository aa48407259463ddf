package models

type Competence struct {
	BaseModel

	Name         string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description  string `gorm:"type:text;not null"`
	Difficulty   string `gorm:"type:varchar(20);not null"`
	IsActive     bool   `gorm:"not null;default:false"`
	ProfessionID *uint  `gorm:"index"`

	// Relationships
	Profession *Profession        `gorm:"foreignKey:ProfessionID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Materials  []Material         `gorm:"foreignKey:CompetenceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Reviews    []Review           `gorm:"foreignKey:CompetenceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Marks      []MarkedCompetence `gorm:"foreignKey:CompetenceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
