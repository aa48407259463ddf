package models

type User struct {
	BaseModel

	Email        string `gorm:"type:varchar(254);uniqueIndex;not null"`
	Username     string `gorm:"type:varchar(140);uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	IsActive     bool   `gorm:"not null;default:true"`
	IsStaff      bool   `gorm:"not null;default:false"`
	IsSuperuser  bool   `gorm:"not null;default:false"`
	ProfessionID *uint  `gorm:"index"`

	// Relationships
	Profession        *Profession        `gorm:"foreignKey:ProfessionID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Reviews           []Review           `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	MarkedCompetences []MarkedCompetence `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// IsAdmin reports whether the user may use the admin API.
func (u *User) IsAdmin() bool {
	return u.IsStaff || u.IsSuperuser
}
