package models

type Profession struct {
	BaseModel

	Name string `gorm:"type:varchar(100);uniqueIndex;not null"`
}
