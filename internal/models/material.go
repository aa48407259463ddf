package models

import "gorm.io/datatypes"

const (
	MaterialText         = "text"
	MaterialVideo        = "video"
	MaterialAudio        = "audio"
	MaterialOnlineCourse = "online_course"
)

type Material struct {
	BaseModel

	CompetenceID uint    `gorm:"not null;index"`
	MaterialType string  `gorm:"type:varchar(20);not null"`
	Title        string  `gorm:"type:varchar(100);not null"`
	Content      *string `gorm:"type:text"`
	Link         *string `gorm:"type:varchar(2048)"`
	File         *string `gorm:"type:varchar(512)"` // blob storage key
	FileMeta     datatypes.JSON
}

// FileInfo is stored in Material.FileMeta for uploaded files.
type FileInfo struct {
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
	ContentType  string `json:"content_type"`
}
