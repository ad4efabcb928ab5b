package model

import (
	"gorm.io/datatypes"
)

// Lesson is a video+content unit within a course.
// FallbackURLs holds ordered alternate sources the player cycles through
// when the primary VideoURL fails.
// swagger:model Lesson
type Lesson struct {
	BaseModel
	CourseID        uint           `gorm:"index;type:bigint unsigned;not null" json:"courseId"`
	Title           string         `gorm:"size:255;not null" json:"title"`
	Content         string         `gorm:"type:text" json:"content"`
	VideoURL        string         `gorm:"size:255" json:"videoUrl"`
	FallbackURLs    datatypes.JSON `gorm:"type:json" json:"fallbackUrls,omitempty"`
	DurationSeconds int            `gorm:"default:0" json:"durationSeconds"`
	Order           int            `gorm:"default:0" json:"order"`
}

func (Lesson) TableName() string {
	return "lessons"
}
