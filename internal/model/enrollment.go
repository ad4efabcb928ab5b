package model

import "time"

// Enrollment links a user to a course they are taking.
// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	UserID     uint       `gorm:"index:idx_enrollment_user_course,unique;type:bigint unsigned;not null" json:"userId"`
	CourseID   uint       `gorm:"index:idx_enrollment_user_course,unique;type:bigint unsigned;not null" json:"courseId"`
	Course     *Course    `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Progress   int        `gorm:"default:0" json:"progress"` // 0-100, derived from completed lessons
	Completed  bool       `gorm:"default:false" json:"completed"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// LessonProgress tracks per-lesson watch state for an enrolled user.
type LessonProgress struct {
	BaseModel
	UserID         uint `gorm:"index:idx_progress_user_lesson,unique;type:bigint unsigned;not null" json:"userId"`
	LessonID       uint `gorm:"index:idx_progress_user_lesson,unique;type:bigint unsigned;not null" json:"lessonId"`
	WatchedSeconds int  `gorm:"default:0" json:"watchedSeconds"`
	Completed      bool `gorm:"default:false" json:"completed"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
