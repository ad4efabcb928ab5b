package model

// Course groups ordered lessons under one instructor.
// swagger:model Course
type Course struct {
	BaseModel
	Title        string   `gorm:"size:255;not null" json:"title"`
	Description  string   `gorm:"type:text" json:"description"`
	Category     string   `gorm:"size:100;index" json:"category"`
	CoverURL     string   `gorm:"size:255" json:"coverUrl"`
	InstructorID uint     `gorm:"index;type:bigint unsigned;not null" json:"instructorId"`
	Instructor   *User    `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	Published    bool     `gorm:"default:false;index" json:"published"`
	Lessons      []Lesson `gorm:"foreignKey:CourseID" json:"lessons,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
