package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	// MinBankSize is the number of authored questions a lesson quiz needs
	// before it can be played.
	MinBankSize = 10
	// PlaySessionSize is how many questions one play session samples from the bank.
	PlaySessionSize = 5
	// PassScore is the minimum percentage score that counts as a pass.
	PassScore = 60
	// OptionCount is the fixed number of options per question.
	OptionCount = 4
)

// QuizQuestion is one entry of a lesson's question bank. Banks are stored as a
// JSON array on the LessonQuiz row, not as individual rows.
type QuizQuestion struct {
	ID           string   `json:"id"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation,omitempty"`
}

// LessonQuiz holds the full question bank for a lesson, one row per lesson.
// swagger:model LessonQuiz
type LessonQuiz struct {
	BaseModel
	LessonID  uint           `gorm:"uniqueIndex;type:bigint unsigned;not null" json:"lessonId"`
	Questions datatypes.JSON `gorm:"type:json;not null" json:"questions"`
}

func (LessonQuiz) TableName() string {
	return "lesson_quizzes"
}

// AnswerDetail is the graded outcome for one submitted answer, persisted as
// part of the attempt's Answers JSON blob.
type AnswerDetail struct {
	QuestionID    string `json:"questionId"`
	SelectedIndex int    `json:"selectedIndex"`
	CorrectIndex  int    `json:"correctIndex"`
	IsCorrect     bool   `json:"isCorrect"`
	Explanation   string `json:"explanation,omitempty"`
}

// QuizAttempt is one graded play-through. Rows are immutable once created.
// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel
	LessonQuizID   uint           `gorm:"index;type:bigint unsigned;not null" json:"lessonQuizId"`
	UserID         uint           `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Score          int            `gorm:"not null" json:"score"`
	CorrectAnswers int            `gorm:"not null" json:"correctAnswers"`
	TotalQuestions int            `gorm:"not null" json:"totalQuestions"`
	Passed         bool           `gorm:"not null" json:"passed"`
	XPEarned       int            `gorm:"column:xp_earned;not null" json:"xpEarned"`
	Answers        datatypes.JSON `gorm:"type:json" json:"answers"`
	TimeSpent      int            `gorm:"default:0" json:"timeSpent"`
	CompletedAt    time.Time      `json:"completedAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
