package repository

import (
	"academia_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) FindByID(id uint) (*model.LessonQuiz, error) {
	var quiz model.LessonQuiz
	err := r.DB.First(&quiz, id).Error
	return &quiz, err
}

func (r *QuizRepository) FindByLessonID(lessonID uint) (*model.LessonQuiz, error) {
	var quiz model.LessonQuiz
	err := r.DB.Where("lesson_id = ?", lessonID).First(&quiz).Error
	return &quiz, err
}

// Upsert creates the lesson's quiz row or replaces its question bank.
func (r *QuizRepository) Upsert(quiz *model.LessonQuiz) error {
	var existing model.LessonQuiz
	err := r.DB.Where("lesson_id = ?", quiz.LessonID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(quiz).Error
	}
	if err != nil {
		return err
	}
	quiz.ID = existing.ID
	quiz.CreatedAt = existing.CreatedAt
	return r.DB.Save(quiz).Error
}

// SaveAttempt inserts the attempt within tx so callers can join it with the
// XP award in one transaction.
func (r *QuizRepository) SaveAttempt(tx *gorm.DB, attempt *model.QuizAttempt) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Create(attempt).Error
}

func (r *QuizRepository) FindAttemptsByUserAndQuiz(userID, quizID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("user_id = ? AND lesson_quiz_id = ?", userID, quizID).
		Order("created_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *QuizRepository) CountPassedByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizAttempt{}).
		Where("user_id = ? AND passed = ?", userID, true).
		Count(&count).Error
	return count, err
}
