package repository

import (
	"academia_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) FindByUserAndCourse(userID, courseID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	return &enrollment, err
}

func (r *EnrollmentRepository) FindByUser(userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Preload("Course").Where("user_id = ?", userID).Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) Update(enrollment *model.Enrollment) error {
	return r.DB.Save(enrollment).Error
}

func (r *EnrollmentRepository) UpsertLessonProgress(progress *model.LessonProgress) error {
	var existing model.LessonProgress
	err := r.DB.Where("user_id = ? AND lesson_id = ?", progress.UserID, progress.LessonID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(progress).Error
	}
	if err != nil {
		return err
	}
	progress.ID = existing.ID
	progress.CreatedAt = existing.CreatedAt
	// Watched time never decreases and completion never reverts.
	if progress.WatchedSeconds < existing.WatchedSeconds {
		progress.WatchedSeconds = existing.WatchedSeconds
	}
	if existing.Completed {
		progress.Completed = true
	}
	return r.DB.Save(progress).Error
}

func (r *EnrollmentRepository) FindLessonProgress(userID, lessonID uint) (*model.LessonProgress, error) {
	var progress model.LessonProgress
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	return &progress, err
}

func (r *EnrollmentRepository) CountCompletedLessons(userID uint, lessonIDs []uint) (int64, error) {
	if len(lessonIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.DB.Model(&model.LessonProgress{}).
		Where("user_id = ? AND lesson_id IN ? AND completed = ?", userID, lessonIDs, true).
		Count(&count).Error
	return count, err
}
