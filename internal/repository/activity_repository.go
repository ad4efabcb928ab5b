package repository

import (
	"academia_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) Create(activity *model.DailyActivity) error {
	return r.DB.Create(activity).Error
}

// FindByUserAndDate looks up the activity row covering the given day.
func (r *ActivityRepository) FindByUserAndDate(userID uint, date time.Time) (*model.DailyActivity, error) {
	var activity model.DailyActivity
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24 * time.Hour).Add(-1 * time.Nanosecond)

	err := r.DB.Where("user_id = ? AND activity_at BETWEEN ? AND ?", userID, startOfDay, endOfDay).
		First(&activity).Error
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *ActivityRepository) FindLatestByUser(userID uint) (*model.DailyActivity, error) {
	var activity model.DailyActivity
	err := r.DB.Where("user_id = ?", userID).Order("activity_at DESC").First(&activity).Error
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *ActivityRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.DailyActivity{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
