package model

import "time"

// DailyActivity records that a user did something that counts toward their
// streak on a given UTC day. At most one row per user per day.
// swagger:model DailyActivity
type DailyActivity struct {
	BaseModel
	UserID     uint      `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	ActivityAt time.Time `gorm:"not null;index:idx_user_activity_date,unique" json:"activityAt"`
	StreakDays int       `gorm:"default:1" json:"streakDays"`
}

func (DailyActivity) TableName() string {
	return "daily_activities"
}
