package model

import (
	"time"
)

type UserRole string

const (
	Employee   UserRole = "employee"
	Lider      UserRole = "lider"
	Admin      UserRole = "admin"
	SuperAdmin UserRole = "super_admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"type:enum('employee','lider','admin','super_admin');default:'employee'" json:"role"`
	XP        int       `gorm:"default:0" json:"xp"`
	Avatar    string    `gorm:"size:255" json:"avatar"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// IsStaff reports whether the role may manage courses, templates and assignments.
func (r UserRole) IsStaff() bool {
	return r == Lider || r == Admin || r == SuperAdmin
}
