package model

import "time"

type TaskFrequency string

const (
	FrequencyDaily   TaskFrequency = "daily"
	FrequencyWeekly  TaskFrequency = "weekly"
	FrequencyMonthly TaskFrequency = "monthly"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

type CompletionStatus string

const (
	CompletionDone   CompletionStatus = "completed"
	CompletionMissed CompletionStatus = "missed"
)

// TaskTemplate defines a recurring task. ScheduledDay is a UTC weekday (0-6,
// Sunday=0) for weekly tasks or a day of month (1-31) for monthly tasks; nil
// means the task is due on every day of its frequency window.
// swagger:model TaskTemplate
type TaskTemplate struct {
	BaseModel
	Title         string        `gorm:"size:255;not null" json:"title"`
	Description   string        `gorm:"type:text" json:"description"`
	Frequency     TaskFrequency `gorm:"type:enum('daily','weekly','monthly');not null" json:"frequency"`
	ScheduledDay  *int          `json:"scheduledDay,omitempty"`
	ScheduledTime string        `gorm:"size:5" json:"scheduledTime,omitempty"` // "HH:MM", empty = any time of day
	RequiresPhoto bool          `gorm:"default:false" json:"requiresPhoto"`
	Priority      TaskPriority  `gorm:"type:enum('low','medium','high');default:'medium'" json:"priority"`
	IsActive      bool          `gorm:"default:true;index" json:"isActive"`
	CreatedByID   uint          `gorm:"index;type:bigint unsigned" json:"createdById"`
}

func (TaskTemplate) TableName() string {
	return "task_templates"
}

// TaskAssignment links a template to an employee. Removal is a soft disable
// via IsActive.
// swagger:model TaskAssignment
type TaskAssignment struct {
	BaseModel
	TemplateID   uint          `gorm:"index;type:bigint unsigned;not null" json:"templateId"`
	Template     *TaskTemplate `gorm:"foreignKey:TemplateID" json:"template,omitempty"`
	EmployeeID   uint          `gorm:"index;type:bigint unsigned;not null" json:"employeeId"`
	AssignedByID uint          `gorm:"type:bigint unsigned" json:"assignedById"`
	IsActive     bool          `gorm:"default:true;index" json:"isActive"`
}

func (TaskAssignment) TableName() string {
	return "task_assignments"
}

// TaskCompletion records one (assignment, scheduledDate) outcome. Rows are
// never mutated; a missed day simply has no completion row.
// swagger:model TaskCompletion
type TaskCompletion struct {
	BaseModel
	AssignmentID    uint             `gorm:"index:idx_completion_assignment_date,unique;type:bigint unsigned;not null" json:"assignmentId"`
	Assignment      *TaskAssignment  `gorm:"foreignKey:AssignmentID" json:"assignment,omitempty"`
	EmployeeID      uint             `gorm:"index;type:bigint unsigned;not null" json:"employeeId"`
	Status          CompletionStatus `gorm:"type:enum('completed','missed');default:'completed'" json:"status"`
	CompletedOnTime bool             `gorm:"default:false" json:"completedOnTime"`
	ScheduledDate   time.Time        `gorm:"index:idx_completion_assignment_date,unique;not null" json:"scheduledDate"`
	PhotoURL        string           `gorm:"size:255" json:"photoUrl,omitempty"`
}

func (TaskCompletion) TableName() string {
	return "task_completions"
}
