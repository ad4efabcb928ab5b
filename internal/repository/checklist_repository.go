package repository

import (
	"academia_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type ChecklistRepository struct {
	DB *gorm.DB
}

func NewChecklistRepository(db *gorm.DB) *ChecklistRepository {
	return &ChecklistRepository{DB: db}
}

func (r *ChecklistRepository) CreateTemplate(template *model.TaskTemplate) error {
	return r.DB.Create(template).Error
}

func (r *ChecklistRepository) FindTemplateByID(id uint) (*model.TaskTemplate, error) {
	var template model.TaskTemplate
	err := r.DB.First(&template, id).Error
	return &template, err
}

func (r *ChecklistRepository) ListTemplates(activeOnly bool) ([]model.TaskTemplate, error) {
	var templates []model.TaskTemplate
	query := r.DB.Order("created_at DESC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Find(&templates).Error
	return templates, err
}

func (r *ChecklistRepository) UpdateTemplate(template *model.TaskTemplate) error {
	return r.DB.Save(template).Error
}

func (r *ChecklistRepository) CreateAssignment(assignment *model.TaskAssignment) error {
	return r.DB.Create(assignment).Error
}

func (r *ChecklistRepository) FindAssignmentByID(id uint) (*model.TaskAssignment, error) {
	var assignment model.TaskAssignment
	err := r.DB.Preload("Template").First(&assignment, id).Error
	return &assignment, err
}

// FindActiveAssignments returns active assignments whose template is also
// active, with the template preloaded. employeeID 0 means all employees.
func (r *ChecklistRepository) FindActiveAssignments(employeeID uint) ([]model.TaskAssignment, error) {
	var assignments []model.TaskAssignment
	query := r.DB.Preload("Template").
		Joins("JOIN task_templates ON task_templates.id = task_assignments.template_id").
		Where("task_assignments.is_active = ? AND task_templates.is_active = ?", true, true)
	if employeeID != 0 {
		query = query.Where("task_assignments.employee_id = ?", employeeID)
	}
	err := query.Find(&assignments).Error
	return assignments, err
}

func (r *ChecklistRepository) DeactivateAssignment(id uint) error {
	return r.DB.Model(&model.TaskAssignment{}).Where("id = ?", id).Update("is_active", false).Error
}

func (r *ChecklistRepository) CreateCompletion(completion *model.TaskCompletion) error {
	return r.DB.Create(completion).Error
}

func (r *ChecklistRepository) FindCompletion(assignmentID uint, scheduledDate time.Time) (*model.TaskCompletion, error) {
	var completion model.TaskCompletion
	err := r.DB.Where("assignment_id = ? AND scheduled_date = ?", assignmentID, scheduledDate).
		First(&completion).Error
	return &completion, err
}

// FindCompletionsSince returns completions with a scheduled date at or after
// since. employeeID 0 means all employees.
func (r *ChecklistRepository) FindCompletionsSince(employeeID uint, since time.Time) ([]model.TaskCompletion, error) {
	var completions []model.TaskCompletion
	query := r.DB.Where("scheduled_date >= ?", since)
	if employeeID != 0 {
		query = query.Where("employee_id = ?", employeeID)
	}
	err := query.Find(&completions).Error
	return completions, err
}
