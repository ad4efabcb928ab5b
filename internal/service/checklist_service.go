package service

import (
	"academia_backend/internal/model"
	"academia_backend/internal/repository"
	"academia_backend/internal/util"
	"math"
	"time"

	"gorm.io/gorm"
)

type ChecklistService struct {
	ChecklistRepo *repository.ChecklistRepository
	UserRepo      *repository.UserRepository
}

func NewChecklistService(checklistRepo *repository.ChecklistRepository, userRepo *repository.UserRepository) *ChecklistService {
	return &ChecklistService{
		ChecklistRepo: checklistRepo,
		UserRepo:      userRepo,
	}
}

// ComplianceStats aggregates one employee's recurring-task compliance over
// the current UTC day, week and month.
type ComplianceStats struct {
	EmployeeID        uint   `json:"employeeId"`
	EmployeeName      string `json:"employeeName,omitempty"`
	DueToday          int    `json:"dueToday"`
	CompletedToday    int    `json:"completedToday"`
	DailyCompliance   int    `json:"dailyCompliance"`
	WeeklyExpected    int    `json:"weeklyExpected"`
	WeeklyCompleted   int    `json:"weeklyCompleted"`
	WeeklyCompliance  int    `json:"weeklyCompliance"`
	MonthlyExpected   int    `json:"monthlyExpected"`
	MonthlyCompleted  int    `json:"monthlyCompleted"`
	MonthlyCompliance int    `json:"monthlyCompliance"`
	OnTimeRate        int    `json:"onTimeRate"`
}

// TodayTask is one due task of an employee's daily checklist with its
// completion state for today.
type TodayTask struct {
	AssignmentID    uint                `json:"assignmentId"`
	Template        *model.TaskTemplate `json:"template"`
	Completed       bool                `json:"completed"`
	CompletedOnTime bool                `json:"completedOnTime"`
	PhotoURL        string              `json:"photoUrl,omitempty"`
}

// StartOfDayUTC truncates t to the start of its UTC day.
func StartOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfWeekUTC returns the Monday starting t's UTC week.
func StartOfWeekUTC(t time.Time) time.Time {
	day := StartOfDayUTC(t)
	offset := 1 - int(day.Weekday())
	if day.Weekday() == time.Sunday {
		offset = -6
	}
	return day.AddDate(0, 0, offset)
}

// StartOfMonthUTC returns the first day of t's UTC month.
func StartOfMonthUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days of t's UTC month.
func DaysInMonth(t time.Time) int {
	start := StartOfMonthUTC(t)
	return start.AddDate(0, 1, 0).Add(-time.Hour).Day()
}

// IsDueOn reports whether a template is due on the given UTC day. A nil
// ScheduledDay means the task is due on every day of its frequency.
func IsDueOn(template *model.TaskTemplate, day time.Time) bool {
	day = day.UTC()
	switch template.Frequency {
	case model.FrequencyDaily:
		return true
	case model.FrequencyWeekly:
		return template.ScheduledDay == nil || *template.ScheduledDay == int(day.Weekday())
	case model.FrequencyMonthly:
		return template.ScheduledDay == nil || *template.ScheduledDay == day.Day()
	}
	return false
}

// ComputeComplianceStats computes compliance for one employee. The weekly and
// monthly expected counts are a flat extrapolation of today's due count
// (dueToday*7 and dueToday*daysInMonth), not a per-day reconstruction of the
// window. completions must cover at least the earlier of the week and month
// starts.
func ComputeComplianceStats(now time.Time, assignments []model.TaskAssignment, completions []model.TaskCompletion) ComplianceStats {
	startOfDay := StartOfDayUTC(now)
	startOfWeek := StartOfWeekUTC(now)
	startOfMonth := StartOfMonthUTC(now)

	dueToday := 0
	for _, a := range assignments {
		if a.Template == nil || !a.Template.IsActive || !a.IsActive {
			continue
		}
		if IsDueOn(a.Template, startOfDay) {
			dueToday++
		}
	}

	var completedToday, weeklyCompleted, monthlyCompleted int
	var onTime, totalCompleted int
	for _, c := range completions {
		if c.Status != model.CompletionDone {
			continue
		}
		date := c.ScheduledDate.UTC()
		if !date.Before(startOfDay) {
			completedToday++
		}
		if !date.Before(startOfWeek) {
			weeklyCompleted++
		}
		if !date.Before(startOfMonth) {
			monthlyCompleted++
		}
		totalCompleted++
		if c.CompletedOnTime {
			onTime++
		}
	}

	weeklyExpected := dueToday * 7
	monthlyExpected := dueToday * DaysInMonth(now)

	return ComplianceStats{
		DueToday:          dueToday,
		CompletedToday:    completedToday,
		DailyCompliance:   percentage(completedToday, dueToday),
		WeeklyExpected:    weeklyExpected,
		WeeklyCompleted:   weeklyCompleted,
		WeeklyCompliance:  percentage(weeklyCompleted, weeklyExpected),
		MonthlyExpected:   monthlyExpected,
		MonthlyCompleted:  monthlyCompleted,
		MonthlyCompliance: percentage(monthlyCompleted, monthlyExpected),
		OnTimeRate:        percentage(onTime, totalCompleted),
	}
}

// percentage rounds completed/expected to a whole percent; zero expected
// counts as full compliance.
func percentage(completed, expected int) int {
	if expected == 0 {
		return 100
	}
	return int(math.Round(float64(completed) / float64(expected) * 100))
}

type TemplateRequest struct {
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Frequency     model.TaskFrequency `json:"frequency"`
	ScheduledDay  *int                `json:"scheduledDay"`
	ScheduledTime string              `json:"scheduledTime"`
	RequiresPhoto bool                `json:"requiresPhoto"`
	Priority      model.TaskPriority  `json:"priority"`
}

func (req *TemplateRequest) validate() string {
	if req.Title == "" {
		return "title is required"
	}
	switch req.Frequency {
	case model.FrequencyDaily:
		if req.ScheduledDay != nil {
			return "daily tasks cannot have a scheduledDay"
		}
	case model.FrequencyWeekly:
		if req.ScheduledDay != nil && (*req.ScheduledDay < 0 || *req.ScheduledDay > 6) {
			return "weekly scheduledDay must be between 0 (Sunday) and 6"
		}
	case model.FrequencyMonthly:
		if req.ScheduledDay != nil && (*req.ScheduledDay < 1 || *req.ScheduledDay > 31) {
			return "monthly scheduledDay must be between 1 and 31"
		}
	default:
		return "frequency must be daily, weekly or monthly"
	}
	if req.ScheduledTime != "" {
		if _, err := time.Parse(util.ClockFormat, req.ScheduledTime); err != nil {
			return "scheduledTime must be HH:MM"
		}
	}
	return ""
}

func (s *ChecklistService) CreateTemplate(creatorID uint, req TemplateRequest) (*model.TaskTemplate, string, error) {
	if msg := req.validate(); msg != "" {
		return nil, msg, nil
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	template := &model.TaskTemplate{
		Title:         req.Title,
		Description:   req.Description,
		Frequency:     req.Frequency,
		ScheduledDay:  req.ScheduledDay,
		ScheduledTime: req.ScheduledTime,
		RequiresPhoto: req.RequiresPhoto,
		Priority:      priority,
		IsActive:      true,
		CreatedByID:   creatorID,
	}
	if err := s.ChecklistRepo.CreateTemplate(template); err != nil {
		return nil, "", err
	}
	return template, "", nil
}

func (s *ChecklistService) ListTemplates(activeOnly bool) ([]model.TaskTemplate, error) {
	return s.ChecklistRepo.ListTemplates(activeOnly)
}

func (s *ChecklistService) SetTemplateActive(templateID uint, active bool) error {
	template, err := s.ChecklistRepo.FindTemplateByID(templateID)
	if err == gorm.ErrRecordNotFound {
		return util.ErrTemplateNotFound
	}
	if err != nil {
		return err
	}
	template.IsActive = active
	return s.ChecklistRepo.UpdateTemplate(template)
}

func (s *ChecklistService) AssignTask(assignerID, templateID, employeeID uint) (*model.TaskAssignment, error) {
	if _, err := s.ChecklistRepo.FindTemplateByID(templateID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrTemplateNotFound
		}
		return nil, err
	}
	if _, err := s.UserRepo.FindByID(employeeID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	assignment := &model.TaskAssignment{
		TemplateID:   templateID,
		EmployeeID:   employeeID,
		AssignedByID: assignerID,
		IsActive:     true,
	}
	if err := s.ChecklistRepo.CreateAssignment(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *ChecklistService) RemoveAssignment(assignmentID uint) error {
	if _, err := s.ChecklistRepo.FindAssignmentByID(assignmentID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrAssignmentNotFound
		}
		return err
	}
	return s.ChecklistRepo.DeactivateAssignment(assignmentID)
}

// GetTodayTasks lists the employee's tasks due today with completion state.
func (s *ChecklistService) GetTodayTasks(employeeID uint, now time.Time) ([]TodayTask, error) {
	assignments, err := s.ChecklistRepo.FindActiveAssignments(employeeID)
	if err != nil {
		return nil, err
	}

	today := StartOfDayUTC(now)
	tasks := make([]TodayTask, 0, len(assignments))
	for _, a := range assignments {
		if a.Template == nil || !IsDueOn(a.Template, today) {
			continue
		}
		task := TodayTask{
			AssignmentID: a.ID,
			Template:     a.Template,
		}
		if completion, err := s.ChecklistRepo.FindCompletion(a.ID, today); err == nil {
			task.Completed = completion.Status == model.CompletionDone
			task.CompletedOnTime = completion.CompletedOnTime
			task.PhotoURL = completion.PhotoURL
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

type CompletionRequest struct {
	AssignmentID  uint   `json:"assignmentId"`
	ScheduledDate string `json:"scheduledDate"` // YYYY-MM-DD, defaults to today
	PhotoURL      string `json:"photoUrl"`
}

// CompleteTask records an immutable completion row for one due date.
func (s *ChecklistService) CompleteTask(employeeID uint, req CompletionRequest, now time.Time) (*model.TaskCompletion, error) {
	assignment, err := s.ChecklistRepo.FindAssignmentByID(req.AssignmentID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrAssignmentNotFound
	}
	if err != nil {
		return nil, err
	}
	if assignment.EmployeeID != employeeID {
		return nil, util.ErrPermissionDenied
	}
	if !assignment.IsActive || assignment.Template == nil || !assignment.Template.IsActive {
		return nil, util.ErrAssignmentNotActive
	}
	if assignment.Template.RequiresPhoto && req.PhotoURL == "" {
		return nil, util.ErrPhotoRequired
	}

	scheduledDate := StartOfDayUTC(now)
	if req.ScheduledDate != "" {
		parsed, err := time.ParseInLocation(util.DateFormat, req.ScheduledDate, time.UTC)
		if err != nil {
			return nil, err
		}
		scheduledDate = parsed
	}

	if _, err := s.ChecklistRepo.FindCompletion(assignment.ID, scheduledDate); err == nil {
		return nil, util.ErrAlreadyCompleted
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	completion := &model.TaskCompletion{
		AssignmentID:    assignment.ID,
		EmployeeID:      employeeID,
		Status:          model.CompletionDone,
		CompletedOnTime: isOnTime(assignment.Template, scheduledDate, now),
		ScheduledDate:   scheduledDate,
		PhotoURL:        req.PhotoURL,
	}
	if err := s.ChecklistRepo.CreateCompletion(completion); err != nil {
		return nil, err
	}
	return completion, nil
}

// isOnTime: with a scheduled time the deadline is that clock time on the due
// date, otherwise the end of the due date.
func isOnTime(template *model.TaskTemplate, scheduledDate, completedAt time.Time) bool {
	deadline := scheduledDate.Add(24 * time.Hour)
	if template.ScheduledTime != "" {
		if clock, err := time.Parse(util.ClockFormat, template.ScheduledTime); err == nil {
			deadline = scheduledDate.Add(
				time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
		}
	}
	return !completedAt.UTC().After(deadline)
}

// GetStatistics computes compliance for one employee.
func (s *ChecklistService) GetStatistics(employeeID uint, now time.Time) (*ComplianceStats, error) {
	assignments, err := s.ChecklistRepo.FindActiveAssignments(employeeID)
	if err != nil {
		return nil, err
	}

	since := StartOfWeekUTC(now)
	if monthStart := StartOfMonthUTC(now); monthStart.Before(since) {
		since = monthStart
	}
	completions, err := s.ChecklistRepo.FindCompletionsSince(employeeID, since)
	if err != nil {
		return nil, err
	}

	stats := ComputeComplianceStats(now, assignments, completions)
	stats.EmployeeID = employeeID
	return &stats, nil
}

// GetAllStatistics computes compliance for every employee, for lider/admin
// dashboards.
func (s *ChecklistService) GetAllStatistics(now time.Time) ([]ComplianceStats, error) {
	employees, err := s.UserRepo.FindByRole(model.Employee)
	if err != nil {
		return nil, err
	}

	all := make([]ComplianceStats, 0, len(employees))
	for _, employee := range employees {
		stats, err := s.GetStatistics(employee.ID, now)
		if err != nil {
			return nil, err
		}
		stats.EmployeeName = employee.Name
		all = append(all, *stats)
	}
	return all, nil
}
