package service

import (
	"academia_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func TestStartOfDayUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	// 02:30 on June 13 in UTC+5 is still June 12 in UTC.
	got := StartOfDayUTC(time.Date(2024, 6, 13, 2, 30, 0, 0, loc))
	assert.Equal(t, day(2024, 6, 12), got)
}

func TestStartOfWeekUTC(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{name: "wednesday", in: day(2024, 6, 12), want: day(2024, 6, 10)},
		{name: "monday is its own week start", in: day(2024, 6, 10), want: day(2024, 6, 10)},
		{name: "sunday belongs to the previous monday", in: day(2024, 6, 16), want: day(2024, 6, 10)},
		{name: "saturday", in: day(2024, 6, 15), want: day(2024, 6, 10)},
		{name: "week spanning a month boundary", in: day(2024, 7, 2), want: day(2024, 7, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StartOfWeekUTC(tt.in))
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want int
	}{
		{name: "january", in: day(2024, 1, 15), want: 31},
		{name: "leap february", in: day(2024, 2, 1), want: 29},
		{name: "regular february", in: day(2023, 2, 28), want: 28},
		{name: "april", in: day(2024, 4, 30), want: 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysInMonth(tt.in))
		})
	}
}

func TestIsDueOn(t *testing.T) {
	wednesday := day(2024, 6, 12)

	tests := []struct {
		name     string
		template model.TaskTemplate
		day      time.Time
		want     bool
	}{
		{name: "daily always due", template: model.TaskTemplate{Frequency: model.FrequencyDaily}, day: wednesday, want: true},
		{name: "weekly without scheduled day", template: model.TaskTemplate{Frequency: model.FrequencyWeekly}, day: wednesday, want: true},
		{name: "weekly on matching weekday", template: model.TaskTemplate{Frequency: model.FrequencyWeekly, ScheduledDay: intPtr(3)}, day: wednesday, want: true},
		{name: "weekly on other weekday", template: model.TaskTemplate{Frequency: model.FrequencyWeekly, ScheduledDay: intPtr(5)}, day: wednesday, want: false},
		{name: "monthly without scheduled day", template: model.TaskTemplate{Frequency: model.FrequencyMonthly}, day: wednesday, want: true},
		{name: "monthly on matching day", template: model.TaskTemplate{Frequency: model.FrequencyMonthly, ScheduledDay: intPtr(12)}, day: wednesday, want: true},
		{name: "monthly on other day", template: model.TaskTemplate{Frequency: model.FrequencyMonthly, ScheduledDay: intPtr(1)}, day: wednesday, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDueOn(&tt.template, tt.day))
		})
	}
}

func activeAssignment(template *model.TaskTemplate) model.TaskAssignment {
	return model.TaskAssignment{Template: template, IsActive: true}
}

func doneCompletion(date time.Time, onTime bool) model.TaskCompletion {
	return model.TaskCompletion{
		Status:          model.CompletionDone,
		ScheduledDate:   date,
		CompletedOnTime: onTime,
	}
}

func TestComputeComplianceStats(t *testing.T) {
	// Wednesday June 12, 2024. Week starts June 10, month has 30 days.
	now := time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)

	daily := &model.TaskTemplate{Frequency: model.FrequencyDaily, IsActive: true}
	assignments := []model.TaskAssignment{
		activeAssignment(daily),
		activeAssignment(daily),
	}

	completions := []model.TaskCompletion{
		doneCompletion(day(2024, 6, 12), true),
		doneCompletion(day(2024, 6, 11), true),
		doneCompletion(day(2024, 6, 10), false),
		doneCompletion(day(2024, 6, 3), true),
		doneCompletion(day(2024, 6, 4), true),
	}

	stats := ComputeComplianceStats(now, assignments, completions)

	assert.Equal(t, 2, stats.DueToday)
	assert.Equal(t, 1, stats.CompletedToday)
	assert.Equal(t, 50, stats.DailyCompliance)

	// Expected counts are a flat extrapolation of today's due count.
	assert.Equal(t, 14, stats.WeeklyExpected)
	assert.Equal(t, 3, stats.WeeklyCompleted)
	assert.Equal(t, 21, stats.WeeklyCompliance)

	assert.Equal(t, 60, stats.MonthlyExpected)
	assert.Equal(t, 5, stats.MonthlyCompleted)
	assert.Equal(t, 8, stats.MonthlyCompliance)

	assert.Equal(t, 80, stats.OnTimeRate)
}

func TestComputeComplianceStatsNothingDue(t *testing.T) {
	now := day(2024, 6, 12)

	stats := ComputeComplianceStats(now, nil, nil)

	assert.Equal(t, 0, stats.DueToday)
	assert.Equal(t, 100, stats.DailyCompliance)
	assert.Equal(t, 100, stats.WeeklyCompliance)
	assert.Equal(t, 100, stats.MonthlyCompliance)
	assert.Equal(t, 100, stats.OnTimeRate)
}

func TestComputeComplianceStatsSkipsInactive(t *testing.T) {
	now := day(2024, 6, 12)

	inactiveTemplate := &model.TaskTemplate{Frequency: model.FrequencyDaily, IsActive: false}
	activeTemplate := &model.TaskTemplate{Frequency: model.FrequencyDaily, IsActive: true}

	inactiveAssignment := activeAssignment(activeTemplate)
	inactiveAssignment.IsActive = false

	assignments := []model.TaskAssignment{
		activeAssignment(activeTemplate),
		activeAssignment(inactiveTemplate),
		inactiveAssignment,
		{Template: nil, IsActive: true},
	}

	stats := ComputeComplianceStats(now, assignments, nil)
	assert.Equal(t, 1, stats.DueToday)
}

func TestComputeComplianceStatsIgnoresMissed(t *testing.T) {
	now := day(2024, 6, 12)

	completions := []model.TaskCompletion{
		doneCompletion(day(2024, 6, 12), true),
		{Status: model.CompletionMissed, ScheduledDate: day(2024, 6, 12)},
	}

	stats := ComputeComplianceStats(now, nil, completions)
	assert.Equal(t, 1, stats.CompletedToday)
	assert.Equal(t, 100, stats.OnTimeRate)
}

func TestIsOnTime(t *testing.T) {
	scheduledDate := day(2024, 6, 12)

	tests := []struct {
		name        string
		template    model.TaskTemplate
		completedAt time.Time
		want        bool
	}{
		{
			name:        "before the scheduled time",
			template:    model.TaskTemplate{ScheduledTime: "14:00"},
			completedAt: time.Date(2024, 6, 12, 13, 59, 0, 0, time.UTC),
			want:        true,
		},
		{
			name:        "after the scheduled time",
			template:    model.TaskTemplate{ScheduledTime: "14:00"},
			completedAt: time.Date(2024, 6, 12, 14, 1, 0, 0, time.UTC),
			want:        false,
		},
		{
			name:        "no scheduled time, same day",
			template:    model.TaskTemplate{},
			completedAt: time.Date(2024, 6, 12, 23, 0, 0, 0, time.UTC),
			want:        true,
		},
		{
			name:        "no scheduled time, next day",
			template:    model.TaskTemplate{},
			completedAt: time.Date(2024, 6, 13, 1, 0, 0, 0, time.UTC),
			want:        false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isOnTime(&tt.template, scheduledDate, tt.completedAt))
		})
	}
}

func TestTemplateRequestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  TemplateRequest
		want string
	}{
		{
			name: "valid daily",
			req:  TemplateRequest{Title: "Open shop", Frequency: model.FrequencyDaily},
		},
		{
			name: "missing title",
			req:  TemplateRequest{Frequency: model.FrequencyDaily},
			want: "title is required",
		},
		{
			name: "daily with scheduled day",
			req:  TemplateRequest{Title: "t", Frequency: model.FrequencyDaily, ScheduledDay: intPtr(2)},
			want: "daily tasks cannot have a scheduledDay",
		},
		{
			name: "weekly in range",
			req:  TemplateRequest{Title: "t", Frequency: model.FrequencyWeekly, ScheduledDay: intPtr(6)},
		},
		{
			name: "weekly out of range",
			req:  TemplateRequest{Title: "t", Frequency: model.FrequencyWeekly, ScheduledDay: intPtr(7)},
			want: "weekly scheduledDay must be between 0 (Sunday) and 6",
		},
		{
			name: "monthly out of range",
			req:  TemplateRequest{Title: "t", Frequency: model.FrequencyMonthly, ScheduledDay: intPtr(0)},
			want: "monthly scheduledDay must be between 1 and 31",
		},
		{
			name: "unknown frequency",
			req:  TemplateRequest{Title: "t", Frequency: "yearly"},
			want: "frequency must be daily, weekly or monthly",
		},
		{
			name: "bad scheduled time",
			req:  TemplateRequest{Title: "t", Frequency: model.FrequencyDaily, ScheduledTime: "25:99"},
			want: "scheduledTime must be HH:MM",
		},
		{
			name: "good scheduled time",
			req:  TemplateRequest{Title: "t", Frequency: model.FrequencyDaily, ScheduledTime: "08:30"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.validate())
		})
	}
}
