package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrCourseNotFound      = errors.New("course not found")
	ErrLessonNotFound      = errors.New("lesson not found")
	ErrQuizNotFound        = errors.New("quiz not found")
	ErrQuizNotAvailable    = errors.New("quiz not available")
	ErrNotEnrolled         = errors.New("not enrolled in course")
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrTemplateNotFound    = errors.New("task template not found")
	ErrAlreadyCompleted    = errors.New("task already completed for this date")
	ErrPhotoRequired       = errors.New("photo evidence required for this task")
	ErrAssignmentNotActive = errors.New("assignment is not active")
)
