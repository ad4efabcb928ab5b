package service

import (
	"academia_backend/internal/model"
	"academia_backend/internal/repository"
	"academia_backend/internal/util"
	"academia_backend/pkg/logger"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	catalogCacheKeyFmt = "courses:catalog:%s:%d:%d"
	catalogCacheTTL    = 10 * time.Minute
)

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	LessonRepo     *repository.LessonRepository
	EnrollmentRepo *repository.EnrollmentRepository
	Gamification   *GamificationService
	Storage        *StorageService
	Redis          *redis.Client
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	lessonRepo *repository.LessonRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	gamification *GamificationService,
	storage *StorageService,
	rdb *redis.Client,
) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		LessonRepo:     lessonRepo,
		EnrollmentRepo: enrollmentRepo,
		Gamification:   gamification,
		Storage:        storage,
		Redis:          rdb,
	}
}

type CatalogPage struct {
	Courses []model.Course `json:"courses"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
}

// GetCatalog lists published courses, cached per (category, page, limit).
func (s *CourseService) GetCatalog(category string, page, limit int) (*CatalogPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 12
	}

	ctx := context.Background()
	cacheKey := fmt.Sprintf(catalogCacheKeyFmt, category, page, limit)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var result CatalogPage
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				return &result, nil
			}
		}
	}

	courses, total, err := s.CourseRepo.ListPublished(category, page, limit)
	if err != nil {
		return nil, err
	}

	result := &CatalogPage{Courses: courses, Total: total, Page: page, Limit: limit}

	if s.Redis != nil {
		if payload, err := json.Marshal(result); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, payload, catalogCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache course catalog", zap.Error(err))
			}
		}
	}

	return result, nil
}

func (s *CourseService) GetCourse(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

type CourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	CoverURL    string `json:"coverUrl"`
	Published   bool   `json:"published"`
}

func (s *CourseService) CreateCourse(instructorID uint, req CourseRequest) (*model.Course, error) {
	course := &model.Course{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		CoverURL:     req.CoverURL,
		InstructorID: instructorID,
		Published:    req.Published,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) UpdateCourse(userID uint, role model.UserRole, courseID uint, req CourseRequest) (*model.Course, error) {
	course, err := s.GetCourse(courseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != userID && role != model.Admin && role != model.SuperAdmin {
		return nil, util.ErrPermissionDenied
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Category = req.Category
	course.CoverURL = req.CoverURL
	course.Published = req.Published
	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

type LessonRequest struct {
	Title        string   `json:"title" binding:"required"`
	Content      string   `json:"content"`
	VideoURL     string   `json:"videoUrl"`
	FallbackURLs []string `json:"fallbackUrls"`
	Order        int      `json:"order"`
}

func (s *CourseService) CreateLesson(userID uint, role model.UserRole, courseID uint, req LessonRequest) (*model.Lesson, error) {
	course, err := s.GetCourse(courseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != userID && role != model.Admin && role != model.SuperAdmin {
		return nil, util.ErrPermissionDenied
	}

	fallbacks, err := json.Marshal(req.FallbackURLs)
	if err != nil {
		return nil, err
	}

	lesson := &model.Lesson{
		CourseID:     courseID,
		Title:        req.Title,
		Content:      req.Content,
		VideoURL:     req.VideoURL,
		FallbackURLs: fallbacks,
		Order:        req.Order,
	}
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// AttachVideo stores an uploaded lesson video and fills the duration from
// the ffprobe metadata of the local temp copy.
func (s *CourseService) AttachVideo(userID uint, role model.UserRole, lessonID uint, tmpPath, filename, contentType string) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}

	course, err := s.GetCourse(lesson.CourseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != userID && role != model.Admin && role != model.SuperAdmin {
		return nil, util.ErrPermissionDenied
	}

	url, err := s.Storage.Provider.UploadFile(context.Background(), filename, tmpPath, contentType)
	if err != nil {
		return nil, err
	}
	lesson.VideoURL = url

	if info, err := util.GetVideoInfo(tmpPath); err == nil {
		lesson.DurationSeconds = int(info.Duration)
	} else {
		logger.Log.Warn("failed to probe lesson video", zap.Uint("lessonId", lessonID), zap.Error(err))
	}

	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CourseService) Enroll(userID, courseID uint) (*model.Enrollment, error) {
	if _, err := s.GetCourse(courseID); err != nil {
		return nil, err
	}

	if existing, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID); err == nil {
		return existing, nil
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	enrollment := &model.Enrollment{UserID: userID, CourseID: courseID}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *CourseService) GetEnrollments(userID uint) ([]model.Enrollment, error) {
	return s.EnrollmentRepo.FindByUser(userID)
}

type ProgressUpdate struct {
	WatchedSeconds int  `json:"watchedSeconds"`
	Completed      bool `json:"completed"`
}

// UpdateLessonProgress upserts the watch state for one lesson and refreshes
// the enrollment's overall progress. Completing a lesson counts toward the
// daily streak.
func (s *CourseService) UpdateLessonProgress(userID, lessonID uint, update ProgressUpdate) (*model.LessonProgress, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}

	if _, err := s.EnrollmentRepo.FindByUserAndCourse(userID, lesson.CourseID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}

	progress := &model.LessonProgress{
		UserID:         userID,
		LessonID:       lessonID,
		WatchedSeconds: update.WatchedSeconds,
		Completed:      update.Completed,
	}
	if err := s.EnrollmentRepo.UpsertLessonProgress(progress); err != nil {
		return nil, err
	}

	if update.Completed {
		s.Gamification.RecordDailyActivity(userID)
	}

	if err := s.refreshCourseProgress(userID, lesson.CourseID); err != nil {
		logger.Log.Warn("failed to refresh course progress",
			zap.Uint("userId", userID), zap.Uint("courseId", lesson.CourseID), zap.Error(err))
	}

	return progress, nil
}

func (s *CourseService) refreshCourseProgress(userID, courseID uint) error {
	lessons, err := s.LessonRepo.FindByCourse(courseID)
	if err != nil {
		return err
	}
	if len(lessons) == 0 {
		return nil
	}

	lessonIDs := make([]uint, len(lessons))
	for i, lesson := range lessons {
		lessonIDs[i] = lesson.ID
	}

	completed, err := s.EnrollmentRepo.CountCompletedLessons(userID, lessonIDs)
	if err != nil {
		return err
	}

	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
	if err != nil {
		return err
	}

	enrollment.Progress = int(completed * 100 / int64(len(lessons)))
	if enrollment.Progress >= 100 && !enrollment.Completed {
		enrollment.Completed = true
		now := time.Now()
		enrollment.FinishedAt = &now
	}
	return s.EnrollmentRepo.Update(enrollment)
}
