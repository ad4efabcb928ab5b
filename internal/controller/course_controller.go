package controller

import (
	"academia_backend/internal/service"
	"academia_backend/internal/util"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// @Summary Course catalog
// @Tags courses
// @Produce json
// @Param category query string false "category filter"
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response
// @Router /api/courses [get]
func (c *CourseController) GetCatalog(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "12"))

	catalog, err := c.CourseService.GetCatalog(ctx.Query("category"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, catalog)
}

// @Summary Course detail with lessons
// @Tags courses
// @Produce json
// @Param courseId path int true "course id"
// @Success 200 {object} util.Response
// @Router /api/courses/{courseId} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("courseId"))
	course, err := c.CourseService.GetCourse(courseID)
	if err != nil {
		if err == util.ErrCourseNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CourseRequest true "course"
// @Success 201 {object} util.Response
// @Router /api/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.CreateCourse(user.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// @Summary Update a course
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Param body body service.CourseRequest true "course"
// @Success 200 {object} util.Response
// @Router /api/courses/{courseId} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	courseID := util.MustParseUint(ctx.Param("courseId"))
	course, err := c.CourseService.UpdateCourse(user.UserID, user.Role, courseID, req)
	if err != nil {
		switch err {
		case util.ErrCourseNotFound:
			util.NotFound(ctx)
		case util.ErrPermissionDenied:
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, course)
}

// @Summary Add a lesson to a course
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Param body body service.LessonRequest true "lesson"
// @Success 201 {object} util.Response
// @Router /api/courses/{courseId}/lessons [post]
func (c *CourseController) CreateLesson(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	courseID := util.MustParseUint(ctx.Param("courseId"))
	lesson, err := c.CourseService.CreateLesson(user.UserID, user.Role, courseID, req)
	if err != nil {
		switch err {
		case util.ErrCourseNotFound:
			util.NotFound(ctx)
		case util.ErrPermissionDenied:
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, lesson)
}

// @Summary Upload a lesson video
// @Tags courses
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "lesson id"
// @Param video formData file true "video file"
// @Success 200 {object} util.Response
// @Router /api/lessons/{lessonId}/video [post]
func (c *CourseController) UploadLessonVideo(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	file, header, err := ctx.Request.FormFile("video")
	if err != nil {
		util.BadRequest(ctx, "video file is required")
		return
	}
	defer file.Close()

	mimeType, err := util.ValidateMimeType(file, []string{util.MimeVideo, util.MimeOctetStream})
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if _, err := file.Seek(0, 0); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	// Spool to a temp file so storage upload and ffprobe share one copy.
	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("lesson-upload-%d%s", time.Now().UnixNano(), filepath.Ext(header.Filename)))
	if err := ctx.SaveUploadedFile(header, tmpPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmpPath)

	lessonID := util.MustParseUint(ctx.Param("lessonId"))
	filename := fmt.Sprintf("lessons/%d/%d%s", lessonID, time.Now().UnixNano(), filepath.Ext(header.Filename))

	lesson, err := c.CourseService.AttachVideo(user.UserID, user.Role, lessonID, tmpPath, filename, mimeType)
	if err != nil {
		switch err {
		case util.ErrLessonNotFound, util.ErrCourseNotFound:
			util.NotFound(ctx)
		case util.ErrPermissionDenied:
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lesson)
}

// @Summary Enroll in a course
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Success 201 {object} util.Response
// @Router /api/courses/{courseId}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := util.MustParseUint(ctx.Param("courseId"))
	enrollment, err := c.CourseService.Enroll(user.UserID, courseID)
	if err != nil {
		if err == util.ErrCourseNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, enrollment)
}

// @Summary Own enrollments
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/enrollments [get]
func (c *CourseController) GetEnrollments(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollments, err := c.CourseService.GetEnrollments(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}

// @Summary Update lesson watch progress
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "lesson id"
// @Param body body service.ProgressUpdate true "progress"
// @Success 200 {object} util.Response
// @Router /api/lessons/{lessonId}/progress [put]
func (c *CourseController) UpdateLessonProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var update service.ProgressUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lessonID := util.MustParseUint(ctx.Param("lessonId"))
	progress, err := c.CourseService.UpdateLessonProgress(user.UserID, lessonID, update)
	if err != nil {
		switch err {
		case util.ErrLessonNotFound:
			util.NotFound(ctx)
		case util.ErrNotEnrolled:
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, progress)
}
