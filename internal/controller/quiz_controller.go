package controller

import (
	"academia_backend/internal/model"
	"academia_backend/internal/service"
	"academia_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// @Summary Start a quiz play session
// @Description Samples a random question set from the lesson's bank, without answer keys
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "lesson id"
// @Success 200 {object} util.Response
// @Router /api/quiz/play/{lessonId} [get]
func (c *QuizController) GetPlaySession(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	lessonID := util.MustParseUint(ctx.Param("lessonId"))
	if lessonID == 0 {
		util.BadRequest(ctx, "Invalid lesson ID")
		return
	}

	session, err := c.QuizService.GetPlaySession(lessonID)
	if err != nil {
		if err == util.ErrQuizNotAvailable {
			util.NotFoundMessage(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, session)
}

// @Summary Submit quiz answers
// @Description Grades a play session, records the attempt and awards XP on a pass
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuizSubmission true "submission"
// @Success 200 {object} util.Response
// @Router /api/quiz/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var submission service.QuizSubmission
	if err := ctx.ShouldBindJSON(&submission); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if submission.QuizID == 0 {
		util.BadRequest(ctx, "quizId is required")
		return
	}
	if len(submission.Answers) == 0 {
		util.BadRequest(ctx, "answers must be a non-empty list")
		return
	}

	grade, err := c.QuizService.SubmitQuiz(user.UserID, submission)
	if err != nil {
		if err == util.ErrQuizNotFound {
			util.NotFoundMessage(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, grade)
}

type QuizUpdateRequest struct {
	LessonID  uint                 `json:"lessonId"`
	Questions []model.QuizQuestion `json:"questions"`
}

// @Summary Replace a lesson's question bank
// @Description Instructor-only; the bank needs at least 10 valid questions
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body QuizUpdateRequest true "lesson id and full question bank"
// @Success 200 {object} util.Response
// @Router /api/quiz/update [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req QuizUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.LessonID == 0 {
		util.BadRequest(ctx, "lessonId is required")
		return
	}

	if errs := service.ValidateBank(req.Questions); len(errs) > 0 {
		util.BadRequest(ctx, strings.Join(errs, "; "))
		return
	}

	quiz, err := c.QuizService.UpdateBank(user.UserID, user.Role, req.LessonID, req.Questions)
	if err != nil {
		switch err {
		case util.ErrLessonNotFound:
			util.NotFoundMessage(ctx, err.Error())
		case util.ErrPermissionDenied:
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"quiz": quiz})
}

// @Summary Own attempt history for a lesson
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "lesson id"
// @Success 200 {object} util.Response
// @Router /api/quiz/attempts/{lessonId} [get]
func (c *QuizController) GetAttempts(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	lessonID := util.MustParseUint(ctx.Param("lessonId"))
	attempts, err := c.QuizService.GetAttempts(user.UserID, lessonID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, attempts)
}
