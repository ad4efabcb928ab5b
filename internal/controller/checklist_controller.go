package controller

import (
	"academia_backend/internal/service"
	"academia_backend/internal/util"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

type ChecklistController struct {
	ChecklistService *service.ChecklistService
	StorageService   *service.StorageService
}

func NewChecklistController(checklistService *service.ChecklistService, storageService *service.StorageService) *ChecklistController {
	return &ChecklistController{
		ChecklistService: checklistService,
		StorageService:   storageService,
	}
}

// @Summary Create a recurring task template
// @Tags checklist
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.TemplateRequest true "template"
// @Success 201 {object} util.Response
// @Router /api/checklist/templates [post]
func (c *ChecklistController) CreateTemplate(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.TemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	template, msg, err := c.ChecklistService.CreateTemplate(user.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if msg != "" {
		util.BadRequest(ctx, msg)
		return
	}

	util.Created(ctx, template)
}

// @Summary List task templates
// @Tags checklist
// @Produce json
// @Security ApiKeyAuth
// @Param active query bool false "only active templates"
// @Success 200 {object} util.Response
// @Router /api/checklist/templates [get]
func (c *ChecklistController) ListTemplates(ctx *gin.Context) {
	activeOnly := ctx.Query("active") == "true"
	templates, err := c.ChecklistService.ListTemplates(activeOnly)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, templates)
}

// @Summary Deactivate a task template
// @Tags checklist
// @Produce json
// @Security ApiKeyAuth
// @Param templateId path int true "template id"
// @Success 200 {object} util.Response
// @Router /api/checklist/templates/{templateId} [delete]
func (c *ChecklistController) DeactivateTemplate(ctx *gin.Context) {
	templateID := util.MustParseUint(ctx.Param("templateId"))
	if err := c.ChecklistService.SetTemplateActive(templateID, false); err != nil {
		if err == util.ErrTemplateNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type AssignRequest struct {
	TemplateID uint `json:"templateId" binding:"required"`
	EmployeeID uint `json:"employeeId" binding:"required"`
}

// @Summary Assign a task template to an employee
// @Tags checklist
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body AssignRequest true "assignment"
// @Success 201 {object} util.Response
// @Router /api/checklist/assignments [post]
func (c *ChecklistController) AssignTask(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AssignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment, err := c.ChecklistService.AssignTask(user.UserID, req.TemplateID, req.EmployeeID)
	if err != nil {
		switch err {
		case util.ErrTemplateNotFound, util.ErrUserNotFound:
			util.NotFoundMessage(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, assignment)
}

// @Summary Remove an assignment
// @Description Soft-disables the assignment, history is kept
// @Tags checklist
// @Produce json
// @Security ApiKeyAuth
// @Param assignmentId path int true "assignment id"
// @Success 200 {object} util.Response
// @Router /api/checklist/assignments/{assignmentId} [delete]
func (c *ChecklistController) RemoveAssignment(ctx *gin.Context) {
	assignmentID := util.MustParseUint(ctx.Param("assignmentId"))
	if err := c.ChecklistService.RemoveAssignment(assignmentID); err != nil {
		if err == util.ErrAssignmentNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Own checklist for today
// @Tags checklist
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/checklist/today [get]
func (c *ChecklistController) GetTodayTasks(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	tasks, err := c.ChecklistService.GetTodayTasks(user.UserID, time.Now())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tasks)
}

// @Summary Mark a task done
// @Tags checklist
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CompletionRequest true "completion"
// @Success 201 {object} util.Response
// @Router /api/checklist/complete [post]
func (c *ChecklistController) CompleteTask(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CompletionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.AssignmentID == 0 {
		util.BadRequest(ctx, "assignmentId is required")
		return
	}

	completion, err := c.ChecklistService.CompleteTask(user.UserID, req, time.Now())
	if err != nil {
		switch err {
		case util.ErrAssignmentNotFound:
			util.NotFound(ctx)
		case util.ErrPermissionDenied:
			util.Forbidden(ctx)
		case util.ErrAssignmentNotActive, util.ErrPhotoRequired, util.ErrAlreadyCompleted:
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, completion)
}

// @Summary Upload a completion photo
// @Tags checklist
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param photo formData file true "photo evidence"
// @Success 200 {object} util.Response
// @Router /api/checklist/photo [post]
func (c *ChecklistController) UploadPhoto(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	file, header, err := ctx.Request.FormFile("photo")
	if err != nil {
		util.BadRequest(ctx, "photo file is required")
		return
	}
	defer file.Close()

	mimeType, err := util.ValidateMimeType(file, []string{util.MimeImage})
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if _, err := file.Seek(0, 0); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := fmt.Sprintf("checklist/%d/%d%s", user.UserID, time.Now().UnixNano(), filepath.Ext(header.Filename))
	url, err := c.StorageService.Provider.Upload(ctx.Request.Context(), filename, file, header.Size, mimeType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"photoUrl": url})
}

// @Summary Compliance statistics
// @Description Own stats for employees; lider/admin may query one employee or all
// @Tags checklist
// @Produce json
// @Security ApiKeyAuth
// @Param employeeId query int false "employee id, staff only"
// @Success 200 {object} util.Response
// @Router /api/checklist/statistics [get]
func (c *ChecklistController) GetStatistics(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	now := time.Now()
	employeeID := util.MustParseUint(ctx.Query("employeeId"))

	if !user.Role.IsStaff() {
		if employeeID != 0 && employeeID != user.UserID {
			util.Forbidden(ctx)
			return
		}
		stats, err := c.ChecklistService.GetStatistics(user.UserID, now)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		util.Success(ctx, stats)
		return
	}

	if employeeID != 0 {
		stats, err := c.ChecklistService.GetStatistics(employeeID, now)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		util.Success(ctx, stats)
		return
	}

	all, err := c.ChecklistService.GetAllStatistics(now)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, all)
}
