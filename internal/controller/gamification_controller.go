package controller

import (
	"academia_backend/internal/service"
	"academia_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type GamificationController struct {
	GamificationService *service.GamificationService
}

func NewGamificationController(gamificationService *service.GamificationService) *GamificationController {
	return &GamificationController{GamificationService: gamificationService}
}

// @Summary Own XP, level and streak
// @Tags gamification
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/gamification/profile [get]
func (c *GamificationController) GetProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	profile, err := c.GamificationService.GetProfile(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// @Summary XP leaderboard
// @Tags gamification
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "entries, default 10"
// @Success 200 {object} util.Response
// @Router /api/gamification/leaderboard [get]
func (c *GamificationController) GetLeaderboard(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	entries, err := c.GamificationService.GetLeaderboard(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
