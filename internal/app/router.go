package app

import (
	"academia_backend/docs"
	"academia_backend/internal/config"
	"academia_backend/internal/middleware"
	"academia_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	api := router.Group("/api")

	// Public routes. Catalog browsing works without a token.
	api.GET("/health", c.health.HealthCheck)
	api.POST("/register", c.auth.Register)
	api.POST("/login", c.auth.Login)
	api.GET("/courses", middleware.TryAuthMiddleware(cfg), c.course.GetCatalog)
	api.GET("/courses/:courseId", middleware.TryAuthMiddleware(cfg), c.course.GetCourse)

	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		auth.GET("/profile", c.auth.GetProfile)
		auth.PUT("/user/profile", c.user.UpdateProfile)

		auth.POST("/courses/:courseId/enroll", c.course.Enroll)
		auth.GET("/enrollments", c.course.GetEnrollments)
		auth.PUT("/lessons/:lessonId/progress", c.course.UpdateLessonProgress)

		auth.GET("/quiz/play/:lessonId", c.quiz.GetPlaySession)
		auth.POST("/quiz/submit", c.quiz.SubmitQuiz)
		auth.GET("/quiz/attempts/:lessonId", c.quiz.GetAttempts)

		auth.GET("/gamification/profile", c.gamification.GetProfile)
		auth.GET("/gamification/leaderboard", c.gamification.GetLeaderboard)

		auth.GET("/checklist/today", c.checklist.GetTodayTasks)
		auth.POST("/checklist/complete", c.checklist.CompleteTask)
		auth.POST("/checklist/photo", c.checklist.UploadPhoto)
		// Older clients send statistics queries as POST, both verbs are kept.
		auth.GET("/checklist/statistics", c.checklist.GetStatistics)
		auth.POST("/checklist/statistics", c.checklist.GetStatistics)
	}

	staff := api.Group("")
	staff.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Lider, model.Admin))
	{
		staff.POST("/courses", c.course.CreateCourse)
		staff.PUT("/courses/:courseId", c.course.UpdateCourse)
		staff.POST("/courses/:courseId/lessons", c.course.CreateLesson)
		staff.POST("/lessons/:lessonId/video", c.course.UploadLessonVideo)
		staff.PUT("/quiz/update", c.quiz.UpdateQuiz)

		staff.POST("/checklist/templates", c.checklist.CreateTemplate)
		staff.GET("/checklist/templates", c.checklist.ListTemplates)
		staff.DELETE("/checklist/templates/:templateId", c.checklist.DeactivateTemplate)
		staff.POST("/checklist/assignments", c.checklist.AssignTask)
		staff.DELETE("/checklist/assignments/:assignmentId", c.checklist.RemoveAssignment)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.PATCH("/users/:userId/disable", c.user.SetDisabled)
	}
}
