package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fulafia/esp-portal/internal/app/controllers"
	"github.com/fulafia/esp-portal/internal/app/models"
	"github.com/fulafia/esp-portal/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	applicationController *controllers.ApplicationController,
	skillController *controllers.SkillController,
	departmentController *controllers.DepartmentController,
	trainerController *controllers.TrainerController,
	analyticsController *controllers.AnalyticsController,
	roleController *controllers.RoleController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---

	// Reference data the application form needs
	v1.GET("/skills", skillController.ListActive)
	v1.GET("/departments", departmentController.List)

	// Student application intake
	v1.POST("/applications", applicationController.Submit)

	// Prospective trainer interest submissions
	v1.POST("/trainers/interest", trainerController.SubmitInvitation)

	// Auth
	auth := v1.Group("/auth")
	{
		auth.POST("/trainer/activate", authController.ActivateTrainer)
		auth.POST("/trainer/login", authController.TrainerLogin)
		auth.POST("/admin/login", authController.AdminLogin)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)
		authenticated.PUT("/auth/password", authController.ChangePassword)

		// Trainer portal
		trainer := authenticated.Group("/trainer")
		trainer.Use(authMiddleware.RequireRole(models.RoleTrainer))
		{
			trainer.GET("/dashboard", trainerController.Dashboard)
			trainer.GET("/applications", trainerController.Applications)
			trainer.GET("/skills", trainerController.Skills)
		}

		// Admin portal. Moderators share the review queue but nothing else.
		review := authenticated.Group("/applications")
		review.Use(authMiddleware.RequireRole(models.RoleAdmin, models.RoleModerator))
		{
			review.GET("", applicationController.List)
			review.GET("/:id", applicationController.Get)
			review.GET("/:id/receipt", applicationController.DownloadReceipt)
			review.PUT("/:id/receipt", applicationController.AttachReceipt)
			review.PUT("/:id/review", applicationController.Review)
		}

		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/skills", skillController.ListAll)
			admin.POST("/skills", skillController.Create)
			admin.GET("/skills/:id", skillController.Get)
			admin.PUT("/skills/:id", skillController.Update)
			admin.PATCH("/skills/:id/active", skillController.SetActive)
			admin.DELETE("/skills/:id", skillController.Delete)

			admin.POST("/departments", departmentController.Create)
			admin.GET("/departments/:id", departmentController.Get)
			admin.PUT("/departments/:id", departmentController.Update)
			admin.DELETE("/departments/:id", departmentController.Delete)

			admin.GET("/trainers", trainerController.List)
			admin.POST("/trainers", trainerController.Create)
			admin.GET("/trainers/:id", trainerController.Get)
			admin.PUT("/trainers/:id", trainerController.Update)
			admin.DELETE("/trainers/:id", trainerController.Delete)
			admin.POST("/trainers/:id/skills", trainerController.AssignSkill)
			admin.DELETE("/trainers/:id/skills/:skillId", trainerController.RemoveSkill)

			admin.GET("/trainer-invitations", trainerController.ListInvitations)
			admin.PUT("/trainer-invitations/:id/approve", trainerController.ApproveInvitation)
			admin.PUT("/trainer-invitations/:id/reject", trainerController.RejectInvitation)

			admin.GET("/analytics", analyticsController.Summary)

			admin.GET("/roles", roleController.List)
			admin.POST("/roles", roleController.Grant)
			admin.DELETE("/roles", roleController.Revoke)
		}
	}
}
