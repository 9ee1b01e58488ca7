package routes

import (
	"lab-draft-api/controllers"
	"lab-draft-api/middleware"
	"lab-draft-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", controllers.Login)

			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Lab Draft API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Labs
			labs := protected.Group("/labs")
			{
				labs.GET("", controllers.GetLabs)
				labs.POST("", middleware.RequireRole(models.RoleAdmin), controllers.RegisterLab)
				labs.PUT("/:id/quota", middleware.RequireRole(models.RoleAdmin), controllers.SetLabQuota)
				labs.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteLab)
			}

			// Drafts
			drafts := protected.Group("/drafts")
			{
				drafts.GET("/active", controllers.GetActiveDraft)
				drafts.GET("/:id", controllers.GetDraft)
				drafts.POST("", middleware.RequireRole(models.RoleAdmin), controllers.CreateDraft)
				drafts.POST("/:id/advance", middleware.RequireRole(models.RoleAdmin), controllers.AdvanceRound)

				// Rankings: students submit for themselves
				drafts.POST("/:id/rankings", middleware.RequireRole(models.RoleStudent), controllers.SubmitRanking)
				drafts.GET("/:id/rankings/me", middleware.RequireRole(models.RoleStudent), controllers.GetMyRanking)
				drafts.GET("/:id/rankings", middleware.RequireRole(models.RoleFaculty, models.RoleAdmin), controllers.GetDraftRankings)

				// Choices: faculty record for their own lab
				drafts.POST("/:id/choices", middleware.RequireRole(models.RoleFaculty, models.RoleAdmin), controllers.RecordChoice)
				drafts.GET("/:id/choices", middleware.RequireRole(models.RoleFaculty, models.RoleAdmin), controllers.GetDraftChoices)
				drafts.GET("/:id/labs/:lab_id/acceptances", middleware.RequireRole(models.RoleFaculty, models.RoleAdmin), controllers.GetLabAcceptanceCount)

				// Event log and export projections
				drafts.GET("/:id/events", middleware.RequireRole(models.RoleAdmin), controllers.GetDraftEvents)
				drafts.GET("/:id/results/by-student", middleware.RequireRole(models.RoleFaculty, models.RoleAdmin), controllers.GetResultsByStudent)
				drafts.GET("/:id/results/by-lab", middleware.RequireRole(models.RoleFaculty, models.RoleAdmin), controllers.GetResultsByLab)
			}

			// User administration
			users := protected.Group("/users")
			users.Use(middleware.RequireRole(models.RoleAdmin))
			{
				users.GET("", controllers.GetUsers)
				users.POST("", controllers.CreateUser)
			}
		}
	}
}
