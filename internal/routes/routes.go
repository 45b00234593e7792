package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parenting-copilot-server/internal/ai"
	"parenting-copilot-server/internal/handlers"
	"parenting-copilot-server/internal/store"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, s store.Store, aiService *ai.Service) {
	// Initialize handlers
	childrenHandler := handlers.NewChildrenHandler(s, aiService)
	healthHandler := handlers.NewHealthRecordsHandler(s)
	remindersHandler := handlers.NewRemindersHandler(s)
	carePlansHandler := handlers.NewCarePlansHandler(s, aiService)
	aiHandler := handlers.NewAIHandler(s, aiService)

	api := router.Group("/api")
	{
		children := api.Group("/children")
		{
			children.GET("", childrenHandler.GetChildren)
			children.GET("/:id", childrenHandler.GetChild)
			children.POST("", childrenHandler.CreateChild)
			children.PUT("/:id", childrenHandler.UpdateChild)
			children.DELETE("/:id", childrenHandler.DeleteChild)
			children.GET("/:id/insights", childrenHandler.GetInsights)
			children.POST("/:id/insights", childrenHandler.GenerateInsight)
		}

		health := api.Group("/health")
		{
			health.GET("", healthHandler.GetHealthRecords)
			// Liveness check. The original declared this on /api/health,
			// where the record list shadowed it.
			health.GET("/check", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{
					"status":  "OK",
					"message": "AI Copilot for Parents API is running",
				})
			})
			health.GET("/child/:childId", healthHandler.GetHealthRecordsForChild)
			health.GET("/upcoming/:childId", healthHandler.GetUpcomingForChild)
			health.GET("/:id", healthHandler.GetHealthRecord)
			health.POST("", healthHandler.CreateHealthRecord)
			health.PUT("/:id", healthHandler.UpdateHealthRecord)
			health.DELETE("/:id", healthHandler.DeleteHealthRecord)
			health.PATCH("/:id/complete", healthHandler.CompleteHealthRecord)
		}

		reminders := api.Group("/reminders")
		{
			reminders.GET("", remindersHandler.GetReminders)
			reminders.GET("/child/:childId", remindersHandler.GetRemindersForChild)
			reminders.GET("/active", remindersHandler.GetActiveReminders)
			reminders.GET("/upcoming", remindersHandler.GetUpcomingReminders)
			reminders.POST("", remindersHandler.CreateReminder)
			reminders.PUT("/:id", remindersHandler.UpdateReminder)
			reminders.DELETE("/:id", remindersHandler.DeleteReminder)
			reminders.PATCH("/:id/toggle", remindersHandler.ToggleReminder)
			reminders.PATCH("/:id/trigger", remindersHandler.TriggerReminder)
		}

		carePlans := api.Group("/care-plans")
		{
			carePlans.GET("", carePlansHandler.GetCarePlans)
			carePlans.GET("/child/:childId", carePlansHandler.GetCarePlansForChild)
			carePlans.GET("/:id", carePlansHandler.GetCarePlan)
			carePlans.POST("", carePlansHandler.CreateCarePlan)
			carePlans.PUT("/:id", carePlansHandler.UpdateCarePlan)
			carePlans.DELETE("/:id", carePlansHandler.DeleteCarePlan)
			carePlans.PATCH("/:id/tasks/:taskId", carePlansHandler.UpdateTask)
			carePlans.POST("/:id/tasks", carePlansHandler.AddTask)
			carePlans.DELETE("/:id/tasks/:taskId", carePlansHandler.DeleteTask)
			carePlans.POST("/:id/regenerate", carePlansHandler.Regenerate)
		}

		aiRoutes := api.Group("/ai")
		{
			aiRoutes.POST("/tips", aiHandler.GenerateTip)
			aiRoutes.POST("/insights", aiHandler.GenerateInsights)
			aiRoutes.POST("/care-plan", aiHandler.GenerateCarePlan)
			aiRoutes.POST("/chat", aiHandler.Chat)
			aiRoutes.GET("/insights/:childId", aiHandler.GetInsightsForChild)
			aiRoutes.DELETE("/insights/:id", aiHandler.DeleteInsight)
			aiRoutes.POST("/daily-summary", aiHandler.DailySummary)
		}
	}
}
