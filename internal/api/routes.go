package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"runbuddy/coach-app/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	profileService service.ProfileService,
	planService service.PlanService,
	runService service.RunService,
	chatService service.ChatService,
) {
	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService)
	planHandler := NewPlanHandler(planService)
	runHandler := NewRunHandler(runService)
	chatHandler := NewChatHandler(chatService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Profile / onboarding ---
		protected.GET("/me", profileHandler.GetMe)
		protected.PUT("/me/profile", profileHandler.UpdateProfile)

		// --- Weekly training plan ---
		planGroup := protected.Group("/plan")
		{
			planGroup.GET("", planHandler.GetPlan)
			planGroup.POST("/generate", planHandler.GeneratePlan)
			planGroup.POST("/toggle", planHandler.ToggleDay)
		}

		// --- Run log / progress ---
		runGroup := protected.Group("/runs")
		{
			runGroup.POST("", runHandler.LogRun)
			runGroup.GET("", runHandler.GetRuns)
			runGroup.GET("/stats", runHandler.GetStats)
		}

		// --- Coach chat ---
		chatGroup := protected.Group("/chat")
		{
			chatGroup.POST("", chatHandler.Chat)
			chatGroup.GET("/welcome", chatHandler.Welcome)
		}
	}
}
