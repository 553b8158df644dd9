package api

import (
	"net/http"

	"agendia/studio-server/internal/domain"
	"agendia/studio-server/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	dashboardService service.DashboardService,
	attendanceService service.AttendanceService,
	studioService service.StudioService,
) {

	authHandler := NewAuthHandler(authService)
	dashboardHandler := NewDashboardHandler(dashboardService)
	attendanceHandler := NewAttendanceHandler(attendanceService)
	studioHandler := NewStudioHandler(studioService)

	authMiddleware := AuthMiddleware(jwtSecret)
	ownerOnly := RoleMiddleware(domain.RoleOwner)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/password-reset/request", authHandler.RequestPasswordReset)
			authGroup.POST("/password-reset/confirm", authHandler.ConfirmPasswordReset)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// --- Dashboard Routes ---
		dashboardGroup := protected.Group("/dashboard")
		{
			dashboardGroup.GET("/summary", dashboardHandler.GetSummary)
			dashboardGroup.GET("/sessions", dashboardHandler.GetSessions)
			dashboardGroup.GET("/notifications", dashboardHandler.GetNotifications)
			dashboardGroup.POST("/notifications/:id/enroll", dashboardHandler.EnrollFromWaitlist)
			dashboardGroup.DELETE("/notifications/:id", dashboardHandler.DismissNotification)
		}

		// --- Attendance Routes ---
		attendanceGroup := protected.Group("/sessions/:sessionId")
		{
			attendanceGroup.GET("/roster", attendanceHandler.GetRoster)
			attendanceGroup.POST("/attendance", attendanceHandler.RecordAttendance)
		}

		// --- People Routes ---
		peopleGroup := protected.Group("/people")
		{
			peopleGroup.GET("", studioHandler.GetPeople)
			peopleGroup.GET("/:id/photo", studioHandler.GetPhotoURL)

			// Management endpoints are restricted to the owner.
			peopleGroup.POST("", ownerOnly, studioHandler.CreatePerson)
			peopleGroup.PUT("/:id", ownerOnly, studioHandler.UpdatePerson)
			peopleGroup.POST("/:id/photo-upload-url", ownerOnly, studioHandler.RequestPhotoUploadURL)
			peopleGroup.PUT("/:id/photo", ownerOnly, studioHandler.ConfirmPhoto)
		}

		// --- Session Management Routes ---
		sessionGroup := protected.Group("/sessions")
		{
			sessionGroup.GET("", studioHandler.GetSessions)
			sessionGroup.POST("", ownerOnly, studioHandler.CreateSession)
		}

		// --- Catalog Routes ---
		catalogGroup := protected.Group("/catalog")
		{
			catalogGroup.GET("/activities", studioHandler.GetActivities)
			catalogGroup.GET("/specialists", studioHandler.GetSpecialists)
			catalogGroup.GET("/spaces", studioHandler.GetSpaces)

			catalogGroup.POST("/activities", ownerOnly, studioHandler.CreateActivity)
			catalogGroup.POST("/specialists", ownerOnly, studioHandler.CreateSpecialist)
			catalogGroup.POST("/spaces", ownerOnly, studioHandler.CreateSpace)
		}
	}
}
