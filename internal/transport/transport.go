package transport

import (
	"github.com/gin-gonic/gin"

	"github.com/studyspot/studyspot/internal/service"
	"github.com/studyspot/studyspot/internal/transport/middleware"
)

func InitRoutes(
	spaceHandler *SpaceHandler,
	bookingHandler *BookingHandler,
	authHandler *AuthHandler,
	toastHandler *ToastHandler,
	authService service.AuthService,
) *gin.Engine {

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30))

	// API routes
	api := router.Group("/api/v1")
	{
		// Space routes
		spaces := api.Group("/spaces")
		{
			spaces.GET("", spaceHandler.GetAllSpaces)
			spaces.GET("/:id", spaceHandler.GetSpace)
			spaces.GET("/:id/availability", spaceHandler.GetAvailability)
		}

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/session", authHandler.Session)
		}

		// Booking routes: недоступны без логина
		bookings := api.Group("/bookings")
		bookings.Use(middleware.RequireLogin(authService))
		{
			bookings.GET("", bookingHandler.GetBookings)
			bookings.GET("/all", bookingHandler.GetAllBookings)
			bookings.POST("", bookingHandler.CreateBooking)
			bookings.POST("/:id/cancel", bookingHandler.CancelBooking)
			bookings.DELETE("/:id", bookingHandler.RemoveBooking)
			bookings.DELETE("", bookingHandler.ClearBookings)

			// Workflow панели бронирования
			bookings.GET("/draft", bookingHandler.GetDraft)
			bookings.POST("/draft", bookingHandler.StartDraft)
			bookings.PUT("/draft", bookingHandler.UpdateDraft)
			bookings.POST("/draft/confirm", bookingHandler.ConfirmDraft)
		}

		// Toast routes
		api.GET("/toasts", toastHandler.GetActive)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router
}
