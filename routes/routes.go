package routes

import (
	"net/http"
	"time"

	"nestview/handlers"
	"nestview/middleware"
	"nestview/models"
	"nestview/services/realtime"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.User.RegisterHandler)
		api.POST("/login", hb.User.LoginHandler)
	}
}

// RegisterPropertyRoutes registers the property directory endpoints.
func RegisterPropertyRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/properties")
	{
		// Public browsing endpoints.
		api.GET("", hb.Property.ListHandler)
		api.GET("/:id", hb.Property.GetHandler)

		// Agent-only management endpoints.
		agent := api.Group("")
		agent.Use(middleware.JWTAuth(hb.UserRepo), middleware.RequireRole(models.RoleAgent))
		agent.GET("/my-properties", hb.Property.MyPropertiesHandler)
		agent.POST("", hb.Property.CreateHandler)
		agent.DELETE("/:id", hb.Property.DeleteHandler)
	}
}

// RegisterBookingRoutes registers the slot lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		// Anyone can browse a property's slots.
		api.GET("/property/:propertyId", hb.Booking.PropertySlotsHandler)

		agent := api.Group("")
		agent.Use(middleware.JWTAuth(hb.UserRepo), middleware.RequireRole(models.RoleAgent))
		agent.POST("", hb.Booking.CreateSlotHandler)
		agent.PUT("/:id/status", hb.Booking.UpdateStatusHandler)
		agent.GET("/agent-schedule", hb.Booking.AgentScheduleHandler)

		buyer := api.Group("")
		buyer.Use(middleware.JWTAuth(hb.UserRepo), middleware.RequireRole(models.RoleBuyer))
		buyer.PUT("/:id/book", hb.Booking.BookSlotHandler)
		buyer.GET("/my-bookings", hb.Booking.MyBookingsHandler)
	}
}

// RegisterRealtimeRoute registers the websocket broadcast endpoint.
func RegisterRealtimeRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/ws", hb.Realtime.ServeWS)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hub *realtime.Hub) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Hi, I'm NestView",
			"clients": hub.ClientCount(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterPropertyRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterRealtimeRoute(r, hb)
	RegisterHealthRoute(r, hb.Realtime.Hub)
}
