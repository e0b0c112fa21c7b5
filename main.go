// File: nestview/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nestview/config"
	"nestview/database"
	propertyRepoPkg "nestview/database/repository/property"
	slotRepoPkg "nestview/database/repository/slot"
	userRepoPkg "nestview/database/repository/user"
	"nestview/handlers"
	"nestview/middleware"
	"nestview/routes"
	"nestview/services/booking"
	"nestview/services/property"
	"nestview/services/realtime"
	"nestview/services/user"
	"nestview/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	propertyRepo := propertyRepoPkg.NewMongoPropertyRepo()
	slotRepo := slotRepoPkg.NewMongoSlotRepo()

	// real-time broadcast hub.
	hub := realtime.NewHub(logger)
	go hub.Run()

	// services.
	userService := &user.DefaultUserService{
		Repo:   userRepo,
		Logger: logger,
	}
	propertyService := &property.DefaultPropertyService{
		Repo:     propertyRepo,
		SlotRepo: slotRepo,
		Storage:  cloudinaryStorageService,
		Logger:   logger,
	}
	bookingService := &booking.DefaultBookingService{
		SlotRepo:     slotRepo,
		PropertyRepo: propertyRepo,
		Events:       hub,
		Logger:       logger,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,
		User:     handlers.NewUserHandler(userService),
		Property: handlers.NewPropertyHandler(propertyService),
		Booking:  handlers.NewBookingHandler(bookingService),
		Realtime: handlers.NewRealtimeHandler(hub),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
