package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agendia/studio-server/internal/api"
	"agendia/studio-server/internal/config"
	"agendia/studio-server/internal/mail"
	"agendia/studio-server/internal/repository/mongo"
	"agendia/studio-server/internal/service"
	"agendia/studio-server/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Agendia Studio Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsurePersonIndexes(ctx, appDB.Collection("people"))
		mongo.EnsureSessionIndexes(ctx, appDB.Collection("sessions"))
		mongo.EnsureAttendanceIndexes(ctx, appDB.Collection("attendance"))
		mongo.EnsureNotificationIndexes(ctx, appDB.Collection("notifications"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Mailer ---
	mailer := mail.NewResendMailer(cfg.Mail)

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	personRepo := mongo.NewMongoPersonRepository(appDB)
	sessionRepo := mongo.NewMongoSessionRepository(appDB)
	attendanceRepo := mongo.NewMongoAttendanceRepository(appDB)
	notificationRepo := mongo.NewMongoNotificationRepository(appDB)
	activityRepo := mongo.NewMongoActivityRepository(appDB)
	specialistRepo := mongo.NewMongoSpecialistRepository(appDB)
	spaceRepo := mongo.NewMongoSpaceRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, mailer, cfg.Mail.ResetURL, cfg.JWT.Secret, cfg.JWT.Expiration)
	dashboardService := service.NewDashboardService(personRepo, sessionRepo, attendanceRepo, notificationRepo, activityRepo, specialistRepo, spaceRepo)
	attendanceService := service.NewAttendanceService(sessionRepo, personRepo, attendanceRepo)
	studioService := service.NewStudioService(personRepo, sessionRepo, attendanceRepo, activityRepo, specialistRepo, spaceRepo, fileStorage)

	// --- Initialize Gin Engine ---
	router := gin.Default()

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, dashboardService, attendanceService, studioService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
