package main

import (
	"alcyxob/gym-management/internal/api"
	"alcyxob/gym-management/internal/config"
	"alcyxob/gym-management/internal/repository/mongo"
	"alcyxob/gym-management/internal/service"
	"alcyxob/gym-management/internal/storage"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title Gym Management API
// @version 1.0
// @description API for managing gym clients, instructors, group classes and workouts.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting Gym Management Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Printf("Configuration loaded. Gym time zone: %s", cfg.Schedule.Zone)

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
	// Unique indexes back the duplicate-key messages, so they must exist
	// before the first request.
	log.Println("Ensuring database indexes...")
	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), time.Minute)
	err = mongo.EnsureIndexes(indexCtx, appDB)
	if err == nil {
		err = mongo.SeedLookups(indexCtx, appDB)
	}
	cancelIndexes()
	if err != nil {
		log.Fatalf("FATAL: Could not prepare database: %v", err)
	}

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	storageCtx, cancelStorage := context.WithTimeout(context.Background(), 30*time.Second)
	fileStorage, err := storage.NewS3Storage(storageCtx, cfg.S3)
	cancelStorage()
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	clientRepo := mongo.NewMongoClientRepository(appDB)
	instructorRepo := mongo.NewMongoInstructorRepository(appDB)
	groupClassRepo := mongo.NewMongoGroupClassRepository(appDB)
	categoryRepo := mongo.NewMongoFitnessCategoryRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	documentRepo := mongo.NewMongoInstructorDocumentRepository(appDB)
	lookupRepo := mongo.NewMongoLookupRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	fileOpts := service.FileOptions{URLExpiry: cfg.S3.URLExpiry, MaxUploadBytes: cfg.S3.MaxUploadBytes}
	scheduleOpts := service.ScheduleOptions{DefaultDuration: cfg.Schedule.DefaultDuration, Location: cfg.Schedule.Zone}
	services := api.Services{
		Auth:            service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration),
		Clients:         service.NewClientService(clientRepo, lookupRepo, fileStorage, fileOpts),
		Workouts:        service.NewWorkoutService(workoutRepo, clientRepo, instructorRepo, categoryRepo, lookupRepo, scheduleOpts),
		GroupClasses:    service.NewGroupClassService(groupClassRepo, categoryRepo, instructorRepo, clientRepo, lookupRepo),
		Instructors:     service.NewInstructorService(instructorRepo, documentRepo, fileStorage, fileOpts),
		FitnessCategory: service.NewFitnessCategoryService(categoryRepo),
		Lookups:         service.NewLookupService(lookupRepo, categoryRepo),
	}

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	paging := api.Paging{DefaultSize: cfg.Paging.DefaultSize, MaxSize: cfg.Paging.MaxSize}
	api.SetupRoutes(router, cfg.JWT.Secret, cfg.Database.OpTimeout, paging, services)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
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
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
