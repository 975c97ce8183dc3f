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

	"github.com/gin-gonic/gin"

	"coursehub/admin-api/internal/api"
	"coursehub/admin-api/internal/cdn"
	"coursehub/admin-api/internal/config"
	"coursehub/admin-api/internal/domain"
	"coursehub/admin-api/internal/repository/mongo"
	"coursehub/admin-api/internal/service"
	"coursehub/admin-api/internal/storage"
)

func main() {
	log.Println("Starting CourseHub Admin API...")

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
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		ensure := func(name string, err error) {
			if err != nil {
				log.Printf("ERROR: creating %s indexes: %v", name, err)
			}
		}
		ensure("user", mongo.EnsureUserIndexes(ctx, appDB.Collection("users")))
		ensure("course", mongo.EnsureCourseIndexes(ctx, appDB.Collection("courses")))
		ensure("chapter", mongo.EnsureChapterIndexes(ctx, appDB.Collection("chapters")))
		ensure("video", mongo.EnsureVideoIndexes(ctx, appDB.Collection("videos")))
		ensure("faq", mongo.EnsureContentIndexes(ctx, appDB.Collection("faq_items")))
		ensure("benefit", mongo.EnsureContentIndexes(ctx, appDB.Collection("benefits")))
		ensure("testimonial", mongo.EnsureContentIndexes(ctx, appDB.Collection("testimonials")))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Media Storage ---
	log.Println("Initializing media storage...")
	mediaStorage, err := storage.NewS3MediaStorage(cfg.Media)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize media storage: %v", err)
	}

	// --- Initialize CDN Clients ---
	streamClient := cdn.NewStreamClient(cfg.Bunny.APIHost, cfg.Bunny.LibraryID, cfg.Bunny.APIKey, nil)
	signer := cdn.NewSigner(cfg.Bunny.LibraryID, cfg.Bunny.SigningKey, cfg.Bunny.EmbedHost)

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	courseRepo := mongo.NewMongoCourseRepository(appDB)
	chapterRepo := mongo.NewMongoChapterRepository(appDB)
	videoRepo := mongo.NewMongoVideoRepository(appDB)
	faqRepo := mongo.NewContentRepository[domain.FAQItem](appDB, "faq_items")
	benefitRepo := mongo.NewContentRepository[domain.Benefit](appDB, "benefits")
	testimonialRepo := mongo.NewContentRepository[domain.Testimonial](appDB, "testimonials")

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	videoService := service.NewVideoService(videoRepo, streamClient, signer)
	mediaService := service.NewMediaService(mediaStorage)
	contentService := service.NewContentService(faqRepo, benefitRepo, testimonialRepo)
	courseService := service.NewCourseService(courseRepo, chapterRepo)

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg, authService, videoService, mediaService, contentService, courseService, signer)

	// --- Start HTTP Server ---
	// WriteTimeout must cover the video upload window, which is far longer
	// than a normal request.
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Upload.VideoTimeout + 10*time.Second,
		WriteTimeout: cfg.Upload.VideoTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
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
