package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"parenting-copilot-server/internal/ai"
	"parenting-copilot-server/internal/config"
	"parenting-copilot-server/internal/middleware"
	"parenting-copilot-server/internal/models"
	"parenting-copilot-server/internal/routes"
	"parenting-copilot-server/internal/scheduler"
	"parenting-copilot-server/internal/store"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize storage backend
	dataStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Error initializing storage: %v", err)
	}
	defer dataStore.Close()

	// Initialize the advisory service
	aiService := ai.NewService(ai.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model))

	// Start the reminder sweep
	reminderScheduler := scheduler.NewReminderScheduler(dataStore)
	if err := reminderScheduler.Start(); err != nil {
		log.Fatalf("Error starting reminder scheduler: %v", err)
	}
	defer reminderScheduler.Stop()

	// Initialize Gin router
	router := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))
	router.Use(middleware.RequestLogger())

	routes.SetupRoutes(router, dataStore, aiService)

	// Shut down cleanly on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down server...")
		reminderScheduler.Stop()
		dataStore.Close()
		os.Exit(0)
	}()

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	fmt.Printf("Server running on port %s\n", cfg.Port)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// openStore selects the persistence backend from configuration. Both
// backends satisfy the same Store contract.
func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMySQL:
		db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
		if err != nil {
			return nil, err
		}
		return store.NewGormStore(db), nil
	default:
		return store.NewFileStore(cfg.Storage.DataFile)
	}
}
