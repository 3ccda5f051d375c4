package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Samilincoln/Study-Sync/config"
	"github.com/Samilincoln/Study-Sync/models"
	"github.com/Samilincoln/Study-Sync/routes"
	"github.com/Samilincoln/Study-Sync/schedule"
	"github.com/Samilincoln/Study-Sync/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	logger, err := config.NewLogger()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.ConnectDB()
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&models.Guardian{},
		&models.Class{},
		&models.MessageLog{},
	); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	store := services.NewStore(db)
	sender := services.NewSenderFromEnv(db, logger)

	registry := schedule.NewRegistry()
	dispatcher := schedule.NewDispatcher(store, sender, logger)
	coordinator := schedule.NewCoordinator(store, registry, dispatcher, logger)

	ctx := context.Background()
	if err := coordinator.Resync(ctx); err != nil {
		logger.Fatal("failed to resync scheduled reminders", zap.Error(err))
	}
	coordinator.Start(ctx)
	defer coordinator.Stop()

	digest := services.NewDigest(store, sender, logger)
	if err := digest.Start(os.Getenv("DIGEST_CRON")); err != nil {
		logger.Fatal("failed to start daily digest", zap.Error(err))
	}
	defer digest.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter(db, coordinator, store, sender, logger)
	printRoutes(r)

	if err := r.Run(":" + port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
