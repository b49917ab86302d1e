package main

import (
	"log"
	"os"

	v1 "github.com/canvaspace/api/v1"
	"github.com/canvaspace/config"
	"github.com/canvaspace/database"
	"github.com/canvaspace/lib/publish"
	"github.com/canvaspace/lib/storage"
	"github.com/canvaspace/logutils"
	"github.com/canvaspace/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load .env before anything reads the environment
	config.LoadEnv()

	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	// Connect and migrate
	database.Initialize()

	// Publish-link store (optional)
	var publishStore publish.Store
	if redisURL := config.GetEnv("REDIS_URL", ""); redisURL != "" {
		store, err := publish.NewRedisStore(redisURL)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		publishStore = store
		logutils.Log.Info("publish-link store enabled")
	} else {
		logutils.Log.Warn("REDIS_URL not set, publish links disabled")
	}

	// Canvas asset storage (optional)
	var assetStore services.AssetRemover
	if endpoint := config.GetEnv("MINIO_ENDPOINT", ""); endpoint != "" {
		store, err := storage.NewMinioStore(
			endpoint,
			config.GetEnv("MINIO_ACCESS_KEY", ""),
			config.GetEnv("MINIO_SECRET_KEY", ""),
			config.GetEnv("MINIO_BUCKET", "canvaspace"),
			config.GetEnvBool("MINIO_USE_SSL", false),
		)
		if err != nil {
			log.Fatalf("Failed to create storage client: %v", err)
		}
		assetStore = store
		logutils.Log.Info("canvas asset storage enabled")
	} else {
		logutils.Log.Warn("MINIO_ENDPOINT not set, asset cleanup disabled")
	}

	// Services
	purgeService := services.NewPurgeService(assetStore, publishStore)
	controllers := v1.NewControllers(
		services.NewAuthService(),
		services.NewSpaceService(purgeService),
		services.NewCanvasService(purgeService),
		services.NewVersionService(publishStore),
	)

	// Initialize router
	router := gin.Default()

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	controllers.RegisterRoutes(router.Group("/api/v1"))

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logutils.Log.Infof("canvaspace starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
