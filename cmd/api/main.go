package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/pkg/logger"
)

func main() {
	// ========================================
	// LOAD ENVIRONMENT VARIABLES
	// ========================================
	// Load từ .env file (development/local)
	// Production sẽ dùng system environment variables
	envFileErr := godotenv.Load()

	env := getEnv("APP_ENV", "development")
	logger.Init(env)

	if envFileErr != nil {
		logger.Warn("No .env file found, using system environment variables", nil)
	}

	// ========================================
	// SET GIN MODE
	// ========================================
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting book catalog API", map[string]interface{}{"environment": env})

	// Delegate toàn bộ logic sang Serve()
	if err := Serve(); err != nil {
		log.Fatal().Err(err).Msg("Server stopped with error")
	}
}

// getEnv lấy environment variable với fallback default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
