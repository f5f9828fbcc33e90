package utils

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// LoadEnv reads a dotenv file into the process environment before the
// config is parsed. The file is optional; deployments usually inject
// real environment variables instead.
func LoadEnv(logger *zap.Logger) {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		logger.Warn("No env file loaded, relying on process environment",
			zap.String("path", path))
		return
	}
	logger.Info("Env file loaded", zap.String("path", path))
}
