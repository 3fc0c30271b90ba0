package envutil

import (
	"os"
	"strconv"

	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
)

func GetEnv(key, fallback string, log *logger.Logger) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if log != nil {
		log.Debug("Env var not set, using default", "key", key, "default", fallback)
	}
	return fallback
}

func GetEnvAsInt(key string, fallback int, log *logger.Logger) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		if log != nil {
			log.Warn("Env var is not an integer, using default", "key", key, "default", fallback)
		}
		return fallback
	}
	return n
}

func GetEnvAsFloat(key string, fallback float64, log *logger.Logger) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		if log != nil {
			log.Warn("Env var is not a float, using default", "key", key, "default", fallback)
		}
		return fallback
	}
	return f
}
