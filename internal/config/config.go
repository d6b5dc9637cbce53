package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr               string
	SpecificDBPath     string
	GeneralDBPath      string
	LogLevel           string
	DefaultCount       int
	SpecificRatio      float64
	ExcellentThreshold float64
	GoodThreshold      float64
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:               envOr("ADDR", ":8080"),
		SpecificDBPath:     envOr("SPECIFIC_DB_PATH", "specific_questions.db"),
		GeneralDBPath:      envOr("GENERAL_DB_PATH", "general_questions.db"),
		LogLevel:           envOr("LOG_LEVEL", "INFO"),
		DefaultCount:       envIntOr("DEFAULT_QUESTION_COUNT", 40),
		SpecificRatio:      envFloatOr("SPECIFIC_RATIO", 0.6),
		ExcellentThreshold: envFloatOr("EXCELLENT_THRESHOLD", 70),
		GoodThreshold:      envFloatOr("GOOD_THRESHOLD", 50),
	}
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.SpecificDBPath == "" {
		return fmt.Errorf("SPECIFIC_DB_PATH cannot be empty")
	}
	if c.GeneralDBPath == "" {
		return fmt.Errorf("GENERAL_DB_PATH cannot be empty")
	}
	if c.DefaultCount <= 0 {
		return fmt.Errorf("DEFAULT_QUESTION_COUNT must be positive, got %d", c.DefaultCount)
	}
	if c.SpecificRatio < 0 || c.SpecificRatio > 1 {
		return fmt.Errorf("SPECIFIC_RATIO must be between 0 and 1, got %v", c.SpecificRatio)
	}
	if c.ExcellentThreshold < 0 || c.ExcellentThreshold > 100 {
		return fmt.Errorf("EXCELLENT_THRESHOLD must be between 0 and 100, got %v", c.ExcellentThreshold)
	}
	if c.GoodThreshold < 0 || c.GoodThreshold > c.ExcellentThreshold {
		return fmt.Errorf("GOOD_THRESHOLD must be between 0 and EXCELLENT_THRESHOLD, got %v", c.GoodThreshold)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}
