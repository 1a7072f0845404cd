package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Engine   EngineConfig
	Billing  BillingConfig
}

type ServerConfig struct {
	Port        string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	PoolSize int
}

type JWTConfig struct {
	Secret     string
	Expiration int
}

type EngineConfig struct {
	// ProcessingDelay simulates the latency of the transformation engine.
	ProcessingDelay time.Duration
	Timeout         time.Duration
}

type BillingConfig struct {
	// PaymentStepInterval is the delay between progress ticks of the
	// simulated collector; collection completes after ten ticks.
	PaymentStepInterval time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	redisPool, _ := strconv.Atoi(getEnv("REDIS_POOL_SIZE", "10"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION", "3600"))

	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "ai_humanizer"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			PoolSize: redisPool,
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", "dev-only-secret-change-me"),
			Expiration: jwtExp,
		},
		Engine: EngineConfig{
			ProcessingDelay: getDurationEnv("ENGINE_PROCESSING_DELAY", 1500*time.Millisecond),
			Timeout:         getDurationEnv("ENGINE_TIMEOUT", 30*time.Second),
		},
		Billing: BillingConfig{
			PaymentStepInterval: getDurationEnv("PAYMENT_STEP_INTERVAL", 400*time.Millisecond),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
