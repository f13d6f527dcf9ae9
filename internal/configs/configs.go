package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"task-manager-api.com/task-manager-api/internal/timezone"
)

const (
	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

type Config struct {
	AppURL                 string
	DatabaseDSN            string
	RateLimit              int
	AuthRateLimit          int
	RedisAddr              string
	RedisPassword          string
	RedisDB                int
	SessionStore           string
	SessionKeyPrefix       string
	JWTSecret              string
	JWTTTLMinutes          int
	BcryptCost             int
	DefaultTimezone        string
	ShutdownTimeoutSeconds int
	LogLevel               string
	LogPretty              bool
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8000")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", "tasks.db"),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
		AuthRateLimit:          getEnvAsInt("AUTH_RATE_LIMIT_PER_MINUTE", 10),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
		RedisDB:                getEnvAsInt("REDIS_DB", 0),
		SessionStore:           strings.ToLower(getEnv("SESSION_STORE", SessionStoreRedis)),
		SessionKeyPrefix:       getEnv("SESSION_KEY_PREFIX", "task_manager:revoked:"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		JWTTTLMinutes:          getEnvAsInt("JWT_TTL_MINUTES", 60),
		BcryptCost:             getEnvAsInt("BCRYPT_COST", 10),
		DefaultTimezone:        getEnv("DEFAULT_TIMEZONE", "Africa/Nairobi"),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		LogPretty:              getEnvAsBool("LOG_PRETTY", false),
	}

	if err := Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	return cfg
}

// LoadDatabase reads only what the migrate command needs.
func LoadDatabase() Config {
	cfg := Config{
		DatabaseDSN: getEnv("DATABASE_DSN", "tasks.db"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogPretty:   getEnvAsBool("LOG_PRETTY", false),
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal().Msg("DATABASE_DSN must not be empty")
	}
	return cfg
}

func Validate(cfg Config) error {
	if cfg.AppURL == "" {
		return fmt.Errorf("APP_HOST/APP_PORT must not be empty (e.g. 127.0.0.1:8000)")
	}
	if cfg.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN must not be empty")
	}
	if cfg.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.AuthRateLimit <= 0 {
		return fmt.Errorf("AUTH_RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.SessionStore != SessionStoreRedis && cfg.SessionStore != SessionStoreMemory {
		return fmt.Errorf("SESSION_STORE must be %q or %q", SessionStoreRedis, SessionStoreMemory)
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if cfg.JWTTTLMinutes <= 0 {
		return fmt.Errorf("JWT_TTL_MINUTES must be greater than 0")
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}
	if err := timezone.Validate(cfg.DefaultTimezone); err != nil {
		return fmt.Errorf("DEFAULT_TIMEZONE: %w", err)
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatal().Str("key", key).Msg("invalid integer value")
		}
		return i
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Fatal().Str("key", key).Msg("invalid boolean value")
		}
		return b
	}
	return defaultVal
}
