package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"healthdiary/internal/logger"
)

type Config struct {
	DB          DBConfig
	Redis       RedisConfig
	AI          AIConfig
	Server      ServerConfig
	Recognition RecognitionConfig
	Logger      LoggerConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Enabled bool
	Host    string
	Port    string
}

type AIConfig struct {
	GeminiAPIKey string
	OpenAIAPIKey string
	Provider     string // "gemini" or "openai"
}

type ServerConfig struct {
	Port         string
	UploadsDir   string
	AllowOrigins []string
}

type RecognitionConfig struct {
	// WorkerTimeout bounds a single recognition job server-side so a job
	// always reaches a terminal status even if the AI provider hangs.
	WorkerTimeout time.Duration
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func parseBool(value string) bool {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return b
}

func Load() (*Config, error) {
	return &Config{
		DB: DBConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrDefault("DB_NAME", "healthdiary"),
		},
		Redis: RedisConfig{
			Enabled: parseBool(os.Getenv("REDIS_ENABLED")),
			Host:    getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:    getEnvOrDefault("REDIS_PORT", "6379"),
		},
		AI: AIConfig{
			GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
			OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
			Provider:     getEnvOrDefault("AI_PROVIDER", "gemini"),
		},
		Server: ServerConfig{
			Port:         getEnvOrDefault("SERVER_PORT", "8080"),
			UploadsDir:   getEnvOrDefault("UPLOADS_DIR", "uploads"),
			AllowOrigins: strings.Split(getEnvOrDefault("CORS_ALLOW_ORIGINS", "*"), ","),
		},
		Recognition: RecognitionConfig{
			WorkerTimeout: parseDuration(os.Getenv("RECOGNITION_TIMEOUT"), 2*time.Minute),
		},
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}, nil
}
