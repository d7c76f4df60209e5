// Package config содержит загрузку и валидацию конфигурации.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config представляет конфигурацию приложения
type Config struct {
	// Spotify
	SpotifyClientID     string
	SpotifyClientSecret string
	PlaylistURL         string

	// Extract
	ExtractAllPages bool
	ExtractSchedule string
	RunTimeout      time.Duration

	// Object storage
	Storage StorageConfig

	// Database (журнал выгрузок, опционально)
	DatabaseURL string

	// Telegram (уведомления, опционально)
	BotToken     string
	NotifyChatID int64

	// Health
	HealthPort         string
	HealthCheckEnabled bool

	// Logging
	LogLevel string

	// App Data Directory
	AppDataDir string
}

// StorageConfig представляет конфигурацию объектного хранилища
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool
	Bucket    string
	KeyPrefix string
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Загружаем .env файл если он существует
	if err := godotenv.Load(); err != nil {
		// Игнорируем ошибку если файл не найден
	}

	config := &Config{
		SpotifyClientID:     getEnvFallback("SPOTIFY_CLIENT_ID", "client_id", ""),
		SpotifyClientSecret: getEnvFallback("SPOTIFY_CLIENT_SECRET", "client_secret", ""),
		PlaylistURL:         getEnv("PLAYLIST_URL", "https://open.spotify.com/playlist/37i9dQZEVXbNG2KDcFcKOF?si=1333723a6eff4b7f"),
		ExtractAllPages:     getEnvBool("EXTRACT_ALL_PAGES", false),
		ExtractSchedule:     getEnv("EXTRACT_SCHEDULE", "0 */8 * * *"),
		RunTimeout:          getEnvDuration("RUN_TIMEOUT", 5*time.Minute),
		Storage: StorageConfig{
			Endpoint:  getEnv("S3_ENDPOINT", "s3.amazonaws.com"),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
			Region:    getEnv("S3_REGION", "us-east-1"),
			UseSSL:    getEnvBool("S3_USE_SSL", true),
			Bucket:    getEnv("S3_BUCKET", "spotify-etl-project-tasneem"),
			KeyPrefix: getEnv("S3_KEY_PREFIX", "raw_data/to_processed/"),
		},
		DatabaseURL:        getEnv("DB_DSN", ""),
		BotToken:           getEnv("BOT_TOKEN", ""),
		NotifyChatID:       getEnvInt64("NOTIFY_CHAT_ID", 0),
		HealthPort:         getEnv("HEALTH_PORT", "8080"),
		HealthCheckEnabled: getEnvBool("HEALTH_CHECK_ENABLED", true),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		AppDataDir:         getEnv("APP_DATA_DIR", "./data"),
	}

	// Валидация обязательных полей
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.SpotifyClientID == "" {
		return fmt.Errorf("SPOTIFY_CLIENT_ID is required")
	}

	if c.SpotifyClientSecret == "" {
		return fmt.Errorf("SPOTIFY_CLIENT_SECRET is required")
	}

	if c.PlaylistURL == "" {
		return fmt.Errorf("PLAYLIST_URL is required")
	}

	if c.ExtractSchedule == "" {
		return fmt.Errorf("EXTRACT_SCHEDULE is required")
	}

	if c.Storage.Bucket == "" {
		return fmt.Errorf("S3_BUCKET is required")
	}

	if c.RunTimeout <= 0 {
		return fmt.Errorf("RUN_TIMEOUT must be positive")
	}

	return nil
}

// getEnv получает переменную окружения с значением по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvFallback получает переменную окружения с запасным именем
// (имена client_id/client_secret сохранены для совместимости с Lambda-окружением)
func getEnvFallback(key, fallbackKey, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if value := os.Getenv(fallbackKey); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt64 получает переменную окружения как int64
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как time.Duration
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvBool получает переменную окружения как bool
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
