package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	HTTPPort        string        `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`

	// Alert Config
	AlertRadiusKm     float64       `env:"ALERT_RADIUS_KM" envDefault:"50"`
	AlertTickInterval time.Duration `env:"ALERT_TICK_INTERVAL" envDefault:"30s"`
	AlertProbability  float64       `env:"ALERT_PROBABILITY" envDefault:"0.10"`

	// Session Config
	SessionSecret string `env:"SESSION_SECRET"`

	// Redis Config, пустой адрес отключает журнал событий
	RedisAddr string `env:"REDIS_ADDR"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Event Journal Config
	EventJournalKey    string `env:"EVENT_JOURNAL_KEY" envDefault:"border_alert_events"`
	EventJournalMaxLen int64  `env:"EVENT_JOURNAL_MAX_LEN" envDefault:"1000"`
}

// JournalEnabled сообщает, настроен ли Redis для журнала событий
func (c *Config) JournalEnabled() bool {
	return c.RedisAddr != ""
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPass:       os.Getenv("REDIS_PASSWORD"),
		EventJournalKey: getEnv("EVENT_JOURNAL_KEY", "border_alert_events"),
	}

	var err error
	if cfg.ShutdownTimeout, err = getEnvAsDuration("SHUTDOWN_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.AlertTickInterval, err = getEnvAsDuration("ALERT_TICK_INTERVAL", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.AlertRadiusKm, err = getEnvAsFloat("ALERT_RADIUS_KM", 50); err != nil {
		return nil, err
	}
	if cfg.AlertProbability, err = getEnvAsFloat("ALERT_PROBABILITY", 0.10); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getEnvAsInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	maxLen, err := getEnvAsInt("EVENT_JOURNAL_MAX_LEN", 1000)
	if err != nil {
		return nil, err
	}
	cfg.EventJournalMaxLen = int64(maxLen)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	if c.AlertTickInterval <= 0 {
		return fmt.Errorf("ALERT_TICK_INTERVAL must be positive, got %s", c.AlertTickInterval)
	}
	if c.AlertRadiusKm <= 0 {
		return fmt.Errorf("ALERT_RADIUS_KM must be positive, got %v", c.AlertRadiusKm)
	}
	if c.AlertProbability < 0 || c.AlertProbability > 1 {
		return fmt.Errorf("ALERT_PROBABILITY must be within [0, 1], got %v", c.AlertProbability)
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("REDIS_DB must not be negative, got %d", c.RedisDB)
	}
	if c.EventJournalMaxLen <= 0 {
		return fmt.Errorf("EVENT_JOURNAL_MAX_LEN must be positive, got %d", c.EventJournalMaxLen)
	}
	return nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return intValue, nil
}

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return floatValue, nil
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	durationValue, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return durationValue, nil
}
