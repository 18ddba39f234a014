package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Telegram
	BotToken string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Admin API
	JWTSecret     string
	AppPort       string
	AdminEmail    string
	AdminPassword string

	// Application
	AppEnv   string
	LogLevel string

	// Game
	AnswerTimeoutSeconds int
	RoundMinutes         int
	ThemesPerRound       int
	JoinKeyboardSeconds  int
	MenuPauseMillis      int
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		BotToken:   getEnv("BOT_TOKEN", ""),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "triviabot"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "triviabot_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:     getEnv("JWT_SECRET_KEY", ""),
		AppPort:       getEnv("APP_PORT", "8080"),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		AnswerTimeoutSeconds: getEnvInt("ANSWER_TIMEOUT_SECONDS", 40),
		RoundMinutes:         getEnvInt("ROUND_MINUTES", 10),
		ThemesPerRound:       getEnvInt("THEMES_PER_ROUND", 3),
		JoinKeyboardSeconds:  getEnvInt("JOIN_KEYBOARD_SECONDS", 10),
		MenuPauseMillis:      getEnvInt("MENU_PAUSE_MILLIS", 1000),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET_KEY must be at least 32 characters")
	}
	if c.AnswerTimeoutSeconds <= 0 {
		return fmt.Errorf("ANSWER_TIMEOUT_SECONDS must be positive")
	}
	if c.RoundMinutes <= 0 {
		return fmt.Errorf("ROUND_MINUTES must be positive")
	}
	return nil
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// GetAnswerTimeout is how long a picked question stays open.
func (c *Config) GetAnswerTimeout() time.Duration {
	return time.Duration(c.AnswerTimeoutSeconds) * time.Second
}

// GetGameTimeout is the overall game expiry for the given round count.
func (c *Config) GetGameTimeout(rounds int) time.Duration {
	return time.Duration(rounds*c.RoundMinutes) * time.Minute
}

func (c *Config) GetMenuPause() time.Duration {
	return time.Duration(c.MenuPauseMillis) * time.Millisecond
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
