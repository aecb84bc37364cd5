// Package config loads service settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort        = "3000"
	DefaultTextModel   = "gemini-2.5-flash"
	DefaultImageModel  = "gemini-2.0-flash-preview-image-generation"
	DefaultCallTimeout = 30 * time.Second
)

// ErrMissingEnv is wrapped by Load when required variables are unset.
var ErrMissingEnv = errors.New("missing required environment variables")

type Config struct {
	Port         string
	GoogleAPIKey string
	TextModel    string
	ImageModel   string
	CallTimeout  time.Duration
	LogLevel     slog.Level

	TwitterConsumerKey       string
	TwitterConsumerSecret    string
	TwitterAccessToken       string
	TwitterAccessTokenSecret string
}

// Load reads .env if present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("config.Load: no .env file, using environment", "error", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", DefaultPort),
		GoogleAPIKey: getEnv("GOOGLE_API_KEY", os.Getenv("GEMINI_API_KEY")),
		TextModel:    getEnv("TEXT_MODEL", DefaultTextModel),
		ImageModel:   getEnv("IMAGE_MODEL", DefaultImageModel),
		CallTimeout:  parseDurationEnv("CALL_TIMEOUT", DefaultCallTimeout),
		LogLevel:     parseLevelEnv("LOG_LEVEL", slog.LevelInfo),

		TwitterConsumerKey:       os.Getenv("TWITTER_CONSUMER_KEY"),
		TwitterConsumerSecret:    os.Getenv("TWITTER_CONSUMER_SECRET"),
		TwitterAccessToken:       os.Getenv("TWITTER_ACCESS_TOKEN"),
		TwitterAccessTokenSecret: os.Getenv("TWITTER_ACCESS_TOKEN_SECRET"),
	}

	var missing []string
	required := []struct {
		key, value string
	}{
		{"GOOGLE_API_KEY", cfg.GoogleAPIKey},
		{"TWITTER_CONSUMER_KEY", cfg.TwitterConsumerKey},
		{"TWITTER_CONSUMER_SECRET", cfg.TwitterConsumerSecret},
		{"TWITTER_ACCESS_TOKEN", cfg.TwitterAccessToken},
		{"TWITTER_ACCESS_TOKEN_SECRET", cfg.TwitterAccessTokenSecret},
	}
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}

	slog.Debug("config.FromEnv: loaded",
		"port", cfg.Port,
		"text_model", cfg.TextModel,
		"image_model", cfg.ImageModel,
		"call_timeout", cfg.CallTimeout,
		"google_api_key_set", cfg.GoogleAPIKey != "",
		"twitter_credentials_set", true)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationEnv(key string, defaultValue time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(strings.TrimSpace(val))
	if err != nil || d <= 0 {
		slog.Warn("config.parseDurationEnv: invalid duration, using default", "key", key, "value", val, "default", defaultValue)
		return defaultValue
	}
	return d
}

func parseLevelEnv(key string, defaultValue slog.Level) slog.Level {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(val))); err != nil {
		slog.Warn("config.parseLevelEnv: invalid level, using default", "key", key, "value", val, "default", defaultValue)
		return defaultValue
	}
	return level
}
