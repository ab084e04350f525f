// Package config loads daemon configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr          string
	LogLevel          slog.Level
	DefaultLang       string
	ProfileDBPath     string
	LLMProvider       string
	LLMTimeout        time.Duration
	GeminiAPIKey      string
	GeminiTextModel   string
	GeminiImageModel  string
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	LLMModel          string
	LLMFallbackModels []string
}

func Load() (Config, error) {
	c := Config{
		HTTPAddr:          envOr("HTTP_ADDR", ":8080"),
		DefaultLang:       envOr("DEFAULT_LANG", "en"),
		ProfileDBPath:     envOr("PROFILE_DB_PATH", "data/profile.db"),
		LLMProvider:       envOr("LLM_PROVIDER", "gemini"),
		LLMTimeout:        25 * time.Second,
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiTextModel:   envOr("GEMINI_TEXT_MODEL", "gemini-3-flash-preview"),
		GeminiImageModel:  envOr("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image"),
		OpenRouterAPIKey:  os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBaseURL: envOr("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		LLMModel:          envOr("LLM_MODEL", "qwen/qwen3-4b:free"),
		LLMFallbackModels: parseFallbackModels(os.Getenv("LLM_FALLBACK_MODELS")),
	}

	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LLM_TIMEOUT %q: %w", v, err)
		}
		c.LLMTimeout = d
	}

	level, err := parseLogLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	switch c.LLMProvider {
	case "gemini":
		if c.GeminiAPIKey == "" {
			return Config{}, fmt.Errorf("GEMINI_API_KEY is required when LLM_PROVIDER=gemini")
		}
	case "openrouter":
		if c.OpenRouterAPIKey == "" {
			return Config{}, fmt.Errorf("OPENROUTER_API_KEY is required when LLM_PROVIDER=openrouter")
		}
	default:
		return Config{}, fmt.Errorf("invalid LLM_PROVIDER %q (want gemini or openrouter)", c.LLMProvider)
	}

	return c, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseFallbackModels(s string) []string {
	if s == "" {
		return nil
	}
	var models []string
	for _, m := range strings.Split(s, ",") {
		m = strings.TrimSpace(m)
		if m != "" {
			models = append(models, m)
		}
	}
	return models
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
