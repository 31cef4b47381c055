package infra

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	PromptProviderOpenAI = "openai"
	PromptProviderGemini = "gemini"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv              string
	Port                string
	ImageSavePath       string
	BaseImageURL        string
	OpenAIAPIKey        string
	OpenAIBaseURL       string
	OpenAIOrg           string
	PromptProvider      string
	PromptModel         string
	GeminiAPIKey        string
	GeminiModel         string
	GeminiBaseURL       string
	PrimaryImageModel   string
	FallbackImageModel  string
	PrimaryImageTimeout time.Duration
	HTTPReadTimeout     time.Duration
	HTTPWriteTimeout    time.Duration
	HTTPIdleTimeout     time.Duration
	CORSAllowedOrigins  []string
	RateLimitPerMin     int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:              getEnv("APP_ENV", "development"),
		Port:                getEnv("PORT", "3001"),
		ImageSavePath:       getEnv("IMAGE_SAVE_PATH", "./images"),
		BaseImageURL:        normalizeBaseImageURL(getEnv("BASE_IMAGE_URL", "/images")),
		OpenAIAPIKey:        strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL:       getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIOrg:           os.Getenv("OPENAI_ORG"),
		PromptProvider:      strings.ToLower(getEnv("PROMPT_PROVIDER", PromptProviderOpenAI)),
		PromptModel:         getEnv("PROMPT_MODEL", "gpt-4.1"),
		GeminiAPIKey:        strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:         getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiBaseURL:       os.Getenv("GEMINI_BASE_URL"),
		PrimaryImageModel:   getEnv("PRIMARY_IMAGE_MODEL", "gpt-image-1"),
		FallbackImageModel:  getEnv("FALLBACK_IMAGE_MODEL", "dall-e-3"),
		PrimaryImageTimeout: time.Second * time.Duration(getEnvInt("PRIMARY_IMAGE_TIMEOUT_SECONDS", 60)),
		HTTPReadTimeout:     time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:    time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 180)),
		HTTPIdleTimeout:     time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		CORSAllowedOrigins:  getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RateLimitPerMin:     getEnvInt("RATE_LIMIT_PER_MINUTE", 0),
	}

	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	switch cfg.PromptProvider {
	case PromptProviderOpenAI:
	case PromptProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when PROMPT_PROVIDER=gemini")
		}
	default:
		return nil, fmt.Errorf("unsupported PROMPT_PROVIDER %q", cfg.PromptProvider)
	}

	if cfg.PrimaryImageTimeout <= 0 {
		return nil, fmt.Errorf("PRIMARY_IMAGE_TIMEOUT_SECONDS must be positive")
	}

	return cfg, nil
}

// ImageMountPath is the URL path under which stored images are routed. When
// BaseImageURL is absolute only its path component is used.
func (c *Config) ImageMountPath() string {
	if c == nil {
		return "/images"
	}
	if u, err := url.Parse(c.BaseImageURL); err == nil && u.IsAbs() {
		return normalizeBaseImageURL(u.Path)
	}
	return c.BaseImageURL
}

func normalizeBaseImageURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if u, err := url.Parse(raw); err == nil && u.IsAbs() {
		return strings.TrimRight(raw, "/")
	}
	raw = "/" + strings.Trim(raw, "/")
	if raw == "/" {
		return "/images"
	}
	return raw
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
