package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL     string
	AccessTokenKey  string
	RefreshTokenKey string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	JWTIssuer       string
	ServerPort      string
	ServerHost      string
	Environment     string

	// Session cookies
	CookieSecure   bool
	CookieSameSite http.SameSite
	CookieDomain   string

	// Google sign-in
	ClientURL          string
	GoogleClientID     string
	GoogleClientSecret string
	OAuthRedirectURL   string

	RedisURL               string
	RateLimitEnabled       bool
	RateLimitIPAttempts    int
	RateLimitIPWindow      time.Duration
	RateLimitBlockDuration time.Duration
	RateLimitTrustProxy    bool

	LogLevel               string
	LogFormat              string
	LogFile                string
	LogMaxSizeMB           int
	LogMaxBackups          int
	LogMaxAgeDays          int
	LogCorrelationIDHeader string
	LogEnableRequestLog    bool

	// AI configuration
	AIProvider        string
	AIAPIKey          string
	AIBaseURL         string
	AIModel           string
	AIEmbeddingModel  string
	AITimeoutMs       int
	AIMaxOutputTokens int
	AITemperature     float64
	AITopP            float64
	AITopK            int
	DatasetDir        string

	// CORS configuration
	CORSEnabled          bool
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	PublicDir      string
	ImagesDir      string
	MetricsEnabled bool
}

var (
	ErrMissingDatabaseURL     = errors.New("DATABASE_URL is required")
	ErrMissingAccessTokenKey  = errors.New("ACCESS_TOKEN_KEY is required")
	ErrMissingRefreshTokenKey = errors.New("REFRESH_TOKEN_KEY is required")
	ErrSharedTokenKeys        = errors.New("ACCESS_TOKEN_KEY and REFRESH_TOKEN_KEY must differ")
	ErrInvalidTokenTTL        = errors.New("invalid token TTL format")
	ErrInvalidSameSite        = errors.New("COOKIE_SAMESITE must be one of none, lax, strict")
)

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		AccessTokenKey:  os.Getenv("ACCESS_TOKEN_KEY"),
		RefreshTokenKey: os.Getenv("REFRESH_TOKEN_KEY"),
		JWTIssuer:       getEnvOrDefault("JWT_ISSUER", ""),
		ServerPort:      getEnvOrDefault("PORT", "8080"),
		ServerHost:      getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
		Environment:     getEnvOrDefault("ENV", "development"),

		CookieSecure: getEnvOrDefaultBool("COOKIE_SECURE", false),
		CookieDomain: os.Getenv("COOKIE_DOMAIN"),

		ClientURL:          getEnvOrDefault("CLIENT_URL", "http://localhost:3000"),
		GoogleClientID:     os.Getenv("CLIENT_ID"),
		GoogleClientSecret: os.Getenv("CLIENT_SECRET"),
		OAuthRedirectURL:   os.Getenv("OAUTH_REDIRECT_URL"),

		RedisURL:            getEnvOrDefault("REDIS_URL", ""),
		RateLimitEnabled:    getEnvOrDefaultBool("RATE_LIMIT_ENABLED", true),
		RateLimitIPAttempts: getEnvOrDefaultInt("RATE_LIMIT_IP_ATTEMPTS", 5),
		RateLimitTrustProxy: getEnvOrDefaultBool("RATE_LIMIT_TRUST_PROXY", false),

		LogLevel:               getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:              getEnvOrDefault("LOG_FORMAT", "json"),
		LogFile:                os.Getenv("LOG_FILE"),
		LogMaxSizeMB:           getEnvOrDefaultInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups:          getEnvOrDefaultInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays:          getEnvOrDefaultInt("LOG_MAX_AGE_DAYS", 28),
		LogCorrelationIDHeader: getEnvOrDefault("LOG_CORRELATION_ID_HEADER", "X-Correlation-ID"),
		LogEnableRequestLog:    getEnvOrDefaultBool("LOG_ENABLE_REQUEST_LOG", true),

		AIProvider:        getEnvOrDefault("AI_PROVIDER", "mock"),
		AIAPIKey:          os.Getenv("GOOGLE_API_KEY"),
		AIBaseURL:         os.Getenv("AI_BASE_URL"),
		AIModel:           getEnvOrDefault("AI_MODEL", "gemini-1.5-pro"),
		AIEmbeddingModel:  getEnvOrDefault("AI_EMBEDDING_MODEL", "embedding-001"),
		AITimeoutMs:       getEnvOrDefaultInt("AI_TIMEOUT_MS", 60000),
		AIMaxOutputTokens: getEnvOrDefaultInt("AI_MAX_OUTPUT_TOKENS", 2048),
		AITemperature:     getEnvOrDefaultFloat("AI_TEMPERATURE", 0.5),
		AITopP:            getEnvOrDefaultFloat("AI_TOP_P", 0.95),
		AITopK:            getEnvOrDefaultInt("AI_TOP_K", 5),
		DatasetDir:        getEnvOrDefault("DATASET_DIR", "./assets/dataset"),

		CORSEnabled:          getEnvOrDefaultBool("CORS_ENABLED", true),
		CORSAllowCredentials: getEnvOrDefaultBool("CORS_ALLOW_CREDENTIALS", true),
		CORSAllowedOrigins:   parseAllowedOrigins(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "")),

		PublicDir:      getEnvOrDefault("PUBLIC_DIR", "./public"),
		ImagesDir:      getEnvOrDefault("IMAGES_DIR", "./imgs"),
		MetricsEnabled: getEnvOrDefaultBool("METRICS_ENABLED", true),
	}

	// Validate required fields
	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.AccessTokenKey == "" {
		return nil, ErrMissingAccessTokenKey
	}
	if cfg.RefreshTokenKey == "" {
		return nil, ErrMissingRefreshTokenKey
	}
	if cfg.AccessTokenKey == cfg.RefreshTokenKey {
		return nil, ErrSharedTokenKeys
	}

	// Parse token TTLs
	var err error
	if cfg.AccessTokenTTL, err = parseTokenTTL(getEnvOrDefault("ACCESS_TOKEN_TTL", "30m")); err != nil {
		return nil, ErrInvalidTokenTTL
	}
	if cfg.RefreshTokenTTL, err = parseTokenTTL(getEnvOrDefault("REFRESH_TOKEN_TTL", "168h")); err != nil {
		return nil, ErrInvalidTokenTTL
	}
	if cfg.RateLimitIPWindow, err = parseTokenTTL(getEnvOrDefault("RATE_LIMIT_IP_WINDOW", "900")); err != nil {
		return nil, ErrInvalidTokenTTL
	}
	if cfg.RateLimitBlockDuration, err = parseTokenTTL(getEnvOrDefault("RATE_LIMIT_BLOCK_DURATION", "1800")); err != nil {
		return nil, ErrInvalidTokenTTL
	}

	if cfg.CookieSameSite, err = parseSameSite(getEnvOrDefault("COOKIE_SAMESITE", "lax")); err != nil {
		return nil, err
	}

	if cfg.AIProvider == "gemini" && cfg.AIAPIKey == "" {
		logMissing("GOOGLE_API_KEY for AI_PROVIDER=gemini")
	}

	return cfg, nil
}

// GoogleOAuthEnabled reports whether every Google sign-in setting is present.
func (c *Config) GoogleOAuthEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != "" && c.OAuthRedirectURL != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefaultBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func getEnvOrDefaultFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

// parseTokenTTL accepts plain seconds ("1800") or a Go duration ("30m"). Non-positive values
// are rejected.
func parseTokenTTL(value string) (time.Duration, error) {
	var d time.Duration
	if seconds, err := strconv.Atoi(value); err == nil {
		d = time.Duration(seconds) * time.Second
	} else {
		d, err = time.ParseDuration(value)
		if err != nil {
			return 0, err
		}
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive: %s", value)
	}
	return d, nil
}

func parseSameSite(value string) (http.SameSite, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "none":
		return http.SameSiteNoneMode, nil
	case "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	}
	return http.SameSiteDefaultMode, ErrInvalidSameSite
}

func parseAllowedOrigins(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			res = append(res, trimmed)
		}
	}
	return res
}

func logMissing(msg string) {
	fmt.Fprintf(os.Stderr, "[config] missing %s\n", msg)
}
