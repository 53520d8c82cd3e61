package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	TargetGitHubPages = "github-pages"
	TargetVercel      = "vercel"

	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"

	devSessionSecret = "lfg-dev-session-secret"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Deployment
	DeployTarget string
	BasePath     string
	AssetPrefix  string
	PublicURL    string
	APIBaseURL   string

	// CORS
	AllowedOrigin string

	// Chat completion
	ChatProvider         string
	OpenRouterAPIKey     string
	OpenRouterModel      string
	OpenRouterURL        string
	GeminiAPIKey         string
	GeminiModel          string
	GeminiConcurrentReqs int
	ChatTimeout          time.Duration
	ChatSessionTTL       time.Duration
	ChatMaxSessions      int

	// Chat session tokens
	SessionSecret string

	// Contact relay
	FormspreeURL string

	// Redis
	RedisURL string

	// Rate limit, requests per minute per client
	APIRateLimit int

	// SMTP
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string
	SMTPFrom     string
	LeadNotifyTo string
	WorkerCount  int

	// Logging
	LogLevel string
	LogFile  string

	// Starfield
	StarCount int
	StarSpeed float64
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	env := getEnvOrDefault("ENV", "development")
	target := getEnvOrDefault("DEPLOY_TARGET", TargetVercel)
	basePath, assetPrefix := TargetPaths(target)

	cfg := &Config{
		Port:                 getEnvOrDefault("PORT", "3000"),
		Env:                  env,
		DeployTarget:         target,
		BasePath:             getEnvOrDefault("BASE_PATH", basePath),
		AssetPrefix:          getEnvOrDefault("ASSET_PREFIX", assetPrefix),
		PublicURL:            getEnvOrDefault("PUBLIC_URL", "http://localhost:3000"),
		APIBaseURL:           getEnvOrDefault("API_BASE_URL", ""),
		AllowedOrigin:        getEnvOrDefault("ALLOWED_ORIGIN", "*"),
		ChatProvider:         strings.ToLower(getEnvOrDefault("CHAT_PROVIDER", ProviderOpenRouter)),
		OpenRouterAPIKey:     os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterModel:      getEnvOrDefault("OPENROUTER_MODEL", "x-ai/grok-3-mini-beta"),
		OpenRouterURL:        getEnvOrDefault("OPENROUTER_URL", "https://openrouter.ai/api/v1/chat/completions"),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		GeminiModel:          getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiConcurrentReqs: getEnvAsIntOrDefault("GEMINI_CONCURRENT_REQUESTS", 5),
		ChatTimeout:          getEnvAsDurationOrDefault("CHAT_TIMEOUT", 60*time.Second),
		ChatSessionTTL:       getEnvAsDurationOrDefault("CHAT_SESSION_TTL", 30*time.Minute),
		ChatMaxSessions:      getEnvAsIntOrDefault("CHAT_MAX_SESSIONS", 1000),
		FormspreeURL:         getEnvOrDefault("FORMSPREE_URL", "https://formspree.io/f/mvgkrzyk"),
		RedisURL:             os.Getenv("REDIS_URL"),
		APIRateLimit:         getEnvAsIntOrDefault("API_RATE_LIMIT", 30),
		SMTPHost:             getEnvOrDefault("SMTP_HOST", ""),
		SMTPPort:             getEnvAsIntOrDefault("SMTP_PORT", 587),
		SMTPUser:             getEnvOrDefault("SMTP_USER", ""),
		SMTPPass:             getEnvOrDefault("SMTP_PASS", ""),
		SMTPFrom:             getEnvOrDefault("SMTP_FROM", "noreply@lfg.tech"),
		LeadNotifyTo:         getEnvOrDefault("LEAD_NOTIFY_TO", ""),
		WorkerCount:          getEnvAsIntOrDefault("WORKER_COUNT", 2),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:              getEnvOrDefault("LOG_FILE", ""),
		StarCount:            getEnvAsIntOrDefault("STAR_COUNT", 1500),
		StarSpeed:            getEnvAsFloatOrDefault("STAR_SPEED", 0.03),
	}

	if env == "production" {
		cfg.SessionSecret = mustGetEnv("SESSION_SECRET")
	} else {
		cfg.SessionSecret = getEnvOrDefault("SESSION_SECRET", devSessionSecret)
	}

	return cfg
}

// TargetPaths returns the base path and asset prefix a hosting target is
// served under.
func TargetPaths(target string) (basePath, assetPrefix string) {
	switch target {
	case TargetGitHubPages:
		return "/LFG", "/LFG"
	default:
		return "", ""
	}
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	if err := ValidateBasePath(c.BasePath); err != nil {
		return err
	}
	if c.AssetPrefix != "" && !strings.HasPrefix(c.AssetPrefix, "/") && !strings.Contains(c.AssetPrefix, "://") {
		return fmt.Errorf("ASSET_PREFIX must be a path starting with / or an absolute URL, got %q", c.AssetPrefix)
	}
	switch c.ChatProvider {
	case ProviderOpenRouter, ProviderGemini:
	default:
		return fmt.Errorf("CHAT_PROVIDER must be %q or %q, got %q", ProviderOpenRouter, ProviderGemini, c.ChatProvider)
	}
	if c.ChatTimeout <= 0 {
		return fmt.Errorf("CHAT_TIMEOUT must be positive")
	}
	if c.StarCount < 0 {
		return fmt.Errorf("STAR_COUNT must not be negative")
	}
	return nil
}

// ValidateBasePath accepts "" or a path like "/LFG" without a trailing slash.
func ValidateBasePath(p string) error {
	if p == "" {
		return nil
	}
	if !strings.HasPrefix(p, "/") || strings.HasSuffix(p, "/") || strings.ContainsAny(p, " ?#") {
		return fmt.Errorf("BASE_PATH must start with / and not end with /, got %q", p)
	}
	return nil
}

// ChatConfigured reports whether the selected provider has a credential.
func (c *Config) ChatConfigured() bool {
	if c.ChatProvider == ProviderGemini {
		return c.GeminiAPIKey != ""
	}
	return strings.TrimSpace(c.OpenRouterAPIKey) != ""
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsFloatOrDefault(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

// Accepts Go durations ("90s") or plain seconds ("90").
func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if n, err := strconv.Atoi(val); err == nil {
		return time.Duration(n) * time.Second
	}
	return defaultVal
}
