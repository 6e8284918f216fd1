package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Scraper   ScraperConfig
	Login     LoginConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8000
	Mode string // "debug", "release", "test"; default: "release"

	// StaticDir is served at / when it exists (landing page / demo form).
	StaticDir string // default: "./static"
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// MaxPages is the page pool capacity (max concurrent sessions).
	MaxPages int // default: 10

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// UserAgent is reported to pages instead of the headless default.
	UserAgent string

	// Timezone is the timezone id reported to pages.
	Timezone string // default: "America/New_York"
}

// ScraperConfig controls per-request scraping behavior.
type ScraperConfig struct {
	// MaxTimeout is the hard deadline for one scrape request end to end.
	MaxTimeout time.Duration // default: 180s
}

// LoginConfig controls the authentication engine's timing budgets.
// Every wait in the login flow is a bounded local budget; there is no
// global cancellation.
type LoginConfig struct {
	// FieldTimeout is the visibility wait for email/password fields.
	FieldTimeout time.Duration // default: 15s

	// MultiStepProbe is the short probe for the password field before
	// trying to advance a split login flow.
	MultiStepProbe time.Duration // default: 2s

	// SubmitProbe is the visibility wait for submit buttons.
	SubmitProbe time.Duration // default: 2s

	// MinPostSubmitWait is the lower bound on the post-submit wait,
	// regardless of platform profile or per-request override.
	MinPostSubmitWait time.Duration // default: 8s

	// NavigationSettle is the pause after navigating to a login page.
	NavigationSettle time.Duration // default: 2500ms

	// CookieVerifySettle is the pause after the cookie verification
	// navigation before probing the DOM.
	CookieVerifySettle time.Duration // default: 3s

	// InputSettle is the pause between form interactions.
	InputSettle time.Duration // default: 600ms

	// StepSettle is the pause after advancing a multi-step flow.
	StepSettle time.Duration // default: 3s
}

// AuthConfig controls API key authentication for the HTTP surface.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-identity rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key or IP.
	RequestsPerSecond float64 // default: 2

	// Burst is the maximum burst size per identity.
	Burst int // default: 4

	// EvictAfter is how long an identity's bucket survives unused
	// before the background sweep drops it.
	EvictAfter time.Duration // default: 1h

	// EvictInterval is how often the background sweep runs.
	EvictInterval time.Duration // default: 5m
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// DefaultUserAgent is a realistic desktop Chrome user agent reported to
// pages instead of the HeadlessChrome token.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0.0.0 Safari/537.36"

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:      envOr("KEYHOLE_HOST", "0.0.0.0"),
			Port:      envIntOr("PORT", 8000),
			Mode:      envOr("KEYHOLE_MODE", "release"),
			StaticDir: envOr("KEYHOLE_STATIC_DIR", "./static"),
		},
		Browser: BrowserConfig{
			Headless:   envBoolOr("KEYHOLE_HEADLESS", true),
			MaxPages:   envIntOr("KEYHOLE_MAX_PAGES", 10),
			NoSandbox:  envBoolOr("KEYHOLE_NO_SANDBOX", false),
			BrowserBin: os.Getenv("KEYHOLE_BROWSER_BIN"),
			UserAgent:  envOr("KEYHOLE_USER_AGENT", DefaultUserAgent),
			Timezone:   envOr("KEYHOLE_TIMEZONE", "America/New_York"),
		},
		Scraper: ScraperConfig{
			MaxTimeout: envDurationOr("KEYHOLE_MAX_TIMEOUT", 180*time.Second),
		},
		Login: DefaultLoginConfig(),
		Auth: AuthConfig{
			Enabled: envBoolOr("KEYHOLE_AUTH_ENABLED", false),
			APIKeys: envSliceOr("KEYHOLE_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("KEYHOLE_RATE_RPS", 2.0),
			Burst:             envIntOr("KEYHOLE_RATE_BURST", 4),
			EvictAfter:        envDurationOr("KEYHOLE_RATE_EVICT_AFTER", time.Hour),
			EvictInterval:     envDurationOr("KEYHOLE_RATE_EVICT_INTERVAL", 5*time.Minute),
		},
		Log: LogConfig{
			Level:  envOr("KEYHOLE_LOG_LEVEL", "info"),
			Format: envOr("KEYHOLE_LOG_FORMAT", "json"),
		},
	}
}

// DefaultLoginConfig returns the login engine's default timing budgets.
func DefaultLoginConfig() LoginConfig {
	return LoginConfig{
		FieldTimeout:       envDurationOr("KEYHOLE_FIELD_TIMEOUT", 15*time.Second),
		MultiStepProbe:     envDurationOr("KEYHOLE_MULTISTEP_PROBE", 2*time.Second),
		SubmitProbe:        envDurationOr("KEYHOLE_SUBMIT_PROBE", 2*time.Second),
		MinPostSubmitWait:  envDurationOr("KEYHOLE_MIN_POST_SUBMIT_WAIT", 8*time.Second),
		NavigationSettle:   envDurationOr("KEYHOLE_NAV_SETTLE", 2500*time.Millisecond),
		CookieVerifySettle: envDurationOr("KEYHOLE_COOKIE_SETTLE", 3*time.Second),
		InputSettle:        envDurationOr("KEYHOLE_INPUT_SETTLE", 600*time.Millisecond),
		StepSettle:         envDurationOr("KEYHOLE_STEP_SETTLE", 3*time.Second),
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
