package configuration

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/iota-uz/utils/fs"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ati-intranet/portal/pkg/logging"
)

const Production = "production"

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		c.Unload()
		panic(err)
	}
	return c
})

// LoadEnv loads the given env files from the working directory. When none of them
// exist there, the nearest parent directory holding a go.mod is tried instead.
func LoadEnv(envFiles []string) (int, error) {
	existingFiles := existing(envFiles, "")
	if len(existingFiles) == 0 {
		if wd, err := os.Getwd(); err == nil {
			if root, ok := findGoModRoot(wd); ok {
				existingFiles = existing(envFiles, root)
			}
		}
	}

	if len(existingFiles) == 0 {
		return 0, nil
	}

	return len(existingFiles), godotenv.Load(existingFiles...)
}

func existing(envFiles []string, dir string) []string {
	out := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		path := file
		if dir != "" {
			path = filepath.Join(dir, file)
		}
		if fs.FileExists(path) {
			out = append(out, path)
		}
	}
	return out
}

func findGoModRoot(start string) (string, bool) {
	dir := start
	for {
		if fs.FileExists(filepath.Join(dir, "go.mod")) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

type APIOptions struct {
	BaseURL string        `env:"API_BASE_URL" envDefault:"http://localhost:3001"`
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`
}

func (a *APIOptions) Validate() error {
	if !strings.HasPrefix(a.BaseURL, "http://") && !strings.HasPrefix(a.BaseURL, "https://") {
		return fmt.Errorf("API_BASE_URL must be an http(s) URL, got %q", a.BaseURL)
	}
	if a.Timeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive, got %s", a.Timeout)
	}
	a.BaseURL = strings.TrimRight(a.BaseURL, "/")
	return nil
}

type ProfileCacheOptions struct {
	Storage string        `env:"PROFILE_CACHE_STORAGE" envDefault:"memory"` // memory, redis or none
	TTL     time.Duration `env:"PROFILE_CACHE_TTL" envDefault:"1m"`
}

func (p *ProfileCacheOptions) Validate(redisURL string) error {
	switch p.Storage {
	case "memory", "none":
	case "redis":
		if redisURL == "" {
			return fmt.Errorf("REDIS_URL is required when PROFILE_CACHE_STORAGE is 'redis'")
		}
	default:
		return fmt.Errorf("profile cache Storage must be 'memory', 'redis' or 'none', got '%s'", p.Storage)
	}
	return nil
}

// AuditLogOptions configure where the action log of the portal is kept.
type AuditLogOptions struct {
	Storage  string `env:"AUDIT_LOG_STORAGE" envDefault:"memory"` // memory or redis
	Capacity int    `env:"AUDIT_LOG_CAPACITY" envDefault:"1000"`
}

func (a *AuditLogOptions) Validate(redisURL string) error {
	if a.Capacity <= 0 {
		return fmt.Errorf("AUDIT_LOG_CAPACITY must be positive, got %d", a.Capacity)
	}
	switch a.Storage {
	case "memory":
	case "redis":
		if redisURL == "" {
			return fmt.Errorf("REDIS_URL is required when AUDIT_LOG_STORAGE is 'redis'")
		}
	default:
		return fmt.Errorf("audit log Storage must be 'memory' or 'redis', got '%s'", a.Storage)
	}
	return nil
}

type LogOptions struct {
	LogPath string `env:"LOG_PATH" envDefault:""`
}

type OpenTelemetryOptions struct {
	Enabled     bool   `env:"OTEL_ENABLED" envDefault:"false"`
	TempoURL    string `env:"OTEL_TEMPO_URL" envDefault:"localhost:4318"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"ati-portal"`
}

type PrometheusOptions struct {
	Enabled bool   `env:"PROMETHEUS_METRICS_ENABLED" envDefault:"false"`
	Path    string `env:"PROMETHEUS_METRICS_PATH" envDefault:"/debug/prometheus"`
}

type RateLimitOptions struct {
	Enabled        bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	GlobalRPS      int    `env:"RATE_LIMIT_GLOBAL_RPS" envDefault:"1000"`
	LoginPerMinute int    `env:"RATE_LIMIT_LOGIN_PER_MINUTE" envDefault:"10"`
	Storage        string `env:"RATE_LIMIT_STORAGE" envDefault:"memory"` // memory or redis
	RedisURL       string `env:"RATE_LIMIT_REDIS_URL"`
}

// Validate checks the rate limit configuration for errors
func (r *RateLimitOptions) Validate() error {
	if r.GlobalRPS < 0 {
		return fmt.Errorf("rate limit GlobalRPS must be non-negative, got %d", r.GlobalRPS)
	}
	if r.GlobalRPS > 1000000 {
		return fmt.Errorf("rate limit GlobalRPS too high, maximum is 1,000,000, got %d", r.GlobalRPS)
	}
	if r.LoginPerMinute < 0 {
		return fmt.Errorf("rate limit LoginPerMinute must be non-negative, got %d", r.LoginPerMinute)
	}
	if r.Storage != "memory" && r.Storage != "redis" {
		return fmt.Errorf("rate limit Storage must be 'memory' or 'redis', got '%s'", r.Storage)
	}
	if r.Storage == "redis" && r.RedisURL == "" {
		return fmt.Errorf("rate limit RedisURL is required when Storage is 'redis'")
	}
	return nil
}

type AuthzOptions struct {
	Mode           string `env:"AUTHZ_MODE" envDefault:"enforce"`
	FlagConfigPath string `env:"AUTHZ_FLAG_CONFIG" envDefault:""`
}

type Configuration struct {
	API           APIOptions
	ProfileCache  ProfileCacheOptions
	AuditLog      AuditLogOptions
	Log           LogOptions
	OpenTelemetry OpenTelemetryOptions
	Prometheus    PrometheusOptions
	RateLimit     RateLimitOptions
	Authz         AuthzOptions

	RedisURL         string        `env:"REDIS_URL" envDefault:"localhost:6379"`
	ServerPort       int           `env:"PORT" envDefault:"3000"`
	SessionDuration  time.Duration `env:"SESSION_DURATION" envDefault:"24h"`
	GoAppEnvironment string        `env:"GO_APP_ENV" envDefault:"development"`
	SocketAddress    string        `env:"-"`
	Domain           string        `env:"DOMAIN" envDefault:"localhost"`
	Origin           string        `env:"ORIGIN" envDefault:"http://localhost:3000"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"error"`
	// Comma separated list of origins allowed to call the portal cross-site.
	CorsAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`
	// Portal will look for this header in the request, if it's not present, it will generate a random uuidv4
	RequestIDHeader string `env:"REQUEST_ID_HEADER" envDefault:"X-Request-ID"`
	// Portal will look for this header in the request, if it's not present, it will use request.RemoteAddr
	RealIPHeader string `env:"REAL_IP_HEADER" envDefault:"X-Real-IP"`
	// Cookie holding the upstream bearer token
	TokenCookieKey string `env:"TOKEN_COOKIE_KEY" envDefault:"token"`

	// Ops endpoints guard (/health, /debug/prometheus). Enforced only in production.
	OpsGuardEnabled       bool   `env:"OPS_GUARD_ENABLED" envDefault:"true"`
	OpsGuardCIDRs         string `env:"OPS_GUARD_CIDRS" envDefault:""`
	OpsGuardToken         string `env:"OPS_GUARD_TOKEN" envDefault:""`
	OpsGuardBasicAuthUser string `env:"OPS_GUARD_BASIC_AUTH_USER" envDefault:""`
	OpsGuardBasicAuthPass string `env:"OPS_GUARD_BASIC_AUTH_PASS" envDefault:""`

	logFile *os.File
	logger  *logrus.Logger
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.ErrorLevel
	}
}

func (c *Configuration) Scheme() string {
	if c.GoAppEnvironment == Production { // assume 'https' on production mode
		return "https"
	}
	return "http"
}

// CorsOrigins splits CorsAllowedOrigins into trimmed, non-empty entries.
func (c *Configuration) CorsOrigins() []string {
	parts := strings.Split(c.CorsAllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func Use() *Configuration {
	return singleton()
}

func (c *Configuration) load(envFiles []string) error {
	n, err := LoadEnv(envFiles)
	if err != nil {
		return err
	}
	if n == 0 {
		wd, _ := os.Getwd()
		log.Println("No .env files found. Tried:")
		for _, file := range envFiles {
			log.Println(filepath.Join(wd, file))
		}
	}
	if err := env.Parse(c); err != nil {
		return err
	}

	if err := c.API.Validate(); err != nil {
		return fmt.Errorf("api configuration error: %w", err)
	}
	if err := c.RateLimit.Validate(); err != nil {
		return fmt.Errorf("rate limit configuration error: %w", err)
	}
	if err := c.ProfileCache.Validate(c.RedisURL); err != nil {
		return fmt.Errorf("profile cache configuration error: %w", err)
	}
	if err := c.AuditLog.Validate(c.RedisURL); err != nil {
		return fmt.Errorf("audit log configuration error: %w", err)
	}

	f, logger, err := logging.FileLogger(c.LogrusLogLevel(), c.Log.LogPath)
	if err != nil {
		return err
	}
	c.logFile = f
	c.logger = logger

	if c.GoAppEnvironment == Production {
		c.SocketAddress = fmt.Sprintf(":%d", c.ServerPort)
	} else {
		c.SocketAddress = fmt.Sprintf("localhost:%d", c.ServerPort)
	}

	if os.Getenv("ORIGIN") == "" {
		// Only include port in Origin for development environment
		if c.GoAppEnvironment == "development" {
			c.Origin = fmt.Sprintf("%s://%s:%d", c.Scheme(), c.Domain, c.ServerPort)
		} else {
			c.Origin = fmt.Sprintf("%s://%s", c.Scheme(), c.Domain)
		}
	}

	return nil
}

// Unload handles a graceful shutdown.
func (c *Configuration) Unload() {
	if c.logFile != nil {
		if err := c.logFile.Close(); err != nil {
			log.Printf("Failed to close log file: %v", err)
		}
	}
}
