package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timeouts, intervals, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	Dispatch DispatchConfig
	Watcher  WatcherConfig
	Security SecurityConfig
	Fetch    FetchConfig
	Checkout CheckoutConfig
}

// CheckoutConfig points at the internal checkout backend. The template takes
// the retailer slug; leaving it empty disables real checkouts (jobs fail
// with a recorded reason instead).
type CheckoutConfig struct {
	EndpointTemplate string `envconfig:"CHECKOUT_ENDPOINT_TEMPLATE"`
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

type DispatchConfig struct {
	PollIntervalMS int `envconfig:"DISPATCH_POLL_INTERVAL_MS" default:"5000"`
}

func (c DispatchConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

type WatcherConfig struct {
	IntervalMS int `envconfig:"WATCHER_INTERVAL_MS" default:"10000"`
}

func (c WatcherConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMS) * time.Millisecond
}

type SecurityConfig struct {
	UserHashSecret string `envconfig:"USER_HASH_SECRET" required:"true"`
}

// FetchConfig configures the outbound fetch gateway. Providers left
// unconfigured degrade to direct fetches at request time; Validate surfaces
// that at startup instead of letting it go unnoticed in production.
type FetchConfig struct {
	DefaultProvider string `envconfig:"FETCH_DEFAULT_PROVIDER" default:"direct"`
	Unlocker        UnlockerConfig
	Proxy           ProxyConfig
	Browser         BrowserConfig
}

type UnlockerConfig struct {
	Endpoint       string `envconfig:"UNLOCKER_ENDPOINT"`
	Token          string `envconfig:"UNLOCKER_TOKEN"`
	DefaultCountry string `envconfig:"UNLOCKER_COUNTRY" default:"us"`
	MaxRetries     int    `envconfig:"UNLOCKER_MAX_RETRIES" default:"2"`
	SessionTTLMS   int    `envconfig:"UNLOCKER_SESSION_TTL_MS" default:"120000"`
	TimeoutMS      int    `envconfig:"UNLOCKER_TIMEOUT_MS" default:"30000"`
}

func (c UnlockerConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMS) * time.Millisecond
}

func (c UnlockerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

type ProxyConfig struct {
	Host     string `envconfig:"PROXY_HOST"`
	Port     string `envconfig:"PROXY_PORT"`
	Username string `envconfig:"PROXY_USERNAME"`
	Password string `envconfig:"PROXY_PASSWORD"`
	Protocol string `envconfig:"PROXY_PROTOCOL" default:"http"`
}

type BrowserConfig struct {
	Endpoint string `envconfig:"BROWSER_API_ENDPOINT"`
	Token    string `envconfig:"BROWSER_API_TOKEN"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// RetailerSuffix converts a retailer slug into the env-var suffix used for
// per-retailer proxy overrides ("best-buy" -> "BEST_BUY").
func RetailerSuffix(slug string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(slug) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// ForRetailer resolves the forward-proxy settings for a retailer, applying
// PROXY_*_<RETAILER> overrides on top of the global defaults.
func (c ProxyConfig) ForRetailer(slug string) ProxyConfig {
	if slug == "" {
		return c
	}
	suffix := RetailerSuffix(slug)
	out := c
	if v := os.Getenv("PROXY_HOST_" + suffix); v != "" {
		out.Host = v
	}
	if v := os.Getenv("PROXY_PORT_" + suffix); v != "" {
		out.Port = v
	}
	if v := os.Getenv("PROXY_USERNAME_" + suffix); v != "" {
		out.Username = v
	}
	if v := os.Getenv("PROXY_PASSWORD_" + suffix); v != "" {
		out.Password = v
	}
	if v := os.Getenv("PROXY_PROTOCOL_" + suffix); v != "" {
		out.Protocol = v
	}
	return out
}

func (c ProxyConfig) Configured() bool {
	return c.Host != "" && c.Port != ""
}

func (c UnlockerConfig) Configured() bool {
	return c.Endpoint != "" && c.Token != ""
}

func (c BrowserConfig) Configured() bool {
	return c.Endpoint != "" && c.Token != ""
}

// Validate reports fetch-provider misconfiguration that would cause silent
// direct-fetch fallback at request time. Returned messages are warnings, not
// errors: availability over strictness.
func (c FetchConfig) Validate() []string {
	var warnings []string
	switch c.DefaultProvider {
	case "direct":
	case "proxy":
		if !c.Proxy.Configured() {
			warnings = append(warnings, "FETCH_DEFAULT_PROVIDER=proxy but PROXY_HOST/PROXY_PORT are not set; requests will fall back to direct")
		}
	case "unlocker":
		if !c.Unlocker.Configured() {
			warnings = append(warnings, "FETCH_DEFAULT_PROVIDER=unlocker but UNLOCKER_ENDPOINT/UNLOCKER_TOKEN are not set; requests will fall back to direct")
		}
	case "browser":
		if !c.Browser.Configured() {
			warnings = append(warnings, "FETCH_DEFAULT_PROVIDER=browser but BROWSER_API_ENDPOINT/BROWSER_API_TOKEN are not set; requests will fall back to direct")
		}
	default:
		warnings = append(warnings, fmt.Sprintf("unknown FETCH_DEFAULT_PROVIDER %q; treating as direct", c.DefaultProvider))
	}
	return warnings
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	applyLegacyAliases(&cfg)
	return cfg, nil
}

// applyLegacyAliases accepts the env names the previous deployment used, so
// both generations of manifests keep working during the migration.
func applyLegacyAliases(cfg *Config) {
	if cfg.Fetch.Unlocker.Endpoint == "" {
		cfg.Fetch.Unlocker.Endpoint = os.Getenv("SCRAPING_GATEWAY_URL")
	}
	if cfg.Fetch.Unlocker.Token == "" {
		cfg.Fetch.Unlocker.Token = os.Getenv("SCRAPING_GATEWAY_TOKEN")
	}
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Log: LogConfig{
			Level: "error", // Error level only for tests
		},
		Dispatch: DispatchConfig{PollIntervalMS: 5000},
		Watcher:  WatcherConfig{IntervalMS: 10000},
		Security: SecurityConfig{UserHashSecret: "test-secret"},
		Fetch: FetchConfig{
			DefaultProvider: "direct",
			Unlocker: UnlockerConfig{
				DefaultCountry: "us",
				MaxRetries:     2,
				SessionTTLMS:   120000,
				TimeoutMS:      30000,
			},
			Proxy: ProxyConfig{Protocol: "http"},
		},
	}
}
