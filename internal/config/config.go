package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// DefaultChatURL is the hosted chatbot the widget talks to
const DefaultChatURL = "https://credable-chatbot.onrender.com/chat"

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Port            string   `yaml:"port" json:"port"`
	AllowedOrigins  string   `yaml:"allowed_origins" json:"allowedOrigins"`
	TrustedProxies  string   `yaml:"trusted_proxies" json:"trustedProxies"` // IPs/CIDRs allowed to set X-Forwarded-For
	ShutdownTimeout Duration `yaml:"shutdown_timeout" json:"shutdownTimeout"`
}

// ChatConfig holds the upstream chatbot settings
type ChatConfig struct {
	URL          string   `yaml:"url" json:"url"`
	APIKey       string   `yaml:"api_key" json:"-"` // Never serialize
	Timeout      Duration `yaml:"timeout" json:"timeout"`
	MaxRetries   int      `yaml:"max_retries" json:"maxRetries"`
	RetryBackoff Duration `yaml:"retry_backoff" json:"retryBackoff"`
	RateLimit    int      `yaml:"rate_limit_per_min" json:"rateLimitPerMin"` // 0 disables
}

// RedisConfig holds the rate limiter backend
type RedisConfig struct {
	Addr string `yaml:"addr" json:"addr"` // empty disables rate limiting
}

// DemoConfig controls the staged analysis run
type DemoConfig struct {
	Pacing float64 `yaml:"pacing" json:"pacing"` // 1 = site timing, 0 = immediate
}

// LogConfig selects level and encoder
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"` // json or console
}

// Config is the full service configuration
type Config struct {
	Server ServerConfig `yaml:"server" json:"server"`
	Chat   ChatConfig   `yaml:"chat" json:"chat"`
	Redis  RedisConfig  `yaml:"redis" json:"redis"`
	Demo   DemoConfig   `yaml:"demo" json:"demo"`
	Log    LogConfig    `yaml:"log" json:"log"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			AllowedOrigins:  "*",
			ShutdownTimeout: Duration(30 * time.Second),
		},
		Chat: ChatConfig{
			URL:          DefaultChatURL,
			Timeout:      Duration(15 * time.Second),
			MaxRetries:   2,
			RetryBackoff: Duration(time.Second),
			RateLimit:    30,
		},
		Demo: DemoConfig{Pacing: 1},
		Log:  LogConfig{Level: "info", Format: "json"},
	}
}

// Load reads the YAML file at path (a missing file is not an error), then
// applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, eris.Wrapf(err, "read config %s", path)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, eris.Wrapf(err, "parse config %s", path)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the config file location from CREDABLE_CONFIG
func Path() string {
	return getEnvOrDefault("CREDABLE_CONFIG", "config.yaml")
}

func (c *Config) applyEnvOverrides() error {
	c.Server.Port = getEnvOrDefault("PORT", c.Server.Port)
	c.Server.AllowedOrigins = getEnvOrDefault("CORS_ALLOWED_ORIGINS", c.Server.AllowedOrigins)
	c.Server.TrustedProxies = getEnvOrDefault("TRUSTED_PROXIES", c.Server.TrustedProxies)

	c.Chat.URL = getEnvOrDefault("CHAT_API_URL", c.Chat.URL)
	c.Chat.APIKey = getEnvOrDefault("CHAT_API_KEY", c.Chat.APIKey)
	if v := os.Getenv("CHAT_TIMEOUT_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return eris.Wrap(err, "CHAT_TIMEOUT_MS")
		}
		c.Chat.Timeout = Duration(time.Duration(ms) * time.Millisecond)
	}
	if v := os.Getenv("CHAT_RATE_LIMIT_PER_MIN"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return eris.Wrap(err, "CHAT_RATE_LIMIT_PER_MIN")
		}
		c.Chat.RateLimit = n
	}

	// Accept redis://host:port as well as host:port
	addr := getEnvOrDefault("REDIS_URI", c.Redis.Addr)
	c.Redis.Addr = strings.TrimPrefix(addr, "redis://")

	if v := os.Getenv("DEMO_PACING"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return eris.Wrap(err, "DEMO_PACING")
		}
		c.Demo.Pacing = f
	}

	c.Log.Level = getEnvOrDefault("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnvOrDefault("LOG_FORMAT", c.Log.Format)
	return nil
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	switch {
	case c.Server.Port == "":
		return eris.New("server port is required")
	case c.Chat.URL == "":
		return eris.New("chat url is required")
	case c.Chat.Timeout <= 0:
		return eris.New("chat timeout must be positive")
	case c.Chat.MaxRetries < 1:
		return eris.New("chat max_retries must be at least 1")
	case c.Chat.RateLimit < 0:
		return eris.New("chat rate limit must not be negative")
	case c.Demo.Pacing < 0:
		return eris.New("demo pacing must not be negative")
	}
	return nil
}

// HasChatKey reports whether requests carry an X-API-Key header
func (c *ChatConfig) HasChatKey() bool {
	return c.APIKey != ""
}

// RateLimitEnabled reports whether chat requests are counted in redis
func (c *Config) RateLimitEnabled() bool {
	return c.Redis.Addr != "" && c.Chat.RateLimit > 0
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
