package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Log        LogConfig
	HTTP       HTTPConfig
	Provider   ProviderConfig
	Sync       SyncConfig
	Search     SearchConfig
	UsageCache UsageCacheConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// ProviderConfig holds eSIM provider API settings
type ProviderConfig struct {
	Account        string
	Secret         string
	BaseURL        string // v1 endpoints (catalog, subscribe, QR)
	BaseURLV2      string // v2 endpoints (usage, token)
	AccessToken    string // static access token for the token-creation call
	Username       string
	Password       string
	TimeoutSeconds int
}

// SyncConfig holds catalog sync and token refresh trigger settings
type SyncConfig struct {
	Enabled             bool
	Interval            time.Duration
	TokenRefreshEnabled bool
	TokenTTL            time.Duration
	TokenRefreshAhead   time.Duration
	IndexEnabled        bool
	IndexInterval       time.Duration
}

// SearchConfig holds the collection search index settings
type SearchConfig struct {
	Host   string
	APIKey string
}

// UsageCacheConfig holds the SIM usage cache settings
type UsageCacheConfig struct {
	Backend  string // memory, redis
	Capacity int
	TTL      time.Duration
}

// Load loads configuration from TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with ESIM_ prefix (e.g. ESIM_PROVIDER_SECRET)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("ESIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:  v.GetDuration("http.read_timeout"),
			WriteTimeout: v.GetDuration("http.write_timeout"),
			IdleTimeout:  v.GetDuration("http.idle_timeout"),
		},
		Provider: ProviderConfig{
			Account:        v.GetString("provider.account"),
			Secret:         v.GetString("provider.secret"),
			BaseURL:        v.GetString("provider.base_url"),
			BaseURLV2:      v.GetString("provider.base_url_v2"),
			AccessToken:    v.GetString("provider.access_token"),
			Username:       v.GetString("provider.username"),
			Password:       v.GetString("provider.password"),
			TimeoutSeconds: v.GetInt("provider.timeout_seconds"),
		},
		Sync: SyncConfig{
			Enabled:             v.GetBool("sync.enabled"),
			Interval:            v.GetDuration("sync.interval"),
			TokenRefreshEnabled: v.GetBool("sync.token_refresh_enabled"),
			TokenTTL:            v.GetDuration("sync.token_ttl"),
			TokenRefreshAhead:   v.GetDuration("sync.token_refresh_ahead"),
			IndexEnabled:        v.GetBool("sync.index_enabled"),
			IndexInterval:       v.GetDuration("sync.index_interval"),
		},
		Search: SearchConfig{
			Host:   v.GetString("search.host"),
			APIKey: v.GetString("search.api_key"),
		},
		UsageCache: UsageCacheConfig{
			Backend:  v.GetString("usage_cache.backend"),
			Capacity: v.GetInt("usage_cache.capacity"),
			TTL:      v.GetDuration("usage_cache.ttl"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "esim-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "esim"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.Provider.TimeoutSeconds == 0 {
		cfg.Provider.TimeoutSeconds = 30
	}
	if cfg.Sync.Interval == 0 {
		cfg.Sync.Interval = 24 * time.Hour
	}
	if cfg.Sync.TokenTTL == 0 {
		cfg.Sync.TokenTTL = 8 * time.Hour
	}
	if cfg.Sync.TokenRefreshAhead == 0 {
		cfg.Sync.TokenRefreshAhead = 30 * time.Minute
	}
	if cfg.Sync.IndexInterval == 0 {
		cfg.Sync.IndexInterval = 24 * time.Hour
	}
	if cfg.UsageCache.Backend == "" {
		cfg.UsageCache.Backend = "memory"
	}
	if cfg.UsageCache.Capacity == 0 {
		cfg.UsageCache.Capacity = 10000
	}
	if cfg.UsageCache.TTL == 0 {
		cfg.UsageCache.TTL = 15 * time.Minute
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if c.Sync.TokenRefreshAhead >= c.Sync.TokenTTL {
		return fmt.Errorf("sync.token_refresh_ahead must be shorter than sync.token_ttl")
	}
	if c.UsageCache.Backend != "memory" && c.UsageCache.Backend != "redis" {
		return fmt.Errorf("usage_cache.backend must be 'memory' or 'redis', got %q", c.UsageCache.Backend)
	}

	if c.App.Env == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		if c.Provider.Account == "" || c.Provider.Secret == "" {
			return fmt.Errorf("provider.account and provider.secret are required in production")
		}
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
