// Package config provides centralized configuration management
// using Viper for configuration loading and validation
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/nutriplan/v1/internal/domain/nutrition"
)

// Config holds all application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Planner    PlannerConfig    `mapstructure:"planner"`
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	EnableCORS      bool          `mapstructure:"enable_cors"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// DatabaseConfig contains database configuration.
// Driver is one of sqlite, postgres or memory.
type DatabaseConfig struct {
	Driver             string        `mapstructure:"driver"`
	Host               string        `mapstructure:"host"`
	Port               int           `mapstructure:"port"`
	Database           string        `mapstructure:"database"`
	Username           string        `mapstructure:"username"`
	Password           string        `mapstructure:"password"`
	SSLMode            string        `mapstructure:"ssl_mode"`
	ReplicaDSNs        []string      `mapstructure:"replica_dsns"`
	MaxOpenConns       int           `mapstructure:"max_open_conns"`
	MaxIdleConns       int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime    time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime    time.Duration `mapstructure:"conn_max_idle_time"`
	LogLevel           string        `mapstructure:"log_level"`
	SlowQueryThreshold time.Duration `mapstructure:"slow_query_threshold"`
	AutoMigrate        bool          `mapstructure:"auto_migrate"`
	SeedDemoData       bool          `mapstructure:"seed_demo_data"`
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	Database     int           `mapstructure:"database"`
	MaxRetries   int           `mapstructure:"max_retries"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	PoolSize     int           `mapstructure:"pool_size"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
	EventChannel string        `mapstructure:"event_channel"`
}

// AuthConfig contains authentication configuration
type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	JWTIssuer     string        `mapstructure:"jwt_issuer"`
	JWTExpiration time.Duration `mapstructure:"jwt_expiration"`
}

// MonitoringConfig contains monitoring configuration
type MonitoringConfig struct {
	EnableMetrics   bool    `mapstructure:"enable_metrics"`
	MetricsPath     string  `mapstructure:"metrics_path"`
	EnableTracing   bool    `mapstructure:"enable_tracing"`
	SamplingRate    float64 `mapstructure:"sampling_rate"`
	TraceExporter   string  `mapstructure:"trace_exporter"`
	OTLPEndpoint    string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure    bool    `mapstructure:"otlp_insecure"`
	HealthCheckPath string  `mapstructure:"health_check_path"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enable         bool `mapstructure:"enable"`
	RequestsPerMin int  `mapstructure:"requests_per_min"`
	BurstSize      int  `mapstructure:"burst_size"`
}

// PlannerConfig holds every tunable of the menu planner
type PlannerConfig struct {
	BreakfastWeight    float64        `mapstructure:"breakfast_weight"`
	LunchWeight        float64        `mapstructure:"lunch_weight"`
	DinnerWeight       float64        `mapstructure:"dinner_weight"`
	RecentPenalty      float64        `mapstructure:"recent_penalty"`
	FrequencyWeight    float64        `mapstructure:"frequency_weight"`
	NoiseMax           float64        `mapstructure:"noise_max"`
	FreezeWindowDays   int            `mapstructure:"freeze_window_days"`
	UsageWindowDays    int            `mapstructure:"usage_window_days"`
	RecentDays         int            `mapstructure:"recent_days"`
	CandidateCacheTTL  time.Duration  `mapstructure:"candidate_cache_ttl"`
	CacheSweepInterval time.Duration  `mapstructure:"cache_sweep_interval"`
	Defaults           DefaultsConfig `mapstructure:"defaults"`
}

// DefaultsConfig is the nutrition target used for users without a goal
type DefaultsConfig struct {
	Calories     float64 `mapstructure:"calories"`
	ProteinShare float64 `mapstructure:"protein_share"`
	FatShare     float64 `mapstructure:"fat_share"`
	CarbsShare   float64 `mapstructure:"carbs_share"`
	Fiber        float64 `mapstructure:"fiber"`
	Sugar        float64 `mapstructure:"sugar"`
	Sodium       float64 `mapstructure:"sodium"`
}

// NutritionDefaults converts the fallback target settings to the domain type
func (p PlannerConfig) NutritionDefaults() nutrition.Defaults {
	return nutrition.Defaults{
		Calories:     p.Defaults.Calories,
		ProteinShare: p.Defaults.ProteinShare,
		FatShare:     p.Defaults.FatShare,
		CarbsShare:   p.Defaults.CarbsShare,
		Fiber:        p.Defaults.Fiber,
		Sugar:        p.Defaults.Sugar,
		Sodium:       p.Defaults.Sodium,
	}
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/nutriplan")
	}

	// Enable environment variable override
	v.SetEnvPrefix("NUTRIPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "NutriPlan")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.max_header_bytes", 1<<20) // 1MB
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.enable_cors", true)

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.database", "nutriplan.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.slow_query_threshold", "100ms")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.seed_demo_data", false)

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("redis.write_timeout", "3s")
	v.SetDefault("redis.key_prefix", "nutriplan:")
	v.SetDefault("redis.event_channel", "nutriplan.events")

	// Auth defaults
	v.SetDefault("auth.jwt_issuer", "nutriplan")
	v.SetDefault("auth.jwt_expiration", "24h")

	// Monitoring defaults
	v.SetDefault("monitoring.enable_metrics", true)
	v.SetDefault("monitoring.metrics_path", "/metrics")
	v.SetDefault("monitoring.enable_tracing", false)
	v.SetDefault("monitoring.sampling_rate", 0.1)
	v.SetDefault("monitoring.trace_exporter", "stdout")
	v.SetDefault("monitoring.otlp_endpoint", "localhost:4318")
	v.SetDefault("monitoring.otlp_insecure", true)
	v.SetDefault("monitoring.health_check_path", "/health")

	// Rate limit defaults
	v.SetDefault("rate_limit.enable", true)
	v.SetDefault("rate_limit.requests_per_min", 120)
	v.SetDefault("rate_limit.burst_size", 20)

	// Planner defaults
	v.SetDefault("planner.breakfast_weight", 0.25)
	v.SetDefault("planner.lunch_weight", 0.35)
	v.SetDefault("planner.dinner_weight", 0.30)
	v.SetDefault("planner.recent_penalty", 200.0)
	v.SetDefault("planner.frequency_weight", 10.0)
	v.SetDefault("planner.noise_max", 5.0)
	v.SetDefault("planner.freeze_window_days", 7)
	v.SetDefault("planner.usage_window_days", 14)
	v.SetDefault("planner.recent_days", 3)
	v.SetDefault("planner.candidate_cache_ttl", "5m")
	v.SetDefault("planner.cache_sweep_interval", "1m")
	v.SetDefault("planner.defaults.calories", 2000.0)
	v.SetDefault("planner.defaults.protein_share", 0.20)
	v.SetDefault("planner.defaults.fat_share", 0.30)
	v.SetDefault("planner.defaults.carbs_share", 0.50)
	v.SetDefault("planner.defaults.fiber", 25.0)
	v.SetDefault("planner.defaults.sugar", 40.0)
	v.SetDefault("planner.defaults.sodium", 2000.0)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}

	switch c.Database.Driver {
	case "sqlite", "postgres", "memory":
	default:
		return fmt.Errorf("database.driver must be sqlite, postgres or memory, got %q", c.Database.Driver)
	}
	if c.Database.Driver != "memory" && c.Database.Database == "" {
		return fmt.Errorf("database.database is required")
	}

	if c.Auth.JWTSecret == "" && c.IsProduction() {
		return fmt.Errorf("auth.jwt_secret is required in production")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	switch c.Monitoring.TraceExporter {
	case "", "stdout", "otlp":
	default:
		return fmt.Errorf("monitoring.trace_exporter must be stdout or otlp, got %q", c.Monitoring.TraceExporter)
	}

	p := c.Planner
	if p.BreakfastWeight < 0 || p.LunchWeight < 0 || p.DinnerWeight < 0 {
		return fmt.Errorf("planner slot weights must not be negative")
	}
	if sum := p.BreakfastWeight + p.LunchWeight + p.DinnerWeight; sum > 1 {
		return fmt.Errorf("planner slot weights must not exceed 1 in total, got %.2f", sum)
	}
	if p.RecentPenalty < 0 || p.FrequencyWeight < 0 || p.NoiseMax < 0 {
		return fmt.Errorf("planner scoring weights must not be negative")
	}
	if p.FreezeWindowDays < 0 || p.UsageWindowDays < 0 || p.RecentDays < 0 {
		return fmt.Errorf("planner day windows must not be negative")
	}
	if p.Defaults.Calories <= 0 {
		return fmt.Errorf("planner.defaults.calories must be positive")
	}

	return nil
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// GetDSN returns the postgres connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.Username,
		c.Database.Password,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// RedisAddr returns the host:port of the Redis server
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
