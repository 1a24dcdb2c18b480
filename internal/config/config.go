package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config application configuration
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Log         LogConfig         `mapstructure:"log"`
	Security    SecurityConfig    `mapstructure:"security"`
	Performance PerformanceConfig `mapstructure:"performance"`
	AI          AIConfig          `mapstructure:"ai"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port         int      `mapstructure:"port"`
	Mode         string   `mapstructure:"mode"` // debug, release, test
	ReadTimeout  int      `mapstructure:"read_timeout"`
	WriteTimeout int      `mapstructure:"write_timeout"`
	CORSOrigins  []string `mapstructure:"cors_origins"`
}

// DatabaseConfig database settings
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"` // postgres, sqlite
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	Path            string `mapstructure:"path"` // sqlite file
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // seconds
	AutoMigrate     bool   `mapstructure:"auto_migrate"`
}

// RedisConfig Redis settings, only used by the redis limiter backend
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// LogConfig logging settings
type LogConfig struct {
	Environment   string `mapstructure:"environment"` // development, production, testing
	Level         string `mapstructure:"level"`
	Format        string `mapstructure:"format"` // json, console; empty picks by environment
	Dir           string `mapstructure:"dir"`
	MaxSizeBytes  int64  `mapstructure:"max_size_bytes"`
	AppBackups    int    `mapstructure:"app_backups"`
	ErrorBackups  int    `mapstructure:"error_backups"`
	AccessBackups int    `mapstructure:"access_backups"`
	AIBackups     int    `mapstructure:"ai_backups"`
}

// SecurityConfig rate limiting and request inspection
type SecurityConfig struct {
	RateLimitRequests int      `mapstructure:"rate_limit_requests"`
	RateLimitWindow   int      `mapstructure:"rate_limit_window"` // seconds
	LimiterBackend    string   `mapstructure:"limiter_backend"`   // memory, redis
	CleanupInterval   int      `mapstructure:"cleanup_interval"`  // seconds, 0 disables the sweeper
	EnableMonitoring  bool     `mapstructure:"enable_monitoring"`
	HealthPaths       []string `mapstructure:"health_paths"`
}

// PerformanceConfig slow call thresholds in milliseconds
type PerformanceConfig struct {
	SlowAPIThresholdMs   float64 `mapstructure:"slow_api_threshold_ms"`
	SlowQueryThresholdMs float64 `mapstructure:"slow_query_threshold_ms"`
}

// AIConfig LLM provider settings
type AIConfig struct {
	Provider          string  `mapstructure:"provider"` // ollama, openai
	Host              string  `mapstructure:"host"`
	APIKey            string  `mapstructure:"api_key"`
	Model             string  `mapstructure:"model"`
	Timeout           int     `mapstructure:"timeout"` // seconds
	Temperature       float64 `mapstructure:"temperature"`
	MaxTokens         int     `mapstructure:"max_tokens"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"` // 0 disables throttling
	Burst             int     `mapstructure:"burst"`
}

var globalConfig *Config

// Load reads configuration
// env: environment name (development, production, testing)
// configPath: optional explicit file
func Load(env string, configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v, env)

	if configPath == "" {
		v.SetConfigName(env)
		v.AddConfigPath("./config")
		v.AddConfigPath("../config")
		v.AddConfigPath("../../config")
	} else {
		v.SetConfigFile(configPath)
	}

	v.SetConfigType("yaml")

	// environment variables win over the file: APP_SECURITY_RATE_LIMIT_REQUESTS
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Log.Environment == "" {
		cfg.Log.Environment = env
	}

	globalConfig = &cfg
	return &cfg, nil
}

func setDefaults(v *viper.Viper, env string) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("server.cors_origins", []string{"http://localhost:5173", "http://127.0.0.1:5173"})

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.dbname", "deep_shiva")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "deep_shiva.db")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 3600)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("log.environment", env)
	v.SetDefault("log.level", "")
	v.SetDefault("log.format", "")
	v.SetDefault("log.dir", "logs")
	v.SetDefault("log.max_size_bytes", 10*1024*1024)
	v.SetDefault("log.app_backups", 5)
	v.SetDefault("log.error_backups", 5)
	v.SetDefault("log.access_backups", 10)
	v.SetDefault("log.ai_backups", 20)

	v.SetDefault("security.rate_limit_requests", 60)
	v.SetDefault("security.rate_limit_window", 60)
	v.SetDefault("security.limiter_backend", "memory")
	v.SetDefault("security.cleanup_interval", 300)
	v.SetDefault("security.enable_monitoring", true)
	v.SetDefault("security.health_paths", []string{"/health", "/", "/docs", "/redoc"})

	v.SetDefault("performance.slow_api_threshold_ms", 2000)
	v.SetDefault("performance.slow_query_threshold_ms", 1000)

	v.SetDefault("ai.provider", "ollama")
	v.SetDefault("ai.host", "http://localhost:11434")
	v.SetDefault("ai.model", "gemma3:1b")
	v.SetDefault("ai.timeout", 30)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.max_tokens", 1000)
	v.SetDefault("ai.requests_per_second", 0)
	v.SetDefault("ai.burst", 5)
}

// Get returns the loaded configuration
func Get() *Config {
	if globalConfig == nil {
		panic("config not loaded, call Load() first")
	}
	return globalConfig
}

// GetDSN builds the postgres connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Addr redis address
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// WindowDuration rate limit bucket length
func (c *SecurityConfig) WindowDuration() time.Duration {
	if c.RateLimitWindow <= 0 {
		return time.Minute
	}
	return time.Duration(c.RateLimitWindow) * time.Second
}

// TimeoutDuration LLM call timeout
func (c *AIConfig) TimeoutDuration() time.Duration {
	if c.Timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

// IsDevelopment reports whether the log environment is development
func (c *LogConfig) IsDevelopment() bool {
	return c.Environment == "" || c.Environment == "development" || c.Environment == "dev"
}
