// Package config provides configuration management for the CYBIM
// signage daemon
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the daemon
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
}

// ServerConfig holds HTTP server settings for the control API
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	IdleTimeout  time.Duration `yaml:"idleTimeout"`
}

// DatabaseConfig holds campaign store connection settings
type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Name            string        `yaml:"name"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	SSLMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
}

// RedisConfig holds the rate limit store connection settings
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// RateLimitConfig holds control API rate limit settings
type RateLimitConfig struct {
	// APIRequests is the per-client request budget for the control API
	APIRequests int `yaml:"apiRequests"`
	// APIPeriod is the window the request budget applies to
	APIPeriod time.Duration `yaml:"apiPeriod"`
	// WSConnects is how many renderer/listener socket connects a
	// client may attempt per period
	WSConnects int `yaml:"wsConnects"`
}

// Load returns configuration from defaults overlaid with environment
// variables
func Load() (*Config, error) {
	cfg := defaultConfig()
	cfg.overlayEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			Name:            "cybim",
			User:            "cybim",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Hour,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		RateLimit: RateLimitConfig{
			APIRequests: 300,
			APIPeriod:   time.Minute,
			WSConnects:  30,
		},
	}
}

// overlayEnv overlays environment variables on top of the current config
func (c *Config) overlayEnv() {
	if host := getEnv("CYBIM_SERVER_HOST", ""); host != "" {
		c.Server.Host = host
	}
	if port := getEnvAsInt("CYBIM_SERVER_PORT", 0); port != 0 {
		c.Server.Port = port
	}
	if readTimeout := getEnvAsDuration("CYBIM_SERVER_READ_TIMEOUT", 0); readTimeout != 0 {
		c.Server.ReadTimeout = readTimeout
	}
	if writeTimeout := getEnvAsDuration("CYBIM_SERVER_WRITE_TIMEOUT", 0); writeTimeout != 0 {
		c.Server.WriteTimeout = writeTimeout
	}
	if idleTimeout := getEnvAsDuration("CYBIM_SERVER_IDLE_TIMEOUT", 0); idleTimeout != 0 {
		c.Server.IdleTimeout = idleTimeout
	}

	if host := getEnv("CYBIM_DB_HOST", ""); host != "" {
		c.Database.Host = host
	}
	if port := getEnvAsInt("CYBIM_DB_PORT", 0); port != 0 {
		c.Database.Port = port
	}
	if name := getEnv("CYBIM_DB_NAME", ""); name != "" {
		c.Database.Name = name
	}
	if user := getEnv("CYBIM_DB_USER", ""); user != "" {
		c.Database.User = user
	}
	if password := getEnv("CYBIM_DB_PASSWORD", ""); password != "" {
		c.Database.Password = password
	}
	if sslmode := getEnv("CYBIM_DB_SSLMODE", ""); sslmode != "" {
		c.Database.SSLMode = sslmode
	}
	if maxOpenConns := getEnvAsInt("CYBIM_DB_MAX_OPEN_CONNS", 0); maxOpenConns != 0 {
		c.Database.MaxOpenConns = maxOpenConns
	}
	if maxIdleConns := getEnvAsInt("CYBIM_DB_MAX_IDLE_CONNS", 0); maxIdleConns != 0 {
		c.Database.MaxIdleConns = maxIdleConns
	}

	if addr := getEnv("CYBIM_REDIS_ADDR", ""); addr != "" {
		c.Redis.Addr = addr
	}
	if password := getEnv("CYBIM_REDIS_PASSWORD", ""); password != "" {
		c.Redis.Password = password
	}
	if db := getEnvAsInt("CYBIM_REDIS_DB", -1); db >= 0 {
		c.Redis.DB = db
	}

	if requests := getEnvAsInt("CYBIM_RATELIMIT_API_REQUESTS", 0); requests != 0 {
		c.RateLimit.APIRequests = requests
	}
	if period := getEnvAsDuration("CYBIM_RATELIMIT_API_PERIOD", 0); period != 0 {
		c.RateLimit.APIPeriod = period
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
