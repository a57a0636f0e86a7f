package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port      int           `yaml:"port"`
	AdminPort int           `yaml:"admin_port"` // /metrics and /health
	Timeout   time.Duration `yaml:"timeout"`    // per-request deadline
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL       string        `yaml:"url"`
	Password  string        `yaml:"password"`
	DB        int           `yaml:"db"`
	TTL       time.Duration `yaml:"ttl"`        // catalog cache TTL
	PolicyTTL time.Duration `yaml:"policy_ttl"` // settings read-through TTL
}

type RazorpayConfig struct {
	KeyID     string `yaml:"key_id"`
	KeySecret string `yaml:"key_secret"`
	Currency  string `yaml:"currency"`
	BaseURL   string `yaml:"base_url"`
}

type AuthConfig struct {
	HMACSecret string `yaml:"hmac_secret"`
}

type LimitsConfig struct {
	OrdersPerMinute int `yaml:"orders_per_minute"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Razorpay RazorpayConfig `yaml:"razorpay"`
	Auth     AuthConfig     `yaml:"auth"`
	Limits   LimitsConfig   `yaml:"limits"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.AdminPort <= 0 {
		cfg.Server.AdminPort = 9090
	}
	if cfg.Server.Timeout <= 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = time.Hour
	}
	if cfg.Redis.PolicyTTL <= 0 {
		cfg.Redis.PolicyTTL = 30 * time.Second
	}
	if cfg.Razorpay.Currency == "" {
		cfg.Razorpay.Currency = "INR"
	}
	if cfg.Razorpay.BaseURL == "" {
		cfg.Razorpay.BaseURL = "https://api.razorpay.com/v1"
	}
	if cfg.Limits.OrdersPerMinute <= 0 {
		cfg.Limits.OrdersPerMinute = 10
	}

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if !dev {
		if cfg.Razorpay.KeyID == "" || cfg.Razorpay.KeySecret == "" {
			return nil, errors.New("razorpay.key_id and razorpay.key_secret are required")
		}
		if cfg.Auth.HMACSecret == "" {
			return nil, errors.New("auth.hmac_secret is required")
		}
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
