package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		Driver                 string `yaml:"driver"` // postgres, mysql, sqlite
		DSN                    string `yaml:"url"`
		MaxOpenConns           int    `yaml:"max_open_conns"`
		MaxIdleConns           int    `yaml:"max_idle_conns"`
		ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
		AutoMigrate            bool   `yaml:"auto_migrate"`
	} `yaml:"database"`

	Session struct {
		Store                string `yaml:"store"` // memory, redis
		CookieName           string `yaml:"cookie_name"`
		TTLHours             int    `yaml:"ttl_hours"`
		Secure               bool   `yaml:"secure"`
		RedisURL             string `yaml:"redis_url"`
		KeyPrefix            string `yaml:"key_prefix"`
		SweepIntervalMinutes int    `yaml:"sweep_interval_minutes"`
	} `yaml:"session"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	Email struct {
		Enabled      bool   `yaml:"enabled"`
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	FirstAdmin struct {
		Name     string `yaml:"name"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"first_admin"`

	Client struct {
		Serve bool `yaml:"serve"` // отдавать встроенный браузерный клиент на "/"
	} `yaml:"client"`
}

// Default возвращает рабочий конфиг для локальной разработки:
// sqlite-файл и сессии в памяти процесса.
func Default() *Config {
	var cfg Config

	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 3000
	cfg.Server.Env = "development"

	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = "whatyaneed.db"
	cfg.Database.MaxOpenConns = 10
	cfg.Database.MaxIdleConns = 5
	cfg.Database.ConnMaxLifetimeMinutes = 30
	cfg.Database.AutoMigrate = true

	cfg.Session.Store = "memory"
	cfg.Session.CookieName = "sessionId"
	cfg.Session.TTLHours = 24
	cfg.Session.KeyPrefix = "whatyaneed:session:"
	cfg.Session.SweepIntervalMinutes = 10

	cfg.CORS.AllowedOrigins = []string{
		"http://127.0.0.1:5500",
		"http://localhost:5500",
		"http://127.0.0.1:5501",
		"http://localhost:5501",
	}

	cfg.Email.SMTPPort = 587
	cfg.Email.FromName = "WhatYaNeed"

	cfg.Client.Serve = true

	return &cfg
}

// LoadConfig загружает конфигурацию:
//  1. .env (если есть) - только переменные окружения
//  2. YAML из CONFIG_PATH (по умолчанию config/config.yaml), поверх Default()
//  3. переопределения из переменных окружения
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	f, err := os.Open(configPath)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", configPath, err)
		}
		log.Printf("Config loaded from %s", configPath)
	case errors.Is(err, os.ErrNotExist):
		log.Printf("Config file %s not found, using defaults", configPath)
	default:
		return nil, fmt.Errorf("failed to open config file at %s: %w", configPath, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("SESSION_STORE"); v != "" {
		cfg.Session.Store = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Session.RedisURL = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORS.AllowedOrigins = origins
	}
	if v := os.Getenv("FIRST_ADMIN_EMAIL"); v != "" {
		cfg.FirstAdmin.Email = v
	}
	if v := os.Getenv("FIRST_ADMIN_PASSWORD"); v != "" {
		cfg.FirstAdmin.Password = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.Email.SMTPPassword = v
	}
}

// Validate проверяет взаимосвязанные поля конфига
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database url is required")
	}

	switch c.Session.Store {
	case "memory":
	case "redis":
		if c.Session.RedisURL == "" {
			return errors.New("session.redis_url is required for redis session store")
		}
	default:
		return fmt.Errorf("unsupported session store %q", c.Session.Store)
	}
	if c.Session.TTLHours <= 0 {
		return errors.New("session.ttl_hours must be positive")
	}

	if c.Email.Enabled && (c.Email.SMTPHost == "" || c.Email.FromEmail == "") {
		return errors.New("email.smtp_host and email.from_email are required when email is enabled")
	}
	return nil
}

// SessionTTL - время жизни сессии
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLHours) * time.Hour
}

// SweepInterval - период очистки просроченных сессий в памяти
func (c *Config) SweepInterval() time.Duration {
	if c.Session.SweepIntervalMinutes <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(c.Session.SweepIntervalMinutes) * time.Minute
}

// ConnMaxLifetime - время жизни соединения в пуле
func (c *Config) ConnMaxLifetime() time.Duration {
	return time.Duration(c.Database.ConnMaxLifetimeMinutes) * time.Minute
}

// IsDevelopment - включает подробные ошибки и debug-логи
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}
