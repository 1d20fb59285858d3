package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration, loaded from a YAML file
// selected by APP_ENV with env-var overrides for secrets.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	JWT        JWTConfig        `yaml:"jwt"`
	Generation GenerationConfig `yaml:"generation"`
	CORS       CORSConfig       `yaml:"cors"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port int    `yaml:"port"`
	Env  string `yaml:"env"`
}

// DatabaseConfig MySQL settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// DSN builds the MySQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// RedisConfig Redis settings (optional; the service runs without it)
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// JWTConfig token signing settings
type JWTConfig struct {
	Secret        string `yaml:"secret"`
	ExpiryMinutes int    `yaml:"expiry_minutes"`
}

// Expiry returns the access-token lifetime.
func (j JWTConfig) Expiry() time.Duration {
	if j.ExpiryMinutes <= 0 {
		return 60 * time.Minute
	}
	return time.Duration(j.ExpiryMinutes) * time.Minute
}

// GenerationConfig settings for the OpenAI-format chat-completions
// endpoint that synthesizes persona replies.
type GenerationConfig struct {
	BaseURL        string `yaml:"base_url"` // e.g. "https://api.openai.com/v1"
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	MaxTokens      int    `yaml:"max_tokens"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	TypingDelayMS  int    `yaml:"typing_delay_ms"`
	MaxConcurrent  int    `yaml:"max_concurrent"`
}

// Timeout bounds a single generation call.
func (g GenerationConfig) Timeout() time.Duration {
	if g.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// TypingDelay is the simulated-typing wait before a reply is delivered.
func (g GenerationConfig) TypingDelay() time.Duration {
	if g.TypingDelayMS <= 0 {
		return 2 * time.Second
	}
	return time.Duration(g.TypingDelayMS) * time.Millisecond
}

// CORSConfig allowed origins for browser clients
type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

// Load reads the YAML config at path and applies env-var overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080, Env: "local"},
		Database: DatabaseConfig{
			Host: "127.0.0.1",
			Port: 3306,
			User: "chattermate",
			Name: "chattermate",
		},
		Redis: RedisConfig{Host: "127.0.0.1", Port: 6379, PoolSize: 10},
		JWT:   JWTConfig{ExpiryMinutes: 60},
		Generation: GenerationConfig{
			BaseURL:        "https://api.openai.com/v1",
			Model:          "gpt-4o-mini",
			MaxTokens:      150,
			TimeoutSeconds: 30,
			TypingDelayMS:  2000,
			MaxConcurrent:  32,
		},
	}
}

// applyEnvOverrides lets env vars win over the YAML file for secrets
// and deploy-specific values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("GENERATION_BASE_URL"); v != "" {
		cfg.Generation.BaseURL = v
	}
	if v := os.Getenv("GENERATION_API_KEY"); v != "" {
		cfg.Generation.APIKey = v
	}
	if v := os.Getenv("GENERATION_MODEL"); v != "" {
		cfg.Generation.Model = v
	}
}
