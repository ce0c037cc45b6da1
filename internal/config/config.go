package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Remote     RemoteConfig
	Storage    StorageConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Log        LogConfig
	CORS       CORSConfig
	Visibility VisibilityConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// RemoteConfig holds settings for the upstream HR backend.
type RemoteConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	AuthPath  string        `mapstructure:"auth_path"`
	AuthToken string        `mapstructure:"auth_token"`
}

// StorageConfig selects the durable key-value provider.
type StorageConfig struct {
	Provider string `mapstructure:"provider"` // "redis" or "memory"
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// JWTConfig holds session token signing settings.
type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// VisibilityConfig points at the identity-to-substring rule table.
type VisibilityConfig struct {
	TablePath     string `mapstructure:"table_path"`
	OwnerField    string `mapstructure:"owner_field"`
	EmployeeField string `mapstructure:"employee_field"`
}

// Load reads configuration from environment variables with the HRDESK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("HRDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Remote backend defaults
	v.SetDefault("remote.base_url", "http://localhost:9000/api")
	v.SetDefault("remote.timeout", "10s")
	v.SetDefault("remote.auth_path", "/auth/login")
	v.SetDefault("remote.auth_token", "")

	// Storage defaults
	v.SetDefault("storage.provider", "memory")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.expiry", "12h")
	v.SetDefault("jwt.issuer", "hrdesk")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Visibility defaults
	v.SetDefault("visibility.table_path", "")
	v.SetDefault("visibility.owner_field", "reporting_leader")
	v.SetDefault("visibility.employee_field", "employee_code")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "HRDESK_SERVER_PORT",
		"server.read_timeout":       "HRDESK_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "HRDESK_SERVER_WRITE_TIMEOUT",
		"server.environment":        "HRDESK_SERVER_ENVIRONMENT",
		"remote.base_url":           "HRDESK_REMOTE_BASE_URL",
		"remote.timeout":            "HRDESK_REMOTE_TIMEOUT",
		"remote.auth_path":          "HRDESK_REMOTE_AUTH_PATH",
		"remote.auth_token":         "HRDESK_REMOTE_AUTH_TOKEN",
		"storage.provider":          "HRDESK_STORAGE_PROVIDER",
		"redis.addr":                "HRDESK_REDIS_ADDR",
		"redis.password":            "HRDESK_REDIS_PASSWORD",
		"redis.db":                  "HRDESK_REDIS_DB",
		"jwt.secret":                "HRDESK_JWT_SECRET",
		"jwt.expiry":                "HRDESK_JWT_EXPIRY",
		"jwt.issuer":                "HRDESK_JWT_ISSUER",
		"log.level":                 "HRDESK_LOG_LEVEL",
		"log.format":                "HRDESK_LOG_FORMAT",
		"cors.allowed_origins":      "HRDESK_CORS_ALLOWED_ORIGINS",
		"visibility.table_path":     "HRDESK_VISIBILITY_TABLE_PATH",
		"visibility.owner_field":    "HRDESK_VISIBILITY_OWNER_FIELD",
		"visibility.employee_field": "HRDESK_VISIBILITY_EMPLOYEE_FIELD",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Comma-separated origins arrive as a single string from the environment.
	if len(cfg.CORS.AllowedOrigins) == 1 && strings.Contains(cfg.CORS.AllowedOrigins[0], ",") {
		cfg.CORS.AllowedOrigins = strings.Split(cfg.CORS.AllowedOrigins[0], ",")
		for i := range cfg.CORS.AllowedOrigins {
			cfg.CORS.AllowedOrigins[i] = strings.TrimSpace(cfg.CORS.AllowedOrigins[i])
		}
	}

	return &cfg, nil
}
