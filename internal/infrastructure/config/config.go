package config

import (
	stderrors "errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	sharedConfig "labmanager/internal/shared/config"
)

// MinSessionSecretLength is the shortest accepted session signing secret.
const MinSessionSecretLength = 32

type Config struct {
	Server     sharedConfig.ServerConfig     `mapstructure:"server"`
	Database   sharedConfig.DatabaseConfig   `mapstructure:"database"`
	Logger     sharedConfig.LoggerConfig     `mapstructure:"logger"`
	Session    sharedConfig.SessionConfig    `mapstructure:"session"`
	Auth       sharedConfig.AuthConfig       `mapstructure:"auth"`
	Redis      sharedConfig.RedisConfig      `mapstructure:"redis"`
	RateLimit  sharedConfig.RateLimitConfig  `mapstructure:"rate_limit"`
	Permission sharedConfig.PermissionConfig `mapstructure:"permission"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from ./configs/config.yaml (or a parent configs dir)
// and LABMANAGER_* environment variables.
func Load(env string) (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// A missing file is fine when everything comes from the environment.
		if !stderrors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return finish(v, env)
}

// LoadFile loads configuration from an explicit file path.
func LoadFile(path, env string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return finish(v, env)
}

func newViper() *viper.Viper {
	v := viper.New()

	// Set environment variable prefix and replacer
	v.SetEnvPrefix("LABMANAGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

func finish(v *viper.Viper, env string) (*Config, error) {
	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// Validate fails fast on settings the process cannot run without.
func (c *Config) Validate() error {
	var problems []string

	if len(c.Session.Secret) < MinSessionSecretLength {
		problems = append(problems, fmt.Sprintf("session.secret must be at least %d characters", MinSessionSecretLength))
	}
	if c.Session.TTL <= 0 {
		problems = append(problems, "session.ttl must be positive")
	}

	switch c.Database.Driver {
	case "mysql":
		if c.Database.DSN == "" && (c.Database.Host == "" || c.Database.Database == "" || c.Database.Username == "") {
			problems = append(problems, "database.host, database.username and database.database are required for mysql")
		}
	case "sqlite":
		if c.Database.DSN == "" {
			problems = append(problems, "database.dsn is required for sqlite")
		}
	default:
		problems = append(problems, fmt.Sprintf("database.driver %q is not supported", c.Database.Driver))
	}

	switch c.Session.Store {
	case "memory", "database":
	case "redis":
		if !c.Redis.Enabled {
			problems = append(problems, "session.store redis requires redis.enabled")
		}
	default:
		problems = append(problems, fmt.Sprintf("session.store %q is not supported", c.Session.Store))
	}

	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0) {
		problems = append(problems, "rate_limit.requests and rate_limit.window must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.metrics_enabled", true)

	// Database defaults
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.database", "labmanager")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Session defaults
	v.SetDefault("session.store", "database")
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("session.cookie_name", "labmanager_session")
	v.SetDefault("session.cookie_path", "/")
	v.SetDefault("session.cookie_domain", "")
	v.SetDefault("session.cookie_secure", false)
	v.SetDefault("session.cookie_same_site", "Lax")
	v.SetDefault("session.purge_interval", 15*time.Minute)

	// Auth defaults
	v.SetDefault("auth.password.bcrypt_cost", 12)

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Rate limit defaults
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 20)
	v.SetDefault("rate_limit.window", time.Minute)

	// Permission defaults
	v.SetDefault("permission.persist", false)
}
