// Package bootstrap loads the configuration, logger and database shared by
// every command.
package bootstrap

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"labmanager/internal/infrastructure/config"
	"labmanager/internal/infrastructure/database"
	"labmanager/internal/shared/logger"
)

// Env is what a command needs once the process is initialised.
type Env struct {
	Name   string
	Config *config.Config
	Logger logger.Interface
	DB     *gorm.DB
}

// Load reads the configuration (configPath wins over the search path),
// initialises logging and opens the database.
func Load(env, configPath string) (*Env, error) {
	cfg, err := loadConfig(env, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Server.Mode = GinMode(env)
	if err := logger.Init(&cfg.Logger, cfg.Server.Mode == gin.DebugMode); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Env{
		Name:   env,
		Config: cfg,
		Logger: logger.NewLogger(),
		DB:     database.Get(),
	}, nil
}

// Close releases the database connection.
func (e *Env) Close() {
	if err := database.Close(); err != nil {
		e.Logger.Warnw("failed to close database", "error", err)
	}
}

func loadConfig(env, configPath string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath, env)
	}
	return config.Load(env)
}

// GinMode maps an environment name to a gin mode.
func GinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return gin.ReleaseMode
	case "test", "testing":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
