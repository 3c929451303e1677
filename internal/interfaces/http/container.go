package http

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"labmanager/internal/application/auth"
	"labmanager/internal/application/crud"
	appUser "labmanager/internal/application/user"
	"labmanager/internal/domain/permission"
	"labmanager/internal/domain/user"
	infraAuth "labmanager/internal/infrastructure/auth"
	"labmanager/internal/infrastructure/cache"
	"labmanager/internal/infrastructure/config"
	infraPermission "labmanager/internal/infrastructure/permission"
	"labmanager/internal/infrastructure/ratelimit"
	"labmanager/internal/infrastructure/repository"
	"labmanager/internal/shared/logger"
)

// Session store backends selectable with session.store.
const (
	SessionStoreMemory   = "memory"
	SessionStoreRedis    = "redis"
	SessionStoreDatabase = "database"
)

// Container holds the infrastructure components, services and the resource
// registry, wired together from configuration.
type Container struct {
	db    *gorm.DB
	cfg   *config.Config
	log   logger.Interface
	redis *redis.Client

	users    *repository.UserRepository
	sessions user.SessionStore
	hasher   *infraAuth.BcryptPasswordHasher

	authService *auth.Service
	userService *appUser.Service
	registry    *crud.Registry

	enforcer    permission.Enforcer
	limiter     ratelimit.RateLimiter
	memoLimiter *ratelimit.MemoryRateLimiter
}

// NewContainer creates a Container with all dependencies wired together.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		db:  db,
		cfg: cfg,
		log: log,
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	if err := c.initSessions(); err != nil {
		c.Shutdown()
		return nil, err
	}
	c.initServices()
	c.registry = newResourceRegistry(db, c.hasher, c.sessions, log)
	if err := c.initAccessControl(); err != nil {
		c.Shutdown()
		return nil, err
	}
	c.initRateLimiter()

	return c, nil
}

// initInfrastructure connects to Redis when it is enabled.
func (c *Container) initInfrastructure() error {
	if !c.cfg.Redis.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     c.cfg.Redis.GetAddr(),
		Password: c.cfg.Redis.Password,
		DB:       c.cfg.Redis.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.log.Infow("redis connection established", "address", c.cfg.Redis.GetAddr())
	c.redis = client
	return nil
}

func (c *Container) initSessions() error {
	ttl := c.cfg.Session.TTL

	switch c.cfg.Session.Store {
	case "", SessionStoreMemory:
		c.sessions = cache.NewMemorySessionStore(ttl)
	case SessionStoreRedis:
		if c.redis == nil {
			return fmt.Errorf("session store %q requires redis.enabled", SessionStoreRedis)
		}
		c.sessions = cache.NewRedisSessionStore(c.redis, ttl)
	case SessionStoreDatabase:
		c.sessions = repository.NewSessionRepository(c.db, ttl)
	default:
		return fmt.Errorf("unknown session store %q", c.cfg.Session.Store)
	}

	c.log.Infow("session store ready", "store", c.cfg.Session.Store, "ttl", ttl)
	return nil
}

func (c *Container) initServices() {
	c.users = repository.NewUserRepository(c.db, c.log)
	c.hasher = infraAuth.NewBcryptPasswordHasher(c.cfg.Auth.Password.BcryptCost)
	c.authService = auth.NewService(c.users, c.sessions, c.hasher, c.cfg.Session.TTL, c.log.Named("auth"))
	c.userService = appUser.NewService(c.users, c.hasher, c.log.Named("user"))
}

// initAccessControl builds the casbin enforcer over the default permission
// table for every registered domain resource.
func (c *Container) initAccessControl() error {
	var store *gorm.DB
	if c.cfg.Permission.Persist {
		store = c.db
	}

	enforcer, err := infraPermission.NewEnforcer(permission.DefaultPolicy(domainRoutes(c.registry)), store, c.log.Named("permission"))
	if err != nil {
		return fmt.Errorf("failed to initialize permission enforcer: %w", err)
	}
	c.enforcer = enforcer
	return nil
}

func (c *Container) initRateLimiter() {
	if !c.cfg.RateLimit.Enabled {
		return
	}

	rc := ratelimit.Config{Requests: c.cfg.RateLimit.Requests, Window: c.cfg.RateLimit.Window}
	if c.redis != nil {
		c.limiter = ratelimit.NewRedisRateLimiter(c.redis, rc)
		return
	}
	c.memoLimiter = ratelimit.NewMemoryRateLimiter(rc)
	c.limiter = c.memoLimiter
}

func (c *Container) AuthService() *auth.Service {
	return c.authService
}

func (c *Container) UserService() *appUser.Service {
	return c.userService
}

func (c *Container) Registry() *crud.Registry {
	return c.registry
}

// PurgeExpired runs one round of background housekeeping: expired sessions
// and idle in-process rate limit buckets.
func (c *Container) PurgeExpired(ctx context.Context) {
	c.authService.PurgeExpired(ctx)
	if c.memoLimiter != nil {
		if n := c.memoLimiter.Cleanup(); n > 0 {
			c.log.Debugw("rate limit buckets released", "count", n)
		}
	}
}

// Shutdown releases the connections owned by the container.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
		c.redis = nil
	}
}
