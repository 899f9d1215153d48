package http

import (
	"context"
	"errors"
	"fmt"

	"todoweb/internal/adapter/database/memory"
	"todoweb/internal/adapter/database/postgres"
	pgrepository "todoweb/internal/adapter/database/postgres/repository"
	redisstore "todoweb/internal/adapter/database/redis"
	"todoweb/internal/adapter/database/sqlite"
	"todoweb/internal/adapter/database/sqlite/repository"
	"todoweb/internal/adapter/http/handler"
	"todoweb/internal/adapter/http/routes"
	"todoweb/internal/adapter/session"
	"todoweb/internal/core/port"
	"todoweb/internal/core/service"
	"todoweb/internal/core/util"
	"todoweb/pkg/config"
	"todoweb/pkg/tracing"
)

type Container struct {
	UserRepo port.UserRepository
	TodoRepo port.TodoRepository
	Sessions port.SessionStore

	UserUseCase port.UserService
	TodoUseCase port.TodoService
	AuthUseCase port.AuthService

	SessionManager *session.Manager

	TodoHandler *handler.TodoHandler
	AuthHandler *handler.AuthHandler

	closers []func() error
}

// NewContainer opens the configured stores and wires services and handlers.
func NewContainer(ctx context.Context, cfg *config.AppConfig, logger *config.LokiLogger, metrics *tracing.AppMetrics) (*Container, error) {
	c := &Container{}

	if err := c.openDatabase(ctx, cfg); err != nil {
		c.Close()
		return nil, err
	}

	if err := c.openSessionStore(ctx, cfg); err != nil {
		c.Close()
		return nil, err
	}

	return c.wire(cfg, logger, metrics), nil
}

// NewContainerWithStores wires services and handlers over stores opened by the caller.
func NewContainerWithStores(todos port.TodoRepository, users port.UserRepository, sessions port.SessionStore, cfg *config.AppConfig, logger *config.LokiLogger, metrics *tracing.AppMetrics) *Container {
	c := &Container{
		TodoRepo: todos,
		UserRepo: users,
		Sessions: sessions,
	}

	return c.wire(cfg, logger, metrics)
}

func (c *Container) wire(cfg *config.AppConfig, logger *config.LokiLogger, metrics *tracing.AppMetrics) *Container {
	c.AuthUseCase = service.NewAuthService(c.UserRepo, util.NewBcryptHasher(cfg.BcryptCost))
	c.UserUseCase = service.NewUserService(c.UserRepo)
	c.TodoUseCase = service.NewTodoService(c.TodoRepo)

	c.SessionManager = session.NewManager(c.Sessions, cfg.SecretKey, cfg.SessionTTL, cfg.IsProduction())

	c.AuthHandler = handler.NewAuthHandler(c.AuthUseCase, logger, metrics)
	c.TodoHandler = handler.NewTodoHandler(c.TodoUseCase, logger, metrics)

	return c
}

func (c *Container) openDatabase(ctx context.Context, cfg *config.AppConfig) error {
	switch cfg.DatabaseDriver {
	case "sqlite":
		db, err := sqlite.NewDB(cfg.DatabasePath, cfg.DatabaseDebug)

		if err != nil {
			return fmt.Errorf("open sqlite: %w", err)
		}

		c.closers = append(c.closers, db.Close)
		c.TodoRepo = repository.NewTodoRepository(db)
		c.UserRepo = repository.NewUserRepository(db)
	case "postgres":
		db, err := postgres.NewDB(ctx, cfg.DatabaseURL)

		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}

		c.closers = append(c.closers, func() error {
			db.Close()
			return nil
		})
		c.TodoRepo = pgrepository.NewTodoRepository(db)
		c.UserRepo = pgrepository.NewUserRepository(db)
	default:
		return fmt.Errorf("unknown database driver %q", cfg.DatabaseDriver)
	}

	return nil
}

func (c *Container) openSessionStore(ctx context.Context, cfg *config.AppConfig) error {
	if cfg.RedisURL == "" {
		c.Sessions = memory.NewSessionStore()
		c.closers = append(c.closers, c.Sessions.Close)
		return nil
	}

	client, err := redisstore.NewClient(ctx, cfg.RedisURL)

	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}

	c.Sessions = redisstore.NewSessionStore(client)
	c.closers = append(c.closers, c.Sessions.Close)

	return nil
}

func (c *Container) Handlers() routes.HandlersConfig {
	return routes.HandlersConfig{
		AuthHandler: c.AuthHandler,
		TodoHandler: c.TodoHandler,
		Sessions:    c.SessionManager,
		Users:       c.UserUseCase,
	}
}

func (c *Container) Close() error {
	var errs []error

	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}

	return errors.Join(errs...)
}
