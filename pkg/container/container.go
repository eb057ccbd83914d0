package container

import (
	"context"
	"fmt"
	"time"

	"bookshare-backend/internal/config"
	"bookshare-backend/internal/infrastructure/database"
	"bookshare-backend/internal/infrastructure/kvstore"
	"bookshare-backend/pkg/jwt"
	"bookshare-backend/pkg/logger"

	"bookshare-backend/internal/domains/book"
	bookHandler "bookshare-backend/internal/domains/book/handler"
	bookRepo "bookshare-backend/internal/domains/book/repository"
	bookService "bookshare-backend/internal/domains/book/service"
	"bookshare-backend/internal/domains/request"
	requestHandler "bookshare-backend/internal/domains/request/handler"
	requestRepo "bookshare-backend/internal/domains/request/repository"
	requestService "bookshare-backend/internal/domains/request/service"
	"bookshare-backend/internal/domains/user"
	userHandler "bookshare-backend/internal/domains/user/handler"
	userRepo "bookshare-backend/internal/domains/user/repository"
	userService "bookshare-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in dependency order: config, then
// infrastructure, then repositories, services and handlers.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB // nil unless the postgres driver is selected
	Store      kvstore.Store
	JWTManager *jwt.Manager

	// Repositories
	UserRepo    user.Repository
	SessionRepo user.SessionRepository
	BookRepo    book.Repository
	RequestRepo request.Repository

	// Services
	UserService    user.Service
	BookService    book.Service
	RequestService request.Service

	// Handlers
	UserHandler    *userHandler.UserHandler
	BookHandler    *bookHandler.BookHandler
	RequestHandler *requestHandler.RequestHandler
}

// NewContainer builds the full dependency graph. Order matters: a stage
// only sees what earlier stages populated.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info("configuration loaded", map[string]interface{}{
		"environment":    cfg.App.Environment,
		"storage_driver": cfg.Storage.Driver,
	})

	if err := c.initStore(); err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
	)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	if cfg.App.SeedCatalog {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.BookService.SeedSampleCatalog(ctx); err != nil {
			return nil, fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	logger.Info("container initialized", nil)
	return c, nil
}

// initStore builds the document store behind the persistence gateway.
func (c *Container) initStore() error {
	switch c.Config.Storage.Driver {
	case "postgres":
		dbConfig, err := config.LoadDatabaseConfig()
		if err != nil {
			return fmt.Errorf("load database config: %w", err)
		}

		db := database.NewPostgresDB(dbConfig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := db.Connect(ctx); err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		if err := db.HealthCheck(ctx); err != nil {
			return fmt.Errorf("postgres health check: %w", err)
		}
		c.DB = db

		store := kvstore.NewPostgresStore(db.Pool)
		if err := store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		c.Store = store

	case "redis":
		store := kvstore.NewRedisStore(
			c.Config.Redis.Host,
			c.Config.Redis.Password,
			c.Config.Redis.DB,
		)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.Connect(ctx); err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		c.Store = store

	case "memory":
		logger.Warn("using in-memory storage, data will not survive restarts", nil)
		c.Store = kvstore.NewMemoryStore()

	default:
		return fmt.Errorf("unknown storage driver %q", c.Config.Storage.Driver)
	}

	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = userRepo.NewStoreRepository(c.Store)
	c.SessionRepo = userRepo.NewSessionRepository(c.Store)
	c.BookRepo = bookRepo.NewStoreRepository(c.Store)
	c.RequestRepo = requestRepo.NewStoreRepository(c.Store)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(
		c.UserRepo,
		c.SessionRepo,
		c.JWTManager,
		time.Duration(c.Config.JWT.SessionTTL)*time.Hour,
	)
	c.BookService = bookService.NewBookService(c.BookRepo, c.UserRepo)
	c.RequestService = requestService.NewRequestService(c.RequestRepo, c.BookService, c.UserRepo)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.RequestHandler = requestHandler.NewRequestHandler(c.RequestService)
}

// Cleanup releases infrastructure resources. Called on shutdown.
func (c *Container) Cleanup() {
	if closer, ok := c.Store.(*kvstore.RedisStore); ok {
		if err := closer.Close(); err != nil {
			logger.Error("failed to close redis store", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	logger.Info("container cleaned up", nil)
}
