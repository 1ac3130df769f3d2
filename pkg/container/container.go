package container

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/config"
	infraCache "bookcatalog-backend/internal/infrastructure/cache"
	"bookcatalog-backend/internal/infrastructure/database"
	"bookcatalog-backend/pkg/cache"
	"bookcatalog-backend/pkg/hasher"
	"bookcatalog-backend/pkg/jwt"
	"bookcatalog-backend/pkg/logger"

	// Book domain
	bookHandler "bookcatalog-backend/internal/domains/book/handler"
	bookRepo "bookcatalog-backend/internal/domains/book/repository"
	bookService "bookcatalog-backend/internal/domains/book/service"

	// User domain
	"bookcatalog-backend/internal/domains/user"
	userHandler "bookcatalog-backend/internal/domains/user/handler"
	userRepo "bookcatalog-backend/internal/domains/user/repository"
	userService "bookcatalog-backend/internal/domains/user/service"

	// Comment domain
	"bookcatalog-backend/internal/domains/comment/gateway"
	commentRepo "bookcatalog-backend/internal/domains/comment/repository"
	commentService "bookcatalog-backend/internal/domains/comment/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Thứ tự build: Config → Store → Cache → Auth → Repositories → Services → Handlers
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.PostgresDB // nil khi DB_DRIVER=memory
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Hasher     hasher.Hasher

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	BookRepo    bookRepo.RepositoryInterface
	UserRepo    user.Repository
	CommentRepo commentRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER
	// ========================================
	BookService    bookService.ServiceInterface
	UserService    user.Service
	CommentService commentService.ServiceInterface

	// ========================================
	// HANDLER LAYER (HTTP + WS)
	// ========================================
	BookHandler    *bookHandler.Handler
	UserHandler    *userHandler.UserHandler
	CommentHub     *gateway.Hub
	CommentGateway *gateway.Gateway
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer load config từ env rồi build toàn bộ dependency graph
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.Info().Str("environment", cfg.App.Environment).Msg("[CONTAINER] Config loaded")

	return Build(context.Background(), cfg)
}

// Build tạo container từ config có sẵn (tests dùng trực tiếp với DB_DRIVER=memory)
func Build(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: STORE
	// ========================================
	if err := c.initStore(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	// ========================================
	// STEP 2: CACHE
	// ========================================
	c.initCache(ctx)

	// ========================================
	// STEP 3: AUTH PRIMITIVES
	// ========================================
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessToken)
	c.Hasher = hasher.NewBcrypt(cfg.Auth.BcryptCost)

	// ========================================
	// STEP 4-6: REPOSITORIES → SERVICES → HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().
		Str("driver", cfg.Database.Driver).
		Bool("redis", cfg.Redis.Enabled).
		Msg("[CONTAINER] Initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initStore(ctx context.Context) error {
	if c.Config.Database.Driver == config.DriverMemory {
		log.Warn().Msg("[CONTAINER] Using in-memory store, data is lost on restart")
		return nil
	}

	db := database.NewPostgresDB(config.LoadDatabaseConfig(c.Config.Database))

	// timeout từng attempt do connectWithRetry quản lý
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	if c.Config.Database.RunMigrations {
		if err := database.RunMigrations(db.DSN()); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}
	return nil
}

// initCache - Redis lỗi không critical: log warning và chạy không cache
func (c *Container) initCache(ctx context.Context) {
	c.Cache = infraCache.NewNoopCache()
	if !c.Config.Redis.Enabled {
		return
	}

	rc := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := rc.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("[CONTAINER] Redis unavailable, book cache disabled")
		_ = rc.Close()
		return
	}
	c.Cache = rc
}

func (c *Container) initRepositories() {
	if c.DB == nil {
		c.BookRepo = bookRepo.NewMemoryRepository()
		c.UserRepo = userRepo.NewMemoryRepository()
		c.CommentRepo = commentRepo.NewMemoryRepository()
		return
	}

	pool := c.DB.Pool
	c.BookRepo = bookRepo.NewPostgresRepository(pool)
	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.CommentRepo = commentRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.BookService = bookService.NewService(c.BookRepo, c.Cache, c.Config.Redis.BookTTL)
	c.UserService = userService.NewUserService(c.UserRepo, c.Hasher, c.JWTManager)
	c.CommentService = commentService.NewService(c.CommentRepo)
}

func (c *Container) initHandlers() {
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)

	ws := c.Config.Comments
	c.CommentHub = gateway.NewHub()
	c.CommentGateway = gateway.NewGateway(c.CommentHub, c.CommentService, gateway.Options{
		WriteWait:      ws.WriteWait,
		PongWait:       ws.PongWait,
		MaxMessageSize: ws.MaxMessageSize,
		SendBuffer:     ws.SendBuffer,
		AllowedOrigins: ws.AllowedOrigins,
	})
}

// ========================================
// HEALTH
// ========================================

// HealthStatus - trạng thái store/cache cho GET /health
type HealthStatus struct {
	Store string `json:"store"`
	Cache string `json:"cache"`
}

func (c *Container) Health(ctx context.Context) (HealthStatus, bool) {
	status := HealthStatus{Store: "memory", Cache: "disabled"}
	healthy := true

	if c.DB != nil {
		status.Store = "up"
		if err := c.DB.HealthCheck(ctx); err != nil {
			status.Store = "down"
			healthy = false
		}
	}

	if _, ok := c.Cache.(*infraCache.RedisCache); ok {
		status.Cache = "up"
		if err := c.Cache.Ping(ctx); err != nil {
			// cache down không làm service unhealthy
			status.Cache = "down"
		}
	}

	return status, healthy
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	if c.CommentGateway != nil {
		c.CommentGateway.Close()
	}

	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Warn().Err(err).Msg("[CONTAINER] Failed to close cache")
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	logger.Debug("[CONTAINER] Cleanup completed")
}
