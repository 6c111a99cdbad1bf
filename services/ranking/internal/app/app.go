package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rankings-admin/pkg/cache"
	"rankings-admin/pkg/config"
	"rankings-admin/pkg/database"
	"rankings-admin/pkg/jwt"
	"rankings-admin/pkg/logger"
	"rankings-admin/pkg/queue"
	"rankings-admin/pkg/s3"
	"rankings-admin/services/ranking/internal/model"
	"rankings-admin/services/ranking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// newContainer is swapped in tests to exercise the startup failure path.
var newContainer = NewContainer

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	queueClient *queue.Client
	jwtService  *jwt.Service
	container   *Container
	httpServer  *http.Server

	// ctx bounds background work such as the rate limiter sweeper.
	ctx    context.Context
	cancel context.CancelFunc
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()
	gin.SetMode(gin.ReleaseMode)

	var db *gorm.DB
	if cfg.StorageBackend == config.StorageDatabase {
		var err error
		db, err = database.New(cfg)
		if err != nil {
			log.Error("Failed to connect to database: %v", err)
			return nil, err
		}
		if cfg.DBDriver == config.DriverSQLite {
			if err := model.AutoMigrate(db); err != nil {
				log.Error("Failed to migrate sqlite database: %v", err)
				_ = database.Close(db)
				return nil, err
			}
		}
	}

	var redisClient *redis.Client
	if cfg.RedisHost != "" {
		client, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Warn("Failed to connect to redis: %v (rate limiting in process)", err)
		} else {
			redisClient = client
		}
	}

	var images usecase.ImageStorage
	s3Client, err := s3.NewClient(cfg)
	switch {
	case errors.Is(err, s3.ErrNotConfigured):
		log.Info("S3 bucket not configured, cover uploads disabled")
	case err != nil:
		log.Warn("Failed to create S3 client: %v (cover uploads disabled)", err)
		s3Client = nil
	default:
		images = s3Client
	}

	var events usecase.EventPublisher
	var queueClient *queue.Client
	if cfg.RabbitMQHost != "" {
		queueClient, err = queue.NewRabbitMQClient(cfg, log)
		if err != nil {
			log.Warn("Failed to connect to RabbitMQ: %v (continuing without events)", err)
			queueClient = nil
		} else {
			events = queueClient
		}
	}

	app := &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		queueClient: queueClient,
		jwtService:  jwt.NewService(cfg.JWTSecret),
	}

	app.container, err = newContainer(cfg, Dependencies{
		DB:     db,
		Images: images,
		Events: events,
		Logger: log,
	})
	if err != nil {
		log.Error("Failed to build container: %v", err)
		app.closeResources()
		return nil, err
	}

	app.ctx, app.cancel = context.WithCancel(context.Background())
	return app, nil
}

// Container exposes the dependency container, e.g. for Override in tests.
func (a *App) Container() *Container {
	return a.container
}

func (a *App) Run() error {
	a.httpServer = &http.Server{
		Addr:              ":" + a.cfg.ServerPort,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		a.log.Info("Ranking service starting on port %s (storage=%s)", a.cfg.ServerPort, a.cfg.StorageBackend)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down ranking service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var shutdownErr error
	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.log.Error("Server forced to shutdown: %v", err)
			shutdownErr = err
		}
	}

	a.cancel()
	a.closeResources()

	a.log.Info("Ranking service exited")
	_ = a.log.Sync()
	return shutdownErr
}

// closeResources releases the database, Redis and RabbitMQ connections.
// Nil handles are skipped.
func (a *App) closeResources() {
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}
}
