package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/entity"
	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/handler"
	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/repository"
	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/service"
	"github.com/AnjaliK-AidenAI/AccountsApp/internal/config"
	"github.com/AnjaliK-AidenAI/AccountsApp/internal/middleware"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting accounts-app service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&entity.Department{},
		&entity.Unit{},
		&entity.Vertical{},
		&entity.Location{},
		&entity.Status{},
		&entity.Account{},
		&entity.Address{},
		&entity.Contact{},
		&entity.Project{},
	); err != nil {
		zapLogger.Warn("AutoMigrate warning", zap.Error(err))
	}

	// Business-key uniqueness holds among active rows only, so plain
	// unique indexes don't fit; partial indexes need raw SQL.
	migrationSQL := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_accounts_code_active ON accounts(code) WHERE is_deleted = false",
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_projects_code_active ON projects(project_code) WHERE is_deleted = false AND project_code <> ''",
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_departments_name_active ON departments(name) WHERE is_deleted = false",
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_units_name_active ON units(name) WHERE is_deleted = false",
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_verticals_name_active ON verticals(name) WHERE is_deleted = false",
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_locations_name_active ON locations(name) WHERE is_deleted = false",
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_statuses_name_active ON statuses(name) WHERE is_deleted = false",
	}
	for _, sql := range migrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			zapLogger.Warn("migration warning", zap.String("sql", sql), zap.Error(err))
		}
	}

	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = initRedis(cfg.Redis)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			zapLogger.Warn("Redis unavailable, lookup cache disabled", zap.Error(err))
			rdb = nil
		}
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(db, repos, rdb, zapLogger, cfg)
	handlers := handler.NewHandlers(services)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	v1 := r.Group("/api/v1")
	if cfg.Auth.Enabled {
		v1.Use(middleware.JWTAuth(cfg.Auth.Secret))
	} else {
		v1.Use(middleware.ActorStub(cfg.Auth.ActorID))
	}
	{
		accounts := v1.Group("/accounts")
		{
			accounts.POST("", h.Account.Create)
			accounts.GET("", h.Account.List)
			accounts.GET("/export", h.Sheet.Export)
			accounts.POST("/import", h.Sheet.Import)
			accounts.GET("/:id", h.Account.Get)
			accounts.PUT("/:id", h.Account.Update)
			accounts.DELETE("/:id", h.Account.Delete)
		}

		contacts := v1.Group("/contacts")
		{
			contacts.POST("", h.Contact.Create)
			contacts.GET("", h.Contact.List)
			contacts.GET("/:id", h.Contact.Get)
			contacts.PUT("/:id", h.Contact.Update)
			contacts.DELETE("/:id", h.Contact.Delete)
		}

		projects := v1.Group("/projects")
		{
			projects.POST("", h.Project.Create)
			projects.GET("", h.Project.List)
			projects.GET("/:id", h.Project.Get)
			projects.PUT("/:id", h.Project.Update)
			projects.DELETE("/:id", h.Project.Delete)
		}

		for _, cat := range entity.LookupCategories {
			lookups := v1.Group("/" + cat.Key)
			lookups.POST("", h.Lookup.Create(cat.Key))
			lookups.GET("", h.Lookup.List(cat.Key))
			lookups.GET("/:id", h.Lookup.Get(cat.Key))
			lookups.PUT("/:id", h.Lookup.Update(cat.Key))
			lookups.DELETE("/:id", h.Lookup.Delete(cat.Key))
		}
	}
}
