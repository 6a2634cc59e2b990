// Package bootstrap loads configuration and wires every server component
// together.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	httpHandler "github.com/wh33les/HusbandsGames/internal/handler/http"
	"github.com/wh33les/HusbandsGames/internal/hub"
	rediscache "github.com/wh33les/HusbandsGames/internal/infra/cache/redis"
	gormpersistence "github.com/wh33les/HusbandsGames/internal/infra/persistence/gorm"
	"github.com/wh33les/HusbandsGames/internal/middleware"
	"github.com/wh33les/HusbandsGames/internal/scraper"
	"github.com/wh33les/HusbandsGames/internal/service"
	"github.com/wh33les/HusbandsGames/internal/tasks"
	"github.com/wh33les/HusbandsGames/internal/worker"
)

// Config holds everything the server reads from the environment.
type Config struct {
	DBUser         string
	DBPassword     string
	DBHost         string
	DBPort         string
	DBName         string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	JWTSecret      string
	JWTExpiryHours int
	ServerPort     string
	LogLevel       string
	FrontendOrigin string
	KeyPrefix      string
	AdminUsername  string
	AdminPassword  string
	AdminName      string
	RateLimitMax   int
	RateLimitWin   time.Duration
	PriceRefresh   string // cron spec for the catalog-wide price refresh
}

// LoadConfig reads the environment, preferring a .env file when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         os.Getenv("DB_PORT"),
		DBName:         os.Getenv("DB_NAME"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		ServerPort:     os.Getenv("SERVER_PORT"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		FrontendOrigin: os.Getenv("FRONTEND_ORIGIN"),
		KeyPrefix:      os.Getenv("REDIS_KEY_PREFIX"),
		AdminUsername:  os.Getenv("ADMIN_USERNAME"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		AdminName:      os.Getenv("ADMIN_NAME"),
		PriceRefresh:   os.Getenv("PRICE_REFRESH_SPEC"),
		JWTExpiryHours: 24,
		RateLimitMax:   10,
		RateLimitWin:   time.Minute,
	}

	redisDBStr := os.Getenv("REDIS_DB")
	cfg.RedisDB, _ = strconv.Atoi(redisDBStr)

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8000"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.FrontendOrigin == "" {
		cfg.FrontendOrigin = "http://localhost:3000"
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "gc:"
	}
	if cfg.AdminName == "" {
		cfg.AdminName = "Administrator"
	}
	if cfg.PriceRefresh == "" {
		cfg.PriceRefresh = "@every 24h"
	}
	if cfg.DBHost == "" {
		cfg.DBHost = "127.0.0.1"
	}
	if cfg.DBPort == "" {
		cfg.DBPort = "3306"
	}
	if cfg.DBName == "" {
		cfg.DBName = "game_catalog"
	}
	if cfg.DBUser == "" {
		return nil, fmt.Errorf("environment variable DB_USER must be set")
	}
	if cfg.DBPassword == "" {
		return nil, fmt.Errorf("environment variable DB_PASSWORD must be set")
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("environment variable REDIS_ADDR must be set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("environment variable JWT_SECRET must be set")
	}
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil, fmt.Errorf("environment variables ADMIN_USERNAME and ADMIN_PASSWORD must be set")
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

func (c *Config) dsn() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// App owns every long-lived component of the server process.
type App struct {
	Config      *Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	AsynqClient *asynq.Client
	AsynqServer *worker.WorkerServer
	Scheduler   *asynq.Scheduler
	Hub         *hub.Hub
	HTTPServer  *http.Server
}

// NewApp creates and wires all components. Nothing starts running until
// Start is called.
func NewApp() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, err
	}

	log := logrus.New()
	level, _ := logrus.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)
	logrus.SetLevel(level)

	// Database.
	db, err := gorm.Open(mysql.Open(cfg.dsn()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	log.Info("MySQL connected")

	if err := Migrate(db, cfg); err != nil {
		return nil, err
	}

	// Redis.
	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     20,
		MinIdleConns: 5,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Info("Redis connected")

	// Repositories and cache.
	gameRepo := gormpersistence.NewGormGameRepository(db)
	userRepo := gormpersistence.NewGormUserRepository(db)
	catalogCache := rediscache.NewRedisCatalogCache(redisClient, cfg.KeyPrefix, time.Minute)

	// Background jobs.
	redisOpt := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}
	asynqClient := asynq.NewClient(redisOpt)
	priceSource := scraper.NewEbayScraper()
	asynqServer := worker.NewWorkerServer(redisOpt, gameRepo, catalogCache, priceSource, log)

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{})
	if _, err := scheduler.Register(cfg.PriceRefresh, tasks.NewPriceRefreshAllTask(), asynq.Queue("low")); err != nil {
		return nil, fmt.Errorf("failed to register price refresh schedule: %w", err)
	}

	// Change feed.
	changeHub := hub.NewHub()

	// Services.
	catalogService := service.NewCatalogService(gameRepo, catalogCache, asynqClient, changeHub)
	authService, err := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiryHours)
	if err != nil {
		return nil, err
	}

	// HTTP layer.
	router := newRouter(cfg, redisClient, catalogService, authService, changeHub)
	httpServer := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	return &App{
		Config:      cfg,
		Log:         log,
		DB:          db,
		RedisClient: redisClient,
		AsynqClient: asynqClient,
		AsynqServer: asynqServer,
		Scheduler:   scheduler,
		Hub:         changeHub,
		HTTPServer:  httpServer,
	}, nil
}

func newRouter(cfg *Config, redisClient *redis.Client, catalogService *service.CatalogService, authService *service.AuthService, changeHub *hub.Hub) *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware(cfg.FrontendOrigin))

	gamesHandler := httpHandler.NewGamesHandler(catalogService)
	authHandler := httpHandler.NewAuthHandler(authService)
	wsHandler := httpHandler.NewWSHandler(changeHub)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Game Catalog API"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	r.GET("/games/", gamesHandler.List)
	r.GET("/games/:id", gamesHandler.Get)
	r.GET("/ws", wsHandler.Subscribe)

	r.POST("/login",
		middleware.RateLimit(redisClient, cfg.RateLimitMax, cfg.RateLimitWin),
		authHandler.Login)

	admin := r.Group("/admin")
	admin.Use(middleware.AdminAuth(cfg.JWTSecret, cfg.AdminUsername))
	{
		admin.GET("/me", authHandler.Me)
		admin.POST("/games", gamesHandler.Create)
		admin.PUT("/games/:id", gamesHandler.Update)
		admin.DELETE("/games/:id", gamesHandler.Delete)
	}

	return r
}

func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Start launches the hub, the worker, the scheduler and the HTTP server.
func (a *App) Start() {
	go a.Hub.Run()
	go a.AsynqServer.Start()
	go func() {
		if err := a.Scheduler.Run(); err != nil {
			a.Log.WithError(err).Error("Scheduler stopped")
		}
	}()
	go func() {
		a.Log.Infof("Server starting on :%s", a.Config.ServerPort)
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Log.Fatalf("Failed to start server: %v", err)
		}
	}()
}

// Shutdown stops the components in reverse dependency order.
func (a *App) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.HTTPServer.Shutdown(ctx); err != nil {
		a.Log.WithError(err).Error("HTTP server shutdown failed")
	}
	a.Scheduler.Shutdown()
	a.AsynqServer.Shutdown()
	if err := a.AsynqClient.Close(); err != nil {
		a.Log.WithError(err).Error("Failed to close asynq client")
	}
	if err := a.RedisClient.Close(); err != nil {
		a.Log.WithError(err).Error("Failed to close Redis client")
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	a.Log.Info("Shutdown complete")
}
