package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/01moynul/shop-backoffice/internal/config"
	"github.com/01moynul/shop-backoffice/internal/database"
	"github.com/01moynul/shop-backoffice/internal/draft"
	"github.com/01moynul/shop-backoffice/internal/goods"
	"github.com/01moynul/shop-backoffice/internal/handlers"
	"github.com/01moynul/shop-backoffice/internal/logger"
	"github.com/01moynul/shop-backoffice/internal/routes"
	"github.com/01moynul/shop-backoffice/internal/session"
	"github.com/01moynul/shop-backoffice/internal/upload"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}
	cfg := config.LoadEnv()

	// 1. --- Logger ---
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
	} else {
		gin.SetMode(gin.ReleaseMode)
		logConfig.Encoding = "json"
		if logConfig.Level == "debug" {
			logConfig.Level = "info"
		}
	}
	appLogger, err := logger.NewZapLogger(logConfig)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer appLogger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. --- Draft Store ---
	var kv draft.KV
	switch cfg.Draft.Store {
	case "redis":
		client, err := database.OpenRedis(ctx, database.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Fatal("Could not connect to Redis", zap.Error(err))
		}
		defer client.Close()
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		kv = draft.NewRedisKV(client)

	case "mysql":
		db, err := database.OpenMySQL(ctx, database.MySQLConfig{
			DSN:             cfg.MySQL.DSN,
			MaxOpenConns:    cfg.MySQL.MaxOpenConns,
			MaxIdleConns:    cfg.MySQL.MaxIdleConns,
			ConnMaxLifetime: cfg.MySQL.ConnMaxLifetime,
		})
		if err != nil {
			appLogger.Fatal("Could not connect to MySQL", zap.Error(err))
		}
		defer db.Close()
		mysqlKV := draft.NewMySQLKV(db)
		if err := mysqlKV.EnsureSchema(ctx); err != nil {
			appLogger.Fatal("Could not create goods_drafts table", zap.Error(err))
		}
		appLogger.Info("Connected to MySQL")
		kv = mysqlKV

	default:
		appLogger.Warn("Drafts are kept in memory and lost on restart")
		kv = draft.NewMemoryKV()
	}

	// 3. --- Uploader ---
	var uploader upload.Uploader
	uploadDir := ""
	switch cfg.Upload.Backend {
	case "gcs":
		gcs, err := upload.NewGCSUploader(ctx, cfg.Upload.GCSBucket, cfg.Upload.CredentialsFile)
		if err != nil {
			appLogger.Fatal("Could not initialize GCS uploader", zap.Error(err))
		}
		defer gcs.Close()
		uploader = gcs
	default:
		uploader = upload.NewLocalUploader(cfg.Upload.Dir, cfg.Upload.BaseURL)
		uploadDir = cfg.Upload.Dir
	}

	// --- Application Setup ---
	app := &handlers.Handlers{
		Sessions: session.NewRegistry(cfg.Session.TTL),
		Goods:    goods.NewClient(cfg.Goods.APIURL, cfg.Goods.Version, cfg.Goods.Timeout, appLogger),
		Drafts:   draft.NewStore(kv, cfg.Draft.TTL),
		Uploader: uploader,
		Logger:   appLogger,
	}

	// --- 4. Background Worker ---
	// Evicts editor sessions nobody touched within SESSION_TTL.
	sweepEvery := cfg.Session.SweepInterval
	if sweepEvery <= 0 {
		sweepEvery = 5 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(sweepEvery)
		defer ticker.Stop()

		appLogger.Info("Session sweeper started", zap.Duration("interval", sweepEvery))
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := app.Sessions.Sweep(); n > 0 {
					appLogger.Info("Evicted idle editor sessions", zap.Int("count", n), zap.Int("open", app.Sessions.Len()))
				}
			}
		}
	}()

	// --- Router Setup ---
	router := routes.SetupRouter(app, routes.Options{
		CORSOrigin: cfg.Server.CORSOrigin,
		JWTSecret:  cfg.JWT.SecretKey,
		UploadDir:  uploadDir,
	}, appLogger)

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	srv := &http.Server{Addr: port, Handler: router}

	// --- Start Server ---
	go func() {
		appLogger.Info("Starting back-office API server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shut down", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
