package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"referralku_backend/internals/configs"
	database "referralku_backend/internals/databases"
	"referralku_backend/internals/features/payments/gateway"
	authRepo "referralku_backend/internals/features/users/auth/repository"
	scheduler "referralku_backend/internals/features/users/auth/scheduler"
	helper "referralku_backend/internals/helpers"
	"referralku_backend/internals/metrics"
	middlewares "referralku_backend/internals/middlewares"
	routes "referralku_backend/internals/route"
)

const blacklistCleanupInterval = 24 * time.Hour

func main() {
	cfg := configs.LoadEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Konfigurasi tidak lengkap: %v", err)
	}

	logger, err := configs.NewLogger(cfg)
	if err != nil {
		log.Fatalf("❌ Gagal init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// 🔌 DB connect + pool + warm-up
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	database.TunePool(db, logger)
	database.WarmUp(db, logger)
	if cfg.AutoMigrate {
		if err := database.Migrate(db, logger); err != nil {
			logger.Fatal("migrate", zap.Error(err))
		}
	}

	metrics.Register()

	// ✅ MIDTRANS
	gw := gateway.NewMidtransGateway(gateway.MidtransOptions{
		ServerKey:  cfg.MidtransServerKey,
		Production: cfg.MidtransProduction,
		Timeout:    cfg.GatewayTimeout,
		Logger:     logger,
	})

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if !errors.As(err, &fe) {
				logger.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
			}
			return helper.FromFiberError(c, err)
		},
	})

	middlewares.SetupMiddlewares(app, cfg, logger)

	// ⏱ scheduler setelah DB siap
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	scheduler.StartBlacklistCleanupScheduler(bgCtx, authRepo.NewAuthRepository(db), cfg.TokenBlacklistTTLDays, blacklistCleanupInterval, logger)

	// ✅ Routes
	routes.SetupRoutes(app, routes.Deps{DB: db, Cfg: cfg, Log: logger, Gateway: gw})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	// Start server non-blocking
	go func() {
		logger.Info("✅ Listening", zap.String("port", cfg.Port))
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("🛑 Shutting down...")
	stopBackground()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
	if err := database.Close(db); err != nil {
		logger.Warn("close db", zap.Error(err))
	}
}
