package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"go.uber.org/zap"

	"referralku_backend/internals/configs"
	"referralku_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware global; urutan penting (recover paling luar).
func SetupMiddlewares(app *fiber.App, cfg configs.Config, log *zap.Logger) {
	app.Use(RecoveryMiddleware(log))
	app.Use(RequestIDMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware(cfg.AllowedOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching
	app.Use(GlobalRateLimiter())
}
