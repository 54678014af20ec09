package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"referralku_backend/internals/configs"
	database "referralku_backend/internals/databases"
)

const healthPingTimeout = 2 * time.Second

func BaseRoutes(app *fiber.App, db *gorm.DB, cfg configs.Config) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Referralku backend: Fiber & PostgreSQL connected 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		ctx, cancel := context.WithTimeout(c.UserContext(), healthPingTimeout)
		defer cancel()
		if err := database.Ping(ctx, db); err != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    cfg.AppEnv,
		})
	})
}
