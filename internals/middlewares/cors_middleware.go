// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

var defaultOrigins = []string{
	"http://localhost:5173",
	"http://127.0.0.1:5500",
}

// CorsMiddleware membuat middleware CORS dari ALLOWED_ORIGINS (fallback origin dev lokal).
func CorsMiddleware(origins []string) fiber.Handler {
	if len(origins) == 0 {
		origins = defaultOrigins
	}
	allowCredentials := true
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			// fiber menolak wildcard + credentials
			allowCredentials = false
		}
	}
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ", "),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		ExposeHeaders:    "X-Request-ID, Retry-After",
		AllowCredentials: allowCredentials,
	})
}
