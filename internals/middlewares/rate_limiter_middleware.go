package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "referralku_backend/internals/helpers"
)

// Path yang tidak ikut global limiter: webhook Midtrans datang dari IP yang sama
// dalam burst, health & metrics dipanggil infra.
var limiterSkipPaths = map[string]struct{}{
	"/api/notification":      {},
	"/api/midtrans/callback": {},
	"/health":                {},
	"/metrics":               {},
}

// ipLimiter: fixed window per IP (c.IP sudah ikut ProxyHeader). Retry-After diisi oleh limiter.
func ipLimiter(max int, window time.Duration, message string, skip func(*fiber.Ctx) bool) fiber.Handler {
	return limiter.New(limiter.Config{
		Next:       skip,
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

func GlobalRateLimiter() fiber.Handler {
	return ipLimiter(100, time.Minute, "Terlalu banyak permintaan. Silakan coba lagi nanti.",
		func(c *fiber.Ctx) bool {
			_, skip := limiterSkipPaths[c.Path()]
			return skip
		})
}

// Login lebih ketat: 5x per menit per IP.
func LoginRateLimiter() fiber.Handler {
	return ipLimiter(5, time.Minute, "Terlalu banyak percobaan login. Coba beberapa saat lagi.", nil)
}

func RegisterRateLimiter() fiber.Handler {
	return ipLimiter(3, 5*time.Minute, "Terlalu banyak percobaan pendaftaran. Tunggu beberapa menit ya.", nil)
}
