// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"referralku_backend/internals/features/users/auth/controller"
	"referralku_backend/internals/features/users/auth/service"
	rateLimiter "referralku_backend/internals/middlewares"
	authMw "referralku_backend/internals/middlewares/auth"
)

// Base: /api/auth
func AuthRoutes(api fiber.Router, svc *service.AuthService, log *zap.Logger) {
	authController := controller.NewAuthController(svc, log)

	baseAuth := api.Group("/auth")

	// 🔓 Public
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/register-admin",
		rateLimiter.RegisterRateLimiter(),
		authMw.OptionalAuthMiddleware(svc.Tokens(), svc, log),
		authController.RegisterAdmin,
	)

	// 🔒 Protected
	protected := baseAuth.Group("", authMw.AuthMiddleware(svc.Tokens(), svc, log))
	protected.Post("/logout", authController.Logout)
	protected.Get("/me", authController.Me)
}
