// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	authService "referralku_backend/internals/features/users/auth/service"
	helper "referralku_backend/internals/helpers"
)

type TokenVerifier interface {
	Parse(raw string) (*authService.AdminClaims, error)
}

type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthMiddleware mewajibkan token admin yang valid dan belum di-logout.
func AuthMiddleware(tokens TokenVerifier, revoked RevocationChecker, log *zap.Logger) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("auth")

	return func(c *fiber.Ctx) error {
		raw, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Access token diperlukan")
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			log.Debug("token rejected", zap.String("path", c.Path()), zap.Error(err))
			if errors.Is(err, authService.ErrTokenExpired) {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Token sudah expired")
			}
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak valid")
		}

		isRevoked, err := revoked.IsRevoked(c.UserContext(), claims.JTI())
		if err != nil {
			log.Error("[ERROR] DB error saat cek blacklist", zap.Error(err))
			return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
		}
		if isRevoked {
			log.Warn("token blacklisted", zap.String("jti", claims.JTI()))
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
		}

		storeClaimsToLocals(c, claims)
		return c.Next()
	}
}
