package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OptionalAuthMiddleware: token valid -> klaim disimpan; tidak ada/invalid -> lanjut anonymous.
func OptionalAuthMiddleware(tokens TokenVerifier, revoked RevocationChecker, log *zap.Logger) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("auth")

	return func(c *fiber.Ctx) error {
		raw, err := extractBearerToken(c)
		if err != nil {
			return c.Next()
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			log.Debug("optional auth: token diabaikan", zap.Error(err))
			return c.Next()
		}
		if isRevoked, err := revoked.IsRevoked(c.UserContext(), claims.JTI()); err != nil || isRevoked {
			return c.Next()
		}

		storeClaimsToLocals(c, claims)
		return c.Next()
	}
}
