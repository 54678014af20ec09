// internals/middlewares/auth/claims_utils.go
package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	authService "referralku_backend/internals/features/users/auth/service"
)

const (
	LocalsClaims   = "admin_claims"
	LocalsUserID   = "user_id"
	LocalsUsername = "username"
)

var (
	errNoToken       = errors.New("unauthorized - No token provided")
	errInvalidFormat = errors.New("unauthorized - Invalid token format")
)

/* ======== Extractors ======== */

// extractBearerToken: "Authorization: Bearer <jwt>", toleran spasi ganda, case & kutip.
func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" {
		return "", errNoToken
	}

	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", errInvalidFormat
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", errInvalidFormat
	}
	return tok, nil
}

/* ======== Locals ======== */

func storeClaimsToLocals(c *fiber.Ctx, claims *authService.AdminClaims) {
	c.Locals(LocalsClaims, claims)
	c.Locals(LocalsUserID, claims.UserID)
	c.Locals(LocalsUsername, claims.Username)
}

// ClaimsFrom mengambil klaim admin yang disimpan middleware; nil kalau anonymous.
func ClaimsFrom(c *fiber.Ctx) *authService.AdminClaims {
	claims, _ := c.Locals(LocalsClaims).(*authService.AdminClaims)
	return claims
}
