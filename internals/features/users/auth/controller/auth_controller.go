package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"referralku_backend/internals/features/users/auth/dto"
	authRepo "referralku_backend/internals/features/users/auth/repository"
	"referralku_backend/internals/features/users/auth/service"
	helper "referralku_backend/internals/helpers"
	authMw "referralku_backend/internals/middlewares/auth"
)

type AuthController struct {
	Svc *service.AuthService
	Log *zap.Logger
}

func NewAuthController(svc *service.AuthService, log *zap.Logger) *AuthController {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthController{Svc: svc, Log: log.Named("auth")}
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := helper.Validator().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Username dan password wajib diisi")
	}

	res, err := ac.Svc.Login(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Username atau password salah")
		}
		ac.Log.Error("[ERROR] login", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server error")
	}
	return helper.JsonOK(c, "Login berhasil", res)
}

// POST /api/auth/register-admin
func (ac *AuthController) RegisterAdmin(c *fiber.Ctx) error {
	var req dto.RegisterAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := helper.Validator().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	admin, err := ac.Svc.RegisterAdmin(c.UserContext(), req, authMw.ClaimsFrom(c))
	switch {
	case errors.Is(err, service.ErrRegistrationClosed):
		return helper.JsonError(c, fiber.StatusUnauthorized, "Access token admin diperlukan")
	case errors.Is(err, authRepo.ErrUsernameTaken):
		return helper.JsonError(c, fiber.StatusConflict, "Username sudah digunakan")
	case err != nil:
		ac.Log.Error("[ERROR] register admin", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan admin")
	}
	return helper.JsonCreated(c, "Admin berhasil didaftarkan", admin)
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	claims := authMw.ClaimsFrom(c)
	if claims == nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if err := ac.Svc.Logout(c.UserContext(), claims); err != nil {
		ac.Log.Error("[ERROR] logout", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal logout")
	}
	return helper.JsonOK(c, "Logout berhasil", nil)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	claims := authMw.ClaimsFrom(c)
	if claims == nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"user":       dto.AdminIdentity{ID: claims.UserID, Username: claims.Username},
		"expires_at": claims.ExpiresAt(),
	})
}
