// internals/features/users/auth/service/auth_service.go
package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"referralku_backend/internals/features/users/auth/dto"
	authModel "referralku_backend/internals/features/users/auth/model"
	authRepo "referralku_backend/internals/features/users/auth/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrRegistrationClosed: sudah ada admin, register wajib pakai token admin.
	ErrRegistrationClosed = errors.New("admin registration requires an admin token")
)

type AuthService struct {
	store  authRepo.AuthStore
	tokens *TokenService
	log    *zap.Logger
}

func NewAuthService(store authRepo.AuthStore, tokens *TokenService, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{store: store, tokens: tokens, log: log.Named("auth")}
}

// ========================== LOGIN ==========================
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)

	u, err := s.store.FindAdminByUsername(ctx, username)
	if errors.Is(err, authRepo.ErrAdminNotFound) {
		s.log.Warn("login: user tidak ditemukan", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := CheckPassword(u.Password, req.Password); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.log.Warn("login: password tidak cocok", zap.String("username", username))
		}
		return nil, err
	}

	token, claims, err := s.tokens.Issue(*u)
	if err != nil {
		return nil, err
	}
	s.log.Info("admin login", zap.Int64("id", u.ID), zap.String("username", u.Username))

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt(),
		User:      dto.AdminIdentity{ID: u.ID, Username: u.Username},
	}, nil
}

// ========================== REGISTER ADMIN ==========================
// Tanpa caller hanya boleh saat tabel admin masih kosong (bootstrap admin pertama).
func (s *AuthService) RegisterAdmin(ctx context.Context, req dto.RegisterAdminRequest, caller *AdminClaims) (*dto.AdminIdentity, error) {
	if caller == nil {
		n, err := s.store.CountAdmins(ctx)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, ErrRegistrationClosed
		}
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u := authModel.AdminUserModel{Username: strings.TrimSpace(req.Username), Password: hash}
	if err := s.store.CreateAdmin(ctx, &u); err != nil {
		return nil, err
	}

	by := "bootstrap"
	if caller != nil {
		by = caller.Username
	}
	s.log.Info("admin registered", zap.String("username", u.Username), zap.String("by", by))
	return &dto.AdminIdentity{ID: u.ID, Username: u.Username}, nil
}

// ========================== LOGOUT ==========================
// Logout mem-blacklist jti sampai token kadaluarsa.
func (s *AuthService) Logout(ctx context.Context, claims *AdminClaims) error {
	if claims == nil || claims.JTI() == "" {
		return ErrInvalidToken
	}
	if err := s.store.BlacklistJTI(ctx, claims.JTI(), claims.ExpiresAt()); err != nil {
		return err
	}
	s.log.Info("admin logout", zap.Int64("id", claims.UserID), zap.String("jti", claims.JTI()))
	return nil
}

// IsRevoked dipakai middleware untuk menolak token yang sudah logout.
func (s *AuthService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return s.store.IsBlacklisted(ctx, jti)
}

func (s *AuthService) Tokens() *TokenService { return s.tokens }
