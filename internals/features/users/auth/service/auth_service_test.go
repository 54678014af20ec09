package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"referralku_backend/internals/features/users/auth/dto"
	authModel "referralku_backend/internals/features/users/auth/model"
	authRepo "referralku_backend/internals/features/users/auth/repository"
	"referralku_backend/internals/features/users/auth/service"
	authMock "referralku_backend/internals/mocks/auth"
)

const secret = "test-secret"

func setup(t *testing.T) (*service.AuthService, *authMock.MockAuthStore) {
	t.Helper()
	store := authMock.NewMockAuthStore(gomock.NewController(t))
	return service.NewAuthService(store, service.NewTokenService(secret, time.Hour), nil), store
}

func hashed(t *testing.T, plain string) string {
	t.Helper()
	h, err := service.HashPassword(plain)
	require.NoError(t, err)
	return h
}

// ======================= TOKEN =======================

func TestTokenService_IssueParse(t *testing.T) {
	ts := service.NewTokenService(secret, time.Hour)
	raw, issued, err := ts.Issue(authModel.AdminUserModel{ID: 3, Username: "admin"})
	require.NoError(t, err)

	claims, err := ts.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(3), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, issued.JTI(), claims.JTI())
	assert.NotEmpty(t, claims.JTI())
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt(), 5*time.Second)
}

func TestTokenService_UniqueJTI(t *testing.T) {
	ts := service.NewTokenService(secret, time.Hour)
	_, a, err := ts.Issue(authModel.AdminUserModel{ID: 1, Username: "a"})
	require.NoError(t, err)
	_, b, err := ts.Issue(authModel.AdminUserModel{ID: 1, Username: "a"})
	require.NoError(t, err)
	assert.NotEqual(t, a.JTI(), b.JTI())
}

func TestTokenService_ParseRejects(t *testing.T) {
	ts := service.NewTokenService(secret, time.Hour)

	t.Run("wrong_secret", func(t *testing.T) {
		other := service.NewTokenService("other", time.Hour)
		raw, _, err := other.Issue(authModel.AdminUserModel{ID: 1, Username: "a"})
		require.NoError(t, err)
		_, err = ts.Parse(raw)
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		claims := &service.AdminClaims{
			UserID:   1,
			Username: "a",
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        "jti-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		_, err = ts.Parse(raw)
		assert.ErrorIs(t, err, service.ErrTokenExpired)
	})

	t.Run("alg_none", func(t *testing.T) {
		claims := &service.AdminClaims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{ID: "x"}}
		raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = ts.Parse(raw)
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ts.Parse("not.a.jwt")
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})
}

// ======================= LOGIN =======================

func TestAuthService_Login(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		svc, store := setup(t)
		store.EXPECT().FindAdminByUsername(gomock.Any(), "admin").
			Return(&authModel.AdminUserModel{ID: 1, Username: "admin", Password: hashed(t, "rahasia")}, nil).Times(1)

		res, err := svc.Login(context.Background(), dto.LoginRequest{Username: " admin ", Password: "rahasia"})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, int64(1), res.User.ID)

		claims, err := svc.Tokens().Parse(res.Token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Username)
	})

	t.Run("wrong_password", func(t *testing.T) {
		svc, store := setup(t)
		store.EXPECT().FindAdminByUsername(gomock.Any(), "admin").
			Return(&authModel.AdminUserModel{ID: 1, Username: "admin", Password: hashed(t, "rahasia")}, nil).Times(1)

		_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "salah"})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown_user", func(t *testing.T) {
		svc, store := setup(t)
		store.EXPECT().FindAdminByUsername(gomock.Any(), "ghost").Return(nil, authRepo.ErrAdminNotFound).Times(1)

		_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ghost", Password: "x"})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

// ======================= REGISTER =======================

func TestAuthService_RegisterAdmin(t *testing.T) {
	req := dto.RegisterAdminRequest{Username: "baru", Password: "rahasia"}

	t.Run("bootstrap_open_when_empty", func(t *testing.T) {
		svc, store := setup(t)
		store.EXPECT().CountAdmins(gomock.Any()).Return(int64(0), nil).Times(1)
		store.EXPECT().CreateAdmin(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *authModel.AdminUserModel) error {
				assert.Equal(t, "baru", u.Username)
				assert.NoError(t, service.CheckPassword(u.Password, "rahasia"))
				u.ID = 1
				return nil
			}).Times(1)

		admin, err := svc.RegisterAdmin(context.Background(), req, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(1), admin.ID)
	})

	t.Run("closed_without_token", func(t *testing.T) {
		svc, store := setup(t)
		store.EXPECT().CountAdmins(gomock.Any()).Return(int64(1), nil).Times(1)
		store.EXPECT().CreateAdmin(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.RegisterAdmin(context.Background(), req, nil)
		assert.ErrorIs(t, err, service.ErrRegistrationClosed)
	})

	t.Run("admin_token_skips_count", func(t *testing.T) {
		svc, store := setup(t)
		store.EXPECT().CountAdmins(gomock.Any()).Times(0)
		store.EXPECT().CreateAdmin(gomock.Any(), gomock.Any()).Return(nil).Times(1)

		_, err := svc.RegisterAdmin(context.Background(), req, &service.AdminClaims{UserID: 1, Username: "admin"})
		assert.NoError(t, err)
	})

	t.Run("duplicate", func(t *testing.T) {
		svc, store := setup(t)
		store.EXPECT().CreateAdmin(gomock.Any(), gomock.Any()).Return(authRepo.ErrUsernameTaken).Times(1)

		_, err := svc.RegisterAdmin(context.Background(), req, &service.AdminClaims{UserID: 1})
		assert.ErrorIs(t, err, authRepo.ErrUsernameTaken)
	})
}

// ======================= LOGOUT =======================

func TestAuthService_Logout(t *testing.T) {
	svc, store := setup(t)
	_, claims, err := svc.Tokens().Issue(authModel.AdminUserModel{ID: 1, Username: "admin"})
	require.NoError(t, err)

	store.EXPECT().BlacklistJTI(gomock.Any(), claims.JTI(), claims.ExpiresAt()).Return(nil).Times(1)
	assert.NoError(t, svc.Logout(context.Background(), claims))

	assert.ErrorIs(t, svc.Logout(context.Background(), nil), service.ErrInvalidToken)
}
