// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "referralku_backend/internals/features/users/auth/model"
)

var (
	ErrAdminNotFound = errors.New("admin user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

//go:generate mockgen -source=auth_repository.go -destination=../../../../mocks/auth/auth_store_mock.go -package=authmock
type AuthStore interface {
	FindAdminByUsername(ctx context.Context, username string) (*authModel.AdminUserModel, error)
	CountAdmins(ctx context.Context) (int64, error)
	CreateAdmin(ctx context.Context, u *authModel.AdminUserModel) error

	BlacklistJTI(ctx context.Context, jti string, expiredAt time.Time) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
	CleanupExpiredBlacklist(ctx context.Context, before time.Time) (int64, error)
}

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

var _ AuthStore = (*AuthRepository)(nil)

/* ====================== ADMIN USER ====================== */

func (r *AuthRepository) FindAdminByUsername(ctx context.Context, username string) (*authModel.AdminUserModel, error) {
	var u authModel.AdminUserModel
	if err := r.db.WithContext(ctx).Where("username = ?", username).Take(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *AuthRepository) CountAdmins(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&authModel.AdminUserModel{}).Count(&n).Error
	return n, err
}

func (r *AuthRepository) CreateAdmin(ctx context.Context, u *authModel.AdminUserModel) error {
	var taken bool
	if err := r.db.WithContext(ctx).
		Raw(`SELECT EXISTS(SELECT 1 FROM admin_users WHERE username = ?)`, u.Username).
		Scan(&taken).Error; err != nil {
		return err
	}
	if taken {
		return ErrUsernameTaken
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("insert admin user: %w", err)
	}
	return nil
}

/* ====================== BLACKLIST TOKEN ====================== */

// BlacklistJTI idempotent: logout dua kali dengan token sama tidak error.
func (r *AuthRepository) BlacklistJTI(ctx context.Context, jti string, expiredAt time.Time) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "jti"}}, DoNothing: true}).
		Create(&authModel.TokenBlacklist{JTI: jti, ExpiredAt: expiredAt.UTC()}).Error
}

func (r *AuthRepository) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	var exists bool
	err := r.db.WithContext(ctx).
		Raw(`SELECT EXISTS(SELECT 1 FROM token_blacklist WHERE jti = ?)`, jti).
		Scan(&exists).Error
	return exists, err
}

func (r *AuthRepository) CleanupExpiredBlacklist(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expired_at < ?", before.UTC()).
		Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
