package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"referralku_backend/internals/features/referrals/codes/model"
)

var (
	ErrCodeNotFound  = errors.New("referral code not found")
	ErrCodeDuplicate = errors.New("referral code already exists")
)

//go:generate mockgen -source=referral_code_repository.go -destination=../../../../mocks/referral_codes/code_store_mock.go -package=referralcodesmock
type CodeStore interface {
	List(ctx context.Context) ([]model.ReferralCodeModel, error)
	Create(ctx context.Context, m *model.ReferralCodeModel) error
	Delete(ctx context.Context, id int64) error
	IncrementUsage(ctx context.Context, code string) (*model.ReferralCodeModel, error)
}

type ReferralCodeRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewReferralCodeRepository(db *gorm.DB) *ReferralCodeRepository {
	return &ReferralCodeRepository{db: db, now: time.Now}
}

var _ CodeStore = (*ReferralCodeRepository)(nil)

func (r *ReferralCodeRepository) List(ctx context.Context) ([]model.ReferralCodeModel, error) {
	var rows []model.ReferralCodeModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create: cek duplikat dulu untuk pesan yang jelas; unique index tetap jadi penjaga terakhir.
func (r *ReferralCodeRepository) Create(ctx context.Context, m *model.ReferralCodeModel) error {
	var exists bool
	if err := r.db.WithContext(ctx).
		Raw(`SELECT EXISTS(SELECT 1 FROM referral_codes WHERE code = ?)`, m.Code).
		Scan(&exists).Error; err != nil {
		return err
	}
	if exists {
		return ErrCodeDuplicate
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrCodeDuplicate
		}
		return fmt.Errorf("insert referral code: %w", err)
	}
	return nil
}

func (r *ReferralCodeRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ReferralCodeModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCodeNotFound
	}
	return nil
}

// IncrementUsage: usage = usage + 1 dalam satu UPDATE (aman untuk klik paralel).
func (r *ReferralCodeRepository) IncrementUsage(ctx context.Context, code string) (*model.ReferralCodeModel, error) {
	res := r.db.WithContext(ctx).Model(&model.ReferralCodeModel{}).
		Where("code = ?", code).
		Updates(map[string]any{
			"usage":      gorm.Expr("usage + 1"),
			"updated_at": r.now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrCodeNotFound
	}

	var m model.ReferralCodeModel
	if err := r.db.WithContext(ctx).Where("code = ?", code).Take(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
