package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	notifModel "referralku_backend/internals/features/payments/notifications/model"
	codeModel "referralku_backend/internals/features/referrals/codes/model"
	logModel "referralku_backend/internals/features/referrals/logs/model"
	authModel "referralku_backend/internals/features/users/auth/model"
)

// Migrate menyamakan skema tabel dengan model. Hanya menambah kolom/index, tidak pernah drop.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	models := []any{
		&logModel.ReferralLogModel{},
		&codeModel.ReferralCodeModel{},
		&authModel.AdminUserModel{},
		&authModel.TokenBlacklist{},
		&notifModel.PaymentGatewayEventModel{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("auto migrate %T: %w", m, err)
		}
	}
	log.Info("✅ Migrasi skema selesai", zap.Int("tables", len(models)))
	return nil
}
