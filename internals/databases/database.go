package database

import (
	"context"
	"fmt"
	"time"

	"referralku_backend/internals/configs"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDB membuka koneksi Postgres. Handle di-inject ke tiap komponen, tidak ada global.
func ConnectDB(cfg configs.Config, log *zap.Logger) (*gorm.DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("🔌 Koneksi ke PostgreSQL...", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger:                 configs.NewGormLogger(log),
		SkipDefaultTransaction: true,
		TranslateError:         true, // unique violation -> gorm.ErrDuplicatedKey
		NowFunc:                func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("gagal konek DB: %w", err)
	}
	log.Info("✅ DB connected.")
	return db, nil
}

func TunePool(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("pool tune err", zap.Error(err))
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// WarmUp mengisi pool di background supaya request pertama tidak bayar handshake.
func WarmUp(db *gorm.DB, log *zap.Logger) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := Ping(ctx, db); err != nil {
			log.Warn("warm-up ping err", zap.Error(err))
		}
	}()
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
