package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	authRepo "referralku_backend/internals/features/users/auth/repository"
)

// StartBlacklistCleanupScheduler menghapus jti yang sudah lewat expired_at + ttl.
// Berhenti saat ctx dibatalkan.
func StartBlacklistCleanupScheduler(ctx context.Context, store authRepo.AuthStore, ttlDays int, interval time.Duration, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	if ttlDays < 0 {
		ttlDays = 0
	}
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			RunBlacklistCleanup(ctx, store, ttlDays, time.Now(), log)

			select {
			case <-ctx.Done():
				log.Info("[CLEANUP] scheduler berhenti")
				return
			case <-ticker.C:
			}
		}
	}()
}

// RunBlacklistCleanup satu putaran pembersihan; dipisah supaya bisa dites.
func RunBlacklistCleanup(ctx context.Context, store authRepo.AuthStore, ttlDays int, now time.Time, log *zap.Logger) int64 {
	log.Info("[CLEANUP] Menjalankan pembersihan token_blacklist...")

	deleteBefore := now.Add(-time.Duration(ttlDays) * 24 * time.Hour)
	n, err := store.CleanupExpiredBlacklist(ctx, deleteBefore)
	if err != nil {
		log.Error("[CLEANUP ERROR] Gagal hapus token", zap.Error(err))
		return 0
	}
	if n > 0 {
		log.Info("[CLEANUP] token kadaluarsa dihapus", zap.Int64("count", n))
	} else {
		log.Info("[CLEANUP] Tidak ada token yang memenuhi syarat dihapus")
	}
	return n
}
