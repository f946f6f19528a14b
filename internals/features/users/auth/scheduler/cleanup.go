package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

const defaultCleanupSpec = "@every 6h"

// StartBlacklistCleanupScheduler menjadwalkan purge token_blacklist yang sudah expired.
// Spec cron dari TOKEN_BLACKLIST_CRON. Caller wajib Stop() saat shutdown.
func StartBlacklistCleanupScheduler(db *gorm.DB) (*cron.Cron, error) {
	spec := configs.GetEnv("TOKEN_BLACKLIST_CRON", defaultCleanupSpec)

	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))
	if _, err := c.AddFunc(spec, func() { RunBlacklistCleanup(db) }); err != nil {
		return nil, err
	}
	c.Start()
	log.Printf("[CLEANUP] scheduler token_blacklist aktif (%s)", spec)
	return c, nil
}

// RunBlacklistCleanup: satu putaran purge.
func RunBlacklistCleanup(db *gorm.DB) int64 {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := helperAuth.PurgeExpired(ctx, db)
	if err != nil {
		log.Printf("[CLEANUP ERROR] Gagal hapus token: %v", err)
		return 0
	}
	if n > 0 {
		log.Printf("[CLEANUP] %d token kadaluarsa dihapus", n)
	} else {
		log.Println("[CLEANUP] Tidak ada token yang memenuhi syarat dihapus")
	}
	return n
}
