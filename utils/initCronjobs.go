package utils

import (
	"context"
	"time"

	"kataserver/arena/registry"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CronSweeper menjalankan pembersihan berkala room yang menganggur,
// terpisah dari jalur disconnect per klien.
func CronSweeper(reg *registry.Registry, idleWindow time.Duration, logger *zap.Logger) {
	c := cron.New()

	// Sapu room tanpa aktivitas melebihi idleWindow (setiap 5 menit)
	c.AddFunc("@every 5m", func() {
		logger.Info("Starting idle room sweep")
		swept := reg.SweepIdle(context.Background(), idleWindow)
		logger.Info("Idle room sweep finished", zap.Int("rooms_removed", swept))
	})

	c.Start()
}
