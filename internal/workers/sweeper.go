package workers

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/forkline-dev/forkline/internal/models"
)

const (
	// sweepSchedule runs the sweep every ten minutes.
	sweepSchedule = "*/10 * * * *"
	// stalePendingAge is how long an order may sit in pending before the
	// sweeper gives up on it. Normally the advance task confirms an order
	// within a minute; pending this old means the enqueue was lost.
	stalePendingAge = 2 * time.Hour
)

// StartOrderSweeper schedules a periodic sweep that cancels orders stuck in
// pending. Returns the cron runner so the caller can stop it on shutdown.
func StartOrderSweeper(db *gorm.DB, logger zerolog.Logger) *cron.Cron {
	runner := cron.New()

	_, err := runner.AddFunc(sweepSchedule, func() {
		sweepStaleOrders(db, logger)
	})
	if err != nil {
		// The schedule is a constant; failing to parse it is a programming error
		logger.Error().Err(err).Msg("Failed to schedule order sweeper")
		return runner
	}

	runner.Start()
	logger.Info().Str("schedule", sweepSchedule).Msg("Order sweeper started")
	return runner
}

func sweepStaleOrders(db *gorm.DB, logger zerolog.Logger) {
	cutoff := time.Now().Add(-stalePendingAge)

	result := db.Model(&models.Order{}).
		Where("status = ? AND created_at < ?", models.OrderPending, cutoff).
		Update("status", models.OrderCancelled)
	if result.Error != nil {
		logger.Error().Err(result.Error).Msg("Failed to sweep stale orders")
		return
	}

	if result.RowsAffected > 0 {
		logger.Warn().
			Int64("orders", result.RowsAffected).
			Time("cutoff", cutoff).
			Msg("Cancelled stale pending orders")
	}
}
