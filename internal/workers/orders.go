package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/forkline-dev/forkline/internal/models"
	"github.com/forkline-dev/forkline/internal/tasks"
)

// advanceDelay is the pause between lifecycle steps.
const advanceDelay = 30 * time.Second

// HandleOrderAdvance moves an order one step along its lifecycle and
// re-enqueues itself until the order is delivered. Terminal orders
// (delivered, cancelled) are a no-op so stale tasks drain harmlessly.
func HandleOrderAdvance(ctx context.Context, t *asynq.Task, client *asynq.Client, db *gorm.DB, logger zerolog.Logger) error {
	var payload tasks.OrderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal order payload: %w", err)
	}

	var order models.Order
	if err := db.Where("id = ?", payload.OrderID).First(&order).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			logger.Warn().Str("order_id", payload.OrderID).Msg("Order vanished before advancing")
			return nil
		}
		return fmt.Errorf("failed to load order: %w", err)
	}

	next, ok := models.NextStatus(order.Status)
	if !ok {
		logger.Debug().
			Str("order_id", order.ID).
			Str("status", order.Status).
			Msg("Order already terminal")
		return nil
	}

	previous := order.Status
	if err := db.Model(&order).Update("status", next).Error; err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	logger.Info().
		Str("order_id", order.ID).
		Str("from", previous).
		Str("to", next).
		Msg("Order advanced")

	if _, hasNext := models.NextStatus(next); !hasNext {
		return nil
	}

	task, err := tasks.NewOrderAdvanceTask(order.ID)
	if err != nil {
		return err
	}
	if _, err := client.Enqueue(task, asynq.ProcessIn(advanceDelay), asynq.Queue(tasks.QueueDefault)); err != nil {
		return fmt.Errorf("failed to enqueue next advance: %w", err)
	}

	return nil
}
