package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Task type constants
const (
	// TypeOrderAdvance moves an order one step along its lifecycle
	TypeOrderAdvance = "order:advance"
)

// Queue names
const (
	QueueDefault = "default"
	QueueLow     = "low"
)

// OrderPayload is the payload for order lifecycle tasks
type OrderPayload struct {
	OrderID string `json:"order_id"`
}

// NewOrderAdvanceTask creates a task that advances an order's status
func NewOrderAdvanceTask(orderID string) (*asynq.Task, error) {
	payload, err := json.Marshal(OrderPayload{OrderID: orderID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order payload: %w", err)
	}
	return asynq.NewTask(TypeOrderAdvance, payload), nil
}
