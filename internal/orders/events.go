package orders

import (
	"encoding/json"
	"time"
)

const EventOrderCreated = "OrderCreated"

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// OrderCreatedPayload is published after a successful commit. Consumers use
// it for decoupled side effects (cart clearing); the order itself is already
// durable.
type OrderCreatedPayload struct {
	OrderID     int64   `json:"order_id"`
	OrderNumber string  `json:"order_number"`
	UserID      int64   `json:"user_id"`
	TotalAmount float64 `json:"total_amount"`
}
