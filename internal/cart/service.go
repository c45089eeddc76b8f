// Package cart clears a user's cart once their order has committed. This is
// a decoupled side effect; order correctness never depends on it.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/provenly/commerce/internal/kafka"
	"github.com/provenly/commerce/internal/orders"
	"github.com/provenly/commerce/internal/redisx"
)

type Service struct {
	DB          *pgxpool.Pool
	Redis       *redis.Client
	Log         *slog.Logger
	ServiceName string
}

// HandleOrderCreated is installed as the consumer handler for order.created.
func (s *Service) HandleOrderCreated(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderCreated {
		return nil
	}

	// at-least-once delivery; dedup by event id
	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	if seen, _ := redisx.Exists(ctx, s.Redis, dkey); seen {
		return nil
	}

	p, err := kafkax.UnwrapPayload[orders.OrderCreatedPayload](env.Payload)
	if err != nil {
		return err
	}

	ct, err := s.DB.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, p.UserID)
	if err != nil {
		return err
	}

	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	s.Log.Info("cart cleared",
		"user_id", p.UserID,
		"order_number", p.OrderNumber,
		"items_removed", ct.RowsAffected(),
	)
	return nil
}
