package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"manutencao_xpto/internal/domain/workflow"
	"manutencao_xpto/internal/infrastructure/config"
	"manutencao_xpto/internal/usecase/interfaces"

	"github.com/go-redis/redis/v8"
)

const defaultChannel = "workflow.transitions"

// RedisNotifier publishes committed transitions to a redis channel for
// downstream delivery (mail, push, whatever subscribes). It is a
// fire-and-forget collaborator: the workflow never waits on a subscriber.

type RedisNotifier struct {
	rdb     *redis.Client
	channel string
}

var _ interfaces.ITransitionNotifier = (*RedisNotifier)(nil)

func NewRedisNotifier(cfg config.RedisConfig, channel string) *RedisNotifier {
	if channel == "" {
		channel = defaultChannel
	}
	return &RedisNotifier{
		rdb: redis.NewClient(&redis.Options{
			Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Username:    cfg.User,
			Password:    cfg.Password,
			DialTimeout: cfg.DialTimeout,
			ReadTimeout: cfg.ReadTimeout,
		}),
		channel: channel,
	}
}

type transitionMessage struct {
	Kind       string    `json:"kind"`
	EntityID   string    `json:"entity_id"`
	Event      string    `json:"event"`
	NewStatus  string    `json:"new_status"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (n *RedisNotifier) TransitionCommitted(ctx context.Context, kind workflow.Kind, entityID string, event workflow.Event, newStatus string) error {
	payload, err := json.Marshal(transitionMessage{
		Kind:       string(kind),
		EntityID:   entityID,
		Event:      string(event),
		NewStatus:  newStatus,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return n.rdb.Publish(ctx, n.channel, payload).Err()
}
