package chat

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const redisChannel = "chat:events"

// RedisBroker fans chat events out over redis pub/sub so every server
// instance sees every message.
type RedisBroker struct {
	rdb *redis.Client
}

func NewRedisBroker(rdb *redis.Client) *RedisBroker {
	return &RedisBroker{rdb: rdb}
}

func (b *RedisBroker) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, redisChannel, payload).Err()
}

func (b *RedisBroker) Subscribe(ctx context.Context, fn Handler) (func(), error) {
	pubsub := b.rdb.Subscribe(ctx, redisChannel)

	// confirm the subscription before events can be missed
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	go func() {
		for m := range pubsub.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(m.Payload), &ev); err != nil {
				continue
			}
			fn(ev)
		}
	}()

	return func() { _ = pubsub.Close() }, nil
}
