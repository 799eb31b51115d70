package watch

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "watch:"

// RedisNotifier implements Notifier over Redis pub/sub so change signals
// reach every running instance, not just the one that wrote.
type RedisNotifier struct {
	rdb *redis.Client
}

func NewRedisNotifier(rdb *redis.Client) *RedisNotifier {
	return &RedisNotifier{rdb: rdb}
}

func (n *RedisNotifier) Notify(ctx context.Context, collection string) error {
	return n.rdb.Publish(ctx, channelPrefix+collection, "1").Err()
}

func (n *RedisNotifier) Listen(ctx context.Context, collection string) (<-chan struct{}, error) {
	ps := n.rdb.Subscribe(ctx, channelPrefix+collection)
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return nil, err
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer ps.Close()
		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out, nil
}
