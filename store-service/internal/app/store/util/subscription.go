package util

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisSubscription адаптирует redis.PubSub под канал строк
// для моста уведомлений
type RedisSubscription struct {
	pubsub *redis.PubSub
	out    chan string
}

// NewRedisSubscription оборачивает подписку и запускает
// перекладывание сообщений в строковый канал
func NewRedisSubscription(ctx context.Context, pubsub *redis.PubSub) *RedisSubscription {
	s := &RedisSubscription{
		pubsub: pubsub,
		out:    make(chan string),
	}

	go func() {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-pubsub.Channel():
				if !ok {
					return
				}
				select {
				case s.out <- msg.Payload:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return s
}

func (s *RedisSubscription) Channel() <-chan string {
	return s.out
}

func (s *RedisSubscription) Close() error {
	return s.pubsub.Close()
}
