package notifier

import (
	"context"
	"fmt"

	"smarttech/pkg/logger"
)

const notificationsChannel = "notifications:broadcast"

// Publisher публикует сообщение во внешний канал (Redis)
type Publisher interface {
	Publish(ctx context.Context, channel, message string) error
}

// Subscriber доставляет сообщения внешнего канала
type Subscriber interface {
	Channel() <-chan string
	Close() error
}

// Bridge связывает локальный Hub с Redis pub/sub,
// чтобы уведомление, отправленное одним инстансом,
// дошло до подписчиков всех остальных
type Bridge struct {
	hub       *Hub
	publisher Publisher
}

// NewBridge создает мост между хабом и Redis
func NewBridge(hub *Hub, publisher Publisher) *Bridge {
	return &Bridge{hub: hub, publisher: publisher}
}

// Broadcast публикует уведомление в Redis канал
// Локальные подписчики получат его через Listen, как и остальные инстансы
func (b *Bridge) Broadcast(ctx context.Context, message string) error {
	if err := b.publisher.Publish(ctx, notificationsChannel, message); err != nil {
		return fmt.Errorf("failed to broadcast notification: %w", err)
	}
	return nil
}

// Listen читает сообщения из внешней подписки и раздает их хабу
// Блокируется до закрытия подписки или отмены контекста
func (b *Bridge) Listen(ctx context.Context, sub Subscriber) {
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				logger.Warn().Msg("notification subscription closed")
				return
			}
			b.hub.Broadcast(msg)
		}
	}
}

// NotificationsChannel возвращает имя Redis канала уведомлений
func NotificationsChannel() string {
	return notificationsChannel
}
