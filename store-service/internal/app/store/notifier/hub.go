package notifier

import (
	"sync"

	"smarttech/pkg/metrics"
)

const subscriberBuffer = 16

// Hub раздает текстовые уведомления всем подписчикам внутри процесса
// Broadcast никогда не блокируется: подписчик, не успевающий читать,
// теряет сообщение, а не тормозит остальных
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan string]struct{}
	closed      bool
}

// NewHub создает новый хаб уведомлений
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[chan string]struct{}),
	}
}

// Subscribe регистрирует нового подписчика и возвращает канал сообщений
// Канал закрывается при Unsubscribe или Close
func (h *Hub) Subscribe() chan string {
	ch := make(chan string, subscriberBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(ch)
		return ch
	}

	h.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe удаляет подписчика и закрывает его канал
func (h *Hub) Unsubscribe(ch chan string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subscribers[ch]; !ok {
		return
	}

	delete(h.subscribers, ch)
	close(ch)
}

// Broadcast доставляет сообщение всем текущим подписчикам
// Переполненный буфер подписчика означает потерю сообщения для него
func (h *Hub) Broadcast(message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}

	for ch := range h.subscribers {
		select {
		case ch <- message:
			metrics.NotificationsBroadcast.Inc()
		default:
			metrics.NotificationsDropped.Inc()
		}
	}
}

// SubscriberCount возвращает число активных подписчиков
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Close закрывает хаб и каналы всех подписчиков
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}

	h.closed = true
	for ch := range h.subscribers {
		delete(h.subscribers, ch)
		close(ch)
	}
}
