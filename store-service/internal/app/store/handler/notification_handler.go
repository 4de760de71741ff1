package handler

import (
	"io"
	"net/http"

	"smarttech/store-service/internal/app/store/notifier"
	"smarttech/store-service/internal/app/store/service"

	"github.com/gin-gonic/gin"
)

// NotificationHandler раздает уведомления клиентам витрины через SSE
// и принимает ручные рассылки от администраторов
type NotificationHandler struct {
	hub      *notifier.Hub
	notifier service.Notifier
}

// NewNotificationHandler создает новый обработчик уведомлений
func NewNotificationHandler(hub *notifier.Hub, n service.Notifier) *NotificationHandler {
	return &NotificationHandler{hub: hub, notifier: n}
}

// Stream обрабатывает GET /notifications/stream
// Держит SSE соединение и отдает каждое уведомление событием message
func (h *NotificationHandler) Stream(c *gin.Context) {
	ch := h.hub.Subscribe()
	defer h.hub.Unsubscribe(ch)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	clientGone := c.Request.Context().Done()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case msg, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("message", msg)
			return true
		}
	})
}

type broadcastRequest struct {
	Message string `json:"message" binding:"required"`
}

// Broadcast обрабатывает POST /notifications (только admin)
// Рассылает произвольное сообщение всем подключенным клиентам
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	var req broadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	if err := h.notifier.Broadcast(c.Request.Context(), req.Message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to broadcast notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification sent"})
}
