package entity

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Типы событий заказов, публикуемых Store Service в топик order_events
const (
	EventTypeOrderCreated = "ORDER_CREATED"
	EventTypeOrderUpdated = "ORDER_UPDATED"
)

// OrderEvent представляет событие заказа из Kafka
// Формат совпадает с событием, которое публикует Store Service
type OrderEvent struct {
	EventType  string    `json:"event_type"` // ORDER_CREATED, ORDER_UPDATED
	OrderID    uuid.UUID `json:"order_id"`
	UserID     uuid.UUID `json:"user_id"`
	Total      float64   `json:"total"`
	Status     string    `json:"status"`
	ItemsCount int       `json:"items_count"`
	Timestamp  time.Time `json:"timestamp"`
}

// ArchivedOrderEvent - событие заказа, сохранённое в архиве MongoDB
// UUID хранятся строками, чтобы по ним работали обычные индексы и фильтры
type ArchivedOrderEvent struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventType  string             `bson:"event_type" json:"event_type"`
	OrderID    string             `bson:"order_id" json:"order_id"`
	UserID     string             `bson:"user_id" json:"user_id"`
	Total      float64            `bson:"total" json:"total"`
	Status     string             `bson:"status" json:"status"`
	ItemsCount int                `bson:"items_count" json:"items_count"`
	OccurredAt time.Time          `bson:"occurred_at" json:"occurred_at"`
	ArchivedAt time.Time          `bson:"archived_at" json:"archived_at"`
}

// SalesSummary - результат агрегации архива за период
type SalesSummary struct {
	OrdersCount int64   `bson:"orders_count" json:"orders_count"`
	TotalAmount float64 `bson:"total_amount" json:"total_amount"`
}

// SalesReport - отчёт о продажах за период
type SalesReport struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PeriodStart        time.Time          `bson:"period_start" json:"period_start"`
	PeriodEnd          time.Time          `bson:"period_end" json:"period_end"`
	OrdersCount        int64              `bson:"orders_count" json:"orders_count"`
	TotalAmount        float64            `bson:"total_amount" json:"total_amount"`
	AverageOrderAmount float64            `bson:"average_order_amount" json:"average_order_amount"`
	GeneratedAt        time.Time          `bson:"generated_at" json:"generated_at"`
}
