package repository

import (
	"context"
	"fmt"
	"time"

	"smarttech/pkg/logger"
	"smarttech/reports-worker-service/internal/app/reports-worker/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type orderEventRepository struct {
	collection *mongo.Collection
}

// NewOrderEventRepository создает репозиторий архива событий заказов
// Автоматически создает индексы по order_id и occurred_at
func NewOrderEventRepository(db *mongo.Database) OrderEventRepository {
	collection := db.Collection("order_events")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order_id", Value: 1}},
			Options: options.Index().SetName("order_id_idx"),
		},
		{
			// Агрегация отчётов фильтрует по типу события и периоду
			Keys:    bson.D{{Key: "event_type", Value: 1}, {Key: "occurred_at", Value: 1}},
			Options: options.Index().SetName("event_type_occurred_at_idx"),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		// Логируем ошибку, но не прерываем работу - индексы могут уже существовать
		logger.Warn().Err(err).Msg("failed to create indexes on order_events")
	}

	return &orderEventRepository{collection: collection}
}

// Insert сохраняет событие заказа в архив
func (r *orderEventRepository) Insert(ctx context.Context, event *entity.ArchivedOrderEvent) error {
	event.ArchivedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return fmt.Errorf("failed to archive order event: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		event.ID = oid
	}

	return nil
}

// AggregateSales считает количество заказов и суммарную выручку
// по событиям ORDER_CREATED за период [from, to)
func (r *orderEventRepository) AggregateSales(ctx context.Context, from, to time.Time) (*entity.SalesSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"event_type": entity.EventTypeOrderCreated,
			"occurred_at": bson.M{
				"$gte": from,
				"$lt":  to,
			},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"orders_count": bson.M{"$sum": 1},
			"total_amount": bson.M{"$sum": "$total"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales: %w", err)
	}
	defer cursor.Close(ctx)

	var results []entity.SalesSummary
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode sales summary: %w", err)
	}

	// Нет событий за период - пустая, но валидная сводка
	if len(results) == 0 {
		return &entity.SalesSummary{}, nil
	}

	return &results[0], nil
}
