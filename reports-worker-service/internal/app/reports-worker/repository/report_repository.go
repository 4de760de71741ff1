package repository

import (
	"context"
	"errors"
	"fmt"

	"smarttech/reports-worker-service/internal/app/reports-worker/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrReportNotFound возвращается, когда ни одного отчёта ещё не сгенерировано
	ErrReportNotFound = errors.New("report not found")
)

type reportRepository struct {
	collection *mongo.Collection
}

// NewReportRepository создает репозиторий отчётов о продажах
func NewReportRepository(db *mongo.Database) ReportRepository {
	return &reportRepository{
		collection: db.Collection("sales_reports"),
	}
}

// Save сохраняет отчёт о продажах
func (r *reportRepository) Save(ctx context.Context, report *entity.SalesReport) error {
	result, err := r.collection.InsertOne(ctx, report)
	if err != nil {
		return fmt.Errorf("failed to save sales report: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		report.ID = oid
	}

	return nil
}

// GetLatest получает последний сгенерированный отчёт
func (r *reportRepository) GetLatest(ctx context.Context) (*entity.SalesReport, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "generated_at", Value: -1}})

	var report entity.SalesReport
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get latest report: %w", err)
	}

	return &report, nil
}
