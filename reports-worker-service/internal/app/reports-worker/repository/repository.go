package repository

import (
	"context"
	"time"

	"smarttech/reports-worker-service/internal/app/reports-worker/entity"
)

// OrderEventRepository интерфейс архива событий заказов в MongoDB
type OrderEventRepository interface {
	// Insert сохраняет событие заказа в архив
	Insert(ctx context.Context, event *entity.ArchivedOrderEvent) error

	// AggregateSales агрегирует события ORDER_CREATED за период
	AggregateSales(ctx context.Context, from, to time.Time) (*entity.SalesSummary, error)
}

// ReportRepository интерфейс хранилища готовых отчётов в MongoDB
type ReportRepository interface {
	// Save сохраняет отчёт о продажах
	Save(ctx context.Context, report *entity.SalesReport) error

	// GetLatest получает последний сгенерированный отчёт
	GetLatest(ctx context.Context) (*entity.SalesReport, error)
}
