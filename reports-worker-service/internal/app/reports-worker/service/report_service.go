package service

import (
	"context"
	"fmt"
	"time"

	"smarttech/pkg/logger"
	"smarttech/pkg/metrics"
	"smarttech/reports-worker-service/internal/app/reports-worker/entity"
	"smarttech/reports-worker-service/internal/app/reports-worker/repository"

	"github.com/google/uuid"
)

// ReportServiceInterface определяет интерфейс сервиса отчётов
type ReportServiceInterface interface {
	// ProcessOrderEvent архивирует событие заказа из Kafka
	ProcessOrderEvent(ctx context.Context, event *entity.OrderEvent) error

	// GenerateSalesReport строит и сохраняет отчёт о продажах за период
	GenerateSalesReport(ctx context.Context, from, to time.Time) (*entity.SalesReport, error)

	// GenerateDailyReport строит отчёт за прошедшие сутки
	GenerateDailyReport(ctx context.Context) (*entity.SalesReport, error)
}

// ReportService архивирует события заказов и строит отчёты о продажах
type ReportService struct {
	eventRepo  repository.OrderEventRepository
	reportRepo repository.ReportRepository
}

// NewReportService создает новый сервис отчётов
func NewReportService(
	eventRepo repository.OrderEventRepository,
	reportRepo repository.ReportRepository,
) *ReportService {
	return &ReportService{
		eventRepo:  eventRepo,
		reportRepo: reportRepo,
	}
}

// ProcessOrderEvent архивирует событие заказа из Kafka
// Неизвестные типы событий пропускаются без ошибки, чтобы не блокировать
// обработку топика при появлении новых типов событий
func (s *ReportService) ProcessOrderEvent(ctx context.Context, event *entity.OrderEvent) error {
	if event.EventType != entity.EventTypeOrderCreated && event.EventType != entity.EventTypeOrderUpdated {
		logger.Warn().
			Str("event_type", event.EventType).
			Str("order_id", event.OrderID.String()).
			Msg("Unknown event type, skipping")
		return nil
	}

	if event.OrderID == uuid.Nil {
		return fmt.Errorf("invalid order event: missing order ID")
	}

	occurredAt := event.Timestamp
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	archived := &entity.ArchivedOrderEvent{
		EventType:  event.EventType,
		OrderID:    event.OrderID.String(),
		UserID:     event.UserID.String(),
		Total:      event.Total,
		Status:     event.Status,
		ItemsCount: event.ItemsCount,
		OccurredAt: occurredAt,
	}

	if err := s.eventRepo.Insert(ctx, archived); err != nil {
		metrics.WorkerEventsArchived.WithLabelValues("failed").Inc()
		return fmt.Errorf("failed to archive order event: %w", err)
	}

	metrics.WorkerEventsArchived.WithLabelValues("success").Inc()

	logger.Info().
		Str("event_type", event.EventType).
		Str("order_id", event.OrderID.String()).
		Float64("total", event.Total).
		Msg("Order event archived")

	return nil
}

// GenerateSalesReport строит и сохраняет отчёт о продажах за период [from, to)
func (s *ReportService) GenerateSalesReport(ctx context.Context, from, to time.Time) (*entity.SalesReport, error) {
	summary, err := s.eventRepo.AggregateSales(ctx, from, to)
	if err != nil {
		metrics.WorkerReportsGenerated.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("failed to aggregate sales: %w", err)
	}

	report := &entity.SalesReport{
		PeriodStart: from,
		PeriodEnd:   to,
		OrdersCount: summary.OrdersCount,
		TotalAmount: summary.TotalAmount,
		GeneratedAt: time.Now(),
	}
	if summary.OrdersCount > 0 {
		report.AverageOrderAmount = summary.TotalAmount / float64(summary.OrdersCount)
	}

	if err := s.reportRepo.Save(ctx, report); err != nil {
		metrics.WorkerReportsGenerated.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("failed to save sales report: %w", err)
	}

	metrics.WorkerReportsGenerated.WithLabelValues("success").Inc()

	logger.Info().
		Time("period_start", from).
		Time("period_end", to).
		Int64("orders_count", report.OrdersCount).
		Float64("total_amount", report.TotalAmount).
		Msg("Sales report generated")

	return report, nil
}

// GenerateDailyReport строит отчёт за прошедшие сутки
// Период выравнивается по границам календарного дня в UTC
func (s *ReportService) GenerateDailyReport(ctx context.Context) (*entity.SalesReport, error) {
	now := time.Now().UTC()
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	from := to.AddDate(0, 0, -1)

	return s.GenerateSalesReport(ctx, from, to)
}
