package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"smarttech/pkg/logger"
	"smarttech/reports-worker-service/internal/app/reports-worker/entity"
	"smarttech/reports-worker-service/internal/app/reports-worker/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init("reports-worker-test", "disabled")
	m.Run()
}

func newReportServiceWithMocks() (*ReportService, *mocks.MockOrderEventRepository, *mocks.MockReportRepository) {
	eventRepo := new(mocks.MockOrderEventRepository)
	reportRepo := new(mocks.MockReportRepository)
	return NewReportService(eventRepo, reportRepo), eventRepo, reportRepo
}

func TestProcessOrderEvent_ArchivesCreatedEvent(t *testing.T) {
	svc, eventRepo, _ := newReportServiceWithMocks()

	orderID := uuid.New()
	userID := uuid.New()
	occurredAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	event := &entity.OrderEvent{
		EventType:  entity.EventTypeOrderCreated,
		OrderID:    orderID,
		UserID:     userID,
		Total:      1999.98,
		Status:     "PENDING",
		ItemsCount: 2,
		Timestamp:  occurredAt,
	}

	eventRepo.On("Insert", mock.Anything, mock.MatchedBy(func(archived *entity.ArchivedOrderEvent) bool {
		return archived.EventType == entity.EventTypeOrderCreated &&
			archived.OrderID == orderID.String() &&
			archived.UserID == userID.String() &&
			archived.Total == 1999.98 &&
			archived.ItemsCount == 2 &&
			archived.OccurredAt.Equal(occurredAt)
	})).Return(nil)

	err := svc.ProcessOrderEvent(context.Background(), event)

	assert.NoError(t, err)
	eventRepo.AssertExpectations(t)
}

func TestProcessOrderEvent_UnknownTypeSkipped(t *testing.T) {
	svc, eventRepo, _ := newReportServiceWithMocks()

	event := &entity.OrderEvent{
		EventType: "ORDER_EXPLODED",
		OrderID:   uuid.New(),
	}

	err := svc.ProcessOrderEvent(context.Background(), event)

	assert.NoError(t, err)
	eventRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestProcessOrderEvent_MissingOrderID(t *testing.T) {
	svc, _, _ := newReportServiceWithMocks()

	event := &entity.OrderEvent{
		EventType: entity.EventTypeOrderCreated,
		OrderID:   uuid.Nil,
	}

	err := svc.ProcessOrderEvent(context.Background(), event)

	assert.Error(t, err)
}

func TestProcessOrderEvent_RepositoryError(t *testing.T) {
	svc, eventRepo, _ := newReportServiceWithMocks()

	eventRepo.On("Insert", mock.Anything, mock.Anything).Return(errors.New("mongo unavailable"))

	err := svc.ProcessOrderEvent(context.Background(), &entity.OrderEvent{
		EventType: entity.EventTypeOrderCreated,
		OrderID:   uuid.New(),
	})

	assert.Error(t, err)
}

func TestGenerateSalesReport_Success(t *testing.T) {
	svc, eventRepo, reportRepo := newReportServiceWithMocks()

	from := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	eventRepo.On("AggregateSales", mock.Anything, from, to).
		Return(&entity.SalesSummary{OrdersCount: 4, TotalAmount: 1000.0}, nil)
	reportRepo.On("Save", mock.Anything, mock.MatchedBy(func(report *entity.SalesReport) bool {
		return report.OrdersCount == 4 &&
			report.TotalAmount == 1000.0 &&
			report.AverageOrderAmount == 250.0 &&
			report.PeriodStart.Equal(from) &&
			report.PeriodEnd.Equal(to)
	})).Return(nil)

	report, err := svc.GenerateSalesReport(context.Background(), from, to)

	require.NoError(t, err)
	assert.Equal(t, int64(4), report.OrdersCount)
	assert.InDelta(t, 250.0, report.AverageOrderAmount, 0.0001)
	eventRepo.AssertExpectations(t)
	reportRepo.AssertExpectations(t)
}

func TestGenerateSalesReport_EmptyPeriod(t *testing.T) {
	svc, eventRepo, reportRepo := newReportServiceWithMocks()

	eventRepo.On("AggregateSales", mock.Anything, mock.Anything, mock.Anything).
		Return(&entity.SalesSummary{}, nil)
	reportRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	report, err := svc.GenerateSalesReport(context.Background(), time.Now().Add(-24*time.Hour), time.Now())

	require.NoError(t, err)
	assert.Equal(t, int64(0), report.OrdersCount)
	// Деления на ноль нет - средний чек остаётся нулевым
	assert.Equal(t, 0.0, report.AverageOrderAmount)
}

func TestGenerateSalesReport_AggregationError(t *testing.T) {
	svc, eventRepo, reportRepo := newReportServiceWithMocks()

	eventRepo.On("AggregateSales", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("aggregation failed"))

	_, err := svc.GenerateSalesReport(context.Background(), time.Now().Add(-24*time.Hour), time.Now())

	assert.Error(t, err)
	reportRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGenerateSalesReport_SaveError(t *testing.T) {
	svc, eventRepo, reportRepo := newReportServiceWithMocks()

	eventRepo.On("AggregateSales", mock.Anything, mock.Anything, mock.Anything).
		Return(&entity.SalesSummary{OrdersCount: 1, TotalAmount: 10.0}, nil)
	reportRepo.On("Save", mock.Anything, mock.Anything).Return(errors.New("mongo unavailable"))

	_, err := svc.GenerateSalesReport(context.Background(), time.Now().Add(-24*time.Hour), time.Now())

	assert.Error(t, err)
}

func TestGenerateDailyReport_AlignsToCalendarDay(t *testing.T) {
	svc, eventRepo, reportRepo := newReportServiceWithMocks()

	eventRepo.On("AggregateSales", mock.Anything, mock.MatchedBy(func(from time.Time) bool {
		return from.Hour() == 0 && from.Minute() == 0 && from.Second() == 0
	}), mock.MatchedBy(func(to time.Time) bool {
		return to.Hour() == 0 && to.Minute() == 0 && to.Second() == 0
	})).Return(&entity.SalesSummary{}, nil)
	reportRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	report, err := svc.GenerateDailyReport(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, report.PeriodEnd.Sub(report.PeriodStart))
}
