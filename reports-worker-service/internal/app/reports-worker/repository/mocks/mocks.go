package mocks

import (
	"context"
	"time"

	"smarttech/reports-worker-service/internal/app/reports-worker/entity"

	"github.com/stretchr/testify/mock"
)

// MockOrderEventRepository мок архива событий заказов
type MockOrderEventRepository struct {
	mock.Mock
}

func (m *MockOrderEventRepository) Insert(ctx context.Context, event *entity.ArchivedOrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockOrderEventRepository) AggregateSales(ctx context.Context, from, to time.Time) (*entity.SalesSummary, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SalesSummary), args.Error(1)
}

// MockReportRepository мок хранилища отчётов
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Save(ctx context.Context, report *entity.SalesReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) GetLatest(ctx context.Context) (*entity.SalesReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SalesReport), args.Error(1)
}
