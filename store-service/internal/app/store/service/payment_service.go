package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"smarttech/pkg/metrics"
	"smarttech/store-service/internal/app/store/entity"
	"smarttech/store-service/internal/app/store/infrastructure"
	"smarttech/store-service/internal/app/store/repository"

	"github.com/google/uuid"
)

// PaymentService создает платежные намерения через внешний шлюз
// Сумма берется либо из запроса, либо из сохраненного заказа
type PaymentService struct {
	gateway   infrastructure.PaymentGateway
	orderRepo repository.OrderRepository
}

// NewPaymentService создает новый платежный сервис
func NewPaymentService(gateway infrastructure.PaymentGateway, orderRepo repository.OrderRepository) *PaymentService {
	return &PaymentService{gateway: gateway, orderRepo: orderRepo}
}

// CreatePaymentIntent создает платежное намерение
// При указанном order_id сумма берется из заказа и конвертируется
// в минимальные единицы валюты, заказ должен принадлежать пользователю
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, actor Actor, req *entity.CreatePaymentIntentRequest) (*infrastructure.PaymentIntent, error) {
	amount := req.Amount

	if req.OrderID != uuid.Nil {
		order, err := s.orderRepo.GetByID(ctx, req.OrderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return nil, ErrOrderNotFound
			}
			return nil, fmt.Errorf("failed to get order: %w", err)
		}

		if !actor.IsAdmin() && order.UserID != actor.UserID {
			return nil, ErrForbidden
		}

		amount = int64(math.Round(order.Total * 100))
	}

	if amount <= 0 {
		return nil, ErrInvalidPaymentData
	}

	intent, err := s.gateway.CreatePaymentIntent(ctx, amount, req.Currency)
	if err != nil {
		metrics.PaymentIntentsCreated.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("%w: %v", ErrPaymentGatewayError, err)
	}

	metrics.PaymentIntentsCreated.WithLabelValues("success").Inc()
	return intent, nil
}
