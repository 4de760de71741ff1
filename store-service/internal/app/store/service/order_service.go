package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"smarttech/pkg/logger"
	"smarttech/pkg/metrics"
	"smarttech/store-service/internal/app/store/entity"
	"smarttech/store-service/internal/app/store/repository"
	"smarttech/store-service/internal/app/store/util"

	"github.com/google/uuid"
)

// validStatusTransitions определяет допустимые переходы статусов заказа
// DELIVERED и CANCELLED - финальные, из них переходов нет
var validStatusTransitions = map[entity.OrderStatus][]entity.OrderStatus{
	entity.OrderStatusPending:    {entity.OrderStatusProcessing, entity.OrderStatusCancelled},
	entity.OrderStatusProcessing: {entity.OrderStatusShipped, entity.OrderStatusCancelled},
	entity.OrderStatusShipped:    {entity.OrderStatusDelivered, entity.OrderStatusCancelled},
	entity.OrderStatusDelivered:  {},
	entity.OrderStatusCancelled:  {},
}

// isValidStatusTransition проверяет допустимость перехода статуса
func isValidStatusTransition(from, to entity.OrderStatus) bool {
	allowed, ok := validStatusTransitions[from]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == to {
			return true
		}
	}
	return false
}

// OrderService обрабатывает бизнес-логику заказов
// Координирует репозитории, Kafka и рассылку уведомлений
type OrderService struct {
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	userRepo      repository.UserRepository
	kafkaProducer util.MessagePublisher
	notifier      Notifier
}

// NewOrderService создает новый сервис заказов с внедрением зависимостей
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	kafkaProducer util.MessagePublisher,
	notifier Notifier,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		userRepo:      userRepo,
		kafkaProducer: kafkaProducer,
		notifier:      notifier,
	}
}

// CreateOrder создает новый заказ
// 1. Определяет владельца: user_id из запроса учитывается только для админа
// 2. Проверяет существование владельца и всех товаров
// 3. Рассчитывает итоговую сумму как сумму цена*количество по позициям
// 4. Сохраняет заказ и позиции в одной транзакции
// 5. Отправляет событие ORDER_CREATED в Kafka и уведомление витрине
// Возвращает заказ, перечитанный со всеми связями (владелец, товары позиций)
func (s *OrderService) CreateOrder(ctx context.Context, actor Actor, req *entity.CreateOrderRequest) (*entity.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	// Не-админ не может оформить заказ на другого пользователя
	ownerID := actor.UserID
	if actor.IsAdmin() && req.UserID != uuid.Nil {
		ownerID = req.UserID
	}

	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to verify order owner: %w", err)
	}

	productIDs := make([]uuid.UUID, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.ProductID
	}

	exist, err := s.productRepo.ExistAll(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to verify products: %w", err)
	}
	for _, productID := range productIDs {
		if !exist[productID] {
			return nil, ErrProductNotFound
		}
	}

	order := &entity.Order{
		ID:     uuid.New(),
		UserID: ownerID,
		Status: entity.OrderStatusPending,
	}

	var total float64
	for _, item := range req.Items {
		total += item.Price * float64(item.Quantity)
		order.Items = append(order.Items, entity.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	order.Total = total

	if err := s.orderRepo.CreateWithItems(ctx, order); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Перечитываем заказ со связями, чтобы ответ содержал
	// владельца и карточки товаров, как при GetOrder
	created, err := s.orderRepo.GetWithDetails(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created order: %w", err)
	}

	metrics.OrdersCreated.Inc()
	metrics.OrdersTotalAmount.Add(created.Total)

	s.publishOrderEvent(ctx, "ORDER_CREATED", created)
	s.broadcast(ctx, fmt.Sprintf("Оформлен новый заказ на сумму %.2f", created.Total))

	return created, nil
}

// GetOrder получает заказ с позициями
// Не-админ видит только собственные заказы
func (s *OrderService) GetOrder(ctx context.Context, actor Actor, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if !actor.IsAdmin() && order.UserID != actor.UserID {
		return nil, ErrForbidden
	}

	return order, nil
}

// GetOrders получает список заказов
// Админ видит все заказы, остальные - только собственные
func (s *OrderService) GetOrders(ctx context.Context, actor Actor) ([]entity.Order, error) {
	filterUserID := actor.UserID
	if actor.IsAdmin() {
		filterUserID = uuid.Nil
	}

	orders, err := s.orderRepo.GetAll(ctx, filterUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}

	return orders, nil
}

// GetUserOrders получает заказы конкретного пользователя
// Не-админ может запросить только собственные заказы
func (s *OrderService) GetUserOrders(ctx context.Context, actor Actor, userID uuid.UUID) ([]entity.Order, error) {
	if !actor.IsAdmin() && userID != actor.UserID {
		return nil, ErrForbidden
	}

	orders, err := s.orderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user orders: %w", err)
	}

	return orders, nil
}

// UpdateOrderStatus меняет статус заказа с проверкой перехода
// Отправляет событие ORDER_UPDATED в Kafka и уведомление витрине
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, newStatus entity.OrderStatus) (*entity.Order, error) {
	if _, ok := validStatusTransitions[newStatus]; !ok {
		return nil, ErrUnknownOrderStatus
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if !isValidStatusTransition(order.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidOrderStatus, order.Status, newStatus)
	}

	previous := order.Status
	order.Status = newStatus

	if err := s.orderRepo.Update(ctx, order); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	metrics.OrderStatusTransitions.WithLabelValues(string(previous), string(newStatus)).Inc()

	s.publishOrderEvent(ctx, "ORDER_UPDATED", order)
	s.broadcast(ctx, fmt.Sprintf("Заказ %s перешел в статус %s", order.ID, order.Status))

	return order, nil
}

// DeleteOrder удаляет заказ вместе с позициями
func (s *OrderService) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}

	return nil
}

// publishOrderEvent отправляет событие заказа в Kafka
// Ошибка отправки не прерывает основную операцию
func (s *OrderService) publishOrderEvent(ctx context.Context, eventType string, order *entity.Order) {
	event := entity.OrderEvent{
		EventType:  eventType,
		OrderID:    order.ID,
		UserID:     order.UserID,
		Total:      order.Total,
		Status:     order.Status,
		ItemsCount: len(order.Items),
		Timestamp:  time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal order event")
		return
	}

	if err := s.kafkaProducer.PublishMessage(ctx, order.ID.String(), data); err != nil {
		// Логируем ошибку, но не прерываем выполнение
		logger.Error().Err(err).Str("event_type", eventType).Msg("failed to publish order event")
	}
}

// broadcast отправляет уведомление подписчикам витрины
// Ошибка рассылки не прерывает основную операцию
func (s *OrderService) broadcast(ctx context.Context, message string) {
	if err := s.notifier.Broadcast(ctx, message); err != nil {
		// Логируем ошибку, но не прерываем выполнение
		logger.Error().Err(err).Msg("failed to broadcast notification")
	}
}
