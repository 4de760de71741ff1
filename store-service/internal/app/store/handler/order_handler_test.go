package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"smarttech/store-service/internal/app/store/entity"
	"smarttech/store-service/internal/app/store/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, actor service.Actor, req *entity.CreateOrderRequest) (*entity.Order, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, actor service.Actor, orderID uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, actor, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderService) GetOrders(ctx context.Context, actor service.Actor) ([]entity.Order, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Order), args.Error(1)
}

func (m *MockOrderService) GetUserOrders(ctx context.Context, actor service.Actor, userID uuid.UUID) ([]entity.Order, error) {
	args := m.Called(ctx, actor, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Order), args.Error(1)
}

func (m *MockOrderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, newStatus entity.OrderStatus) (*entity.Order, error) {
	args := m.Called(ctx, orderID, newStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderService) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// withActor эмулирует Authenticate middleware в тестах
func withActor(userID uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role_name", role)
		c.Next()
	}
}

func TestCreateOrderHandler_Success(t *testing.T) {
	router := setupTestRouter()
	userID := uuid.New()
	productID := uuid.New()

	created := &entity.Order{
		ID:     uuid.New(),
		UserID: userID,
		Status: entity.OrderStatusPending,
		Total:  100.0,
	}

	mockService := new(MockOrderService)
	mockService.On("CreateOrder", mock.Anything, service.Actor{UserID: userID, Role: "user"}, mock.AnythingOfType("*entity.CreateOrderRequest")).
		Return(created, nil)

	h := NewOrderHandler(mockService)
	router.POST("/orders", withActor(userID, "user"), h.CreateOrder)

	body, _ := json.Marshal(entity.CreateOrderRequest{
		Items: []entity.OrderItemRequest{{ProductID: productID, Quantity: 2, Price: 50.0}},
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var got entity.Order
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, entity.OrderStatusPending, got.Status)
	mockService.AssertExpectations(t)
}

func TestCreateOrderHandler_ResponseIncludesOwnerAndProducts(t *testing.T) {
	router := setupTestRouter()
	userID := uuid.New()
	productID := uuid.New()

	created := &entity.Order{
		ID:     uuid.New(),
		UserID: userID,
		Status: entity.OrderStatusPending,
		Total:  199.98,
		User:   &entity.User{ID: userID, Email: "anna@example.com", Name: "Анна"},
		Items: []entity.OrderItem{
			{
				ID:        uuid.New(),
				ProductID: productID,
				Quantity:  2,
				Price:     99.99,
				Product: &entity.Product{
					ID:       productID,
					Name:     "Смартфон X200",
					Price:    99.99,
					Category: &entity.Category{ID: uuid.New(), Name: "Смартфоны"},
				},
			},
		},
	}

	mockService := new(MockOrderService)
	mockService.On("CreateOrder", mock.Anything, service.Actor{UserID: userID, Role: "user"}, mock.AnythingOfType("*entity.CreateOrderRequest")).
		Return(created, nil)

	h := NewOrderHandler(mockService)
	router.POST("/orders", withActor(userID, "user"), h.CreateOrder)

	body, _ := json.Marshal(entity.CreateOrderRequest{
		Items: []entity.OrderItemRequest{{ProductID: productID, Quantity: 2, Price: 99.99}},
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	// Ответ на создание - та же полная выборка, что и при GetOrder:
	// сводка владельца и карточки товаров по позициям
	var got entity.OrderResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, userID, got.User.ID)
	assert.Equal(t, "Анна", got.User.Name)
	assert.Len(t, got.Items, 1)
	if assert.NotNil(t, got.Items[0].Product) {
		assert.Equal(t, "Смартфон X200", got.Items[0].Product.Name)
		assert.Equal(t, "Смартфоны", got.Items[0].Product.Category.Name)
	}
}

func TestCreateOrderHandler_OwnerNotFound(t *testing.T) {
	router := setupTestRouter()
	userID := uuid.New()

	mockService := new(MockOrderService)
	mockService.On("CreateOrder", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, service.ErrUserNotFound)

	h := NewOrderHandler(mockService)
	router.POST("/orders", withActor(userID, "user"), h.CreateOrder)

	body, _ := json.Marshal(entity.CreateOrderRequest{
		Items: []entity.OrderItemRequest{{ProductID: uuid.New(), Quantity: 1, Price: 10.0}},
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderHandler_EmptyItemsRejectedByValidation(t *testing.T) {
	router := setupTestRouter()
	userID := uuid.New()

	mockService := new(MockOrderService)
	h := NewOrderHandler(mockService)
	router.POST("/orders", withActor(userID, "user"), h.CreateOrder)

	body := []byte(`{"items": []}`)
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetOrderHandler_Forbidden(t *testing.T) {
	router := setupTestRouter()
	userID := uuid.New()
	orderID := uuid.New()

	mockService := new(MockOrderService)
	mockService.On("GetOrder", mock.Anything, service.Actor{UserID: userID, Role: "user"}, orderID).
		Return(nil, service.ErrForbidden)

	h := NewOrderHandler(mockService)
	router.GET("/orders/:id", withActor(userID, "user"), h.GetOrder)

	req := httptest.NewRequest(http.MethodGet, "/orders/"+orderID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetOrderHandler_InvalidID(t *testing.T) {
	router := setupTestRouter()

	mockService := new(MockOrderService)
	h := NewOrderHandler(mockService)
	router.GET("/orders/:id", withActor(uuid.New(), "user"), h.GetOrder)

	req := httptest.NewRequest(http.MethodGet, "/orders/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderStatusHandler_InvalidTransition(t *testing.T) {
	router := setupTestRouter()
	orderID := uuid.New()

	mockService := new(MockOrderService)
	mockService.On("UpdateOrderStatus", mock.Anything, orderID, entity.OrderStatusDelivered).
		Return(nil, service.ErrInvalidOrderStatus)

	h := NewOrderHandler(mockService)
	router.PATCH("/orders/:id", withActor(uuid.New(), "admin"), h.UpdateOrderStatus)

	body := []byte(`{"status": "DELIVERED"}`)
	req := httptest.NewRequest(http.MethodPatch, "/orders/"+orderID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderStatusHandler_UnknownStatusRejectedByValidation(t *testing.T) {
	router := setupTestRouter()
	orderID := uuid.New()

	mockService := new(MockOrderService)
	h := NewOrderHandler(mockService)
	router.PATCH("/orders/:id", withActor(uuid.New(), "admin"), h.UpdateOrderStatus)

	body := []byte(`{"status": "shipped"}`)
	req := httptest.NewRequest(http.MethodPatch, "/orders/"+orderID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Статусы только в верхнем регистре
	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteOrderHandler_NotFound(t *testing.T) {
	router := setupTestRouter()
	orderID := uuid.New()

	mockService := new(MockOrderService)
	mockService.On("DeleteOrder", mock.Anything, orderID).Return(service.ErrOrderNotFound)

	h := NewOrderHandler(mockService)
	router.DELETE("/orders/:id", withActor(uuid.New(), "admin"), h.DeleteOrder)

	req := httptest.NewRequest(http.MethodDelete, "/orders/"+orderID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
