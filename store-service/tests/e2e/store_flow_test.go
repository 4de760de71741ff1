//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"smarttech/store-service/internal/app/store/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// BaseURL - адрес запущенного store-service
var BaseURL = getEnv("STORE_SERVICE_URL", "http://localhost:8080")

// jwtSecret должен совпадать с JWT_SECRET запущенного сервиса
var jwtSecret = getEnv("JWT_SECRET", "your-secret-key-change-this-in-production")

// makeToken выпускает JWT для тестового пользователя
func makeToken(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"user_id":   userID.String(),
		"email":     "e2e@test.local",
		"role_name": role,
		"exp":       time.Now().Add(time.Hour).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return token
}

func authHeaders(token string) http.Header {
	headers := make(http.Header)
	headers.Set("Content-Type", "application/json")
	headers.Set("Authorization", "Bearer "+token)
	return headers
}

// TestFullStoreFlow тестирует полный цикл магазина:
// 1. Админ создает категорию и товар
// 2. Покупатель находит товар поиском
// 3. Покупатель оформляет заказ
// 4. Админ ведет заказ по статусам до доставки
// 5. Покупатель оставляет отзыв, рейтинг товара обновляется
func TestFullStoreFlow(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	// Пользователи из seed с фиксированными ID
	adminToken := makeToken(t, uuid.MustParse("11111111-1111-1111-1111-111111111111"), "admin")
	userToken := makeToken(t, uuid.MustParse("22222222-2222-2222-2222-222222222222"), "user")

	// ==================== Step 1: Create category and product ====================
	t.Log("Step 1: Creating category and product")

	catBody, _ := json.Marshal(entity.CreateCategoryRequest{Name: "E2E Категория " + uuid.NewString()[:8]})
	req, _ := http.NewRequest(http.MethodPost, BaseURL+"/categories", bytes.NewBuffer(catBody))
	req.Header = authHeaders(adminToken)

	resp, err := client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "Category creation should succeed")

	var category entity.Category
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&category))
	resp.Body.Close()

	prodBody, _ := json.Marshal(entity.CreateProductRequest{
		Name:       "E2E Товар " + uuid.NewString()[:8],
		Price:      149.99,
		CategoryID: category.ID,
		Variations: []string{"Черный", "Белый"},
	})
	req, _ = http.NewRequest(http.MethodPost, BaseURL+"/products", bytes.NewBuffer(prodBody))
	req.Header = authHeaders(adminToken)

	resp, err = client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "Product creation should succeed")

	var product entity.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&product))
	resp.Body.Close()

	assert.Len(t, product.Variations, 2)
	t.Logf("Created product: %s", product.ID)

	// ==================== Step 2: Search product ====================
	t.Log("Step 2: Searching product")

	req, _ = http.NewRequest(http.MethodGet, BaseURL+"/products/search?q="+product.Name[:10], nil)

	resp, err = client.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var found entity.ProductListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&found))
	resp.Body.Close()

	assert.GreaterOrEqual(t, found.Total, 1)

	// ==================== Step 3: Create order ====================
	t.Log("Step 3: Creating order")

	orderBody, _ := json.Marshal(entity.CreateOrderRequest{
		Items: []entity.OrderItemRequest{
			{ProductID: product.ID, Quantity: 2, Price: product.Price},
		},
	})
	req, _ = http.NewRequest(http.MethodPost, BaseURL+"/orders", bytes.NewBuffer(orderBody))
	req.Header = authHeaders(userToken)

	resp, err = client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "Order creation should succeed")

	var order entity.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&order))
	resp.Body.Close()

	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.InDelta(t, 299.98, order.Total, 0.0001)
	t.Logf("Created order: %s", order.ID)

	// Cleanup: удаляем заказ после теста
	defer func() {
		req, _ := http.NewRequest(http.MethodDelete, BaseURL+"/orders/"+order.ID.String(), nil)
		req.Header = authHeaders(adminToken)
		if resp, err := client.Do(req); err == nil {
			resp.Body.Close()
		}
	}()

	// ==================== Step 4: Walk order through statuses ====================
	t.Log("Step 4: Updating order status")

	for _, status := range []entity.OrderStatus{
		entity.OrderStatusProcessing,
		entity.OrderStatusShipped,
		entity.OrderStatusDelivered,
	} {
		statusBody, _ := json.Marshal(entity.UpdateOrderRequest{Status: status})
		req, _ = http.NewRequest(http.MethodPatch, BaseURL+"/orders/"+order.ID.String(), bytes.NewBuffer(statusBody))
		req.Header = authHeaders(adminToken)

		resp, err = client.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "Transition to %s should succeed", status)
		resp.Body.Close()
	}

	// Переход из финального статуса запрещен
	statusBody, _ := json.Marshal(entity.UpdateOrderRequest{Status: entity.OrderStatusPending})
	req, _ = http.NewRequest(http.MethodPatch, BaseURL+"/orders/"+order.ID.String(), bytes.NewBuffer(statusBody))
	req.Header = authHeaders(adminToken)

	resp, err = client.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// ==================== Step 5: Leave review ====================
	t.Log("Step 5: Creating review")

	reviewBody, _ := json.Marshal(entity.CreateReviewRequest{
		ProductID: product.ID,
		Rating:    4,
		Comment:   "Хороший товар",
	})
	req, _ = http.NewRequest(http.MethodPost, BaseURL+"/reviews", bytes.NewBuffer(reviewBody))
	req.Header = authHeaders(userToken)

	resp, err = client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "Review creation should succeed")
	resp.Body.Close()

	// Рейтинг товара обновился
	req, _ = http.NewRequest(http.MethodGet, BaseURL+"/products/"+product.ID.String(), nil)

	resp, err = client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated entity.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	resp.Body.Close()

	assert.InDelta(t, 4.0, updated.AverageRating, 0.0001)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
