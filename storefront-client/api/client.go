package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"smarttech/storefront-client/cart"

	"github.com/google/uuid"
)

// Product товар каталога в представлении витрины
type Product struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	AverageRating float64   `json:"average_rating"`
	InStock       bool      `json:"in_stock"`
}

type productListResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

// Order заказ в представлении витрины
type Order struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Status string    `json:"status"`
	Total  float64   `json:"total"`
}

type orderItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
}

type createOrderRequest struct {
	Items []orderItemRequest `json:"items"`
}

// StoreClient клиент витрины для взаимодействия со Store Service
type StoreClient struct {
	baseURL    string
	httpClient *http.Client
	authToken  string // JWT токен для аутентификации в Store Service
}

// NewStoreClient создает новый клиент Store Service
func NewStoreClient(baseURL string) *StoreClient {
	return &StoreClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetAuthToken устанавливает JWT токен для аутентификации
func (c *StoreClient) SetAuthToken(token string) {
	c.authToken = token
}

// GetProducts получает список товаров каталога
func (c *StoreClient) GetProducts(ctx context.Context) ([]Product, error) {
	var resp productListResponse
	if err := c.get(ctx, "/products", &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// SearchProducts ищет товары по подстроке
func (c *StoreClient) SearchProducts(ctx context.Context, query string) ([]Product, error) {
	var resp productListResponse
	path := "/products/search?q=" + url.QueryEscape(query)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// GetProduct получает товар по ID
func (c *StoreClient) GetProduct(ctx context.Context, productID uuid.UUID) (*Product, error) {
	var product Product
	if err := c.get(ctx, "/products/"+productID.String(), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Checkout оформляет заказ из текущего состояния корзины
// и очищает корзину при успехе
func (c *StoreClient) Checkout(ctx context.Context, manager *cart.Manager) (*Order, error) {
	items := manager.Items()
	if len(items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	req := createOrderRequest{}
	for _, item := range items {
		req.Items = append(req.Items, orderItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	var order Order
	if err := c.post(ctx, "/orders", req, &order); err != nil {
		return nil, err
	}

	if err := manager.Clear(); err != nil {
		return &order, fmt.Errorf("order created but failed to clear cart: %w", err)
	}

	return &order, nil
}

func (c *StoreClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req, out, http.StatusOK)
}

func (c *StoreClient) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out, http.StatusCreated)
}

func (c *StoreClient) do(req *http.Request, out interface{}, wantStatus int) error {
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("resource not found")
	}

	if resp.StatusCode != wantStatus {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
