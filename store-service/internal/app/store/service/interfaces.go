package service

import (
	"context"

	"smarttech/store-service/internal/app/store/entity"
	"smarttech/store-service/internal/app/store/infrastructure"

	"github.com/google/uuid"
)

// Notifier рассылает текстовые уведомления подписчикам витрины
type Notifier interface {
	Broadcast(ctx context.Context, message string) error
}

// Actor - аутентифицированный пользователь, выполняющий операцию
// Заполняется из JWT claims в middleware
type Actor struct {
	UserID uuid.UUID
	Role   string
}

// IsAdmin сообщает, имеет ли пользователь права администратора
func (a Actor) IsAdmin() bool {
	return a.Role == "admin"
}

type CatalogServiceInterface interface {
	CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetCategories(ctx context.Context) ([]entity.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *entity.UpdateCategoryRequest) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetProducts(ctx context.Context, categoryID uuid.UUID) ([]entity.Product, error)
	SearchProducts(ctx context.Context, query string) ([]entity.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, actor Actor, req *entity.CreateOrderRequest) (*entity.Order, error)
	GetOrder(ctx context.Context, actor Actor, orderID uuid.UUID) (*entity.Order, error)
	GetOrders(ctx context.Context, actor Actor) ([]entity.Order, error)
	GetUserOrders(ctx context.Context, actor Actor, userID uuid.UUID) ([]entity.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, newStatus entity.OrderStatus) (*entity.Order, error)
	DeleteOrder(ctx context.Context, orderID uuid.UUID) error
}

type ReviewServiceInterface interface {
	CreateReview(ctx context.Context, actor Actor, req *entity.CreateReviewRequest) (*entity.Review, error)
	GetProductReviews(ctx context.Context, productID uuid.UUID) ([]entity.ReviewResponse, error)
}

type BlogServiceInterface interface {
	CreatePost(ctx context.Context, authorID uuid.UUID, req *entity.CreatePostRequest) (*entity.Post, error)
	GetPost(ctx context.Context, id uuid.UUID) (*entity.PostResponse, error)
	GetPosts(ctx context.Context) ([]entity.PostResponse, error)
	DeletePost(ctx context.Context, id uuid.UUID) error
}

type PaymentServiceInterface interface {
	CreatePaymentIntent(ctx context.Context, actor Actor, req *entity.CreatePaymentIntentRequest) (*infrastructure.PaymentIntent, error)
}
