package entity

import "github.com/google/uuid"

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

type UpdateCategoryRequest struct {
	Name        string `json:"name" validate:"omitempty,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

type CreateProductRequest struct {
	Name        string    `json:"name" validate:"required,min=2,max=200"`
	Description string    `json:"description" validate:"omitempty,max=2000"`
	Price       float64   `json:"price" validate:"gte=0"`
	CategoryID  uuid.UUID `json:"category_id" validate:"required"`
	InStock     *bool     `json:"in_stock" validate:"omitempty"`
	Variations  []string  `json:"variations" validate:"omitempty,dive,min=1,max=100"`
}

type UpdateProductRequest struct {
	Name        string    `json:"name" validate:"omitempty,min=2,max=200"`
	Description *string   `json:"description" validate:"omitempty,max=2000"`
	Price       *float64  `json:"price" validate:"omitempty,gte=0"`
	CategoryID  uuid.UUID `json:"category_id" validate:"omitempty"`
	InStock     *bool     `json:"in_stock" validate:"omitempty"`
	// nil - вариации не трогаем, пустой список - удалить все
	Variations *[]string `json:"variations" validate:"omitempty,dive,min=1,max=100"`
}

type CreateOrderRequest struct {
	// UserID учитывается только для администраторов,
	// для остальных заказ всегда оформляется на действующего пользователя
	UserID uuid.UUID          `json:"user_id" validate:"omitempty"`
	Items  []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	Price     float64   `json:"price" validate:"gte=0"`
}

type UpdateOrderRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=PENDING PROCESSING SHIPPED DELIVERED CANCELLED"`
}

type CreateReviewRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Comment   string    `json:"comment" validate:"omitempty,max=1000"`
}

type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,min=2,max=255"`
	Content string `json:"content" validate:"required,min=10"`
}

type CreatePaymentIntentRequest struct {
	// Либо сумма явно, либо order_id - тогда сумма берется из заказа
	Amount   int64     `json:"amount" validate:"omitempty,gt=0"`
	Currency string    `json:"currency" validate:"required,len=3"`
	OrderID  uuid.UUID `json:"order_id" validate:"omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ProductListResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

type CategoryListResponse struct {
	Categories []Category `json:"categories"`
	Total      int        `json:"total"`
}

type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
	Total   int              `json:"total"`
}

type ReviewResponse struct {
	Review
	UserName string `json:"user_name,omitempty"`
}

type OrderResponse struct {
	Order
	User UserSummary `json:"user"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

type PostResponse struct {
	Post
	AuthorName string `json:"author_name,omitempty"`
}

type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
	Total int            `json:"total"`
}
