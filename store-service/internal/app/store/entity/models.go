package entity

import (
	"time"

	"github.com/google/uuid"
)

// User представляет пользователя магазина
// Регистрация и аутентификация выполняются внешним Auth Service,
// здесь хранится только то, что нужно для связей заказов и отзывов
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email        string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"type:varchar(255)"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255)"`
	Role         string    `json:"role" gorm:"type:varchar(50);not null;default:'user'"` // user, admin
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName указывает имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// UserSummary - краткая информация о пользователе для вложенных ответов
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// Summary возвращает краткое представление пользователя
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Email: u.Email, Name: u.Name}
}

// Category представляет категорию товаров
type Category struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName указывает имя таблицы для GORM
func (Category) TableName() string {
	return "categories"
}

// Product представляет товар в каталоге
// AverageRating обновляется только сервисом отзывов при создании отзыва
type Product struct {
	ID            uuid.UUID          `json:"id" gorm:"type:uuid;primaryKey"`
	Name          string             `json:"name" gorm:"type:varchar(200);not null"`
	Description   string             `json:"description,omitempty" gorm:"type:text"`
	Price         float64            `json:"price" gorm:"type:decimal(10,2);not null;check:price >= 0"`
	CategoryID    uuid.UUID          `json:"category_id" gorm:"type:uuid;not null"`
	AverageRating float64            `json:"average_rating" gorm:"type:decimal(3,2);not null;default:0"`
	InStock       bool               `json:"in_stock" gorm:"not null;default:true"`
	CreatedAt     time.Time          `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time          `json:"updated_at" gorm:"autoUpdateTime"`
	Category      *Category          `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Variations    []ProductVariation `json:"variations" gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName указывает имя таблицы для GORM
func (Product) TableName() string {
	return "products"
}

// ProductVariation представляет вариацию товара (цвет, размер и т.п.)
// Принадлежит ровно одному товару и заменяется целиком при обновлении товара
type ProductVariation struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName указывает имя таблицы для GORM
func (ProductVariation) TableName() string {
	return "product_variations"
}

// OrderStatus представляет статусы заказа
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"    // Ожидает обработки (начальный)
	OrderStatusProcessing OrderStatus = "PROCESSING" // В обработке
	OrderStatusShipped    OrderStatus = "SHIPPED"    // Отправлен
	OrderStatusDelivered  OrderStatus = "DELIVERED"  // Доставлен (финальный)
	OrderStatusCancelled  OrderStatus = "CANCELLED"  // Отменен (финальный)
)

// Order представляет заказ
// Total всегда рассчитывается сервером как сумма позиций
type Order struct {
	ID        uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID   `json:"user_id" gorm:"type:uuid;not null"`
	Status    OrderStatus `json:"status" gorm:"type:varchar(50);not null;default:'PENDING'"`
	Total     float64     `json:"total" gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
	User      *User       `json:"-" gorm:"foreignKey:UserID"`
	Items     []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName указывает имя таблицы для GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem представляет позицию заказа
// Price - снимок цены на момент оформления заказа
type OrderItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `json:"order_id" gorm:"type:uuid;not null"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null"`
	Quantity  int       `json:"quantity" gorm:"not null;check:quantity > 0"`
	Price     float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// TableName указывает имя таблицы для GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Review представляет отзыв на товар
type Review struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string    `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
	User      *User     `json:"-" gorm:"foreignKey:UserID"`
}

// TableName указывает имя таблицы для GORM
func (Review) TableName() string {
	return "reviews"
}

// Post представляет запись в блоге магазина
type Post struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	AuthorID  uuid.UUID `json:"author_id" gorm:"type:uuid;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
	Author    *User     `json:"-" gorm:"foreignKey:AuthorID"`
}

// TableName указывает имя таблицы для GORM
func (Post) TableName() string {
	return "posts"
}

// AverageRating вычисляет среднюю оценку по набору рейтингов
// Пустой набор дает 0 (товар без отзывов)
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}

	return float64(sum) / float64(len(ratings))
}
