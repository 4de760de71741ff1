package repository

import (
	"context"
	"errors"

	"smarttech/store-service/internal/app/store/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// Стандартные ошибки репозиториев для обработки в service layer
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateKey     = errors.New("duplicate key")
	ErrForeignKey       = errors.New("foreign key violation")
)

// translateConstraintError переводит коды ошибок PostgreSQL
// в стандартные ошибки репозитория, остальное отдает без изменений
func translateConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return ErrDuplicateKey
		case "23503": // foreign_key_violation
			return ErrForeignKey
		}
	}
	return err
}

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetAll(ctx context.Context) ([]entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetAll(ctx context.Context, categoryID uuid.UUID) ([]entity.Product, error)
	Search(ctx context.Context, query string) ([]entity.Product, error)
	// Update обновляет поля товара и, если replaceVariations=true,
	// атомарно заменяет весь набор вариаций внутри одной транзакции
	Update(ctx context.Context, product *entity.Product, variations []string, replaceVariations bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistAll(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)
}

type OrderRepository interface {
	// CreateWithItems сохраняет заказ и все позиции в одной транзакции
	CreateWithItems(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetAll(ctx context.Context, filterUserID uuid.UUID) ([]entity.Order, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ReviewRepository interface {
	// Create сохраняет отзыв и пересчитывает средний рейтинг товара
	// в одной транзакции с блокировкой строки товара
	Create(ctx context.Context, review *entity.Review) error
	GetByProductID(ctx context.Context, productID uuid.UUID) ([]entity.Review, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Post, error)
	GetAll(ctx context.Context) ([]entity.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
