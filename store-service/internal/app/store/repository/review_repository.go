package repository

import (
	"context"
	"errors"

	"smarttech/store-service/internal/app/store/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository создает новый репозиторий отзывов
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create сохраняет отзыв и пересчитывает средний рейтинг товара.
// Строка товара блокируется через SELECT ... FOR UPDATE, поэтому
// параллельные отзывы на один товар пересчитывают рейтинг
// последовательно и ни одна оценка не теряется
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product entity.Product
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, "id = ?", review.ProductID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if err := tx.Create(review).Error; err != nil {
			return translateConstraintError(err)
		}

		var ratings []int
		err = tx.Model(&entity.Review{}).
			Where("product_id = ?", review.ProductID).
			Pluck("rating", &ratings).Error
		if err != nil {
			return err
		}

		return tx.Model(&entity.Product{}).
			Where("id = ?", review.ProductID).
			Update("average_rating", entity.AverageRating(ratings)).Error
	})
}

// GetByProductID получает отзывы товара с авторами, новые первыми
func (r *reviewRepository) GetByProductID(ctx context.Context, productID uuid.UUID) ([]entity.Review, error) {
	var reviews []entity.Review
	result := r.db.WithContext(ctx).
		Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews)

	if result.Error != nil {
		return nil, result.Error
	}

	return reviews, nil
}
