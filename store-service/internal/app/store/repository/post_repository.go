package repository

import (
	"context"
	"errors"

	"smarttech/store-service/internal/app/store/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository создает новый репозиторий записей блога
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create создает новую запись
func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	result := r.db.WithContext(ctx).Create(post)
	if result.Error != nil {
		return translateConstraintError(result.Error)
	}
	return nil
}

// GetByID получает запись по ID вместе с автором
func (r *postRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	var post entity.Post
	result := r.db.WithContext(ctx).
		Preload("Author").
		First(&post, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, result.Error
	}

	return &post, nil
}

// GetAll получает все записи, новые первыми
func (r *postRepository) GetAll(ctx context.Context) ([]entity.Post, error) {
	var posts []entity.Post
	result := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Find(&posts)

	if result.Error != nil {
		return nil, result.Error
	}

	return posts, nil
}

// Delete удаляет запись
func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Post{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}
