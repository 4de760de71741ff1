package service

import (
	"context"
	"errors"
	"fmt"

	"smarttech/pkg/logger"
	"smarttech/pkg/metrics"
	"smarttech/store-service/internal/app/store/entity"
	"smarttech/store-service/internal/app/store/repository"

	"github.com/google/uuid"
)

// ReviewService обрабатывает бизнес-логику отзывов
// Пересчет среднего рейтинга выполняется репозиторием в одной
// транзакции с созданием отзыва
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	notifier    Notifier
}

// NewReviewService создает новый сервис отзывов с внедрением зависимостей
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	notifier Notifier,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		notifier:    notifier,
	}
}

// CreateReview создает отзыв от имени действующего пользователя
// и пересчитывает средний рейтинг товара
func (s *ReviewService) CreateReview(ctx context.Context, actor Actor, req *entity.CreateReviewRequest) (*entity.Review, error) {
	review := &entity.Review{
		ID:        uuid.New(),
		ProductID: req.ProductID,
		UserID:    actor.UserID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	metrics.ReviewsCreated.Inc()
	metrics.ReviewsRating.Observe(float64(review.Rating))

	if err := s.notifier.Broadcast(ctx, fmt.Sprintf("Новый отзыв с оценкой %d", review.Rating)); err != nil {
		// Логируем ошибку, но не прерываем выполнение
		logger.Error().Err(err).Msg("failed to broadcast notification")
	}

	return review, nil
}

// GetProductReviews получает отзывы товара с именами авторов
func (s *ReviewService) GetProductReviews(ctx context.Context, productID uuid.UUID) ([]entity.ReviewResponse, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to verify product: %w", err)
	}

	reviews, err := s.reviewRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	responses := make([]entity.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		resp := entity.ReviewResponse{Review: review}
		if review.User != nil {
			resp.UserName = review.User.Name
		}
		responses = append(responses, resp)
	}

	return responses, nil
}
