package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"smarttech/pkg/logger"
	"smarttech/store-service/internal/app/store/entity"
	"smarttech/store-service/internal/app/store/repository"
	"smarttech/store-service/internal/app/store/util"

	"github.com/google/uuid"
)

const categoriesCacheTTL = time.Hour

// CatalogService обрабатывает бизнес-логику каталога:
// категории, товары, вариации, поиск
// Координирует репозитории, Redis кеш, Kafka и рассылку уведомлений
type CatalogService struct {
	categoryRepo  repository.CategoryRepository
	productRepo   repository.ProductRepository
	cache         util.CategoryCache
	kafkaProducer util.MessagePublisher
	notifier      Notifier
}

// NewCatalogService создает новый сервис каталога с внедрением зависимостей
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	cache util.CategoryCache,
	kafkaProducer util.MessagePublisher,
	notifier Notifier,
) *CatalogService {
	return &CatalogService{
		categoryRepo:  categoryRepo,
		productRepo:   productRepo,
		cache:         cache,
		kafkaProducer: kafkaProducer,
		notifier:      notifier,
	}
}

// CreateCategory создает новую категорию и инвалидирует кеш
func (s *CatalogService) CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error) {
	category := &entity.Category{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateCategory
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.invalidateCategoriesCache(ctx)

	return category, nil
}

// GetCategory получает категорию по ID
func (s *CatalogService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

// GetCategories получает все категории
// Сначала проверяет Redis кеш, при промахе идет в БД и наполняет кеш
func (s *CatalogService) GetCategories(ctx context.Context) ([]entity.Category, error) {
	cached, err := s.cache.GetCategories(ctx)
	if err != nil {
		// Логируем ошибку, но не прерываем выполнение
		logger.Error().Err(err).Msg("failed to read categories from cache")
	}
	if cached != nil {
		return cached, nil
	}

	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	if err := s.cache.SetCategories(ctx, categories, categoriesCacheTTL); err != nil {
		// Логируем ошибку, но не прерываем выполнение
		logger.Error().Err(err).Msg("failed to cache categories")
	}

	return categories, nil
}

// UpdateCategory обновляет категорию и инвалидирует кеш
// Пустые поля запроса оставляют текущие значения
func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req *entity.UpdateCategoryRequest) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Description != "" {
		category.Description = req.Description
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateCategory
		}
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.invalidateCategoriesCache(ctx)

	return category, nil
}

// DeleteCategory удаляет категорию и инвалидирует кеш
// Категория, на которую ссылаются товары, не удаляется
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		if errors.Is(err, repository.ErrForeignKey) {
			return ErrCategoryInUse
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.invalidateCategoriesCache(ctx)

	return nil
}

// CreateProduct создает новый товар с вариациями
// После сохранения отправляет событие PRODUCT_CREATED в Kafka
// и уведомление подписчикам витрины
func (s *CatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	if _, err := s.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to verify category: %w", err)
	}

	product := &entity.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		InStock:     true,
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	for _, name := range req.Variations {
		product.Variations = append(product.Variations, entity.ProductVariation{
			ID:        uuid.New(),
			Name:      name,
			ProductID: product.ID,
		})
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.publishProductEvent(ctx, "PRODUCT_CREATED", product)
	s.broadcast(ctx, fmt.Sprintf("Новый товар в каталоге: %s", product.Name))

	return product, nil
}

// GetProduct получает товар с категорией и вариациями
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetWithDetails(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// GetProducts получает товары, опционально отфильтрованные по категории
func (s *CatalogService) GetProducts(ctx context.Context, categoryID uuid.UUID) ([]entity.Product, error) {
	products, err := s.productRepo.GetAll(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	return products, nil
}

// SearchProducts ищет товары по подстроке в имени или описании
func (s *CatalogService) SearchProducts(ctx context.Context, query string) ([]entity.Product, error) {
	products, err := s.productRepo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	return products, nil
}

// UpdateProduct обновляет товар
// Вариации: nil в запросе - не трогаем, иначе набор заменяется целиком
// После обновления отправляет событие PRODUCT_UPDATED в Kafka
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error) {
	product, err := s.productRepo.GetWithDetails(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	if req.CategoryID != uuid.Nil {
		if _, err := s.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to verify category: %w", err)
		}
		product.CategoryID = req.CategoryID
		product.Category = nil
	}

	var variations []string
	replaceVariations := false
	if req.Variations != nil {
		variations = *req.Variations
		replaceVariations = true
	}

	if err := s.productRepo.Update(ctx, product, variations, replaceVariations); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.publishProductEvent(ctx, "PRODUCT_UPDATED", product)

	return product, nil
}

// DeleteProduct удаляет товар вместе с вариациями
// После удаления отправляет событие PRODUCT_DELETED в Kafka
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to get product: %w", err)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.publishProductEvent(ctx, "PRODUCT_DELETED", product)

	return nil
}

// invalidateCategoriesCache сбрасывает кеш категорий
// Ошибка кеша не прерывает основную операцию
func (s *CatalogService) invalidateCategoriesCache(ctx context.Context) {
	if err := s.cache.DeleteCategories(ctx); err != nil {
		// Логируем ошибку, но не прерываем выполнение
		logger.Error().Err(err).Msg("failed to invalidate categories cache")
	}
}

// publishProductEvent отправляет событие товара в Kafka
// Ошибка отправки не прерывает основную операцию
func (s *CatalogService) publishProductEvent(ctx context.Context, eventType string, product *entity.Product) {
	event := entity.ProductEvent{
		EventType:  eventType,
		ProductID:  product.ID,
		Name:       product.Name,
		Price:      product.Price,
		CategoryID: product.CategoryID,
		Timestamp:  time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal product event")
		return
	}

	if err := s.kafkaProducer.PublishMessage(ctx, product.ID.String(), data); err != nil {
		// Логируем ошибку, но не прерываем выполнение
		logger.Error().Err(err).Str("event_type", eventType).Msg("failed to publish product event")
	}
}

// broadcast отправляет уведомление подписчикам витрины
// Ошибка рассылки не прерывает основную операцию
func (s *CatalogService) broadcast(ctx context.Context, message string) {
	if err := s.notifier.Broadcast(ctx, message); err != nil {
		// Логируем ошибку, но не прерываем выполнение
		logger.Error().Err(err).Msg("failed to broadcast notification")
	}
}
