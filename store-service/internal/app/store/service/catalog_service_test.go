package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"smarttech/store-service/internal/app/store/entity"
	"smarttech/store-service/internal/app/store/repository"
	"smarttech/store-service/internal/app/store/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCatalogServiceWithMocks() (*CatalogService, *mocks.MockCategoryRepository, *mocks.MockProductRepository, *mocks.MockCategoryCache, *mocks.MockMessagePublisher, *mocks.MockNotifier) {
	categoryRepo := new(mocks.MockCategoryRepository)
	productRepo := new(mocks.MockProductRepository)
	cache := new(mocks.MockCategoryCache)
	kafkaProducer := new(mocks.MockMessagePublisher)
	notifier := new(mocks.MockNotifier)
	service := NewCatalogService(categoryRepo, productRepo, cache, kafkaProducer, notifier)
	return service, categoryRepo, productRepo, cache, kafkaProducer, notifier
}

// ===================== Category Tests =====================

func TestCreateCategory_Success(t *testing.T) {
	// Arrange
	service, categoryRepo, _, cache, _, _ := newCatalogServiceWithMocks()

	ctx := context.Background()
	req := &entity.CreateCategoryRequest{Name: "Смартфоны", Description: "Мобильные телефоны"}

	categoryRepo.On("Create", ctx, mock.AnythingOfType("*entity.Category")).Return(nil)
	cache.On("DeleteCategories", ctx).Return(nil)

	// Act
	result, err := service.CreateCategory(ctx, req)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "Смартфоны", result.Name)
	assert.NotEqual(t, uuid.Nil, result.ID)
	categoryRepo.AssertExpectations(t)
	cache.AssertCalled(t, "DeleteCategories", ctx)
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	// Arrange
	service, categoryRepo, _, cache, _, _ := newCatalogServiceWithMocks()

	ctx := context.Background()
	req := &entity.CreateCategoryRequest{Name: "Смартфоны"}

	categoryRepo.On("Create", ctx, mock.AnythingOfType("*entity.Category")).
		Return(repository.ErrDuplicateKey)

	// Act
	result, err := service.CreateCategory(ctx, req)

	// Assert
	assert.ErrorIs(t, err, ErrDuplicateCategory)
	assert.Nil(t, result)
	cache.AssertNotCalled(t, "DeleteCategories", mock.Anything)
}

func TestGetCategories_CacheHit(t *testing.T) {
	// Arrange
	service, categoryRepo, _, cache, _, _ := newCatalogServiceWithMocks()

	ctx := context.Background()
	cached := []entity.Category{{ID: uuid.New(), Name: "Ноутбуки"}}

	cache.On("GetCategories", ctx).Return(cached, nil)

	// Act
	result, err := service.GetCategories(ctx)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, cached, result)
	// БД не трогаем при попадании в кеш
	categoryRepo.AssertNotCalled(t, "GetAll", mock.Anything)
}

func TestGetCategories_CacheMissFillsCache(t *testing.T) {
	// Arrange
	service, categoryRepo, _, cache, _, _ := newCatalogServiceWithMocks()

	ctx := context.Background()
	dbCategories := []entity.Category{{ID: uuid.New(), Name: "Планшеты"}}

	cache.On("GetCategories", ctx).Return(nil, nil)
	categoryRepo.On("GetAll", ctx).Return(dbCategories, nil)
	cache.On("SetCategories", ctx, dbCategories, time.Hour).Return(nil)

	// Act
	result, err := service.GetCategories(ctx)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, dbCategories, result)
	cache.AssertCalled(t, "SetCategories", ctx, dbCategories, time.Hour)
}

func TestGetCategories_CacheErrorFallsBackToDb(t *testing.T) {
	// Arrange
	service, categoryRepo, _, cache, _, _ := newCatalogServiceWithMocks()

	ctx := context.Background()
	dbCategories := []entity.Category{{ID: uuid.New(), Name: "Аксессуары"}}

	cache.On("GetCategories", ctx).Return(nil, errors.New("redis down"))
	categoryRepo.On("GetAll", ctx).Return(dbCategories, nil)
	cache.On("SetCategories", ctx, dbCategories, time.Hour).Return(errors.New("redis down"))

	// Act
	result, err := service.GetCategories(ctx)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, dbCategories, result)
}

func TestDeleteCategory_WithProductsRejected(t *testing.T) {
	// Arrange
	service, categoryRepo, _, cache, _, _ := newCatalogServiceWithMocks()

	ctx := context.Background()
	categoryID := uuid.New()

	categoryRepo.On("Delete", ctx, categoryID).Return(repository.ErrForeignKey)

	// Act
	err := service.DeleteCategory(ctx, categoryID)

	// Assert
	assert.ErrorIs(t, err, ErrCategoryInUse)
	cache.AssertNotCalled(t, "DeleteCategories", mock.Anything)
}

func TestUpdateCategory_NotFound(t *testing.T) {
	// Arrange
	service, categoryRepo, _, _, _, _ := newCatalogServiceWithMocks()

	ctx := context.Background()
	categoryID := uuid.New()

	categoryRepo.On("GetByID", ctx, categoryID).Return(nil, repository.ErrCategoryNotFound)

	// Act
	result, err := service.UpdateCategory(ctx, categoryID, &entity.UpdateCategoryRequest{Name: "Новое имя"})

	// Assert
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.Nil(t, result)
}

// ===================== Product Tests =====================

func TestCreateProduct_Success(t *testing.T) {
	// Arrange
	service, categoryRepo, productRepo, _, kafkaProducer, notifier := newCatalogServiceWithMocks()

	ctx := context.Background()
	categoryID := uuid.New()

	req := &entity.CreateProductRequest{
		Name:       "iPhone 15",
		Price:      999.99,
		CategoryID: categoryID,
		Variations: []string{"128GB", "256GB"},
	}

	categoryRepo.On("GetByID", ctx, categoryID).Return(&entity.Category{ID: categoryID}, nil)
	productRepo.On("Create", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)
	kafkaProducer.On("PublishMessage", ctx, mock.AnythingOfType("string"), mock.Anything).Return(nil)
	notifier.On("Broadcast", ctx, mock.AnythingOfType("string")).Return(nil)

	// Act
	result, err := service.CreateProduct(ctx, req)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "iPhone 15", result.Name)
	assert.True(t, result.InStock)
	assert.Len(t, result.Variations, 2)
	for _, v := range result.Variations {
		assert.Equal(t, result.ID, v.ProductID)
	}
	productRepo.AssertExpectations(t)
	kafkaProducer.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestCreateProduct_CategoryNotFound(t *testing.T) {
	// Arrange
	service, categoryRepo, productRepo, _, _, _ := newCatalogServiceWithMocks()

	ctx := context.Background()
	categoryID := uuid.New()

	req := &entity.CreateProductRequest{Name: "Товар", Price: 1.0, CategoryID: categoryID}

	categoryRepo.On("GetByID", ctx, categoryID).Return(nil, repository.ErrCategoryNotFound)

	// Act
	result, err := service.CreateProduct(ctx, req)

	// Assert
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.Nil(t, result)
	productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateProduct_ReplacesVariations(t *testing.T) {
	// Arrange
	service, _, productRepo, _, kafkaProducer, _ := newCatalogServiceWithMocks()

	ctx := context.Background()
	productID := uuid.New()

	existing := &entity.Product{
		ID:    productID,
		Name:  "Ноутбук",
		Price: 1500.0,
		Variations: []entity.ProductVariation{
			{ID: uuid.New(), Name: "8GB RAM", ProductID: productID},
		},
	}

	newVariations := []string{"16GB RAM", "32GB RAM"}
	req := &entity.UpdateProductRequest{Variations: &newVariations}

	productRepo.On("GetWithDetails", ctx, productID).Return(existing, nil)
	productRepo.On("Update", ctx, mock.AnythingOfType("*entity.Product"), newVariations, true).Return(nil)
	kafkaProducer.On("PublishMessage", ctx, mock.AnythingOfType("string"), mock.Anything).Return(nil)

	// Act
	result, err := service.UpdateProduct(ctx, productID, req)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, result)
	productRepo.AssertCalled(t, "Update", ctx, mock.AnythingOfType("*entity.Product"), newVariations, true)
}

func TestUpdateProduct_NilVariationsUntouched(t *testing.T) {
	// Arrange
	service, _, productRepo, _, kafkaProducer, _ := newCatalogServiceWithMocks()

	ctx := context.Background()
	productID := uuid.New()

	existing := &entity.Product{ID: productID, Name: "Ноутбук", Price: 1500.0}
	newPrice := 1400.0
	req := &entity.UpdateProductRequest{Price: &newPrice}

	productRepo.On("GetWithDetails", ctx, productID).Return(existing, nil)
	productRepo.On("Update", ctx, mock.AnythingOfType("*entity.Product"), []string(nil), false).Return(nil)
	kafkaProducer.On("PublishMessage", ctx, mock.AnythingOfType("string"), mock.Anything).Return(nil)

	// Act
	result, err := service.UpdateProduct(ctx, productID, req)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 1400.0, result.Price)
	productRepo.AssertCalled(t, "Update", ctx, mock.AnythingOfType("*entity.Product"), []string(nil), false)
}

func TestDeleteProduct_PublishesEvent(t *testing.T) {
	// Arrange
	service, _, productRepo, _, kafkaProducer, _ := newCatalogServiceWithMocks()

	ctx := context.Background()
	productID := uuid.New()

	productRepo.On("GetByID", ctx, productID).Return(&entity.Product{ID: productID, Name: "Старый товар"}, nil)
	productRepo.On("Delete", ctx, productID).Return(nil)
	kafkaProducer.On("PublishMessage", ctx, productID.String(), mock.Anything).Return(nil)

	// Act
	err := service.DeleteProduct(ctx, productID)

	// Assert
	assert.NoError(t, err)
	kafkaProducer.AssertCalled(t, "PublishMessage", ctx, productID.String(), mock.Anything)
}

func TestSearchProducts_DelegatesToRepository(t *testing.T) {
	// Arrange
	service, _, productRepo, _, _, _ := newCatalogServiceWithMocks()

	ctx := context.Background()
	found := []entity.Product{{ID: uuid.New(), Name: "iPhone 15"}}

	productRepo.On("Search", ctx, "iphone").Return(found, nil)

	// Act
	result, err := service.SearchProducts(ctx, "iphone")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, found, result)
}
