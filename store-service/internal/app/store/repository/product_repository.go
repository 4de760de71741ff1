package repository

import (
	"context"
	"errors"

	"smarttech/store-service/internal/app/store/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository создает новый репозиторий товаров
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create создает новый товар вместе с вариациями
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).Create(product)
	if result.Error != nil {
		return translateConstraintError(result.Error)
	}
	return nil
}

// GetByID получает товар по ID без связей
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	result := r.db.WithContext(ctx).First(&product, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, result.Error
	}

	return &product, nil
}

// GetWithDetails получает товар с категорией и вариациями
func (r *productRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	result := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Variations").
		First(&product, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, result.Error
	}

	return &product, nil
}

// GetAll получает товары, опционально отфильтрованные по категории
func (r *productRepository) GetAll(ctx context.Context, categoryID uuid.UUID) ([]entity.Product, error) {
	var products []entity.Product

	query := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Variations").
		Order("name ASC")

	if categoryID != uuid.Nil {
		query = query.Where("category_id = ?", categoryID)
	}

	if result := query.Find(&products); result.Error != nil {
		return nil, result.Error
	}

	return products, nil
}

// Search ищет товары по подстроке в имени или описании без учета регистра
func (r *productRepository) Search(ctx context.Context, query string) ([]entity.Product, error) {
	var products []entity.Product
	pattern := "%" + query + "%"

	result := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Variations").
		Where("name ILIKE ? OR description ILIKE ?", pattern, pattern).
		Order("name ASC").
		Find(&products)

	if result.Error != nil {
		return nil, result.Error
	}

	return products, nil
}

// Update обновляет поля товара и при replaceVariations=true
// заменяет весь набор вариаций. Обе операции выполняются в одной
// транзакции: между удалением старых и созданием новых вариаций
// параллельный читатель не увидит промежуточного состояния
func (r *productRepository) Update(ctx context.Context, product *entity.Product, variations []string, replaceVariations bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Product{}).
			Where("id = ?", product.ID).
			Updates(map[string]interface{}{
				"name":        product.Name,
				"description": product.Description,
				"price":       product.Price,
				"category_id": product.CategoryID,
				"in_stock":    product.InStock,
			})

		if result.Error != nil {
			return translateConstraintError(result.Error)
		}

		if result.RowsAffected == 0 {
			return ErrProductNotFound
		}

		if !replaceVariations {
			return nil
		}

		if err := tx.Where("product_id = ?", product.ID).
			Delete(&entity.ProductVariation{}).Error; err != nil {
			return err
		}

		if len(variations) == 0 {
			product.Variations = []entity.ProductVariation{}
			return nil
		}

		replacement := make([]entity.ProductVariation, 0, len(variations))
		for _, name := range variations {
			replacement = append(replacement, entity.ProductVariation{
				ID:        uuid.New(),
				Name:      name,
				ProductID: product.ID,
			})
		}

		if err := tx.Create(&replacement).Error; err != nil {
			return translateConstraintError(err)
		}

		product.Variations = replacement
		return nil
	})
}

// Delete удаляет товар, вариации удаляются через CASCADE
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id)

	if result.Error != nil {
		return translateConstraintError(result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// ExistAll проверяет существование набора товаров одним запросом
// Используется сервисом заказов для валидации позиций
func (r *productRepository) ExistAll(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	var found []uuid.UUID
	result := r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Where("id IN ?", ids).
		Pluck("id", &found)

	if result.Error != nil {
		return nil, result.Error
	}

	exist := make(map[uuid.UUID]bool, len(found))
	for _, id := range found {
		exist[id] = true
	}

	return exist, nil
}
