package main

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"smarttech/pkg/logger"
	"smarttech/store-service/internal/app/store/config"
	"smarttech/store-service/internal/app/store/entity"
	"smarttech/store-service/internal/app/store/util"

	"github.com/google/uuid"
)

// Наполняет базу демонстрационными данными:
// администратор, тестовый покупатель, категории и товары с вариациями
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("store-service-seed", "info")

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Category{},
		&entity.Product{},
		&entity.ProductVariation{},
		&entity.Order{},
		&entity.OrderItem{},
		&entity.Review{},
		&entity.Post{},
	); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	if err := seed(db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to seed database")
	}

	logger.Info().Msg("Database seeded successfully")
}

func seed(db *gorm.DB) error {
	adminPassword, err := util.HashPassword(getEnv("SEED_ADMIN_PASSWORD", "admin123"))
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	userPassword, err := util.HashPassword("user123")
	if err != nil {
		return fmt.Errorf("failed to hash user password: %w", err)
	}

	// Фиксированные ID, чтобы e2e тесты могли выпускать токены для этих пользователей
	admin := entity.User{
		ID:           uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Email:        "admin@smarttech.local",
		Name:         "Администратор",
		PasswordHash: adminPassword,
		Role:         "admin",
	}

	customer := entity.User{
		ID:           uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		Email:        "customer@smarttech.local",
		Name:         "Тестовый покупатель",
		PasswordHash: userPassword,
		Role:         "user",
	}

	phones := entity.Category{ID: uuid.New(), Name: "Смартфоны", Description: "Мобильные телефоны и аксессуары"}
	laptops := entity.Category{ID: uuid.New(), Name: "Ноутбуки", Description: "Портативные компьютеры"}

	products := []entity.Product{
		{
			ID:          uuid.New(),
			Name:        "iPhone 15",
			Description: "Флагманский смартфон Apple",
			Price:       999.99,
			CategoryID:  phones.ID,
			InStock:     true,
			Variations: []entity.ProductVariation{
				{ID: uuid.New(), Name: "128GB"},
				{ID: uuid.New(), Name: "256GB"},
			},
		},
		{
			ID:          uuid.New(),
			Name:        "Galaxy S24",
			Description: "Флагманский смартфон Samsung",
			Price:       899.99,
			CategoryID:  phones.ID,
			InStock:     true,
			Variations: []entity.ProductVariation{
				{ID: uuid.New(), Name: "Черный"},
				{ID: uuid.New(), Name: "Белый"},
			},
		},
		{
			ID:          uuid.New(),
			Name:        "MacBook Air M3",
			Description: "Легкий ноутбук для работы и учебы",
			Price:       1299.99,
			CategoryID:  laptops.ID,
			InStock:     true,
		},
	}

	post := entity.Post{
		ID:       uuid.New(),
		Title:    "Добро пожаловать в SmartTech",
		Content:  "Мы открылись! Следите за новинками каталога и специальными предложениями в нашем блоге.",
		AuthorID: admin.ID,
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, user := range []entity.User{admin, customer} {
			if err := tx.Where("email = ?", user.Email).FirstOrCreate(&user).Error; err != nil {
				return fmt.Errorf("failed to seed user %s: %w", user.Email, err)
			}
		}

		for _, category := range []entity.Category{phones, laptops} {
			if err := tx.Where("name = ?", category.Name).FirstOrCreate(&category).Error; err != nil {
				return fmt.Errorf("failed to seed category %s: %w", category.Name, err)
			}
		}

		for i := range products {
			var count int64
			tx.Model(&entity.Product{}).Where("name = ?", products[i].Name).Count(&count)
			if count > 0 {
				continue
			}
			if err := tx.Create(&products[i]).Error; err != nil {
				return fmt.Errorf("failed to seed product %s: %w", products[i].Name, err)
			}
		}

		var postCount int64
		tx.Model(&entity.Post{}).Where("title = ?", post.Title).Count(&postCount)
		if postCount == 0 {
			if err := tx.Create(&post).Error; err != nil {
				return fmt.Errorf("failed to seed post: %w", err)
			}
		}

		return nil
	})
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
