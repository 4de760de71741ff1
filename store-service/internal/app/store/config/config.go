package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config содержит все настройки приложения Store Service
// Включает конфигурацию для HTTP сервера, PostgreSQL, Redis, Kafka,
// JWT и внешнего платежного шлюза
type Config struct {
	Server         ServerConfig
	Database       DatabaseConfig
	Redis          RedisConfig
	Kafka          KafkaConfig
	JWT            JWTConfig
	PaymentGateway PaymentGatewayConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8080)
}

// Address возвращает адрес сервера в формате host:port
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// DatabaseConfig - настройки подключения к PostgreSQL
// Хранит каталог, заказы, отзывы, блог и пользователей
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN возвращает строку подключения к PostgreSQL в формате libpq
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.DBName, c.Port, c.SSLMode,
	)
}

// RedisConfig - настройки подключения к Redis
// Используется для кеша категорий и pub/sub уведомлений
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Address возвращает адрес Redis в формате host:port
func (c *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// KafkaConfig - настройки Kafka для отправки доменных событий
type KafkaConfig struct {
	Brokers      []string // Список брокеров Kafka (формат: host:port)
	ProductTopic string   // Топик событий PRODUCT_CREATED, PRODUCT_UPDATED, PRODUCT_DELETED
	OrderTopic   string   // Топик событий ORDER_CREATED, ORDER_UPDATED
}

// JWTConfig - настройки для проверки JWT токенов
// Секрет должен совпадать с Auth Service
type JWTConfig struct {
	Secret string
}

// PaymentGatewayConfig - настройки внешнего платежного шлюза
type PaymentGatewayConfig struct {
	URL    string
	APIKey string
}

// Load загружает конфигурацию из переменных окружения
// Возвращает ошибку, если не удалось распарсить значения
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "store_service"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers:      strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			ProductTopic: getEnv("KAFKA_PRODUCT_TOPIC", "product_events"),
			OrderTopic:   getEnv("KAFKA_ORDER_TOPIC", "order_events"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		},
		PaymentGateway: PaymentGatewayConfig{
			URL:    getEnv("PAYMENT_GATEWAY_URL", "https://api.stripe.com"),
			APIKey: getEnv("PAYMENT_GATEWAY_API_KEY", ""),
		},
	}, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
