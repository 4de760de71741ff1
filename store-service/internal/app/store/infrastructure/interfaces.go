package infrastructure

import (
	"context"
)

// PaymentIntent - результат создания платежного намерения
// во внешнем платежном шлюзе
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// PaymentGateway интерфейс клиента внешнего платежного шлюза
// Используется для dependency injection и упрощения тестирования
type PaymentGateway interface {
	// CreatePaymentIntent создает платежное намерение
	// amount - сумма в минимальных единицах валюты (копейки, центы)
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*PaymentIntent, error)
}
