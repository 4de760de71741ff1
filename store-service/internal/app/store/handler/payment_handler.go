package handler

import (
	"errors"
	"net/http"

	"smarttech/store-service/internal/app/store/entity"
	"smarttech/store-service/internal/app/store/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// PaymentHandler обрабатывает HTTP запросы оплаты
type PaymentHandler struct {
	paymentService service.PaymentServiceInterface
	validator      *validator.Validate
}

// NewPaymentHandler создает новый обработчик оплаты
func NewPaymentHandler(paymentService service.PaymentServiceInterface) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		validator:      validator.New(),
	}
}

// CreatePaymentIntent обрабатывает POST /payments/intent
// Сумма берется из запроса либо из указанного заказа
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req entity.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// Валидация
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	intent, err := h.paymentService.CreatePaymentIntent(c.Request.Context(), actor, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPaymentData) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Either amount or order_id must be provided"})
			return
		}
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access to order is forbidden"})
			return
		}
		if errors.Is(err, service.ErrPaymentGatewayError) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway is unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
		return
	}

	c.JSON(http.StatusCreated, intent)
}
