package service

import "errors"

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryInUse       = errors.New("category has products and cannot be deleted")
	ErrDuplicateCategory   = errors.New("category with this name already exists")
	ErrProductNotFound     = errors.New("product not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrEmptyOrder          = errors.New("order must contain at least one item")
	ErrInvalidOrderStatus  = errors.New("invalid order status transition")
	ErrUnknownOrderStatus  = errors.New("unknown order status")
	ErrForbidden           = errors.New("access to resource is forbidden")
	ErrPostNotFound        = errors.New("post not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidPaymentData  = errors.New("either amount or order_id must be provided")
	ErrPaymentGatewayError = errors.New("payment gateway is unavailable")
)
