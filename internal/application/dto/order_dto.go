package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de una orden.
type OrderItemRequest struct {
	ProductID string          `json:"product"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// CreateOrderRequest body para POST /api/orders. El total se calcula desde las líneas.
type CreateOrderRequest struct {
	CustomerName    string             `json:"customer_name"`
	CustomerEmail   string             `json:"customer_email"`
	CustomerPhone   string             `json:"customer_phone"`
	ShippingAddress string             `json:"shipping_address"`
	Notes           string             `json:"notes"`
	Status          string             `json:"status"`
	Items           []OrderItemRequest `json:"items"`
}

// UpdateOrderRequest actualización parcial de la cabecera de una orden.
type UpdateOrderRequest struct {
	CustomerName    *string `json:"customer_name"`
	CustomerEmail   *string `json:"customer_email"`
	CustomerPhone   *string `json:"customer_phone"`
	ShippingAddress *string `json:"shipping_address"`
	Notes           *string `json:"notes"`
	Status          *string `json:"status"`
}

// OrderItemResponse línea de orden en respuestas.
type OrderItemResponse struct {
	ProductID *string         `json:"product"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID              string              `json:"id"`
	UserID          *string             `json:"user"`
	CustomerName    string              `json:"customer_name"`
	CustomerEmail   string              `json:"customer_email"`
	CustomerPhone   string              `json:"customer_phone"`
	ShippingAddress string              `json:"shipping_address"`
	Notes           string              `json:"notes"`
	Items           []OrderItemResponse `json:"items"`
	Total           decimal.Decimal     `json:"total"`
	Status          string              `json:"status"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// OrderListResponse lista paginada de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// AddToCartRequest body para POST /api/cart/add. Quantity toma 1 si se omite.
type AddToCartRequest struct {
	ProductID string `json:"product"`
	Quantity  *int   `json:"quantity"`
}

// CartItemResponse línea del carrito.
type CartItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product"`
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// CartResponse carrito con líneas y total.
type CartResponse struct {
	ID    string             `json:"id"`
	Items []CartItemResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}
