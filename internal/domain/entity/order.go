package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden e-commerce.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// ValidOrderStatus informa si el estado es válido.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Order orden e-commerce; no pertenece a una sucursal (se despacha centralmente).
type Order struct {
	ID              string
	UserID          string // vacío si la orden no vino de un carrito
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	Total           decimal.Decimal
	Status          string
	ShippingAddress string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Items           []OrderItem
}

// OrderItem línea de una orden.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}

// Subtotal cantidad por precio unitario.
func (i OrderItem) Subtotal() decimal.Decimal {
	return LineSubtotal(i.Quantity, i.Price)
}

// Cart área de trabajo mutable de un usuario; única por usuario.
type Cart struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
	Items     []CartItem
}

// Total suma de subtotales de las líneas.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// CartItem línea del carrito; única por (CartID, ProductID).
type CartItem struct {
	ID        string
	CartID    string
	ProductID string
	Quantity  int
	Price     decimal.Decimal
	CreatedAt time.Time
}

// Subtotal cantidad por precio unitario.
func (i CartItem) Subtotal() decimal.Decimal {
	return LineSubtotal(i.Quantity, i.Price)
}
