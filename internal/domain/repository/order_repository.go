package repository

import (
	"context"

	"github.com/temucosoft/retail-api/internal/domain/entity"
)

// OrderRepository puerto de órdenes e-commerce.
type OrderRepository interface {
	// Create inserta la orden y sus líneas.
	Create(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, p Page) ([]*entity.Order, int, error)
	// Update actualiza los campos de cabecera (no las líneas).
	Update(ctx context.Context, o *entity.Order) error
	Delete(ctx context.Context, id string) error
}

// CartRepository puerto del carrito (uno por usuario).
type CartRepository interface {
	// GetByUser devuelve el carrito con sus líneas; (nil, nil) si no existe.
	GetByUser(ctx context.Context, userID string) (*entity.Cart, error)
	// GetOrCreateForUpdate crea el carrito si no existe y bloquea su fila.
	GetOrCreateForUpdate(ctx context.Context, cart *entity.Cart) (*entity.Cart, error)
	// GetForUpdate bloquea el carrito del usuario y carga sus líneas; (nil, nil) si no existe.
	GetForUpdate(ctx context.Context, userID string) (*entity.Cart, error)
	GetItem(ctx context.Context, cartID, productID string) (*entity.CartItem, error)
	CreateItem(ctx context.Context, item *entity.CartItem) error
	UpdateItem(ctx context.Context, item *entity.CartItem) error
	// Delete elimina el carrito y sus líneas.
	Delete(ctx context.Context, cartID string) error
}
