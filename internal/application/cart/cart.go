// Package cart gestiona el carrito de cada usuario y su conversión en orden.
package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/temucosoft/retail-api/internal/application/dto"
	"github.com/temucosoft/retail-api/internal/application/ports"
	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

// Datos fijos de una orden creada desde el carrito.
const (
	CheckoutPhone = "+56900000000"
	CheckoutNotes = "Checkout desde carrito"
)

// Mensajes al cliente.
const (
	MsgInvalidQuantity = "Cantidad inválida"
	MsgProductNotFound = "Producto no encontrado"
	MsgEmptyCart       = "Carrito vacío"
	MsgUserNotFound    = "Usuario no encontrado"
)

// Service casos de uso del carrito.
type Service struct {
	txRunner ports.TxRunner
	carts    repository.CartRepository
	products repository.ProductRepository
	users    repository.UserRepository
	now      func() time.Time
}

// NewService construye el servicio.
func NewService(
	txRunner ports.TxRunner,
	carts repository.CartRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
) *Service {
	return &Service{txRunner: txRunner, carts: carts, products: products, users: users, now: time.Now}
}

// Get devuelve el carrito del usuario, creándolo vacío si no existe.
func (s *Service) Get(ctx context.Context, userID string) (*dto.CartResponse, error) {
	var out *entity.Cart
	err := s.txRunner.Run(ctx, func(tx repository.Tx) error {
		c, err := tx.Carts().GetOrCreateForUpdate(ctx, s.newCart(userID))
		if err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, out)
}

// Add agrega quantity unidades del producto. Si la línea existe suma la cantidad y refresca
// el precio al precio vigente del producto; si no, la crea con el precio vigente.
// Corre con la fila del carrito bloqueada para que dos Add simultáneos no pierdan unidades.
func (s *Service) Add(ctx context.Context, userID, productID string, quantity int) (*dto.CartResponse, error) {
	if quantity < 1 {
		return nil, domain.BadRequest(MsgInvalidQuantity)
	}
	var out *entity.Cart
	err := s.txRunner.Run(ctx, func(tx repository.Tx) error {
		product, err := tx.Products().GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFound(MsgProductNotFound)
		}
		c, err := tx.Carts().GetOrCreateForUpdate(ctx, s.newCart(userID))
		if err != nil {
			return err
		}
		item, err := tx.Carts().GetItem(ctx, c.ID, product.ID)
		if err != nil {
			return err
		}
		if item != nil {
			item.Quantity += quantity
			item.Price = product.Price
			if err := tx.Carts().UpdateItem(ctx, item); err != nil {
				return err
			}
		} else {
			item = &entity.CartItem{
				ID:        uuid.New().String(),
				CartID:    c.ID,
				ProductID: product.ID,
				Quantity:  quantity,
				Price:     product.Price,
				CreatedAt: s.now(),
			}
			if err := tx.Carts().CreateItem(ctx, item); err != nil {
				return err
			}
		}
		c, err = tx.Carts().GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, out)
}

// Checkout convierte el carrito en una orden pendiente y elimina el carrito.
// Todo ocurre en una transacción: si algo falla el carrito queda intacto.
func (s *Service) Checkout(ctx context.Context, userID string) (*entity.Order, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("checkout: obtener usuario: %w", err)
	}
	if user == nil {
		return nil, domain.NotFound(MsgUserNotFound)
	}

	var order *entity.Order
	err = s.txRunner.Run(ctx, func(tx repository.Tx) error {
		c, err := tx.Carts().GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if c == nil || len(c.Items) == 0 {
			return &domain.ConflictError{Field: "detail", Reason: MsgEmptyCart}
		}
		now := s.now()
		o := &entity.Order{
			ID:              uuid.New().String(),
			UserID:          user.ID,
			CustomerName:    user.Username,
			CustomerEmail:   user.Email,
			CustomerPhone:   CheckoutPhone,
			Total:           c.Total(),
			Status:          entity.OrderPending,
			ShippingAddress: "",
			Notes:           CheckoutNotes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		for _, it := range c.Items {
			o.Items = append(o.Items, entity.OrderItem{
				ID:        uuid.New().String(),
				OrderID:   o.ID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Price:     it.Price,
			})
		}
		if err := tx.Orders().Create(ctx, o); err != nil {
			return err
		}
		if err := tx.Carts().Delete(ctx, c.ID); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) newCart(userID string) *entity.Cart {
	now := s.now()
	return &entity.Cart{ID: uuid.New().String(), UserID: userID, CreatedAt: now, UpdatedAt: now}
}

func (s *Service) toResponse(ctx context.Context, c *entity.Cart) (*dto.CartResponse, error) {
	out := &dto.CartResponse{ID: c.ID, Items: make([]dto.CartItemResponse, 0, len(c.Items)), Total: decimal.Zero}
	for _, it := range c.Items {
		row := dto.CartItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Subtotal:  it.Subtotal(),
		}
		p, err := s.products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			row.ProductName = p.Name
			row.ProductSKU = p.SKU
		}
		out.Items = append(out.Items, row)
	}
	out.Total = c.Total()
	return out, nil
}
