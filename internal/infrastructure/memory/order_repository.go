package memory

import (
	"context"
	"sort"

	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

var (
	_ repository.OrderRepository = (*OrderRepo)(nil)
	_ repository.CartRepository  = (*CartRepo)(nil)
)

// OrderRepo órdenes en memoria.
type OrderRepo struct {
	s    *Store
	inTx bool
}

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	defer r.s.guard(r.inTx)()
	d := r.s.d
	head := *o
	head.Items = nil
	d.orders[o.ID] = head
	items := make([]entity.OrderItem, len(o.Items))
	for i, it := range o.Items {
		it.OrderID = o.ID
		items[i] = it
	}
	d.orderItems[o.ID] = items
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	defer r.s.guard(r.inTx)()
	o, ok := r.s.d.orders[id]
	if !ok {
		return nil, nil
	}
	o.Items = orderItemsOf(r.s.d, id)
	return &o, nil
}

func orderItemsOf(d *data, orderID string) []entity.OrderItem {
	return append([]entity.OrderItem(nil), d.orderItems[orderID]...)
}

func (r *OrderRepo) List(_ context.Context, p repository.Page) ([]*entity.Order, int, error) {
	defer r.s.guard(r.inTx)()
	rows := make([]entity.Order, 0, len(r.s.d.orders))
	for _, o := range r.s.d.orders {
		rows = append(rows, o)
	}
	list, total := paginate(rows, func(a, b entity.Order) bool { return a.CreatedAt.After(b.CreatedAt) }, p)
	for _, o := range list {
		o.Items = orderItemsOf(r.s.d, o.ID)
	}
	return list, total, nil
}

func (r *OrderRepo) Update(_ context.Context, o *entity.Order) error {
	defer r.s.guard(r.inTx)()
	if _, ok := r.s.d.orders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	head := *o
	head.Items = nil
	r.s.d.orders[o.ID] = head
	return nil
}

func (r *OrderRepo) Delete(_ context.Context, id string) error {
	defer r.s.guard(r.inTx)()
	deleteOrder(r.s.d, id)
	return nil
}

// CartRepo carritos en memoria.
type CartRepo struct {
	s    *Store
	inTx bool
}

func (r *CartRepo) GetByUser(_ context.Context, userID string) (*entity.Cart, error) {
	defer r.s.guard(r.inTx)()
	return cartOf(r.s.d, userID), nil
}

func cartOf(d *data, userID string) *entity.Cart {
	for _, c := range d.carts {
		if c.UserID == userID {
			c.Items = cartItemsOf(d, c.ID)
			return &c
		}
	}
	return nil
}

func cartItemsOf(d *data, cartID string) []entity.CartItem {
	var items []entity.CartItem
	for _, it := range d.cartItems {
		if it.CartID == cartID {
			items = append(items, it)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
	return items
}

func (r *CartRepo) GetOrCreateForUpdate(_ context.Context, cart *entity.Cart) (*entity.Cart, error) {
	defer r.s.guard(r.inTx)()
	d := r.s.d
	if c := cartOf(d, cart.UserID); c != nil {
		return c, nil
	}
	if _, ok := d.users[cart.UserID]; !ok {
		return nil, domain.ErrNotFound
	}
	head := *cart
	head.Items = nil
	d.carts[cart.ID] = head
	return ptr(head), nil
}

func (r *CartRepo) GetForUpdate(_ context.Context, userID string) (*entity.Cart, error) {
	defer r.s.guard(r.inTx)()
	return cartOf(r.s.d, userID), nil
}

func (r *CartRepo) GetItem(_ context.Context, cartID, productID string) (*entity.CartItem, error) {
	defer r.s.guard(r.inTx)()
	for _, it := range r.s.d.cartItems {
		if it.CartID == cartID && it.ProductID == productID {
			return ptr(it), nil
		}
	}
	return nil, nil
}

func (r *CartRepo) CreateItem(_ context.Context, item *entity.CartItem) error {
	defer r.s.guard(r.inTx)()
	d := r.s.d
	if _, ok := d.carts[item.CartID]; !ok {
		return domain.ErrNotFound
	}
	for _, it := range d.cartItems {
		if it.CartID == item.CartID && it.ProductID == item.ProductID {
			return domain.ErrDuplicate
		}
	}
	d.cartItems[item.ID] = *item
	return nil
}

func (r *CartRepo) UpdateItem(_ context.Context, item *entity.CartItem) error {
	defer r.s.guard(r.inTx)()
	if _, ok := r.s.d.cartItems[item.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.d.cartItems[item.ID] = *item
	return nil
}

func (r *CartRepo) Delete(_ context.Context, cartID string) error {
	defer r.s.guard(r.inTx)()
	deleteCart(r.s.d, cartID)
	return nil
}
