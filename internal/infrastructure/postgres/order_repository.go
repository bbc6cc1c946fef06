package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

var (
	_ repository.OrderRepository = (*OrderRepo)(nil)
	_ repository.CartRepository  = (*CartRepo)(nil)
)

// OrderRepo órdenes e-commerce sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, user_id, customer_name, customer_email, customer_phone, total, status,
	shipping_address, notes, created_at, updated_at`

func scanOrder(row scanner) (*entity.Order, error) {
	var (
		o      entity.Order
		userID *string
	)
	err := row.Scan(&o.ID, &userID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &o.Total,
		&o.Status, &o.ShippingAddress, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.UserID = deref(userID)
	return &o, nil
}

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	return pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO orders (`+orderColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			o.ID, nullable(o.UserID), o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.Total,
			o.Status, o.ShippingAddress, o.Notes, o.CreatedAt, o.UpdatedAt,
		)
		if err != nil {
			return writeErr("insert order", err)
		}
		for i, it := range o.Items {
			_, err := tx.Exec(ctx, `
				INSERT INTO order_items (id, order_id, line_no, product_id, quantity, price)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				it.ID, o.ID, i, nullable(it.ProductID), it.Quantity, it.Price,
			)
			if err != nil {
				return writeErr("insert order item", err)
			}
		}
		return nil
	})
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := one(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id), scanOrder, "get order")
	if err != nil || o == nil {
		return o, err
	}
	if err := r.loadItems(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepo) loadItems(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	byID := make(map[string]*entity.Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
	}
	items, err := many(ctx, r.q, func(row scanner) (*entity.OrderItem, error) {
		var (
			it        entity.OrderItem
			productID *string
		)
		if err := row.Scan(&it.ID, &it.OrderID, &productID, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		it.ProductID = deref(productID)
		return &it, nil
	}, "load order items", `
		SELECT id, order_id, product_id, quantity, price
		FROM order_items WHERE order_id::text = ANY($1)
		ORDER BY order_id, line_no`, ids)
	if err != nil {
		return err
	}
	for _, it := range items {
		o := byID[it.OrderID]
		o.Items = append(o.Items, *it)
	}
	return nil
}

func (r *OrderRepo) List(ctx context.Context, p repository.Page) ([]*entity.Order, int, error) {
	list, total, err := pageOf(ctx, r.q, listQuery{
		op:      "list orders",
		columns: orderColumns,
		from:    "FROM orders",
		orderBy: "created_at DESC, id",
	}, p, scanOrder)
	if err != nil {
		return nil, 0, err
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE orders SET customer_name = $2, customer_email = $3, customer_phone = $4, status = $5,
			shipping_address = $6, notes = $7, updated_at = $8
		WHERE id = $1`,
		o.ID, o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.Status, o.ShippingAddress, o.Notes, o.UpdatedAt,
	)
	if err != nil {
		return writeErr("update order", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return deleteErr("delete order", err)
	}
	return nil
}

// CartRepo carritos sobre PostgreSQL (UNIQUE user_id).
type CartRepo struct {
	q Querier
}

func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

const cartColumns = `id, user_id, created_at, updated_at`

func scanCart(row scanner) (*entity.Cart, error) {
	var c entity.Cart
	if err := row.Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

const cartItemColumns = `id, cart_id, product_id, quantity, price, created_at`

func scanCartItem(row scanner) (*entity.CartItem, error) {
	var it entity.CartItem
	if err := row.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.Price, &it.CreatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *CartRepo) withItems(ctx context.Context, c *entity.Cart, err error) (*entity.Cart, error) {
	if err != nil || c == nil {
		return c, err
	}
	items, err := many(ctx, r.q, scanCartItem, "load cart items",
		`SELECT `+cartItemColumns+` FROM cart_items WHERE cart_id = $1 ORDER BY created_at, id`, c.ID)
	if err != nil {
		return nil, err
	}
	c.Items = make([]entity.CartItem, 0, len(items))
	for _, it := range items {
		c.Items = append(c.Items, *it)
	}
	return c, nil
}

func (r *CartRepo) GetByUser(ctx context.Context, userID string) (*entity.Cart, error) {
	c, err := one(r.q.QueryRow(ctx, `SELECT `+cartColumns+` FROM carts WHERE user_id = $1`, userID), scanCart, "get cart")
	return r.withItems(ctx, c, err)
}

// GetOrCreateForUpdate crea el carrito si falta; dos peticiones simultáneas del mismo usuario
// convergen en la misma fila por el ON CONFLICT.
func (r *CartRepo) GetOrCreateForUpdate(ctx context.Context, cart *entity.Cart) (*entity.Cart, error) {
	insert := func(ctx context.Context) error {
		_, err := r.q.Exec(ctx, `
			INSERT INTO carts (`+cartColumns+`) VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id) DO NOTHING`,
			cart.ID, cart.UserID, cart.CreatedAt, cart.UpdatedAt,
		)
		if err != nil {
			return writeErr("insert cart", err)
		}
		return nil
	}
	return lockOrInsert(ctx, insert, func(ctx context.Context) (*entity.Cart, error) {
		return r.GetForUpdate(ctx, cart.UserID)
	})
}

func (r *CartRepo) GetForUpdate(ctx context.Context, userID string) (*entity.Cart, error) {
	c, err := one(r.q.QueryRow(ctx, `SELECT `+cartColumns+` FROM carts WHERE user_id = $1 FOR UPDATE`, userID), scanCart, "lock cart")
	return r.withItems(ctx, c, err)
}

func (r *CartRepo) GetItem(ctx context.Context, cartID, productID string) (*entity.CartItem, error) {
	return one(r.q.QueryRow(ctx, `
		SELECT `+cartItemColumns+` FROM cart_items WHERE cart_id = $1 AND product_id = $2`,
		cartID, productID), scanCartItem, "get cart item")
}

func (r *CartRepo) CreateItem(ctx context.Context, it *entity.CartItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO cart_items (`+cartItemColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		it.ID, it.CartID, it.ProductID, it.Quantity, it.Price, it.CreatedAt,
	)
	if err != nil {
		return writeErr("insert cart item", err)
	}
	return nil
}

func (r *CartRepo) UpdateItem(ctx context.Context, it *entity.CartItem) error {
	tag, err := r.q.Exec(ctx, `UPDATE cart_items SET quantity = $2, price = $3 WHERE id = $1`,
		it.ID, it.Quantity, it.Price)
	if err != nil {
		return writeErr("update cart item", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el carrito; sus líneas caen en cascada.
func (r *CartRepo) Delete(ctx context.Context, cartID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM carts WHERE id = $1`, cartID); err != nil {
		return deleteErr("delete cart", err)
	}
	return nil
}
