package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/temucosoft/retail-api/internal/application/cart"
	"github.com/temucosoft/retail-api/internal/application/dto"
	"github.com/temucosoft/retail-api/internal/application/usecase"
)

// OrderHandler órdenes e-commerce y el carrito que las produce.
type OrderHandler struct {
	orders *usecase.OrderUseCase
	carts  *cart.Service
}

// NewOrderHandler construye el handler.
func NewOrderHandler(orders *usecase.OrderUseCase, carts *cart.Service) *OrderHandler {
	return &OrderHandler{orders: orders, carts: carts}
}

// List godoc
// @Summary      Listar órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        page       query  int  false  "Página"         default(1)
// @Param        page_size  query  int  false  "Tamaño página"  default(10)
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.orders.List(c.UserContext(), pageFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.orders.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear orden
// @Description  El total se calcula desde las líneas.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Datos de la orden"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.orders.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return created(c, out)
}

// Update godoc
// @Summary      Actualizar orden
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [patch]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.orders.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar orden
// @Tags         orders
// @Security     Bearer
// @Param        id   path  string  true  "ID de la orden"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.orders.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Cart godoc
// @Summary      Carrito del usuario
// @Description  Se crea vacío la primera vez.
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *OrderHandler) Cart(c *fiber.Ctx) error {
	out, err := h.carts.Get(c.UserContext(), GetCapabilities(c).UserID)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// AddToCart godoc
// @Summary      Agregar producto al carrito
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddToCartRequest  true  "product, quantity (1 por defecto)"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart/add [post]
func (h *OrderHandler) AddToCart(c *fiber.Ctx) error {
	var in dto.AddToCartRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	quantity := 1
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	out, err := h.carts.Add(c.UserContext(), GetCapabilities(c).UserID, in.ProductID, quantity)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Checkout godoc
// @Summary      Convertir el carrito en orden
// @Description  Crea la orden, copia las líneas y elimina el carrito en una sola transacción.
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cart/checkout [post]
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	order, err := h.carts.Checkout(c.UserContext(), GetCapabilities(c).UserID)
	if err != nil {
		return err
	}
	return created(c, usecase.ToOrderResponse(order))
}
