package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/temucosoft/retail-api/internal/application/dto"
	"github.com/temucosoft/retail-api/internal/application/validate"
	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

// Mensajes de órdenes.
const (
	MsgOrderNotFound = "Orden no encontrada"
	MsgInvalidStatus = "Estado no válido."
	MsgOrderNoItems  = "La orden debe tener al menos un ítem."
)

// OrderUseCase órdenes e-commerce. No pertenecen a ninguna sucursal ni empresa.
type OrderUseCase struct {
	repo     repository.OrderRepository
	products repository.ProductRepository
	now      func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(repo repository.OrderRepository, products repository.ProductRepository) *OrderUseCase {
	return &OrderUseCase{repo: repo, products: products, now: time.Now}
}

func (uc *OrderUseCase) List(ctx context.Context, page repository.Page) (*dto.OrderListResponse, error) {
	list, total, err := uc.repo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, ToOrderResponse(o))
	}
	return &dto.OrderListResponse{Items: items, Page: pageResponse(page, total)}, nil
}

func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := ToOrderResponse(o)
	return &out, nil
}

// Create registra una orden con sus líneas; el total se calcula desde las líneas.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	now := uc.now()
	o := &entity.Order{
		ID:              uuid.New().String(),
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerPhone:   in.CustomerPhone,
		Status:          in.Status,
		ShippingAddress: in.ShippingAddress,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if o.Status == "" {
		o.Status = entity.OrderPending
	}
	fe := validateOrderHeader(o)
	validate.Required(fe, "shipping_address", o.ShippingAddress)
	if len(in.Items) == 0 {
		fe.Add("items", MsgOrderNoItems)
	}
	total := decimal.Zero
	for i, it := range in.Items {
		field := func(name string) string { return fmt.Sprintf("items.%d.%s", i, name) }
		validate.Quantity(fe, field("quantity"), it.Quantity)
		validate.Money(fe, field("price"), it.Price)
		if validate.Required(fe, field("product"), it.ProductID) {
			p, err := uc.products.GetByID(ctx, it.ProductID)
			if err != nil {
				return nil, err
			}
			if p == nil {
				fe.Add(field("product"), MsgProductNotFound)
			}
		}
		o.Items = append(o.Items, entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   o.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
		total = total.Add(entity.LineSubtotal(it.Quantity, it.Price))
	}
	if err := fe.OrNil(); err != nil {
		return nil, err
	}
	o.Total = total
	if err := uc.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	out := ToOrderResponse(o)
	return &out, nil
}

// Update modifica la cabecera (datos de contacto, despacho, estado). Las líneas no cambian.
func (uc *OrderUseCase) Update(ctx context.Context, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	o, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	// Solo se validan los campos enviados; el estado siempre.
	fe := domain.FieldErrors{}
	if in.CustomerName != nil {
		o.CustomerName = *in.CustomerName
		validate.Required(fe, "customer_name", o.CustomerName)
	}
	if in.CustomerEmail != nil {
		o.CustomerEmail = *in.CustomerEmail
		validate.Email(fe, "customer_email", o.CustomerEmail, true)
	}
	if in.CustomerPhone != nil {
		o.CustomerPhone = *in.CustomerPhone
		validate.Phone(fe, "customer_phone", o.CustomerPhone)
	}
	if in.ShippingAddress != nil {
		o.ShippingAddress = *in.ShippingAddress
	}
	if in.Notes != nil {
		o.Notes = *in.Notes
	}
	if in.Status != nil {
		o.Status = *in.Status
	}
	if !entity.ValidOrderStatus(o.Status) {
		fe.Add("status", MsgInvalidStatus)
	}
	if err := fe.OrNil(); err != nil {
		return nil, err
	}
	o.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	out := ToOrderResponse(o)
	return &out, nil
}

func (uc *OrderUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *OrderUseCase) get(ctx context.Context, id string) (*entity.Order, error) {
	o, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.NotFound(MsgOrderNotFound)
	}
	return o, nil
}

// validateOrderHeader la dirección de despacho puede ir vacía (órdenes desde el carrito).
func validateOrderHeader(o *entity.Order) domain.FieldErrors {
	fe := domain.FieldErrors{}
	validate.Required(fe, "customer_name", o.CustomerName)
	validate.Email(fe, "customer_email", o.CustomerEmail, true)
	validate.Phone(fe, "customer_phone", o.CustomerPhone)
	if !entity.ValidOrderStatus(o.Status) {
		fe.Add("status", MsgInvalidStatus)
	}
	return fe
}

// ToOrderResponse mapea una orden a su DTO.
func ToOrderResponse(o *entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID: optional(it.ProductID),
			Quantity:  it.Quantity,
			Price:     it.Price,
			Subtotal:  it.Subtotal(),
		})
	}
	return dto.OrderResponse{
		ID:              o.ID,
		UserID:          optional(o.UserID),
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerPhone:   o.CustomerPhone,
		ShippingAddress: o.ShippingAddress,
		Notes:           o.Notes,
		Items:           items,
		Total:           o.Total,
		Status:          o.Status,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
