// Package ledger registra ventas y compras ajustando el inventario en la misma transacción.
// Cada fila (sucursal, producto) se bloquea mientras se verifica y modifica su stock.
package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/temucosoft/retail-api/internal/application/dto"
	"github.com/temucosoft/retail-api/internal/application/ports"
	"github.com/temucosoft/retail-api/internal/application/tenant"
	"github.com/temucosoft/retail-api/internal/application/validate"
	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/identity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

// Mensajes de validación del ledger.
const (
	MsgInvalidPayment   = "Medio de pago inválido."
	MsgNoItems          = "La venta debe tener al menos un ítem."
	MsgProductNotFound  = "Producto no encontrado."
	MsgSupplierNotFound = "Proveedor no encontrado."
	MsgFutureDate       = "La fecha de compra no puede ser futura."
	msgInsufficient     = "Stock insuficiente para "
)

// Ledger casos de uso de ventas y compras.
type Ledger struct {
	txRunner  ports.TxRunner
	branches  repository.BranchRepository
	suppliers repository.SupplierRepository
	sales     repository.SaleRepository
	purchases repository.PurchaseRepository
	loc       *time.Location
	now       func() time.Time
}

// New construye el ledger. loc define el "hoy" para las fechas de compra.
func New(
	txRunner ports.TxRunner,
	branches repository.BranchRepository,
	suppliers repository.SupplierRepository,
	sales repository.SaleRepository,
	purchases repository.PurchaseRepository,
	loc *time.Location,
) *Ledger {
	if loc == nil {
		loc = time.UTC
	}
	return &Ledger{
		txRunner:  txRunner,
		branches:  branches,
		suppliers: suppliers,
		sales:     sales,
		purchases: purchases,
		loc:       loc,
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

// CreateSale valida la venta, verifica que la sucursal sea del tenant de quien vende y en una sola
// transacción descuenta el stock de cada producto y registra la venta con sus líneas.
// Si algún producto no tiene stock suficiente no queda ningún cambio aplicado.
func (l *Ledger) CreateSale(ctx context.Context, caps identity.Capabilities, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	fe := domain.FieldErrors{}
	validate.Required(fe, "branch", in.BranchID)
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		fe.Add("payment_method", MsgInvalidPayment)
	}
	if len(in.Items) == 0 {
		fe.Add("items", MsgNoItems)
	}
	for i, it := range in.Items {
		validate.Required(fe, itemField(i, "product"), it.ProductID)
		validate.Quantity(fe, itemField(i, "quantity"), it.Quantity)
		validate.Money(fe, itemField(i, "price"), it.Price)
	}
	if err := fe.OrNil(); err != nil {
		return nil, err
	}

	branch, err := l.branches.GetByID(ctx, in.BranchID)
	if err != nil {
		return nil, fmt.Errorf("ledger: obtener sucursal: %w", err)
	}
	if err := tenant.RequireOwnBranch(caps, branch, "branch", tenant.MsgSaleOtherCompany); err != nil {
		return nil, err
	}

	now := l.now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		BranchID:      branch.ID,
		UserID:        caps.UserID,
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
		CreatedAt:     now,
	}
	total := decimal.Zero
	needed := make(map[string]int, len(in.Items))
	for _, it := range in.Items {
		sale.Items = append(sale.Items, entity.SaleItem{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
		total = total.Add(entity.LineSubtotal(it.Quantity, it.Price))
		needed[it.ProductID] += it.Quantity
	}
	sale.Total = total

	err = l.txRunner.Run(ctx, func(tx repository.Tx) error {
		products := make(map[string]*entity.Product, len(needed))
		pfe := domain.FieldErrors{}
		for i, it := range in.Items {
			if _, ok := products[it.ProductID]; ok {
				continue
			}
			p, err := tx.Products().GetByID(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				pfe.Add(itemField(i, "product"), MsgProductNotFound)
				continue
			}
			products[it.ProductID] = p
		}
		if err := pfe.OrNil(); err != nil {
			return err
		}

		// Orden fijo de bloqueo para que dos ventas concurrentes no se bloqueen mutuamente.
		ids := make([]string, 0, len(needed))
		for id := range needed {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, productID := range ids {
			inv, err := tx.Inventory().GetForUpdate(ctx, branch.ID, productID)
			if err != nil {
				return err
			}
			qty := needed[productID]
			if inv == nil || inv.Stock < qty {
				return &domain.ConflictError{
					Field:  "stock",
					Reason: msgInsufficient + products[productID].Name,
					Err:    domain.ErrInsufficientStock,
				}
			}
			inv.Stock -= qty
			inv.UpdatedAt = now
			if err := tx.Inventory().SetStock(ctx, inv); err != nil {
				return err
			}
		}
		return tx.Sales().Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	out := ToSaleResponse(sale)
	return &out, nil
}

// CreatePurchase registra una compra y suma su cantidad al inventario de (sucursal, producto),
// creando la fila con stock 0 y punto de reorden 10 si no existe. Todo en una transacción.
func (l *Ledger) CreatePurchase(ctx context.Context, caps identity.Capabilities, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	fe := domain.FieldErrors{}
	validate.Required(fe, "supplier", in.SupplierID)
	validate.Required(fe, "branch", in.BranchID)
	validate.Required(fe, "product", in.ProductID)
	validate.Quantity(fe, "quantity", in.Quantity)
	validate.Money(fe, "cost", in.Cost)

	now := l.now()
	today := validate.Today(now, l.loc)
	date := today
	if in.Date != "" {
		if d, ok := validate.Date(fe, "date", in.Date, l.loc); ok {
			if d.After(today) {
				fe.Add("date", MsgFutureDate)
			}
			date = d
		}
	}
	if err := fe.OrNil(); err != nil {
		return nil, err
	}

	branch, err := l.branches.GetByID(ctx, in.BranchID)
	if err != nil {
		return nil, fmt.Errorf("ledger: obtener sucursal: %w", err)
	}
	if err := tenant.RequireOwnBranch(caps, branch, "branch", tenant.MsgPurchaseOtherCompany); err != nil {
		return nil, err
	}
	supplier, err := l.suppliers.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("ledger: obtener proveedor: %w", err)
	}
	if supplier == nil {
		return nil, domain.NewFieldError("supplier", MsgSupplierNotFound)
	}

	purchase := &entity.Purchase{
		ID:         uuid.New().String(),
		SupplierID: supplier.ID,
		BranchID:   branch.ID,
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		Cost:       in.Cost,
		Date:       date,
		Notes:      in.Notes,
		CreatedAt:  now,
	}

	err = l.txRunner.Run(ctx, func(tx repository.Tx) error {
		p, err := tx.Products().GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NewFieldError("product", MsgProductNotFound)
		}
		if err := tx.Purchases().Create(ctx, purchase); err != nil {
			return err
		}
		inv, err := tx.Inventory().GetOrCreateForUpdate(ctx, &entity.Inventory{
			ID:           uuid.New().String(),
			BranchID:     branch.ID,
			ProductID:    p.ID,
			Stock:        entity.DefaultStock,
			ReorderPoint: entity.DefaultReorderPoint,
			UpdatedAt:    now,
		})
		if err != nil {
			return err
		}
		inv.Stock += purchase.Quantity
		inv.UpdatedAt = now
		return tx.Inventory().SetStock(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	out := ToPurchaseResponse(purchase)
	return &out, nil
}

func itemField(i int, name string) string {
	return fmt.Sprintf("items.%d.%s", i, name)
}
