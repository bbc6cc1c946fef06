package ledger

import (
	"context"

	"github.com/temucosoft/retail-api/internal/application/dto"
	"github.com/temucosoft/retail-api/internal/application/tenant"
	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/identity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

// Ventas y compras son inmutables: solo se listan y se consultan.

// ListSales lista las ventas visibles para quien consulta.
func (l *Ledger) ListSales(ctx context.Context, caps identity.Capabilities, page repository.Page) (*dto.SaleListResponse, error) {
	companyID, err := tenant.CompanyFilter(caps)
	if err != nil {
		return nil, err
	}
	list, total, err := l.sales.List(ctx, repository.SaleFilter{CompanyID: companyID, Page: page})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, ToSaleResponse(s))
	}
	return &dto.SaleListResponse{Items: items, Page: pageResponse(page, total)}, nil
}

// GetSale obtiene una venta: 404 si no existe, 403 si es de otra empresa.
func (l *Ledger) GetSale(ctx context.Context, caps identity.Capabilities, id string) (*dto.SaleResponse, error) {
	sale, _, err := l.visibleSale(ctx, caps, id)
	if err != nil {
		return nil, err
	}
	out := ToSaleResponse(sale)
	return &out, nil
}

// visibleSale carga la venta y su sucursal verificando el alcance.
func (l *Ledger) visibleSale(ctx context.Context, caps identity.Capabilities, id string) (*entity.Sale, *entity.Branch, error) {
	sale, err := l.sales.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if sale == nil {
		return nil, nil, domain.NotFound("Venta no encontrada")
	}
	branch, err := l.branches.GetByID(ctx, sale.BranchID)
	if err != nil {
		return nil, nil, err
	}
	owner := ""
	if branch != nil {
		owner = branch.CompanyID
	}
	if err := tenant.CheckObject(caps, owner); err != nil {
		return nil, nil, err
	}
	return sale, branch, nil
}

// ListPurchases lista las compras visibles para quien consulta.
func (l *Ledger) ListPurchases(ctx context.Context, caps identity.Capabilities, page repository.Page) (*dto.PurchaseListResponse, error) {
	companyID, err := tenant.CompanyFilter(caps)
	if err != nil {
		return nil, err
	}
	list, total, err := l.purchases.List(ctx, repository.PurchaseFilter{CompanyID: companyID, Page: page})
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, ToPurchaseResponse(p))
	}
	return &dto.PurchaseListResponse{Items: items, Page: pageResponse(page, total)}, nil
}

// GetPurchase obtiene una compra: 404 si no existe, 403 si es de otra empresa.
func (l *Ledger) GetPurchase(ctx context.Context, caps identity.Capabilities, id string) (*dto.PurchaseResponse, error) {
	p, err := l.purchases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("Compra no encontrada")
	}
	branch, err := l.branches.GetByID(ctx, p.BranchID)
	if err != nil {
		return nil, err
	}
	owner := ""
	if branch != nil {
		owner = branch.CompanyID
	}
	if err := tenant.CheckObject(caps, owner); err != nil {
		return nil, err
	}
	out := ToPurchaseResponse(p)
	return &out, nil
}

// ToSaleResponse mapea una venta a su DTO.
func ToSaleResponse(s *entity.Sale) dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID: optional(it.ProductID),
			Quantity:  it.Quantity,
			Price:     it.Price,
			Subtotal:  it.Subtotal(),
		})
	}
	return dto.SaleResponse{
		ID:            s.ID,
		BranchID:      s.BranchID,
		UserID:        s.UserID,
		Items:         items,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
	}
}

// ToPurchaseResponse mapea una compra a su DTO.
func ToPurchaseResponse(p *entity.Purchase) dto.PurchaseResponse {
	return dto.PurchaseResponse{
		ID:         p.ID,
		SupplierID: p.SupplierID,
		BranchID:   p.BranchID,
		ProductID:  p.ProductID,
		Quantity:   p.Quantity,
		Cost:       p.Cost,
		Date:       p.Date.Format(dto.DateLayout),
		Notes:      p.Notes,
		CreatedAt:  p.CreatedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func pageResponse(p repository.Page, total int) dto.PageResponse {
	return dto.PageResponse{Page: p.Number, PageSize: p.Size, Total: total}
}
