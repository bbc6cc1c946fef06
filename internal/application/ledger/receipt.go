package ledger

import (
	"context"
	"fmt"

	"github.com/temucosoft/retail-api/internal/application/ports"
	"github.com/temucosoft/retail-api/internal/domain/identity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

// Receipts arma el comprobante PDF de una venta ya registrada.
type Receipts struct {
	ledger    *Ledger
	companies repository.CompanyRepository
	products  repository.ProductRepository
	users     repository.UserRepository
	renderer  ports.ReceiptRenderer
}

// NewReceipts construye el caso de uso del comprobante.
func NewReceipts(
	l *Ledger,
	companies repository.CompanyRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	renderer ports.ReceiptRenderer,
) *Receipts {
	return &Receipts{ledger: l, companies: companies, products: products, users: users, renderer: renderer}
}

// Render genera el PDF. Aplica la misma regla 404/403 que GetSale.
// Las líneas cuyo producto fue eliminado se imprimen sin SKU.
func (r *Receipts) Render(ctx context.Context, caps identity.Capabilities, saleID string) ([]byte, error) {
	sale, branch, err := r.ledger.visibleSale(ctx, caps, saleID)
	if err != nil {
		return nil, err
	}
	data := ports.ReceiptData{
		SaleID:        sale.ID,
		PaymentMethod: sale.PaymentMethod,
		CreatedAt:     sale.CreatedAt.In(r.ledger.loc),
		Total:         sale.Total,
	}
	if branch != nil {
		data.BranchName = branch.Name
		data.BranchAddress = branch.Address
		company, err := r.companies.GetByID(ctx, branch.CompanyID)
		if err != nil {
			return nil, fmt.Errorf("comprobante: obtener empresa: %w", err)
		}
		if company != nil {
			data.CompanyName = company.Name
			data.CompanyRUT = company.RUT
		}
	}
	if sale.UserID != "" {
		u, err := r.users.GetByID(ctx, sale.UserID)
		if err != nil {
			return nil, fmt.Errorf("comprobante: obtener vendedor: %w", err)
		}
		if u != nil {
			data.Seller = u.Username
		}
	}
	for _, it := range sale.Items {
		line := ports.ReceiptLine{Name: "(producto eliminado)", Quantity: it.Quantity, Price: it.Price, Subtotal: it.Subtotal()}
		if it.ProductID != "" {
			p, err := r.products.GetByID(ctx, it.ProductID)
			if err != nil {
				return nil, fmt.Errorf("comprobante: obtener producto: %w", err)
			}
			if p != nil {
				line.SKU = p.SKU
				line.Name = p.Name
			}
		}
		data.Lines = append(data.Lines, line)
	}
	return r.renderer.Render(data)
}
