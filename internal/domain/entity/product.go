package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product entrada del catálogo compartido (no pertenece a ningún tenant).
type Product struct {
	ID          string
	SKU         string // único
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo de adquisición
	SupplierID  string          // vacío si el proveedor fue eliminado
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var hundred = decimal.NewFromInt(100)

// ProfitMargin margen porcentual sobre el costo; cero si el costo es cero.
func (p *Product) ProfitMargin() decimal.Decimal {
	if !p.Cost.IsPositive() {
		return decimal.Zero
	}
	return p.Price.Sub(p.Cost).Div(p.Cost).Mul(hundred)
}

// Supplier proveedor del catálogo compartido.
type Supplier struct {
	ID           string
	Name         string // único
	RUT          string // único
	ContactName  string
	Email        string
	Phone        string
	Address      string
	PaymentTerms string
	IsActive     bool
	CreatedAt    time.Time
}
