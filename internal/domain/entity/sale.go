package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medios de pago del POS.
const (
	PaymentCash     = "efectivo"
	PaymentCredit   = "tarjeta_credito"
	PaymentDebit    = "tarjeta_debito"
	PaymentTransfer = "transferencia"
	PaymentCheque   = "cheque"
)

// ValidPaymentMethod informa si el medio de pago es aceptado.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCredit, PaymentDebit, PaymentTransfer, PaymentCheque:
		return true
	}
	return false
}

// Sale transacción inmutable de punto de venta.
type Sale struct {
	ID            string
	BranchID      string
	UserID        string
	Total         decimal.Decimal
	PaymentMethod string
	Notes         string
	CreatedAt     time.Time
	Items         []SaleItem
}

// SaleItem línea de venta; Price es el precio al momento de la venta.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string // vacío si el producto fue eliminado
	Quantity  int
	Price     decimal.Decimal
}

// Subtotal cantidad por precio unitario.
func (i SaleItem) Subtotal() decimal.Decimal {
	return LineSubtotal(i.Quantity, i.Price)
}

// LineSubtotal cantidad × precio en aritmética decimal exacta.
func LineSubtotal(quantity int, price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// Purchase evento de reposición contra un proveedor; incrementa el inventario al crearse.
type Purchase struct {
	ID         string
	SupplierID string
	BranchID   string
	ProductID  string
	Quantity   int
	Cost       decimal.Decimal
	Date       time.Time
	Notes      string
	CreatedAt  time.Time
}
