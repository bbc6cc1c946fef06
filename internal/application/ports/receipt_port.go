package ports

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptLine línea del comprobante de venta.
type ReceiptLine struct {
	SKU      string
	Name     string
	Quantity int
	Price    decimal.Decimal
	Subtotal decimal.Decimal
}

// ReceiptData datos completos de un comprobante de venta ya registrada.
type ReceiptData struct {
	SaleID        string
	CompanyName   string
	CompanyRUT    string
	BranchName    string
	BranchAddress string
	Seller        string
	PaymentMethod string
	CreatedAt     time.Time
	Lines         []ReceiptLine
	Total         decimal.Decimal
}

// ReceiptRenderer genera la representación PDF de un comprobante.
// Cualquier adaptador (maroto, mock) implementa esta interfaz.
type ReceiptRenderer interface {
	Render(data ReceiptData) ([]byte, error)
}
