package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta; Price es el precio cobrado (se guarda tal cual).
type SaleItemRequest struct {
	ProductID string          `json:"product"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// CreateSaleRequest body para POST /api/sales. El total se calcula desde las líneas.
type CreateSaleRequest struct {
	BranchID      string            `json:"branch"`
	PaymentMethod string            `json:"payment_method"`
	Notes         string            `json:"notes"`
	Items         []SaleItemRequest `json:"items"`
}

// SaleItemResponse línea de venta en respuestas.
type SaleItemResponse struct {
	ProductID *string         `json:"product"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID            string             `json:"id"`
	BranchID      string             `json:"branch"`
	UserID        string             `json:"user"`
	Items         []SaleItemResponse `json:"items"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	Notes         string             `json:"notes"`
	CreatedAt     time.Time          `json:"created_at"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// CreatePurchaseRequest body para POST /api/purchases. Date en formato YYYY-MM-DD (hoy si se omite).
type CreatePurchaseRequest struct {
	SupplierID string          `json:"supplier"`
	BranchID   string          `json:"branch"`
	ProductID  string          `json:"product"`
	Quantity   int             `json:"quantity"`
	Cost       decimal.Decimal `json:"cost"`
	Date       string          `json:"date"`
	Notes      string          `json:"notes"`
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID         string          `json:"id"`
	SupplierID string          `json:"supplier"`
	BranchID   string          `json:"branch"`
	ProductID  string          `json:"product"`
	Quantity   int             `json:"quantity"`
	Cost       decimal.Decimal `json:"cost"`
	Date       string          `json:"date"`
	Notes      string          `json:"notes"`
	CreatedAt  time.Time       `json:"created_at"`
}

// PurchaseListResponse lista paginada de compras.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// SalesReportRequest filtros de GET /api/reports/sales (fechas YYYY-MM-DD).
type SalesReportRequest struct {
	BranchID string `query:"branch"`
	DateFrom string `query:"date_from"`
	DateTo   string `query:"date_to"`
}

// SalesReportRow fila del reporte de ventas.
type SalesReportRow struct {
	Branch        string          `json:"branch"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	CreatedAt     time.Time       `json:"created_at"`
}

// SalesReportResponse total del filtro y últimas 100 ventas.
type SalesReportResponse struct {
	Total decimal.Decimal  `json:"total"`
	Rows  []SalesReportRow `json:"rows"`
}
