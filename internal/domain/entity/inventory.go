package entity

import "time"

// Valores por defecto de una fila de inventario creada por una compra.
const (
	DefaultStock        = 0
	DefaultReorderPoint = 10
)

// Estados de stock derivados.
const (
	StockStatusOut = "Agotado"
	StockStatusLow = "Stock Bajo"
	StockStatusOK  = "OK"
)

// Inventory stock de un producto en una sucursal. Única por (BranchID, ProductID).
// Stock >= 0 se garantiza por validación y por el bloqueo de fila en cada mutación.
type Inventory struct {
	ID           string
	BranchID     string
	ProductID    string
	Stock        int
	ReorderPoint int
	UpdatedAt    time.Time
}

// NeedsReorder informa si el stock llegó al punto de reorden.
func (i *Inventory) NeedsReorder() bool {
	return i.Stock <= i.ReorderPoint
}

// StockStatus estado legible del stock.
func (i *Inventory) StockStatus() string {
	switch {
	case i.Stock == 0:
		return StockStatusOut
	case i.Stock <= i.ReorderPoint:
		return StockStatusLow
	default:
		return StockStatusOK
	}
}
