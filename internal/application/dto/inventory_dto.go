package dto

import "time"

// CreateInventoryRequest alta de una fila de inventario. Stock y ReorderPoint toman 0 y 10 si se omiten.
type CreateInventoryRequest struct {
	BranchID     string `json:"branch"`
	ProductID    string `json:"product"`
	Stock        *int   `json:"stock"`
	ReorderPoint *int   `json:"reorder_point"`
}

// UpdateInventoryRequest actualización parcial de una fila de inventario.
type UpdateInventoryRequest struct {
	BranchID     *string `json:"branch"`
	ProductID    *string `json:"product"`
	Stock        *int    `json:"stock"`
	ReorderPoint *int    `json:"reorder_point"`
}

// InventoryResponse salida de una fila de inventario con su estado derivado.
type InventoryResponse struct {
	ID           string    `json:"id"`
	BranchID     string    `json:"branch"`
	ProductID    string    `json:"product"`
	Stock        int       `json:"stock"`
	ReorderPoint int       `json:"reorder_point"`
	NeedsReorder bool      `json:"needs_reorder"`
	StockStatus  string    `json:"stock_status"`
	UpdatedAt    time.Time `json:"last_updated"`
}

// InventoryListResponse lista paginada de inventario.
type InventoryListResponse struct {
	Items []InventoryResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// StockReportRow fila de GET /api/reports/stock.
type StockReportRow struct {
	Branch       string `json:"branch"`
	Product      string `json:"product"`
	SKU          string `json:"sku"`
	Stock        int    `json:"stock"`
	ReorderPoint int    `json:"reorder_point"`
	Status       string `json:"status"`
}
