package repository

import (
	"context"

	"github.com/temucosoft/retail-api/internal/domain/entity"
)

// InventoryFilter filtro de inventario; CompanyID filtra por la empresa de la sucursal.
type InventoryFilter struct {
	CompanyID string
	BranchID  string
	Page      Page
}

// StockReportRow fila del reporte de stock.
type StockReportRow struct {
	Branch       string
	Product      string
	SKU          string
	Stock        int
	ReorderPoint int
}

// InventoryRepository puerto de inventario por (sucursal, producto).
// Los métodos ForUpdate solo tienen sentido dentro de una transacción (ver Tx).
type InventoryRepository interface {
	Create(ctx context.Context, inv *entity.Inventory) error
	GetByID(ctx context.Context, id string) (*entity.Inventory, error)
	GetByBranchProduct(ctx context.Context, branchID, productID string) (*entity.Inventory, error)
	List(ctx context.Context, f InventoryFilter) ([]*entity.Inventory, int, error)
	Update(ctx context.Context, inv *entity.Inventory) error
	Delete(ctx context.Context, id string) error

	// GetForUpdate bloquea la fila (SELECT FOR UPDATE). (nil, nil) si no existe.
	GetForUpdate(ctx context.Context, branchID, productID string) (*entity.Inventory, error)
	// GetOrCreateForUpdate crea la fila con los valores de defaults si no existe y la bloquea.
	GetOrCreateForUpdate(ctx context.Context, defaults *entity.Inventory) (*entity.Inventory, error)
	// SetStock actualiza solo el stock de una fila bloqueada.
	SetStock(ctx context.Context, inv *entity.Inventory) error

	StockReport(ctx context.Context, companyID string) ([]StockReportRow, error)
}
