package memory

import (
	"context"

	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo inventario en memoria. Los métodos ForUpdate no bloquean nada adicional:
// la transacción ya serializa todas las escrituras.
type InventoryRepo struct {
	s    *Store
	inTx bool
}

func (r *InventoryRepo) Create(_ context.Context, inv *entity.Inventory) error {
	defer r.s.guard(r.inTx)()
	return insertInventory(r.s.d, inv)
}

func insertInventory(d *data, inv *entity.Inventory) error {
	if _, ok := d.branches[inv.BranchID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := d.products[inv.ProductID]; !ok {
		return domain.ErrNotFound
	}
	if findInventory(d, inv.BranchID, inv.ProductID) != nil {
		return domain.ErrDuplicate
	}
	d.inventory[inv.ID] = *inv
	return nil
}

func findInventory(d *data, branchID, productID string) *entity.Inventory {
	for _, inv := range d.inventory {
		if inv.BranchID == branchID && inv.ProductID == productID {
			return ptr(inv)
		}
	}
	return nil
}

func (r *InventoryRepo) GetByID(_ context.Context, id string) (*entity.Inventory, error) {
	defer r.s.guard(r.inTx)()
	if inv, ok := r.s.d.inventory[id]; ok {
		return &inv, nil
	}
	return nil, nil
}

func (r *InventoryRepo) GetByBranchProduct(_ context.Context, branchID, productID string) (*entity.Inventory, error) {
	defer r.s.guard(r.inTx)()
	return findInventory(r.s.d, branchID, productID), nil
}

func (r *InventoryRepo) List(_ context.Context, f repository.InventoryFilter) ([]*entity.Inventory, int, error) {
	defer r.s.guard(r.inTx)()
	d := r.s.d
	rows := make([]entity.Inventory, 0)
	for _, inv := range d.inventory {
		if f.BranchID != "" && inv.BranchID != f.BranchID {
			continue
		}
		if f.CompanyID != "" && d.branches[inv.BranchID].CompanyID != f.CompanyID {
			continue
		}
		rows = append(rows, inv)
	}
	list, total := paginate(rows, func(a, b entity.Inventory) bool {
		return d.products[a.ProductID].Name < d.products[b.ProductID].Name
	}, f.Page)
	return list, total, nil
}

func (r *InventoryRepo) Update(_ context.Context, inv *entity.Inventory) error {
	defer r.s.guard(r.inTx)()
	d := r.s.d
	if _, ok := d.inventory[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	if other := findInventory(d, inv.BranchID, inv.ProductID); other != nil && other.ID != inv.ID {
		return domain.ErrDuplicate
	}
	d.inventory[inv.ID] = *inv
	return nil
}

func (r *InventoryRepo) Delete(_ context.Context, id string) error {
	defer r.s.guard(r.inTx)()
	delete(r.s.d.inventory, id)
	return nil
}

func (r *InventoryRepo) GetForUpdate(_ context.Context, branchID, productID string) (*entity.Inventory, error) {
	defer r.s.guard(r.inTx)()
	return findInventory(r.s.d, branchID, productID), nil
}

func (r *InventoryRepo) GetOrCreateForUpdate(_ context.Context, defaults *entity.Inventory) (*entity.Inventory, error) {
	defer r.s.guard(r.inTx)()
	d := r.s.d
	if inv := findInventory(d, defaults.BranchID, defaults.ProductID); inv != nil {
		return inv, nil
	}
	if err := insertInventory(d, defaults); err != nil {
		return nil, err
	}
	return ptr(*defaults), nil
}

func (r *InventoryRepo) SetStock(_ context.Context, inv *entity.Inventory) error {
	defer r.s.guard(r.inTx)()
	cur, ok := r.s.d.inventory[inv.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Stock = inv.Stock
	cur.UpdatedAt = inv.UpdatedAt
	r.s.d.inventory[inv.ID] = cur
	return nil
}

func (r *InventoryRepo) StockReport(_ context.Context, companyID string) ([]repository.StockReportRow, error) {
	defer r.s.guard(r.inTx)()
	d := r.s.d
	rows := make([]entity.Inventory, 0)
	for _, inv := range d.inventory {
		if companyID != "" && d.branches[inv.BranchID].CompanyID != companyID {
			continue
		}
		rows = append(rows, inv)
	}
	list, _ := paginate(rows, func(a, b entity.Inventory) bool {
		return d.products[a.ProductID].Name < d.products[b.ProductID].Name
	}, repository.Page{})
	out := make([]repository.StockReportRow, 0, len(list))
	for _, inv := range list {
		out = append(out, repository.StockReportRow{
			Branch:       d.branches[inv.BranchID].Name,
			Product:      d.products[inv.ProductID].Name,
			SKU:          d.products[inv.ProductID].SKU,
			Stock:        inv.Stock,
			ReorderPoint: inv.ReorderPoint,
		})
	}
	return out, nil
}
