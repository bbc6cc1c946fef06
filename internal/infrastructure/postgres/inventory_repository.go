package postgres

import (
	"context"

	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo inventario por (sucursal, producto). Los métodos ForUpdate bloquean la fila
// hasta el fin de la transacción; fuera de una tx el bloqueo dura solo la sentencia.
type InventoryRepo struct {
	q Querier
}

func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `i.id, i.branch_id, i.product_id, i.stock, i.reorder_point, i.updated_at`

func scanInventory(row scanner) (*entity.Inventory, error) {
	var inv entity.Inventory
	if err := row.Scan(&inv.ID, &inv.BranchID, &inv.ProductID, &inv.Stock, &inv.ReorderPoint, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory (id, branch_id, product_id, stock, reorder_point, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		inv.ID, inv.BranchID, inv.ProductID, inv.Stock, inv.ReorderPoint, inv.UpdatedAt,
	)
	if err != nil {
		return writeErr("insert inventory", err)
	}
	return nil
}

func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.Inventory, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+inventoryColumns+` FROM inventory i WHERE i.id = $1`, id), scanInventory, "get inventory")
}

func (r *InventoryRepo) GetByBranchProduct(ctx context.Context, branchID, productID string) (*entity.Inventory, error) {
	return one(r.q.QueryRow(ctx, `
		SELECT `+inventoryColumns+` FROM inventory i WHERE i.branch_id = $1 AND i.product_id = $2`,
		branchID, productID), scanInventory, "get inventory by branch/product")
}

func (r *InventoryRepo) List(ctx context.Context, f repository.InventoryFilter) ([]*entity.Inventory, int, error) {
	w := &where{}
	if f.BranchID != "" {
		w.add("i.branch_id = ?", f.BranchID)
	}
	if f.CompanyID != "" {
		w.add("b.company_id = ?", f.CompanyID)
	}
	return pageOf(ctx, r.q, listQuery{
		op:      "list inventory",
		columns: inventoryColumns,
		from: `FROM inventory i
			JOIN branches b ON b.id = i.branch_id
			JOIN products p ON p.id = i.product_id` + w.String(),
		orderBy: "p.name, i.id",
		args:    w.args,
	}, f.Page, scanInventory)
}

func (r *InventoryRepo) Update(ctx context.Context, inv *entity.Inventory) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE inventory SET branch_id = $2, product_id = $3, stock = $4, reorder_point = $5, updated_at = $6
		WHERE id = $1`,
		inv.ID, inv.BranchID, inv.ProductID, inv.Stock, inv.ReorderPoint, inv.UpdatedAt,
	)
	if err != nil {
		return writeErr("update inventory", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InventoryRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM inventory WHERE id = $1`, id); err != nil {
		return deleteErr("delete inventory", err)
	}
	return nil
}

func (r *InventoryRepo) GetForUpdate(ctx context.Context, branchID, productID string) (*entity.Inventory, error) {
	return one(r.q.QueryRow(ctx, `
		SELECT `+inventoryColumns+` FROM inventory i
		WHERE i.branch_id = $1 AND i.product_id = $2
		FOR UPDATE`,
		branchID, productID), scanInventory, "lock inventory")
}

// GetOrCreateForUpdate inserta la fila si falta (ON CONFLICT DO NOTHING resuelve la carrera
// entre dos compras simultáneas) y luego la bloquea.
func (r *InventoryRepo) GetOrCreateForUpdate(ctx context.Context, defaults *entity.Inventory) (*entity.Inventory, error) {
	insert := func(ctx context.Context) error {
		_, err := r.q.Exec(ctx, `
			INSERT INTO inventory (id, branch_id, product_id, stock, reorder_point, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (branch_id, product_id) DO NOTHING`,
			defaults.ID, defaults.BranchID, defaults.ProductID, defaults.Stock, defaults.ReorderPoint, defaults.UpdatedAt,
		)
		if err != nil {
			return writeErr("insert inventory", err)
		}
		return nil
	}
	return lockOrInsert(ctx, insert, func(ctx context.Context) (*entity.Inventory, error) {
		return r.GetForUpdate(ctx, defaults.BranchID, defaults.ProductID)
	})
}

func (r *InventoryRepo) SetStock(ctx context.Context, inv *entity.Inventory) error {
	tag, err := r.q.Exec(ctx, `UPDATE inventory SET stock = $2, updated_at = $3 WHERE id = $1`,
		inv.ID, inv.Stock, inv.UpdatedAt)
	if err != nil {
		return writeErr("set stock", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InventoryRepo) StockReport(ctx context.Context, companyID string) ([]repository.StockReportRow, error) {
	w := &where{}
	if companyID != "" {
		w.add("b.company_id = ?", companyID)
	}
	rows, err := many(ctx, r.q, func(row scanner) (*repository.StockReportRow, error) {
		var s repository.StockReportRow
		if err := row.Scan(&s.Branch, &s.Product, &s.SKU, &s.Stock, &s.ReorderPoint); err != nil {
			return nil, err
		}
		return &s, nil
	}, "stock report", `
		SELECT b.name, p.name, p.sku, i.stock, i.reorder_point
		FROM inventory i
		JOIN branches b ON b.id = i.branch_id
		JOIN products p ON p.id = i.product_id`+w.String()+`
		ORDER BY p.name, b.name`, w.args...)
	if err != nil {
		return nil, err
	}
	out := make([]repository.StockReportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	return out, nil
}
