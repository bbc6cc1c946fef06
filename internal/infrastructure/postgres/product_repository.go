package postgres

import (
	"context"

	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, sku, name, description, category, price, cost, supplier_id, is_active, created_at, updated_at`

func scanProduct(row scanner) (*entity.Product, error) {
	var (
		p          entity.Product
		supplierID *string
	)
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Category, &p.Price, &p.Cost,
		&supplierID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.SupplierID = deref(supplierID)
	return &p, nil
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.SKU, p.Name, p.Description, p.Category, p.Price, p.Cost,
		nullable(p.SupplierID), p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return writeErr("insert product", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id), scanProduct, "get product")
}

func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku), scanProduct, "get product by sku")
}

func (r *ProductRepo) List(ctx context.Context, page repository.Page) ([]*entity.Product, int, error) {
	return pageOf(ctx, r.q, listQuery{
		op:      "list products",
		columns: productColumns,
		from:    "FROM products",
		orderBy: "name, id",
	}, page, scanProduct)
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE products SET sku = $2, name = $3, description = $4, category = $5, price = $6, cost = $7,
			supplier_id = $8, is_active = $9, updated_at = $10
		WHERE id = $1`,
		p.ID, p.SKU, p.Name, p.Description, p.Category, p.Price, p.Cost,
		nullable(p.SupplierID), p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		return writeErr("update product", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el producto. Inventario y líneas de carrito caen en cascada, las líneas de
// venta y orden quedan sin producto y una compra lo impide (ErrInUse).
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return deleteErr("delete product", err)
	}
	return nil
}

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo proveedores sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, name, rut, contact_name, email, phone, address, payment_terms, is_active, created_at`

func scanSupplier(row scanner) (*entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(&s.ID, &s.Name, &s.RUT, &s.ContactName, &s.Email, &s.Phone, &s.Address,
		&s.PaymentTerms, &s.IsActive, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO suppliers (`+supplierColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.Name, s.RUT, s.ContactName, s.Email, s.Phone, s.Address, s.PaymentTerms, s.IsActive, s.CreatedAt,
	)
	if err != nil {
		return writeErr("insert supplier", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id), scanSupplier, "get supplier")
}

func (r *SupplierRepo) GetByName(ctx context.Context, name string) (*entity.Supplier, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE name = $1`, name), scanSupplier, "get supplier by name")
}

func (r *SupplierRepo) GetByRUT(ctx context.Context, rut string) (*entity.Supplier, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE rut = $1`, rut), scanSupplier, "get supplier by rut")
}

func (r *SupplierRepo) List(ctx context.Context, page repository.Page) ([]*entity.Supplier, int, error) {
	return pageOf(ctx, r.q, listQuery{
		op:      "list suppliers",
		columns: supplierColumns,
		from:    "FROM suppliers",
		orderBy: "name, id",
	}, page, scanSupplier)
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE suppliers SET name = $2, rut = $3, contact_name = $4, email = $5, phone = $6, address = $7,
			payment_terms = $8, is_active = $9
		WHERE id = $1`,
		s.ID, s.Name, s.RUT, s.ContactName, s.Email, s.Phone, s.Address, s.PaymentTerms, s.IsActive,
	)
	if err != nil {
		return writeErr("update supplier", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el proveedor; sus productos quedan sin proveedor y una compra lo impide.
func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id); err != nil {
		return deleteErr("delete supplier", err)
	}
	return nil
}
