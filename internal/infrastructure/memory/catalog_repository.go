package memory

import (
	"context"

	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
)

// ProductRepo catálogo de productos en memoria.
type ProductRepo struct {
	s    *Store
	inTx bool
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.s.guard(r.inTx)()
	d := r.s.d
	for _, o := range d.products {
		if o.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	d.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.s.guard(r.inTx)()
	if p, ok := r.s.d.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	defer r.s.guard(r.inTx)()
	for _, p := range r.s.d.products {
		if p.SKU == sku {
			return ptr(p), nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) List(_ context.Context, page repository.Page) ([]*entity.Product, int, error) {
	defer r.s.guard(r.inTx)()
	rows := make([]entity.Product, 0, len(r.s.d.products))
	for _, p := range r.s.d.products {
		rows = append(rows, p)
	}
	list, total := paginate(rows, func(a, b entity.Product) bool { return a.Name < b.Name }, page)
	return list, total, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	defer r.s.guard(r.inTx)()
	d := r.s.d
	if _, ok := d.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, o := range d.products {
		if o.ID != p.ID && o.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	d.products[p.ID] = *p
	return nil
}

// Delete elimina el producto: ErrInUse si tiene compras; borra su inventario y líneas de carrito
// y deja sin producto las líneas de ventas y órdenes.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	defer r.s.guard(r.inTx)()
	d := r.s.d
	for _, p := range d.purchases {
		if p.ProductID == id {
			return domain.ErrInUse
		}
	}
	for iid, inv := range d.inventory {
		if inv.ProductID == id {
			delete(d.inventory, iid)
		}
	}
	for iid, it := range d.cartItems {
		if it.ProductID == id {
			delete(d.cartItems, iid)
		}
	}
	nullifyProduct(d, id)
	delete(d.products, id)
	return nil
}

// SupplierRepo proveedores en memoria.
type SupplierRepo struct {
	s    *Store
	inTx bool
}

func checkSupplierUnique(d *data, s *entity.Supplier) error {
	for _, o := range d.suppliers {
		if o.ID != s.ID && (o.Name == s.Name || o.RUT == s.RUT) {
			return domain.ErrDuplicate
		}
	}
	return nil
}

func (r *SupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	defer r.s.guard(r.inTx)()
	if err := checkSupplierUnique(r.s.d, s); err != nil {
		return err
	}
	r.s.d.suppliers[s.ID] = *s
	return nil
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	defer r.s.guard(r.inTx)()
	if s, ok := r.s.d.suppliers[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *SupplierRepo) GetByName(_ context.Context, name string) (*entity.Supplier, error) {
	return r.find(func(s entity.Supplier) bool { return s.Name == name })
}

func (r *SupplierRepo) GetByRUT(_ context.Context, rut string) (*entity.Supplier, error) {
	return r.find(func(s entity.Supplier) bool { return s.RUT == rut })
}

func (r *SupplierRepo) find(match func(entity.Supplier) bool) (*entity.Supplier, error) {
	defer r.s.guard(r.inTx)()
	for _, s := range r.s.d.suppliers {
		if match(s) {
			return ptr(s), nil
		}
	}
	return nil, nil
}

func (r *SupplierRepo) List(_ context.Context, page repository.Page) ([]*entity.Supplier, int, error) {
	defer r.s.guard(r.inTx)()
	rows := make([]entity.Supplier, 0, len(r.s.d.suppliers))
	for _, s := range r.s.d.suppliers {
		rows = append(rows, s)
	}
	list, total := paginate(rows, func(a, b entity.Supplier) bool { return a.Name < b.Name }, page)
	return list, total, nil
}

func (r *SupplierRepo) Update(_ context.Context, s *entity.Supplier) error {
	defer r.s.guard(r.inTx)()
	if _, ok := r.s.d.suppliers[s.ID]; !ok {
		return domain.ErrNotFound
	}
	if err := checkSupplierUnique(r.s.d, s); err != nil {
		return err
	}
	r.s.d.suppliers[s.ID] = *s
	return nil
}

// Delete elimina el proveedor: ErrInUse si tiene compras; sus productos quedan sin proveedor.
func (r *SupplierRepo) Delete(_ context.Context, id string) error {
	defer r.s.guard(r.inTx)()
	d := r.s.d
	for _, p := range d.purchases {
		if p.SupplierID == id {
			return domain.ErrInUse
		}
	}
	for pid, p := range d.products {
		if p.SupplierID == id {
			p.SupplierID = ""
			d.products[pid] = p
		}
	}
	delete(d.suppliers, id)
	return nil
}
