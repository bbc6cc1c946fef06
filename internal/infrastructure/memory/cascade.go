package memory

import "github.com/temucosoft/retail-api/internal/domain/entity"

// Reglas de borrado explícitas por relación:
//   cascada:  empresa -> sucursales, usuarios, suscripción; sucursal -> inventario, ventas;
//             usuario -> carritos, ventas; venta/orden/carrito -> líneas; producto -> inventario, líneas de carrito
//   anular:   producto -> líneas de venta y de orden; proveedor -> productos
//   restringir: compra -> proveedor, sucursal, producto

func branchHasPurchases(d *data, branchID string) bool {
	for _, p := range d.purchases {
		if p.BranchID == branchID {
			return true
		}
	}
	return false
}

func deleteBranch(d *data, id string) {
	for iid, inv := range d.inventory {
		if inv.BranchID == id {
			delete(d.inventory, iid)
		}
	}
	for sid, s := range d.sales {
		if s.BranchID == id {
			deleteSale(d, sid)
		}
	}
	delete(d.branches, id)
}

func deleteSale(d *data, id string) {
	delete(d.saleItems, id)
	delete(d.sales, id)
}

func deleteUser(d *data, id string) {
	for cid, c := range d.carts {
		if c.UserID == id {
			deleteCart(d, cid)
		}
	}
	for sid, s := range d.sales {
		if s.UserID == id {
			deleteSale(d, sid)
		}
	}
	for oid, o := range d.orders {
		if o.UserID == id {
			o.UserID = ""
			d.orders[oid] = o
		}
	}
	delete(d.users, id)
}

func deleteCart(d *data, id string) {
	for iid, it := range d.cartItems {
		if it.CartID == id {
			delete(d.cartItems, iid)
		}
	}
	delete(d.carts, id)
}

func deleteOrder(d *data, id string) {
	delete(d.orderItems, id)
	delete(d.orders, id)
}

// nullifyProduct deja sin producto las líneas que lo referencian. Copia los slices
// para no alterar la copia de respaldo de una transacción en curso.
func nullifyProduct(d *data, productID string) {
	for sid, items := range d.saleItems {
		if out, changed := withoutProduct(items, productID, func(it *entity.SaleItem) *string { return &it.ProductID }); changed {
			d.saleItems[sid] = out
		}
	}
	for oid, items := range d.orderItems {
		if out, changed := withoutProduct(items, productID, func(it *entity.OrderItem) *string { return &it.ProductID }); changed {
			d.orderItems[oid] = out
		}
	}
}

func withoutProduct[T any](items []T, productID string, ref func(*T) *string) ([]T, bool) {
	out := make([]T, len(items))
	copy(out, items)
	changed := false
	for i := range out {
		if p := ref(&out[i]); *p == productID {
			*p = ""
			changed = true
		}
	}
	return out, changed
}
