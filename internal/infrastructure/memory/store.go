// Package memory implementa los puertos de persistencia en memoria del proceso.
// Todas las escrituras, dentro o fuera de una transacción, se serializan con un único mutex;
// una transacción retiene el mutex hasta terminar y restaura una copia si falla.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/temucosoft/retail-api/internal/application/ports"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

type data struct {
	companies     map[string]entity.Company
	subscriptions map[string]entity.Subscription
	users         map[string]entity.User
	branches      map[string]entity.Branch
	products      map[string]entity.Product
	suppliers     map[string]entity.Supplier
	inventory     map[string]entity.Inventory
	sales         map[string]entity.Sale
	saleItems     map[string][]entity.SaleItem // por venta, en orden de registro
	purchases     map[string]entity.Purchase
	orders        map[string]entity.Order
	orderItems    map[string][]entity.OrderItem // por orden
	carts         map[string]entity.Cart
	cartItems     map[string]entity.CartItem
}

func newData() *data {
	return &data{
		companies:     map[string]entity.Company{},
		subscriptions: map[string]entity.Subscription{},
		users:         map[string]entity.User{},
		branches:      map[string]entity.Branch{},
		products:      map[string]entity.Product{},
		suppliers:     map[string]entity.Supplier{},
		inventory:     map[string]entity.Inventory{},
		sales:         map[string]entity.Sale{},
		saleItems:     map[string][]entity.SaleItem{},
		purchases:     map[string]entity.Purchase{},
		orders:        map[string]entity.Order{},
		orderItems:    map[string][]entity.OrderItem{},
		carts:         map[string]entity.Cart{},
		cartItems:     map[string]entity.CartItem{},
	}
}

func cloneMap[T any](m map[string]T) map[string]T {
	out := make(map[string]T, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (d *data) clone() *data {
	return &data{
		companies:     cloneMap(d.companies),
		subscriptions: cloneMap(d.subscriptions),
		users:         cloneMap(d.users),
		branches:      cloneMap(d.branches),
		products:      cloneMap(d.products),
		suppliers:     cloneMap(d.suppliers),
		inventory:     cloneMap(d.inventory),
		sales:         cloneMap(d.sales),
		saleItems:     cloneMap(d.saleItems),
		purchases:     cloneMap(d.purchases),
		orders:        cloneMap(d.orders),
		orderItems:    cloneMap(d.orderItems),
		carts:         cloneMap(d.carts),
		cartItems:     cloneMap(d.cartItems),
	}
}

// Store base de datos en memoria.
type Store struct {
	mu sync.Mutex
	d  *data
}

// NewStore crea una base vacía.
func NewStore() *Store {
	return &Store{d: newData()}
}

// guard toma el mutex fuera de una transacción; dentro, la transacción ya lo tiene.
func (s *Store) guard(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// Repositorios fuera de transacción.
func (s *Store) Companies() *CompanyRepo           { return &CompanyRepo{s: s} }
func (s *Store) Subscriptions() *SubscriptionRepo  { return &SubscriptionRepo{s: s} }
func (s *Store) Users() *UserRepo                  { return &UserRepo{s: s} }
func (s *Store) Branches() *BranchRepo             { return &BranchRepo{s: s} }
func (s *Store) Products() *ProductRepo            { return &ProductRepo{s: s} }
func (s *Store) Suppliers() *SupplierRepo          { return &SupplierRepo{s: s} }
func (s *Store) Inventory() *InventoryRepo         { return &InventoryRepo{s: s} }
func (s *Store) Sales() *SaleRepo                  { return &SaleRepo{s: s} }
func (s *Store) Purchases() *PurchaseRepo          { return &PurchaseRepo{s: s} }
func (s *Store) Orders() *OrderRepo                { return &OrderRepo{s: s} }
func (s *Store) Carts() *CartRepo                  { return &CartRepo{s: s} }
func (s *Store) TxRunner() *TxRunner               { return &TxRunner{s: s} }

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner unidad de trabajo serializada con rollback por copia.
type TxRunner struct {
	s *Store
}

// Run ejecuta fn con repositorios atados a la transacción. Si fn falla o entra en pánico
// se restaura el estado previo.
func (r *TxRunner) Run(ctx context.Context, fn func(tx repository.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.s
	s.mu.Lock()
	snapshot := s.d.clone()
	committed := false
	defer func() {
		if !committed {
			s.d = snapshot
		}
		s.mu.Unlock()
	}()
	if err := fn(txRepos{s: s}); err != nil {
		return err
	}
	committed = true
	return nil
}

type txRepos struct {
	s *Store
}

func (t txRepos) Branches() repository.BranchRepository {
	return &BranchRepo{s: t.s, inTx: true}
}
func (t txRepos) Products() repository.ProductRepository {
	return &ProductRepo{s: t.s, inTx: true}
}
func (t txRepos) Inventory() repository.InventoryRepository {
	return &InventoryRepo{s: t.s, inTx: true}
}
func (t txRepos) Sales() repository.SaleRepository {
	return &SaleRepo{s: t.s, inTx: true}
}
func (t txRepos) Purchases() repository.PurchaseRepository {
	return &PurchaseRepo{s: t.s, inTx: true}
}
func (t txRepos) Orders() repository.OrderRepository {
	return &OrderRepo{s: t.s, inTx: true}
}
func (t txRepos) Carts() repository.CartRepository {
	return &CartRepo{s: t.s, inTx: true}
}

// paginate ordena con less y aplica la página; devuelve punteros a copias y el total.
func paginate[T any](rows []T, less func(a, b T) bool, p repository.Page) ([]*T, int) {
	sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
	lo, hi := p.Slice(len(rows))
	out := make([]*T, 0, hi-lo)
	for i := lo; i < hi; i++ {
		v := rows[i]
		out = append(out, &v)
	}
	return out, len(rows)
}

func ptr[T any](v T) *T { return &v }
