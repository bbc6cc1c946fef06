package repository

// Tx repositorios atados a una misma unidad de trabajo. Todo lo que se escribe a través
// de ellos se confirma o se descarta en bloque.
type Tx interface {
	Branches() BranchRepository
	Products() ProductRepository
	Inventory() InventoryRepository
	Sales() SaleRepository
	Purchases() PurchaseRepository
	Orders() OrderRepository
	Carts() CartRepository
}
