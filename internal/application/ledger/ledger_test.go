package ledger_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/temucosoft/retail-api/internal/application/dto"
	"github.com/temucosoft/retail-api/internal/application/ledger"
	"github.com/temucosoft/retail-api/internal/application/ports"
	"github.com/temucosoft/retail-api/internal/application/tenant"
	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/identity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
	"github.com/temucosoft/retail-api/internal/infrastructure/memory"
)

type fixture struct {
	store    *memory.Store
	ledger   *ledger.Ledger
	seller   identity.Capabilities
	branch   *entity.Branch
	foreign  *entity.Branch
	product  *entity.Product
	supplier *entity.Supplier
}

var fixedNow = time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()

	acme := &entity.Company{ID: "c-acme", Name: "Acme", RUT: "76086428-5", IsActive: true, CreatedAt: fixedNow}
	other := &entity.Company{ID: "c-other", Name: "Otra", RUT: "11111111-1", IsActive: true, CreatedAt: fixedNow}
	require.NoError(t, s.Companies().Create(ctx, acme))
	require.NoError(t, s.Companies().Create(ctx, other))

	seller := &entity.User{ID: "u-seller", CompanyID: acme.ID, Username: "vendedor1", Email: "v@acme.cl", Role: identity.RoleVendedor, IsActive: true}
	require.NoError(t, s.Users().Create(ctx, seller))

	branch := &entity.Branch{ID: "b-centro", CompanyID: acme.ID, Name: "Centro", IsActive: true}
	foreign := &entity.Branch{ID: "b-ajena", CompanyID: other.ID, Name: "Ajena", IsActive: true}
	require.NoError(t, s.Branches().Create(ctx, branch))
	require.NoError(t, s.Branches().Create(ctx, foreign))

	supplier := &entity.Supplier{ID: "s-1", Name: "Distribuidora Sur", RUT: "12345678-5", IsActive: true}
	require.NoError(t, s.Suppliers().Create(ctx, supplier))

	product := &entity.Product{
		ID: "p-1", SKU: "SKU-1", Name: "Café", Price: decimal.NewFromInt(1000),
		Cost: decimal.NewFromInt(600), SupplierID: supplier.ID, IsActive: true,
	}
	require.NoError(t, s.Products().Create(ctx, product))

	l := ledger.New(s.TxRunner(), s.Branches(), s.Suppliers(), s.Sales(), s.Purchases(), time.UTC).
		WithClock(func() time.Time { return fixedNow })

	return &fixture{
		store:    s,
		ledger:   l,
		seller:   identity.CapabilitiesOf(seller.Principal(false)),
		branch:   branch,
		foreign:  foreign,
		product:  product,
		supplier: supplier,
	}
}

func (f *fixture) setStock(t *testing.T, stock int) {
	t.Helper()
	require.NoError(t, f.store.Inventory().Create(context.Background(), &entity.Inventory{
		ID: "inv-1", BranchID: f.branch.ID, ProductID: f.product.ID, Stock: stock, ReorderPoint: 2,
	}))
}

func (f *fixture) stock(t *testing.T) int {
	t.Helper()
	inv, err := f.store.Inventory().GetByBranchProduct(context.Background(), f.branch.ID, f.product.ID)
	require.NoError(t, err)
	require.NotNil(t, inv)
	return inv.Stock
}

func (f *fixture) sale(qty int, price int64) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		BranchID:      f.branch.ID,
		PaymentMethod: entity.PaymentCash,
		Items: []dto.SaleItemRequest{
			{ProductID: f.product.ID, Quantity: qty, Price: decimal.NewFromInt(price)},
		},
	}
}

func TestCreateSale_StockInsuficienteNoModificaNada(t *testing.T) {
	f := newFixture(t)
	f.setStock(t, 5)

	_, err := f.ledger.CreateSale(context.Background(), f.seller, f.sale(6, 1000))

	var ce *domain.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "stock", ce.Field)
	assert.Contains(t, ce.Reason, "Café")
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, 5, f.stock(t))

	n, err := f.store.Sales().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateSale_DescuentaStockYGuardaPrecio(t *testing.T) {
	f := newFixture(t)
	f.setStock(t, 5)

	out, err := f.ledger.CreateSale(context.Background(), f.seller, f.sale(3, 1000))
	require.NoError(t, err)
	assert.Equal(t, 2, f.stock(t))
	assert.True(t, out.Total.Equal(decimal.NewFromInt(3000)))

	// Cambiar el precio del producto no altera la línea registrada.
	f.product.Price = decimal.NewFromInt(5000)
	require.NoError(t, f.store.Products().Update(context.Background(), f.product))

	sale, err := f.store.Sales().GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	require.Len(t, sale.Items, 1)
	assert.True(t, sale.Items[0].Price.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, f.seller.UserID, sale.UserID)
}

func TestCreateSale_AgregaCantidadesDelMismoProducto(t *testing.T) {
	f := newFixture(t)
	f.setStock(t, 5)

	req := f.sale(3, 1000)
	req.Items = append(req.Items, dto.SaleItemRequest{ProductID: f.product.ID, Quantity: 3, Price: decimal.NewFromInt(1000)})

	_, err := f.ledger.CreateSale(context.Background(), f.seller, req)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, 5, f.stock(t))
}

func TestCreateSale_FallaEnSegundoProductoRestauraElPrimero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.setStock(t, 5)
	te := &entity.Product{ID: "p-2", SKU: "SKU-2", Name: "Té", Price: decimal.NewFromInt(800), IsActive: true}
	require.NoError(t, f.store.Products().Create(ctx, te))
	require.NoError(t, f.store.Inventory().Create(ctx, &entity.Inventory{
		ID: "inv-2", BranchID: f.branch.ID, ProductID: te.ID, Stock: 1, ReorderPoint: 2,
	}))

	// p-1 se bloquea y descuenta primero; p-2 no alcanza.
	req := f.sale(2, 1000)
	req.Items = append(req.Items, dto.SaleItemRequest{ProductID: te.ID, Quantity: 3, Price: decimal.NewFromInt(800)})

	_, err := f.ledger.CreateSale(ctx, f.seller, req)

	var ce *domain.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Reason, "Té")
	assert.Equal(t, 5, f.stock(t))
	inv, err := f.store.Inventory().GetByBranchProduct(ctx, f.branch.ID, te.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, inv.Stock)
	n, err := f.store.Sales().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestListados_VentasYComprasPorEmpresa(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.setStock(t, 5)
	require.NoError(t, f.store.Inventory().Create(ctx, &entity.Inventory{
		ID: "inv-ajena", BranchID: f.foreign.ID, ProductID: f.product.ID, Stock: 5, ReorderPoint: 2,
	}))
	super := identity.Capabilities{Authenticated: true, UserID: "root", Role: identity.RoleSuperAdmin, Scope: identity.ScopePlatformWide}
	foreigner := identity.Capabilities{Authenticated: true, UserID: "u-otra", Role: identity.RoleGerente, Scope: identity.ScopeSingleCompany, CompanyID: f.foreign.CompanyID}

	_, err := f.ledger.CreateSale(ctx, f.seller, f.sale(1, 1000))
	require.NoError(t, err)
	_, err = f.ledger.CreatePurchase(ctx, f.seller, f.purchase(2))
	require.NoError(t, err)
	foreignSale := f.sale(1, 1000)
	foreignSale.BranchID = f.foreign.ID
	_, err = f.ledger.CreateSale(ctx, super, foreignSale)
	require.NoError(t, err)
	foreignPurchase := f.purchase(2)
	foreignPurchase.BranchID = f.foreign.ID
	_, err = f.ledger.CreatePurchase(ctx, super, foreignPurchase)
	require.NoError(t, err)

	all := repository.Page{}
	cases := []struct {
		name   string
		caps   identity.Capabilities
		branch string
		total  int
	}{
		{"vendedor ve su empresa", f.seller, f.branch.ID, 1},
		{"gerente de otra empresa ve la suya", foreigner, f.foreign.ID, 1},
		{"super_admin ve todo", super, "", 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sales, err := f.ledger.ListSales(ctx, tc.caps, all)
			require.NoError(t, err)
			require.Len(t, sales.Items, tc.total)
			purchases, err := f.ledger.ListPurchases(ctx, tc.caps, all)
			require.NoError(t, err)
			require.Len(t, purchases.Items, tc.total)
			if tc.branch != "" {
				assert.Equal(t, tc.branch, sales.Items[0].BranchID)
				assert.Equal(t, tc.branch, purchases.Items[0].BranchID)
			}
		})
	}
}

func TestCreateSale_SinFilaDeInventario(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.CreateSale(context.Background(), f.seller, f.sale(1, 1000))
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestCreateSale_SucursalDeOtraEmpresa(t *testing.T) {
	f := newFixture(t)
	req := f.sale(1, 1000)
	req.BranchID = f.foreign.ID

	_, err := f.ledger.CreateSale(context.Background(), f.seller, req)

	var fe domain.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{tenant.MsgSaleOtherCompany}, fe["branch"])
}

func TestCreateSale_Validacion(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.CreateSale(context.Background(), f.seller, dto.CreateSaleRequest{
		BranchID:      f.branch.ID,
		PaymentMethod: "bitcoin",
		Items: []dto.SaleItemRequest{
			{ProductID: f.product.ID, Quantity: 0, Price: decimal.RequireFromString("10.555")},
		},
	})

	var fe domain.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "payment_method")
	assert.Contains(t, fe, "items.0.quantity")
	assert.Contains(t, fe, "items.0.price")
}

func TestCreateSale_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	req := f.sale(1, 1000)
	req.Items[0].ProductID = "no-existe"

	_, err := f.ledger.CreateSale(context.Background(), f.seller, req)

	var fe domain.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{ledger.MsgProductNotFound}, fe["items.0.product"])
}

func TestCreateSale_ConcurrentesNuncaDejanStockNegativo(t *testing.T) {
	f := newFixture(t)
	f.setStock(t, 10)

	var ok, rejected atomic.Int32
	var g errgroup.Group
	for i := 0; i < 25; i++ {
		g.Go(func() error {
			_, err := f.ledger.CreateSale(context.Background(), f.seller, f.sale(1, 1000))
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.EqualValues(t, 10, ok.Load())
	assert.EqualValues(t, 15, rejected.Load())
	assert.Equal(t, 0, f.stock(t))
}

func (f *fixture) purchase(qty int) dto.CreatePurchaseRequest {
	return dto.CreatePurchaseRequest{
		SupplierID: f.supplier.ID,
		BranchID:   f.branch.ID,
		ProductID:  f.product.ID,
		Quantity:   qty,
		Cost:       decimal.NewFromInt(600),
	}
}

func TestCreatePurchase_CreaInventarioPorDefecto(t *testing.T) {
	f := newFixture(t)

	out, err := f.ledger.CreatePurchase(context.Background(), f.seller, f.purchase(10))
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", out.Date)

	inv, err := f.store.Inventory().GetByBranchProduct(context.Background(), f.branch.ID, f.product.ID)
	require.NoError(t, err)
	require.NotNil(t, inv)
	assert.Equal(t, 10, inv.Stock)
	assert.Equal(t, entity.DefaultReorderPoint, inv.ReorderPoint)
}

func TestCreatePurchase_SumaAlStockExistente(t *testing.T) {
	f := newFixture(t)
	f.setStock(t, 4)

	_, err := f.ledger.CreatePurchase(context.Background(), f.seller, f.purchase(6))
	require.NoError(t, err)
	assert.Equal(t, 10, f.stock(t))
}

func TestCreatePurchase_SucursalDeOtraEmpresaNoCreaFilas(t *testing.T) {
	f := newFixture(t)
	req := f.purchase(5)
	req.BranchID = f.foreign.ID

	_, err := f.ledger.CreatePurchase(context.Background(), f.seller, req)

	var fe domain.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{tenant.MsgPurchaseOtherCompany}, fe["branch"])

	super := identity.Capabilities{Authenticated: true, UserID: "root", Role: identity.RoleSuperAdmin, Scope: identity.ScopePlatformWide}
	purchases, total, err := f.store.Purchases().List(context.Background(), repository.PurchaseFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, purchases)

	inv, total, err := f.store.Inventory().List(context.Background(), repository.InventoryFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, inv)

	// super_admin sí puede comprar para cualquier sucursal.
	_, err = f.ledger.CreatePurchase(context.Background(), super, req)
	require.NoError(t, err)
}

func TestCreatePurchase_FechaFutura(t *testing.T) {
	f := newFixture(t)
	req := f.purchase(1)
	req.Date = "2025-03-15"

	_, err := f.ledger.CreatePurchase(context.Background(), f.seller, req)

	var fe domain.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{ledger.MsgFutureDate}, fe["date"])
}

func TestCreatePurchase_ProveedorInexistente(t *testing.T) {
	f := newFixture(t)
	req := f.purchase(1)
	req.SupplierID = "s-x"

	_, err := f.ledger.CreatePurchase(context.Background(), f.seller, req)

	var fe domain.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{ledger.MsgSupplierNotFound}, fe["supplier"])
}

type captureRenderer struct {
	got ports.ReceiptData
}

func (c *captureRenderer) Render(data ports.ReceiptData) ([]byte, error) {
	c.got = data
	return []byte("%PDF-"), nil
}

func TestReceipts_Render(t *testing.T) {
	f := newFixture(t)
	f.setStock(t, 5)
	sale, err := f.ledger.CreateSale(context.Background(), f.seller, f.sale(2, 1000))
	require.NoError(t, err)

	r := &captureRenderer{}
	receipts := ledger.NewReceipts(f.ledger, f.store.Companies(), f.store.Products(), f.store.Users(), r)

	pdf, err := receipts.Render(context.Background(), f.seller, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-"), pdf)
	assert.Equal(t, "Acme", r.got.CompanyName)
	assert.Equal(t, "Centro", r.got.BranchName)
	assert.Equal(t, "vendedor1", r.got.Seller)
	require.Len(t, r.got.Lines, 1)
	assert.Equal(t, "SKU-1", r.got.Lines[0].SKU)
	assert.True(t, r.got.Total.Equal(decimal.NewFromInt(2000)))

	outsider := identity.Capabilities{Authenticated: true, UserID: "x", Role: identity.RoleAdminCliente, Scope: identity.ScopeSingleCompany, CompanyID: "c-other"}
	_, err = receipts.Render(context.Background(), outsider, sale.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = receipts.Render(context.Background(), f.seller, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
