package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
	"github.com/temucosoft/retail-api/internal/infrastructure/memory"
)

func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Companies().Create(ctx, &entity.Company{ID: "c-1", Name: "Acme", RUT: "76.086.428-5", IsActive: true}))
	require.NoError(t, s.Branches().Create(ctx, &entity.Branch{ID: "b-1", CompanyID: "c-1", Name: "Centro"}))
	require.NoError(t, s.Suppliers().Create(ctx, &entity.Supplier{ID: "s-1", Name: "Distribuidora", RUT: "12.345.678-5"}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p-1", SKU: "CAF-1", Name: "Café", Price: decimal.NewFromInt(1000), SupplierID: "s-1"}))
	require.NoError(t, s.Inventory().Create(ctx, &entity.Inventory{ID: "i-1", BranchID: "b-1", ProductID: "p-1", Stock: 5, ReorderPoint: 2}))
	return s
}

func TestTxRunner_RollbackAlFallar(t *testing.T) {
	s := seed(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.TxRunner().Run(ctx, func(tx repository.Tx) error {
		inv, err := tx.Inventory().GetForUpdate(ctx, "b-1", "p-1")
		require.NoError(t, err)
		inv.Stock = 0
		require.NoError(t, tx.Inventory().SetStock(ctx, inv))
		return boom
	})
	require.ErrorIs(t, err, boom)

	inv, err := s.Inventory().GetByID(ctx, "i-1")
	require.NoError(t, err)
	assert.Equal(t, 5, inv.Stock)
}

func TestTxRunner_ContextoCancelado(t *testing.T) {
	s := seed(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := s.TxRunner().Run(ctx, func(repository.Tx) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestDelete_CompraRestringeSucursalProveedorYProducto(t *testing.T) {
	s := seed(t)
	ctx := context.Background()
	require.NoError(t, s.Purchases().Create(ctx, &entity.Purchase{ID: "pu-1", SupplierID: "s-1", BranchID: "b-1", ProductID: "p-1", Quantity: 1}))

	assert.ErrorIs(t, s.Branches().Delete(ctx, "b-1"), domain.ErrInUse)
	assert.ErrorIs(t, s.Suppliers().Delete(ctx, "s-1"), domain.ErrInUse)
	assert.ErrorIs(t, s.Products().Delete(ctx, "p-1"), domain.ErrInUse)
	assert.ErrorIs(t, s.Companies().Delete(ctx, "c-1"), domain.ErrInUse)
}

func TestDelete_ProductoAnulaLineasDeVenta(t *testing.T) {
	s := seed(t)
	ctx := context.Background()
	require.NoError(t, s.Sales().Create(ctx, &entity.Sale{
		ID: "v-1", BranchID: "b-1", Total: decimal.NewFromInt(1000),
		Items: []entity.SaleItem{{ID: "vi-1", ProductID: "p-1", Quantity: 1, Price: decimal.NewFromInt(1000)}},
	}))

	require.NoError(t, s.Products().Delete(ctx, "p-1"))

	sale, err := s.Sales().GetByID(ctx, "v-1")
	require.NoError(t, err)
	require.Len(t, sale.Items, 1)
	assert.Empty(t, sale.Items[0].ProductID)
	assert.True(t, sale.Items[0].Price.Equal(decimal.NewFromInt(1000)))

	inv, err := s.Inventory().GetByID(ctx, "i-1")
	require.NoError(t, err)
	assert.Nil(t, inv, "el inventario del producto se borra en cascada")
}

func TestDelete_ProveedorAnulaProductos(t *testing.T) {
	s := seed(t)
	ctx := context.Background()
	require.NoError(t, s.Suppliers().Delete(ctx, "s-1"))

	p, err := s.Products().GetByID(ctx, "p-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Empty(t, p.SupplierID)
}

func TestDelete_SucursalEnCascada(t *testing.T) {
	s := seed(t)
	ctx := context.Background()
	require.NoError(t, s.Sales().Create(ctx, &entity.Sale{ID: "v-1", BranchID: "b-1"}))

	require.NoError(t, s.Branches().Delete(ctx, "b-1"))

	sale, err := s.Sales().GetByID(ctx, "v-1")
	require.NoError(t, err)
	assert.Nil(t, sale)
	inv, err := s.Inventory().GetByID(ctx, "i-1")
	require.NoError(t, err)
	assert.Nil(t, inv)
}
