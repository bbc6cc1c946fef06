package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temucosoft/retail-api/internal/application/cart"
	"github.com/temucosoft/retail-api/internal/application/dto"
	"github.com/temucosoft/retail-api/internal/application/usecase"
	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/identity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
	"github.com/temucosoft/retail-api/internal/infrastructure/memory"
)

type world struct {
	store    *memory.Store
	provider *entity.Company
	acme     *entity.Company
	other    *entity.Company
	super    identity.Capabilities
	admin    identity.Capabilities // admin_cliente de acme
	seller   identity.Capabilities // vendedor de acme
}

func caps(userID string, role identity.Role, companyID string, provider bool) identity.Capabilities {
	return identity.CapabilitiesOf(identity.NewPrincipal(userID, role, companyID, provider))
}

func newWorld(t *testing.T) *world {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	w := &world{
		store:    s,
		provider: &entity.Company{ID: "c-prov", Name: "TemucoSoft", RUT: "76.086.428-5", IsProvider: true, IsActive: true},
		acme:     &entity.Company{ID: "c-acme", Name: "Acme", RUT: "11.111.111-1", IsActive: true},
		other:    &entity.Company{ID: "c-other", Name: "Otra", RUT: "12.345.678-5", IsActive: true},
	}
	for _, c := range []*entity.Company{w.provider, w.acme, w.other} {
		require.NoError(t, s.Companies().Create(ctx, c))
	}
	users := []*entity.User{
		{ID: "u-root", CompanyID: w.provider.ID, Username: "root", Role: identity.RoleSuperAdmin, RUT: "7.654.321-6"},
		{ID: "u-admin", CompanyID: w.acme.ID, Username: "admin", Role: identity.RoleAdminCliente, RUT: "22.222.222-2"},
		{ID: "u-seller", CompanyID: w.acme.ID, Username: "seller", Role: identity.RoleVendedor, RUT: "5.126.663-3"},
		{ID: "u-foreign", CompanyID: w.other.ID, Username: "foreign", Role: identity.RoleGerente, RUT: "10.000.000-8"},
	}
	for _, u := range users {
		u.IsActive = true
		require.NoError(t, s.Users().Create(ctx, u))
	}
	w.super = caps("u-root", identity.RoleSuperAdmin, w.provider.ID, true)
	w.admin = caps("u-admin", identity.RoleAdminCliente, w.acme.ID, false)
	w.seller = caps("u-seller", identity.RoleVendedor, w.acme.ID, false)

	for _, b := range []*entity.Branch{
		{ID: "b-acme-1", CompanyID: w.acme.ID, Name: "Acme Centro", Phone: "+56911111111", IsActive: true},
		{ID: "b-acme-2", CompanyID: w.acme.ID, Name: "Acme Norte", Phone: "+56911111112", IsActive: true},
		{ID: "b-other", CompanyID: w.other.ID, Name: "Otra Sur", Phone: "+56922222222", IsActive: true},
	} {
		require.NoError(t, s.Branches().Create(ctx, b))
	}
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p-1", SKU: "SKU-1", Name: "Café", Category: "bebidas", Price: decimal.NewFromInt(1000), IsActive: true}))
	return w
}

func TestBranchUseCase_ListasPorTenant(t *testing.T) {
	w := newWorld(t)
	uc := usecase.NewBranchUseCase(w.store.Branches(), w.store.Companies())
	all := repository.Page{}

	out, err := uc.List(context.Background(), w.seller, all)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Page.Total)
	for _, b := range out.Items {
		assert.Equal(t, w.acme.ID, b.CompanyID)
	}

	out, err = uc.List(context.Background(), w.super, all)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Page.Total)

	_, err = uc.List(context.Background(), identity.Capabilities{}, all)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestBranchUseCase_GetFueraDeAlcance(t *testing.T) {
	w := newWorld(t)
	uc := usecase.NewBranchUseCase(w.store.Branches(), w.store.Companies())

	_, err := uc.Get(context.Background(), w.admin, "b-other")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Get(context.Background(), w.admin, "b-nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBranchUseCase_CreateFuerzaEmpresa(t *testing.T) {
	w := newWorld(t)
	uc := usecase.NewBranchUseCase(w.store.Branches(), w.store.Companies())

	out, err := uc.Create(context.Background(), w.admin, dto.CreateBranchRequest{
		Name: "Acme Sur", CompanyID: w.other.ID, Phone: "+56933333333",
	})
	require.NoError(t, err)
	assert.Equal(t, w.acme.ID, out.CompanyID)

	out, err = uc.Create(context.Background(), w.super, dto.CreateBranchRequest{
		Name: "Otra Norte", CompanyID: w.other.ID, Phone: "56933333334",
	})
	require.NoError(t, err)
	assert.Equal(t, w.other.ID, out.CompanyID)

	_, err = uc.Create(context.Background(), w.admin, dto.CreateBranchRequest{Name: "Mala", Phone: "123"})
	var fe domain.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "phone")
}

func TestAccountUseCase_ListaCuentasCliente(t *testing.T) {
	w := newWorld(t)
	uc := usecase.NewAccountUseCase(w.store.Users(), w.store.Companies())

	out, err := uc.ListAccounts(context.Background(), w.super, repository.Page{})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Page.Total, "excluye usuarios de la proveedora")

	out, err = uc.ListAccounts(context.Background(), w.admin, repository.Page{})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Page.Total)
	for _, u := range out.Items {
		require.NotNil(t, u.CompanyID)
		assert.Equal(t, w.acme.ID, *u.CompanyID)
	}
}

func TestAccountUseCase_CreateAdminClienteFuerzaSuEmpresa(t *testing.T) {
	w := newWorld(t)
	uc := usecase.NewAccountUseCase(w.store.Users(), w.store.Companies())

	out, err := uc.CreateAccount(context.Background(), w.admin, dto.CreateAccountRequest{
		Username: "nuevo", Email: "nuevo@acme.cl", Password: "secreta123", PasswordConfirm: "secreta123",
		Role: "gerente", RUT: "9999999-3", CompanyID: w.other.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, out.CompanyID)
	assert.Equal(t, w.acme.ID, *out.CompanyID)
	assert.Equal(t, "9.999.999-3", out.RUT)

	stored, err := w.store.Users().GetByUsername(context.Background(), "nuevo")
	require.NoError(t, err)
	assert.NotEqual(t, "secreta123", stored.PasswordHash)
}

func TestAccountUseCase_ReglasDeRegistro(t *testing.T) {
	w := newWorld(t)
	uc := usecase.NewAccountUseCase(w.store.Users(), w.store.Companies())

	cases := []struct {
		name  string
		caps  identity.Capabilities
		in    dto.CreateAccountRequest
		field string
		msg   string
	}{
		{
			name:  "contraseñas distintas",
			caps:  w.super,
			in:    dto.CreateAccountRequest{Username: "a", Password: "x1", PasswordConfirm: "x2", Role: "vendedor", RUT: "9999999-3", CompanyID: "c-acme"},
			field: "password_confirm",
			msg:   usecase.MsgPasswordMismatch,
		},
		{
			name:  "rol inválido",
			caps:  w.super,
			in:    dto.CreateAccountRequest{Username: "a", Password: "x", PasswordConfirm: "x", Role: "dios", RUT: "9999999-3", CompanyID: "c-acme"},
			field: "role",
			msg:   usecase.MsgInvalidRole,
		},
		{
			name:  "super_admin fuera de la proveedora",
			caps:  w.super,
			in:    dto.CreateAccountRequest{Username: "a", Password: "x", PasswordConfirm: "x", Role: "super_admin", RUT: "9999999-3", CompanyID: "c-acme"},
			field: "company",
			msg:   usecase.MsgSuperAdminProvider,
		},
		{
			name:  "admin_cliente no puede crear super_admin",
			caps:  w.admin,
			in:    dto.CreateAccountRequest{Username: "a", Password: "x", PasswordConfirm: "x", Role: "super_admin", RUT: "9999999-3"},
			field: "company",
			msg:   usecase.MsgSuperAdminProvider,
		},
		{
			name:  "usuario sin empresa",
			caps:  w.super,
			in:    dto.CreateAccountRequest{Username: "a", Password: "x", PasswordConfirm: "x", Role: "gerente", RUT: "9999999-3"},
			field: "company",
			msg:   usecase.MsgCompanyRequiredForRole,
		},
		{
			name:  "RUT con dígito incorrecto",
			caps:  w.super,
			in:    dto.CreateAccountRequest{Username: "a", Password: "x", PasswordConfirm: "x", Role: "gerente", RUT: "9999999-4", CompanyID: "c-acme"},
			field: "rut",
			msg:   "Dígito verificador inválido. Debería ser: 3",
		},
		{
			name:  "username repetido",
			caps:  w.super,
			in:    dto.CreateAccountRequest{Username: "seller", Password: "x", PasswordConfirm: "x", Role: "gerente", RUT: "9999999-3", CompanyID: "c-acme"},
			field: "username",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateAccount(context.Background(), tc.caps, tc.in)
			var fe domain.FieldErrors
			require.ErrorAs(t, err, &fe)
			require.Contains(t, fe, tc.field)
			if tc.msg != "" {
				assert.Contains(t, fe[tc.field], tc.msg)
			}
		})
	}
}

func TestAccountUseCase_FueraDelConjuntoVisibleEs404(t *testing.T) {
	w := newWorld(t)
	uc := usecase.NewAccountUseCase(w.store.Users(), w.store.Companies())

	_, err := uc.UpdateAccount(context.Background(), w.admin, "u-foreign", dto.UpdateAccountRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.DeleteAccount(context.Background(), w.super, "u-root")
	assert.ErrorIs(t, err, domain.ErrNotFound, "la proveedora no es una cuenta cliente")

	// En /api/users el mismo usuario ajeno es 403.
	_, err = uc.GetUser(context.Background(), w.admin, "u-foreign")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAccountUseCase_UpdateEmpresaSoloSuperAdmin(t *testing.T) {
	w := newWorld(t)
	uc := usecase.NewAccountUseCase(w.store.Users(), w.store.Companies())
	other := w.other.ID

	out, err := uc.UpdateAccount(context.Background(), w.admin, "u-seller", dto.UpdateAccountRequest{CompanyID: &other})
	require.NoError(t, err)
	assert.Equal(t, w.acme.ID, *out.CompanyID)

	out, err = uc.UpdateAccount(context.Background(), w.super, "u-seller", dto.UpdateAccountRequest{CompanyID: &other})
	require.NoError(t, err)
	assert.Equal(t, w.other.ID, *out.CompanyID)

	prov := w.provider.ID
	_, err = uc.UpdateAccount(context.Background(), w.super, "u-seller", dto.UpdateAccountRequest{CompanyID: &prov})
	var fe domain.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe["company"], usecase.MsgCompanyInvalid)
}

func TestAccountUseCase_AdminClienteNoEscalaASuperAdmin(t *testing.T) {
	w := newWorld(t)
	uc := usecase.NewAccountUseCase(w.store.Users(), w.store.Companies())
	role := "super_admin"

	_, err := uc.UpdateUser(context.Background(), w.admin, "u-seller", dto.UpdateAccountRequest{Role: &role})
	var fe domain.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe["company"], usecase.MsgSuperAdminProvider)
	assert.Equal(t, []string{usecase.MsgRoleAboveCaller}, fe["role"])

	same := "admin_cliente"
	out, err := uc.UpdateUser(context.Background(), w.admin, "u-seller", dto.UpdateAccountRequest{Role: &same})
	require.NoError(t, err)
	assert.Equal(t, "admin_cliente", out.Role)
}

func TestAccountUseCase_UsuariosSoloRolesAdministradores(t *testing.T) {
	w := newWorld(t)
	uc := usecase.NewAccountUseCase(w.store.Users(), w.store.Companies())

	_, err := uc.GetUser(context.Background(), w.seller, "u-seller")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	err = uc.DeleteUser(context.Background(), w.seller, "u-admin")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.GetUser(context.Background(), w.super, "u-foreign")
	require.NoError(t, err)
	assert.Equal(t, "foreign", out.Username)
}

func TestAccountUseCase_ListUsersPorTenant(t *testing.T) {
	w := newWorld(t)
	uc := usecase.NewAccountUseCase(w.store.Users(), w.store.Companies())
	all := repository.Page{}

	out, err := uc.ListUsers(context.Background(), w.admin, all)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Page.Total)
	for _, u := range out.Items {
		require.NotNil(t, u.CompanyID)
		assert.Equal(t, w.acme.ID, *u.CompanyID)
	}

	out, err = uc.ListUsers(context.Background(), w.super, all)
	require.NoError(t, err)
	assert.Equal(t, 4, out.Page.Total)
}

func TestProductUseCase_SKUUnicoYMargen(t *testing.T) {
	w := newWorld(t)
	uc := usecase.NewProductUseCase(w.store.Products(), w.store.Suppliers())

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		SKU: "SKU-1", Name: "Otro", Category: "x", Price: decimal.NewFromInt(1),
	})
	var fe domain.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "sku")

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{
		SKU: "SKU-2", Name: "Té", Category: "bebidas",
		Price: decimal.NewFromInt(1500), Cost: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	assert.True(t, out.ProfitMargin.Equal(decimal.NewFromInt(50)))
	assert.Nil(t, out.SupplierID)

	_, err = uc.Create(context.Background(), dto.CreateProductRequest{
		SKU: "SKU-3", Name: "Té", Category: "bebidas", Price: decimal.RequireFromString("-1"),
	})
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "price")
}

func TestInventoryUseCase_SucursalAjena(t *testing.T) {
	w := newWorld(t)
	uc := usecase.NewInventoryUseCase(w.store.TxRunner(), w.store.Inventory(), w.store.Branches(), w.store.Products())

	_, err := uc.Create(context.Background(), w.admin, dto.CreateInventoryRequest{BranchID: "b-other", ProductID: "p-1"})
	var fe domain.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "branch")

	out, err := uc.Create(context.Background(), w.admin, dto.CreateInventoryRequest{BranchID: "b-acme-1", ProductID: "p-1"})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Stock)
	assert.Equal(t, 10, out.ReorderPoint)
	assert.Equal(t, entity.StockStatusOut, out.StockStatus)

	stock := 7
	moved := "b-other"
	_, err = uc.Update(context.Background(), w.admin, out.ID, dto.UpdateInventoryRequest{BranchID: &moved, Stock: &stock})
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "branch")

	neg := -1
	_, err = uc.Update(context.Background(), w.admin, out.ID, dto.UpdateInventoryRequest{Stock: &neg})
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "stock")

	upd, err := uc.Update(context.Background(), w.admin, out.ID, dto.UpdateInventoryRequest{Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, 7, upd.Stock)
	assert.Equal(t, entity.StockStatusLow, upd.StockStatus)

	_, err = uc.Create(context.Background(), w.admin, dto.CreateInventoryRequest{BranchID: "b-acme-1", ProductID: "p-1"})
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{usecase.MsgInventoryDuplicate}, fe["branch"])
}

func TestInventoryUseCase_ListaPorTenant(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	for _, inv := range []*entity.Inventory{
		{ID: "i-acme", BranchID: "b-acme-1", ProductID: "p-1", Stock: 4},
		{ID: "i-other", BranchID: "b-other", ProductID: "p-1", Stock: 9},
	} {
		require.NoError(t, w.store.Inventory().Create(ctx, inv))
	}
	uc := usecase.NewInventoryUseCase(w.store.TxRunner(), w.store.Inventory(), w.store.Branches(), w.store.Products())
	all := repository.Page{}

	out, err := uc.List(ctx, w.seller, "", all)
	require.NoError(t, err)
	require.Equal(t, 1, out.Page.Total)
	assert.Equal(t, "b-acme-1", out.Items[0].BranchID)

	out, err = uc.List(ctx, w.seller, "b-other", all)
	require.NoError(t, err)
	assert.Zero(t, out.Page.Total, "filtrar por sucursal ajena no amplía el alcance")

	out, err = uc.List(ctx, w.super, "", all)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Page.Total)
}

func TestOrderUseCase_PatchEstadoDeOrdenSinEmail(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	carts := cart.NewService(w.store.TxRunner(), w.store.Carts(), w.store.Products(), w.store.Users())
	_, err := carts.Add(ctx, "u-seller", "p-1", 1)
	require.NoError(t, err)
	order, err := carts.Checkout(ctx, "u-seller")
	require.NoError(t, err)
	require.Empty(t, order.CustomerEmail)

	uc := usecase.NewOrderUseCase(w.store.Orders(), w.store.Products())
	status := entity.OrderProcessing
	out, err := uc.Update(ctx, order.ID, dto.UpdateOrderRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderProcessing, out.Status)

	bad := "perdida"
	_, err = uc.Update(ctx, order.ID, dto.UpdateOrderRequest{Status: &bad})
	var fe domain.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{usecase.MsgInvalidStatus}, fe["status"])

	email := "no-es-correo"
	_, err = uc.Update(ctx, order.ID, dto.UpdateOrderRequest{CustomerEmail: &email})
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "customer_email")
	assert.NotContains(t, fe, "status")
}

func TestCompanyUseCase_ProveedoraNoSeToca(t *testing.T) {
	w := newWorld(t)
	uc := usecase.NewCompanyUseCase(w.store.Companies())

	list, err := uc.List(context.Background(), repository.Page{})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Page.Total)

	err = uc.Delete(context.Background(), w.provider.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(context.Background(), dto.CreateCompanyRequest{Name: "Acme", RUT: "1000005-k", Phone: "+56912345678"})
	var fe domain.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "name")

	out, err := uc.Create(context.Background(), dto.CreateCompanyRequest{Name: "Nueva", RUT: "1000005-k", Phone: "+56912345678"})
	require.NoError(t, err)
	assert.Equal(t, "1.000.005-K", out.RUT)

	c, err := w.store.Companies().GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.False(t, c.IsProvider)
}

func TestSubscriptionUseCase(t *testing.T) {
	w := newWorld(t)
	uc := usecase.NewSubscriptionUseCase(w.store.Subscriptions(), w.store.Companies(), time.UTC)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateSubscriptionRequest{CompanyID: w.acme.ID, PlanName: "premium", StartDate: "2025-01-10", EndDate: "2025-01-10"})
	var fe domain.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{usecase.MsgEndBeforeStart}, fe["end_date"])

	_, err = uc.Create(ctx, dto.CreateSubscriptionRequest{CompanyID: w.acme.ID, PlanName: "oro", StartDate: "2025-01-01", EndDate: "2025-12-31"})
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "plan_name")

	start := time.Now().UTC().AddDate(0, 0, -1).Format(dto.DateLayout)
	end := time.Now().UTC().AddDate(0, 1, 0).Format(dto.DateLayout)
	out, err := uc.Create(ctx, dto.CreateSubscriptionRequest{CompanyID: w.acme.ID, PlanName: "estandar", StartDate: start, EndDate: end})
	require.NoError(t, err)
	assert.Equal(t, "Acme", out.CompanyName)

	_, err = uc.Create(ctx, dto.CreateSubscriptionRequest{CompanyID: w.acme.ID, PlanName: "basico", StartDate: start, EndDate: end})
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "company")

	mine, err := uc.Mine(ctx, w.seller)
	require.NoError(t, err)
	assert.Equal(t, out.ID, mine.ID)

	_, err = uc.Mine(ctx, caps("u-foreign", identity.RoleGerente, w.other.ID, false))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Mine(ctx, caps("nadie", identity.RoleSuperAdmin, "", false))
	assert.ErrorIs(t, err, domain.ErrValidation)

	ok, err := uc.HasActive(ctx, w.acme.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.HasActive(ctx, w.other.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReportUseCase_StockPorTenant(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	require.NoError(t, w.store.Inventory().Create(ctx, &entity.Inventory{ID: "i-1", BranchID: "b-acme-1", ProductID: "p-1", Stock: 0, ReorderPoint: 10}))
	require.NoError(t, w.store.Inventory().Create(ctx, &entity.Inventory{ID: "i-2", BranchID: "b-other", ProductID: "p-1", Stock: 50, ReorderPoint: 10}))
	uc := usecase.NewReportUseCase(w.store.Inventory(), w.store.Sales(), time.UTC)

	rows, err := uc.Stock(ctx, w.seller)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme Centro", rows[0].Branch)
	assert.Equal(t, entity.StockStatusOut, rows[0].Status)

	rows, err = uc.Stock(ctx, w.super)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, err = uc.Sales(ctx, w.seller, dto.SalesReportRequest{DateFrom: "ayer"})
	var fe domain.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "date_from")
}

func TestBillingUseCase_Overview(t *testing.T) {
	w := newWorld(t)
	uc := usecase.NewBillingUseCase(w.store.Companies(), w.store.Users(), w.store.Sales())

	out, err := uc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, out.TotalClientCompanies)
	assert.Equal(t, 3, out.TotalUsers)
	assert.Equal(t, 0, out.TotalSales)
	assert.Equal(t, "CLP", out.BillingInfo.Currency)
}

func TestBootstrap_Idempotente(t *testing.T) {
	s := memory.NewStore()
	accounts := usecase.NewAccountUseCase(s.Users(), s.Companies())
	cfg := usecase.BootstrapConfig{
		ProviderName: "TemucoSoft", ProviderRUT: "76086428-5",
		AdminUsername: "admin", AdminPassword: "cambiar", AdminRUT: "11111111-1",
	}
	ctx := context.Background()

	require.NoError(t, usecase.Bootstrap(ctx, cfg, s.Companies(), accounts, s.Users(), zerolog.Nop()))
	require.NoError(t, usecase.Bootstrap(ctx, cfg, s.Companies(), accounts, s.Users(), zerolog.Nop()))

	provider, err := s.Companies().GetProvider(ctx)
	require.NoError(t, err)
	require.NotNil(t, provider)
	assert.Equal(t, "76.086.428-5", provider.RUT)

	u, err := s.Users().GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, identity.RoleSuperAdmin, u.Role)
	assert.Equal(t, provider.ID, u.CompanyID)
}
