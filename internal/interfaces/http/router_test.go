package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/temucosoft/retail-api/internal/application/auth"
	"github.com/temucosoft/retail-api/internal/application/cart"
	"github.com/temucosoft/retail-api/internal/application/ledger"
	"github.com/temucosoft/retail-api/internal/application/tenant"
	"github.com/temucosoft/retail-api/internal/application/usecase"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/identity"
	"github.com/temucosoft/retail-api/internal/infrastructure/memory"
	"github.com/temucosoft/retail-api/internal/infrastructure/pdf"
	apphttp "github.com/temucosoft/retail-api/internal/interfaces/http"
	pkgjwt "github.com/temucosoft/retail-api/pkg/jwt"
	"github.com/temucosoft/retail-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "retail-api-test"
	testPassword  = "clave123"
)

type testServer struct {
	app   *fiber.App
	store *memory.Store
}

// newTestServer arma la API completa sobre el adaptador en memoria con:
//   - empresas c-prov (proveedora), c-acme y c-other
//   - usuarios root (super_admin), admin (admin_cliente acme), seller (vendedor acme)
//   - sucursales b-acme y b-other, producto p-1 a $1000 con stock 5 en b-acme
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()

	for _, c := range []*entity.Company{
		{ID: "c-prov", Name: "TemucoSoft", RUT: "76.086.428-5", IsProvider: true, IsActive: true},
		{ID: "c-acme", Name: "Acme", RUT: "11.111.111-1", IsActive: true},
		{ID: "c-other", Name: "Otra", RUT: "12.345.678-5", IsActive: true},
	} {
		require.NoError(t, s.Companies().Create(ctx, c))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	for _, u := range []*entity.User{
		{ID: "u-root", CompanyID: "c-prov", Username: "root", Email: "root@temucosoft.cl", Role: identity.RoleSuperAdmin, RUT: "7.654.321-6"},
		{ID: "u-admin", CompanyID: "c-acme", Username: "admin", Email: "admin@acme.cl", Role: identity.RoleAdminCliente, RUT: "22.222.222-2"},
		{ID: "u-seller", CompanyID: "c-acme", Username: "seller", Email: "seller@acme.cl", Role: identity.RoleVendedor, RUT: "5.126.663-3"},
	} {
		u.PasswordHash = string(hash)
		u.IsActive = true
		require.NoError(t, s.Users().Create(ctx, u))
	}
	for _, b := range []*entity.Branch{
		{ID: "b-acme", CompanyID: "c-acme", Name: "Acme Centro", Address: "Av. Alemania 123", Phone: "+56911111111", IsActive: true},
		{ID: "b-other", CompanyID: "c-other", Name: "Otra Sur", Phone: "+56922222222", IsActive: true},
	} {
		require.NoError(t, s.Branches().Create(ctx, b))
	}
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p-1", SKU: "SKU-1", Name: "Café", Price: decimal.NewFromInt(1000), IsActive: true}))
	require.NoError(t, s.Suppliers().Create(ctx, &entity.Supplier{ID: "s-1", Name: "Distribuidora Sur", RUT: "76.123.456-0", IsActive: true}))
	require.NoError(t, s.Inventory().Create(ctx, &entity.Inventory{ID: "i-1", BranchID: "b-acme", ProductID: "p-1", Stock: 5, ReorderPoint: 2}))

	tx := s.TxRunner()
	l := ledger.New(tx, s.Branches(), s.Suppliers(), s.Sales(), s.Purchases(), time.UTC)
	app := apphttp.NewApp("retail-api-test", logger.Nop())
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(s.Users(), s.Companies(), auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: 60, RefreshExpMinutes: 120, Issuer: testIssuer,
		}),
		CompanyUC:      usecase.NewCompanyUseCase(s.Companies()),
		BillingUC:      usecase.NewBillingUseCase(s.Companies(), s.Users(), s.Sales()),
		AccountUC:      usecase.NewAccountUseCase(s.Users(), s.Companies()),
		BranchUC:       usecase.NewBranchUseCase(s.Branches(), s.Companies()),
		ProductUC:      usecase.NewProductUseCase(s.Products(), s.Suppliers()),
		SupplierUC:     usecase.NewSupplierUseCase(s.Suppliers()),
		InventoryUC:    usecase.NewInventoryUseCase(tx, s.Inventory(), s.Branches(), s.Products()),
		OrderUC:        usecase.NewOrderUseCase(s.Orders(), s.Products()),
		SubscriptionUC: usecase.NewSubscriptionUseCase(s.Subscriptions(), s.Companies(), time.UTC),
		ReportUC:       usecase.NewReportUseCase(s.Inventory(), s.Sales(), time.UTC),
		Ledger:         l,
		Receipts:       ledger.NewReceipts(l, s.Companies(), s.Products(), s.Users(), pdf.NewReceiptRenderer()),
		Cart:           cart.NewService(tx, s.Carts(), s.Products(), s.Users()),
		Log:            logger.Nop(),
		LoginRateLimit: 3,
	})
	return &testServer{app: app, store: s}
}

// bearer genera un token de acceso para la identidad indicada.
func bearer(t *testing.T, userID string, role identity.Role, companyID string, provider bool) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, pkgjwt.Subject{
		UserID: userID, CompanyID: companyID, Role: string(role), Provider: provider,
	}, pkgjwt.TypeAccess, time.Hour)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func (s *testServer) do(t *testing.T, method, path, authHeader string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if authHeader != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}

func (s *testServer) root(t *testing.T) string {
	return bearer(t, "u-root", identity.RoleSuperAdmin, "c-prov", true)
}

func (s *testServer) admin(t *testing.T) string {
	return bearer(t, "u-admin", identity.RoleAdminCliente, "c-acme", false)
}

func (s *testServer) seller(t *testing.T) string {
	return bearer(t, "u-seller", identity.RoleVendedor, "c-acme", false)
}

func fieldMessages(t *testing.T, body map[string]any, field string) []any {
	t.Helper()
	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok, "la respuesta debe traer fields: %v", body)
	msgs, _ := fields[field].([]any)
	return msgs
}

// ──────────────────────────────────────────────────────────────────────────────
// Autenticación
// ──────────────────────────────────────────────────────────────────────────────

func TestToken_LoginYPerfil(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, http.MethodPost, "/api/token", "", map[string]string{"username": "admin", "password": testPassword})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin_cliente", body["role"])
	assert.Equal(t, "c-acme", body["company_id"])
	access, _ := body["access"].(string)
	require.NotEmpty(t, access)

	resp, body = s.do(t, http.MethodGet, "/api/profile", "Bearer "+access, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin", body["username"])

	refresh, _ := s.do(t, http.MethodPost, "/api/token/refresh", "", map[string]string{"refresh": access})
	assert.Equal(t, fiber.StatusUnauthorized, refresh.StatusCode, "un token de acceso no sirve como refresh")
}

func TestToken_CredencialesInvalidas(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, http.MethodPost, "/api/token", "", map[string]string{"username": "admin", "password": "otra"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apphttp.CodeUnauthorized, body["code"])
}

func TestToken_LimiteDeIntentos(t *testing.T) {
	s := newTestServer(t)
	creds := map[string]string{"username": "admin", "password": "otra"}

	for i := 0; i < 3; i++ {
		resp, _ := s.do(t, http.MethodPost, "/api/token", "", creds)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	}
	resp, _ := s.do(t, http.MethodPost, "/api/token", "", creds)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestAuthenticate_TokenInvalido(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		name   string
		header string
	}{
		{"token basura", "Bearer no-es-un-jwt"},
		{"sin esquema Bearer", "Token abc"},
		{"Bearer vacío", "Bearer "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := s.do(t, http.MethodGet, "/api/branches", tc.header, nil)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, apphttp.CodeUnauthorized, body["code"])
		})
	}
}

func TestAuthenticate_FirmaDeOtroSecreto(t *testing.T) {
	s := newTestServer(t)
	tok, err := pkgjwt.Generate("otro-secreto", testIssuer, pkgjwt.Subject{UserID: "u-admin", Role: "admin_cliente", CompanyID: "c-acme"}, pkgjwt.TypeAccess, time.Hour)
	require.NoError(t, err)

	resp, _ := s.do(t, http.MethodGet, "/api/branches", "Bearer "+tok, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Autorización y alcance por empresa
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_LecturaPublicaEscrituraRestringida(t *testing.T) {
	s := newTestServer(t)
	payload := map[string]any{"sku": "SKU-2", "name": "Té", "category": "bebidas", "price": "500", "cost": "250"}

	resp, body := s.do(t, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["items"])

	resp, _ = s.do(t, http.MethodPost, "/api/products", "", payload)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, body = s.do(t, http.MethodPost, "/api/products", s.seller(t), payload)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "no autorizado", body["message"])

	resp, body = s.do(t, http.MethodPost, "/api/products", s.admin(t), payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "SKU-2", body["sku"])
}

func TestBranches_403FueraDeAlcance404Inexistente(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, http.MethodGet, "/api/branches", s.admin(t), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	page := body["page"].(map[string]any)
	assert.EqualValues(t, 1, page["total"])

	resp, _ = s.do(t, http.MethodGet, "/api/branches/b-other", s.admin(t), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, body = s.do(t, http.MethodGet, "/api/branches/b-nada", s.admin(t), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, apphttp.CodeNotFound, body["code"])

	resp, _ = s.do(t, http.MethodGet, "/api/branches", s.root(t), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdmin_SoloOperadorDeLaPlataforma(t *testing.T) {
	s := newTestServer(t)
	superDeCliente := bearer(t, "u-x", identity.RoleSuperAdmin, "c-acme", false)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"anónimo", "", fiber.StatusUnauthorized},
		{"admin_cliente", s.admin(t), fiber.StatusForbidden},
		{"super_admin de empresa cliente", superDeCliente, fiber.StatusForbidden},
		{"super_admin de la proveedora", s.root(t), fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, _ := s.do(t, http.MethodGet, "/api/admin/companies", tc.header, nil)
			assert.Equal(t, tc.status, resp.StatusCode)
			resp, _ = s.do(t, http.MethodGet, "/api/admin/billing", tc.header, nil)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestUsers_VendedorNoAdministraUsuarios(t *testing.T) {
	s := newTestServer(t)

	resp, _ := s.do(t, http.MethodGet, "/api/users", s.seller(t), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/api/users/u-root", s.admin(t), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/api/admin/accounts", s.admin(t), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCuerpoInvalido(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, http.MethodPost, "/api/branches", s.admin(t), "{")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apphttp.CodeValidation, body["code"])
	assert.Equal(t, []any{apphttp.MsgBadBody}, fieldMessages(t, body, "detail"))
}

func TestRutaInexistente(t *testing.T) {
	s := newTestServer(t)

	resp, _ := s.do(t, http.MethodGet, "/nada", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Libro de inventario
// ──────────────────────────────────────────────────────────────────────────────

func saleBody(qty int) map[string]any {
	return map[string]any{
		"branch":         "b-acme",
		"payment_method": "efectivo",
		"items":          []map[string]any{{"product": "p-1", "quantity": qty, "price": "1000"}},
	}
}

func (s *testServer) stock(t *testing.T) int {
	t.Helper()
	inv, err := s.store.Inventory().GetByBranchProduct(context.Background(), "b-acme", "p-1")
	require.NoError(t, err)
	require.NotNil(t, inv)
	return inv.Stock
}

func TestSales_StockInsuficienteEs400(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, http.MethodPost, "/api/sales", s.seller(t), saleBody(6))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apphttp.CodeConflict, body["code"])
	assert.Equal(t, "Stock insuficiente para Café", body["message"])
	assert.Len(t, fieldMessages(t, body, "stock"), 1)
	assert.Equal(t, 5, s.stock(t))
}

func TestSales_CreaYEmiteComprobante(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, http.MethodPost, "/api/sales", s.seller(t), saleBody(3))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, 2, s.stock(t))
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)

	req := httptest.NewRequest(http.MethodGet, "/api/sales/"+id+"/receipt", nil)
	req.Header.Set(fiber.HeaderAuthorization, s.seller(t))
	pdfResp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, pdfResp.StatusCode)
	assert.Equal(t, "application/pdf", pdfResp.Header.Get(fiber.HeaderContentType))
	raw, err := io.ReadAll(pdfResp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	foreign := bearer(t, "u-foreign", identity.RoleGerente, "c-other", false)
	resp, _ = s.do(t, http.MethodGet, "/api/sales/"+id+"/receipt", foreign, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestPurchases_SucursalDeOtraEmpresa(t *testing.T) {
	s := newTestServer(t)
	payload := map[string]any{"supplier": "s-1", "branch": "b-other", "product": "p-1", "quantity": 10, "cost": "600"}

	resp, body := s.do(t, http.MethodPost, "/api/purchases", s.admin(t), payload)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []any{tenant.MsgPurchaseOtherCompany}, fieldMessages(t, body, "branch"))

	resp, _ = s.do(t, http.MethodPost, "/api/purchases", s.seller(t), payload)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, "vendedor no registra compras")

	payload["branch"] = "b-acme"
	resp, _ = s.do(t, http.MethodPost, "/api/purchases", s.admin(t), payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, 15, s.stock(t))
}

// ──────────────────────────────────────────────────────────────────────────────
// Carrito y órdenes
// ──────────────────────────────────────────────────────────────────────────────

func TestCart_AgregarYCheckout(t *testing.T) {
	s := newTestServer(t)
	seller := s.seller(t)

	resp, body := s.do(t, http.MethodPost, "/api/cart/checkout", seller, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Carrito vacío", body["message"])

	resp, _ = s.do(t, http.MethodPost, "/api/cart/add", seller, map[string]any{"product": "p-1", "quantity": 2})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, body = s.do(t, http.MethodPost, "/api/cart/add", seller, map[string]any{"product": "p-1"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "3000", body["total"])

	resp, body = s.do(t, http.MethodPost, "/api/cart/add", seller, map[string]any{"product": "p-nada"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, body = s.do(t, http.MethodPost, "/api/cart/checkout", seller, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "3000", body["total"])
	assert.Equal(t, entity.OrderPending, body["status"])
	assert.Len(t, body["items"], 1)

	resp, body = s.do(t, http.MethodGet, "/api/cart", seller, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, body["items"])
}

func TestOrders_VendedorSoloLee(t *testing.T) {
	s := newTestServer(t)

	resp, _ := s.do(t, http.MethodGet, "/api/orders", s.seller(t), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = s.do(t, http.MethodDelete, "/api/orders/o-1", s.seller(t), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Suscripciones y reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestReports_RequierenSuscripcionVigente(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, http.MethodGet, "/api/reports/stock", s.admin(t), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "SUBSCRIPTION_REQUIRED", body["code"])

	resp, _ = s.do(t, http.MethodGet, "/api/reports/stock", s.root(t), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "el operador no necesita suscripción")

	resp, body = s.do(t, http.MethodGet, "/api/subscriptions/me", s.admin(t), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	today := time.Now().UTC()
	resp, _ = s.do(t, http.MethodPost, "/api/subscriptions", s.admin(t), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp, body = s.do(t, http.MethodPost, "/api/subscriptions", s.root(t), map[string]any{
		"company":    "c-acme",
		"plan_name":  "estandar",
		"start_date": today.AddDate(0, 0, -1).Format("2006-01-02"),
		"end_date":   today.AddDate(0, 1, 0).Format("2006-01-02"),
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, "%v", body)

	resp, _ = s.do(t, http.MethodGet, "/api/subscriptions/me", s.admin(t), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/stock", nil)
	req.Header.Set(fiber.HeaderAuthorization, s.admin(t))
	stockResp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, stockResp.StatusCode)
	var rows []map[string]any
	require.NoError(t, json.NewDecoder(stockResp.Body).Decode(&rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Café", rows[0]["product"])

	resp, _ = s.do(t, http.MethodGet, "/api/reports/sales?date_from=ayer", s.admin(t), nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/api/reports/sales", s.seller(t), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
