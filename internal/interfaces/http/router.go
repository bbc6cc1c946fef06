package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/temucosoft/retail-api/internal/application/auth"
	"github.com/temucosoft/retail-api/internal/application/cart"
	"github.com/temucosoft/retail-api/internal/application/dto"
	"github.com/temucosoft/retail-api/internal/application/ledger"
	"github.com/temucosoft/retail-api/internal/application/usecase"
	"github.com/temucosoft/retail-api/internal/domain/authz"
	"github.com/temucosoft/retail-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	CompanyUC      *usecase.CompanyUseCase
	BillingUC      *usecase.BillingUseCase
	AccountUC      *usecase.AccountUseCase
	BranchUC       *usecase.BranchUseCase
	ProductUC      *usecase.ProductUseCase
	SupplierUC     *usecase.SupplierUseCase
	InventoryUC    *usecase.InventoryUseCase
	OrderUC        *usecase.OrderUseCase
	SubscriptionUC *usecase.SubscriptionUseCase
	ReportUC       *usecase.ReportUseCase
	Ledger         *ledger.Ledger
	Receipts       *ledger.Receipts
	Cart           *cart.Service
	Log            *logger.Logger
	// LoginRateLimit intentos por minuto e IP en /api/token; 0 lo desactiva.
	LoginRateLimit int
}

// NewApp crea la aplicación Fiber con el manejo de errores y los middlewares comunes.
func NewApp(name string, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(requestid.New())
	app.Use(RequestLogger(log))
	app.Use(recover.New())
	return app
}

// Router registra las rutas de la API. Cada recurso vive una sola vez bajo /api.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", Authenticate(deps.AuthUC))

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/token", loginLimiter(deps.LoginRateLimit), authHandler.Token)
	api.Post("/token/refresh", authHandler.Refresh)
	api.Get("/profile", Authorize(authz.ResourceProfile), authHandler.Profile)

	// Administración de la plataforma
	admin := api.Group("/admin")
	platform := Authorize(authz.ResourcePlatform)

	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.BillingUC)
	companies := admin.Group("/companies", platform)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Patch("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)
	admin.Get("/billing", platform, companyHandler.Billing)

	accountHandler := NewAccountHandler(deps.AccountUC)
	accounts := admin.Group("/accounts", Authorize(authz.ResourceUser))
	accounts.Get("/", accountHandler.ListAccounts)
	accounts.Post("/", accountHandler.CreateAccount)
	accounts.Patch("/:id", accountHandler.UpdateAccount)
	accounts.Delete("/:id", accountHandler.DeleteAccount)

	users := api.Group("/users", Authorize(authz.ResourceUser))
	users.Get("/", accountHandler.ListUsers)
	users.Get("/:id", accountHandler.GetUser)
	users.Patch("/:id", accountHandler.UpdateUser)
	users.Delete("/:id", accountHandler.DeleteUser)

	// Catálogo y sucursales
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches := api.Group("/branches", Authorize(authz.ResourceBranch))
	branches.Get("/", branchHandler.List)
	branches.Post("/", branchHandler.Create)
	branches.Get("/:id", branchHandler.GetByID)
	branches.Put("/:id", branchHandler.Update)
	branches.Patch("/:id", branchHandler.Update)
	branches.Delete("/:id", branchHandler.Delete)

	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products", Authorize(authz.ResourceProduct))
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := api.Group("/suppliers", Authorize(authz.ResourceSupplier))
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Patch("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inventory := api.Group("/inventory", Authorize(authz.ResourceInventory))
	inventory.Get("/", inventoryHandler.List)
	inventory.Post("/", inventoryHandler.Create)
	inventory.Get("/:id", inventoryHandler.GetByID)
	inventory.Put("/:id", inventoryHandler.Update)
	inventory.Patch("/:id", inventoryHandler.Update)
	inventory.Delete("/:id", inventoryHandler.Delete)

	// Libro de inventario: ventas y compras son inmutables
	ledgerHandler := NewLedgerHandler(deps.Ledger, deps.Receipts)
	sales := api.Group("/sales", Authorize(authz.ResourceSale))
	sales.Get("/", ledgerHandler.ListSales)
	sales.Post("/", ledgerHandler.CreateSale)
	sales.Get("/:id", ledgerHandler.GetSale)
	sales.Get("/:id/receipt", ledgerHandler.Receipt)

	purchases := api.Group("/purchases", Authorize(authz.ResourcePurchase))
	purchases.Get("/", ledgerHandler.ListPurchases)
	purchases.Post("/", ledgerHandler.CreatePurchase)
	purchases.Get("/:id", ledgerHandler.GetPurchase)

	// E-commerce
	orderHandler := NewOrderHandler(deps.OrderUC, deps.Cart)
	orders := api.Group("/orders", Authorize(authz.ResourceOrder))
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Patch("/:id", orderHandler.Update)
	orders.Delete("/:id", orderHandler.Delete)

	carts := api.Group("/cart", Authorize(authz.ResourceCart))
	carts.Get("/", orderHandler.Cart)
	carts.Post("/add", orderHandler.AddToCart)
	carts.Post("/checkout", orderHandler.Checkout)

	// Suscripciones: /me para cualquier usuario, el resto solo el operador
	subscriptionHandler := NewSubscriptionHandler(deps.SubscriptionUC)
	subscriptions := api.Group("/subscriptions")
	subscriptions.Get("/me", Authorize(authz.ResourceProfile), subscriptionHandler.Mine)
	subscriptions.Get("/", platform, subscriptionHandler.List)
	subscriptions.Post("/", platform, subscriptionHandler.Create)
	subscriptions.Get("/:id", platform, subscriptionHandler.GetByID)
	subscriptions.Patch("/:id", platform, subscriptionHandler.Update)
	subscriptions.Delete("/:id", platform, subscriptionHandler.Delete)

	// Reportes (requieren suscripción vigente)
	reportHandler := NewReportHandler(deps.ReportUC)
	subscribed := RequireActiveSubscription(deps.SubscriptionUC, deps.Log)
	reports := api.Group("/reports")
	reports.Get("/stock", Authorize(authz.ResourceInventory), subscribed, reportHandler.Stock)
	reports.Get("/sales", Authorize(authz.ResourceSale), subscribed, reportHandler.Sales)
}

// loginLimiter limita los intentos de login por IP.
func loginLimiter(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "TOO_MANY_REQUESTS",
				Message: "demasiados intentos, espere un minuto",
			})
		},
	})
}
