package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/temucosoft/retail-api/internal/application/auth"
	"github.com/temucosoft/retail-api/internal/application/cart"
	"github.com/temucosoft/retail-api/internal/application/ledger"
	"github.com/temucosoft/retail-api/internal/application/ports"
	"github.com/temucosoft/retail-api/internal/application/usecase"
	"github.com/temucosoft/retail-api/internal/domain/repository"
	"github.com/temucosoft/retail-api/internal/infrastructure/memory"
	infrapdf "github.com/temucosoft/retail-api/internal/infrastructure/pdf"
	"github.com/temucosoft/retail-api/internal/infrastructure/postgres"
	httpRouter "github.com/temucosoft/retail-api/internal/interfaces/http"
	"github.com/temucosoft/retail-api/pkg/config"
	"github.com/temucosoft/retail-api/pkg/logger"
)

// repos adaptadores de persistencia del driver elegido.
type repos struct {
	companies     repository.CompanyRepository
	subscriptions repository.SubscriptionRepository
	users         repository.UserRepository
	branches      repository.BranchRepository
	products      repository.ProductRepository
	suppliers     repository.SupplierRepository
	inventory     repository.InventoryRepository
	sales         repository.SaleRepository
	purchases     repository.PurchaseRepository
	orders        repository.OrderRepository
	carts         repository.CartRepository
	tx            ports.TxRunner
}

// @title                       TemucoSoft Retail API
// @version                     1.0
// @description                 API multiempresa de inventario, ventas y compras.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 "Bearer <token>"
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}

	ctx := context.Background()
	r, closeDB := openRepos(ctx, cfg, log)
	defer closeDB()

	accountUC := usecase.NewAccountUseCase(r.users, r.companies)
	if err := usecase.Bootstrap(ctx, usecase.BootstrapConfig(cfg.Bootstrap), r.companies, accountUC, r.users, log.Zerolog()); err != nil {
		// sin proveedora la API funciona, pero nadie puede administrar la plataforma
		log.Warn().Err(err).Msg("bootstrap incompleto")
	}

	authUC := auth.NewAuthUseCase(r.users, r.companies, auth.JWTConfig{
		Secret:            cfg.JWT.Secret,
		ExpMinutes:        cfg.JWT.Expiration,
		RefreshExpMinutes: cfg.JWT.RefreshExpiration,
		Issuer:            cfg.JWT.Issuer,
	})
	l := ledger.New(r.tx, r.branches, r.suppliers, r.sales, r.purchases, loc)

	app := httpRouter.NewApp(cfg.App.Name, log)

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "TemucoSoft Retail API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		CompanyUC:      usecase.NewCompanyUseCase(r.companies),
		BillingUC:      usecase.NewBillingUseCase(r.companies, r.users, r.sales),
		AccountUC:      accountUC,
		BranchUC:       usecase.NewBranchUseCase(r.branches, r.companies),
		ProductUC:      usecase.NewProductUseCase(r.products, r.suppliers),
		SupplierUC:     usecase.NewSupplierUseCase(r.suppliers),
		InventoryUC:    usecase.NewInventoryUseCase(r.tx, r.inventory, r.branches, r.products),
		OrderUC:        usecase.NewOrderUseCase(r.orders, r.products),
		SubscriptionUC: usecase.NewSubscriptionUseCase(r.subscriptions, r.companies, loc),
		ReportUC:       usecase.NewReportUseCase(r.inventory, r.sales, loc),
		Ledger:         l,
		Receipts:       ledger.NewReceipts(l, r.companies, r.products, r.users, infrapdf.NewReceiptRenderer()),
		Cart:           cart.NewService(r.tx, r.carts, r.products, r.users),
		Log:            log,
		LoginRateLimit: cfg.HTTP.LoginRateLimit,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openRepos abre la persistencia según DB_DRIVER. En postgres aplica las migraciones
// pendientes antes de abrir el pool.
func openRepos(ctx context.Context, cfg *config.Config, log *logger.Logger) (repos, func()) {
	if cfg.DB.Driver == config.DriverMemory {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return repos{
			companies:     s.Companies(),
			subscriptions: s.Subscriptions(),
			users:         s.Users(),
			branches:      s.Branches(),
			products:      s.Products(),
			suppliers:     s.Suppliers(),
			inventory:     s.Inventory(),
			sales:         s.Sales(),
			purchases:     s.Purchases(),
			orders:        s.Orders(),
			carts:         s.Carts(),
			tx:            s.TxRunner(),
		}, func() {}
	}

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	return repos{
		companies:     postgres.NewCompanyRepository(pool),
		subscriptions: postgres.NewSubscriptionRepository(pool),
		users:         postgres.NewUserRepository(pool),
		branches:      postgres.NewBranchRepository(pool),
		products:      postgres.NewProductRepository(pool),
		suppliers:     postgres.NewSupplierRepository(pool),
		inventory:     postgres.NewInventoryRepository(pool),
		sales:         postgres.NewSaleRepository(pool),
		purchases:     postgres.NewPurchaseRepository(pool),
		orders:        postgres.NewOrderRepository(pool),
		carts:         postgres.NewCartRepository(pool),
		tx:            postgres.NewTxRunner(pool),
	}, pool.Close
}
