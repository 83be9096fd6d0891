package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Distribuidora-api/internal/application/auth"
	deliveryapp "github.com/jhoicas/Distribuidora-api/internal/application/delivery"
	"github.com/jhoicas/Distribuidora-api/internal/application/inventory"
	"github.com/jhoicas/Distribuidora-api/internal/application/orders"
	"github.com/jhoicas/Distribuidora-api/internal/application/payments"
	"github.com/jhoicas/Distribuidora-api/internal/application/reports"
	"github.com/jhoicas/Distribuidora-api/internal/application/usecase"
	"github.com/jhoicas/Distribuidora-api/internal/infrastructure/email"
	"github.com/jhoicas/Distribuidora-api/internal/infrastructure/mercadopago"
	"github.com/jhoicas/Distribuidora-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/Distribuidora-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Distribuidora-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Distribuidora-api/internal/infrastructure/whatsapp"
	httpRouter "github.com/jhoicas/Distribuidora-api/internal/interfaces/http"
	"github.com/jhoicas/Distribuidora-api/pkg/config"
	"github.com/jhoicas/Distribuidora-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool; las operaciones transaccionales usan el
	// TxRunner, que arma sus propios repos ligados a la transacción.
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Canales de aviso al cliente (best-effort)
	mailer := email.NewMailer(cfg.Mail, cfg.Company.Name)
	waLinks := whatsapp.NewLinkBuilder(cfg.Company.Phone, cfg.Company.Name)
	notifier := notify.NewService(mailer, waLinks, productRepo, log)

	// Pasarela de pago
	gateway := mercadopago.NewClient(cfg.MercadoPago, cfg.Company.Currency)

	// Use cases
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	catalogUC := usecase.NewCatalogUseCase(categoryRepo, supplierRepo)
	placeOrderUC := orders.NewPlaceOrderUseCase(txRunner, productRepo, customerRepo, notifier)
	orderStatusUC := orders.NewStatusUseCase(txRunner, orderRepo)
	orderQueryUC := orders.NewQueryUseCase(orderRepo, productRepo, customerRepo)
	movementUC := inventory.NewRegisterMovementUseCase(txRunner, movementRepo)
	importUC := inventory.NewImportProductsUseCase(txRunner)
	preferenceUC := payments.NewCreatePreferenceUseCase(gateway, orderRepo, productRepo, customerRepo, cfg.MercadoPago.Sandbox)
	reconcileUC := payments.NewReconcileUseCase(gateway, txRunner, customerRepo, notifier)
	deliveryUC := deliveryapp.NewUseCase(txRunner, deliveryRepo, orderRepo, userRepo, customerRepo, notifier)
	reportsUC := reports.NewUseCase(reportRepo, productRepo)

	receipts := infrapdf.NewReceiptGenerator(
		cfg.Company.Name, cfg.Company.Phone, cfg.Company.Address, cfg.MercadoPago.BaseURL,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Distribuidora API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ProductUC:     productUC,
		CustomerUC:    customerUC,
		CatalogUC:     catalogUC,
		PlaceOrderUC:  placeOrderUC,
		OrderStatusUC: orderStatusUC,
		OrderQueryUC:  orderQueryUC,
		MovementUC:    movementUC,
		ImportUC:      importUC,
		PreferenceUC:  preferenceUC,
		ReconcileUC:   reconcileUC,
		DeliveryUC:    deliveryUC,
		ReportsUC:     reportsUC,
		Receipts:      receipts,
		WhatsApp:      waLinks,
		JWTSecret:     cfg.JWT.Secret,
		WebhookSecret: cfg.MercadoPago.WebhookSecret,
		Log:           log,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
