package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Distribuidora-api/internal/application/auth"
	deliveryapp "github.com/jhoicas/Distribuidora-api/internal/application/delivery"
	"github.com/jhoicas/Distribuidora-api/internal/application/inventory"
	"github.com/jhoicas/Distribuidora-api/internal/application/orders"
	"github.com/jhoicas/Distribuidora-api/internal/application/payments"
	"github.com/jhoicas/Distribuidora-api/internal/application/reports"
	"github.com/jhoicas/Distribuidora-api/internal/application/usecase"
	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/Distribuidora-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Distribuidora-api/internal/infrastructure/whatsapp"
	"github.com/jhoicas/Distribuidora-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	ProductUC     *usecase.ProductUseCase
	CustomerUC    *usecase.CustomerUseCase
	CatalogUC     *usecase.CatalogUseCase
	PlaceOrderUC  *orders.PlaceOrderUseCase
	OrderStatusUC *orders.StatusUseCase
	OrderQueryUC  *orders.QueryUseCase
	MovementUC    *inventory.RegisterMovementUseCase
	ImportUC      *inventory.ImportProductsUseCase
	PreferenceUC  *payments.CreatePreferenceUseCase
	ReconcileUC   *payments.ReconcileUseCase
	DeliveryUC    *deliveryapp.UseCase
	ReportsUC     *reports.UseCase
	Receipts      *pdf.ReceiptGenerator
	WhatsApp      *whatsapp.LinkBuilder
	JWTSecret     string
	WebhookSecret string
	Log           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	staff := []string{entity.RoleAdmin, entity.RoleManager, entity.RoleAttendant}
	stockRoles := []string{entity.RoleAdmin, entity.RoleManager, entity.RoleStockManager}
	managers := []string{entity.RoleAdmin, entity.RoleManager}

	// ── Rutas públicas: catálogo, pedido y seguimiento sin sesión ─────────
	publicHandler := NewPublicHandler(deps.ProductUC, deps.PlaceOrderUC, deps.OrderQueryUC)
	app.Get("/menu", publicHandler.Menu)
	app.Post("/order", publicHandler.PlaceOrder)
	app.Get("/order/:token", publicHandler.Track)

	// Webhook de la pasarela (verifica firma HMAC, no JWT)
	paymentHandler := NewPaymentHandler(deps.PreferenceUC, deps.ReconcileUC, deps.WebhookSecret, deps.Log)
	app.Post("/webhook/mercadopago", paymentHandler.Webhook)

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole(stockRoles...), productHandler.Create)
	products.Put("/:id", RequireRole(stockRoles...), productHandler.Update)
	products.Delete("/:id", RequireRole(managers...), productHandler.Deactivate)

	// Categories y suppliers
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	categories := protected.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Post("/", RequireRole(stockRoles...), catalogHandler.CreateCategory)
	suppliers := protected.Group("/suppliers")
	suppliers.Get("/", catalogHandler.ListSuppliers)
	suppliers.Post("/", RequireRole(stockRoles...), catalogHandler.CreateSupplier)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Post("/", RequireRole(staff...), customerHandler.Create)
	customers.Put("/:id", RequireRole(staff...), customerHandler.Update)
	customers.Delete("/:id", RequireRole(managers...), customerHandler.Deactivate)

	// Orders
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.PlaceOrderUC, deps.OrderStatusUC, deps.OrderQueryUC, deps.Receipts, deps.WhatsApp)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Get("/:id/receipt", orderHandler.Receipt)
	ordersGroup.Get("/:id/whatsapp", orderHandler.WhatsAppLink)
	ordersGroup.Post("/", RequireRole(staff...), orderHandler.Place)
	ordersGroup.Patch("/:id/status", RequireRole(staff...), orderHandler.UpdateStatus)

	// Stock: libro de movimientos e importación de planillas
	stock := protected.Group("/stock", RequireRole(stockRoles...))
	stockHandler := NewStockHandler(deps.MovementUC, deps.ImportUC)
	stock.Post("/movements", stockHandler.RegisterMovement)
	stock.Get("/movements/:product_id", stockHandler.History)
	stock.Post("/import", stockHandler.Import)

	// Payments (la creación de preferencia y la consulta requieren sesión)
	paymentsGroup := protected.Group("/payments")
	paymentsGroup.Post("/create/:order_id", RequireRole(staff...), paymentHandler.CreatePreference)
	paymentsGroup.Get("/status/:order_id", paymentHandler.Status)

	// Deliveries: la asignación es de gestión; el repartidor opera su propia cola
	deliveries := protected.Group("/deliveries")
	deliveryHandler := NewDeliveryHandler(deps.DeliveryUC)
	deliveries.Get("/", deliveryHandler.List)
	deliveries.Get("/:id", deliveryHandler.GetByID)
	deliveries.Post("/assign/:order_id", RequireRole(managers...), deliveryHandler.Assign)
	deliveries.Patch("/:id/status", deliveryHandler.UpdateStatus)

	// Reports
	reportsGroup := protected.Group("/reports", RequireRole(managers...))
	reportHandler := NewReportHandler(deps.ReportsUC)
	reportsGroup.Get("/low-stock", reportHandler.LowStock)
	reportsGroup.Get("/sales", reportHandler.SalesSummary)
	reportsGroup.Get("/top-products", reportHandler.TopProducts)
}
