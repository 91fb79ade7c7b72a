// Package server assembles the HTTP API on top of the store.
package server

import (
	"strings"
	"time"

	"autoparts-backend/internal/admin"
	"autoparts-backend/internal/auth"
	"autoparts-backend/internal/dashboard"
	"autoparts-backend/internal/inventory"
	"autoparts-backend/internal/models"
	"autoparts-backend/internal/receipt"
	"autoparts-backend/internal/sales"
	"autoparts-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Options struct {
	// CORSOrigins is a comma separated list.
	CORSOrigins string
	Shop        receipt.Shop
	Log         *zap.Logger
	// Gatherer backs /metrics; prometheus.DefaultGatherer when nil.
	Gatherer prometheus.Gatherer
}

func New(st *store.Store, opts Options) *fiber.App {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(st, log),
		BodyLimit:    20 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(requestLogger(log))

	corsOrigins := strings.Split(opts.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/login", auth.LoginHandler(st))
	api.Post("/auth/signup", auth.SignUpHandler(st))

	// Protected
	protected := api.Group("")
	protected.Use(auth.RequireSession(st))

	protected.Post("/auth/logout", auth.LogoutHandler(st))
	protected.Get("/auth/me", auth.MeHandler())
	protected.Put("/auth/me", auth.UpdateMeHandler(st))

	protected.Get("/state", dashboard.StateHandler(st))
	protected.Post("/refresh", dashboard.RefreshHandler(st, log))
	protected.Put("/language", dashboard.LanguageHandler(st))

	// Stock
	protected.Get("/products", inventory.ListProductsHandler(st))
	protected.Get("/products/search", inventory.ListProductsHandler(st))
	protected.Get("/products/:id", inventory.GetProductHandler(st))
	protected.Post("/products", inventory.CreateProductHandler(st))
	protected.Put("/products/:id", inventory.UpdateProductHandler(st))
	protected.Delete("/products/:id", inventory.DeleteProductHandler(st))

	protected.Get("/suppliers", inventory.ListSuppliersHandler(st))
	protected.Post("/suppliers", inventory.CreateSupplierHandler(st))
	protected.Put("/suppliers/:id", inventory.UpdateSupplierHandler(st))
	protected.Delete("/suppliers/:id", inventory.DeleteSupplierHandler(st))
	protected.Get("/suppliers/:id/history", inventory.SupplierHistoryHandler(st))

	protected.Get("/purchase-invoices", inventory.ListPurchaseInvoicesHandler(st))
	protected.Post("/purchase-invoices", inventory.CreatePurchaseInvoiceHandler(st))
	protected.Put("/purchase-invoices/:id", inventory.UpdatePurchaseInvoiceHandler(st))
	protected.Delete("/purchase-invoices/:id", inventory.DeletePurchaseInvoiceHandler(st))

	// Sales
	protected.Get("/sales-invoices", sales.ListSalesInvoicesHandler(st))
	protected.Get("/sales-invoices/:id", sales.GetSalesInvoiceHandler(st))
	protected.Post("/sales-invoices", sales.CreateSalesInvoiceHandler(st))
	protected.Delete("/sales-invoices/:id", sales.DeleteSalesInvoiceHandler(st))
	protected.Post("/sales-invoices/:id/payments", sales.PayDebtHandler(st))
	protected.Get("/sales-invoices/:id/pdf", sales.ReceiptHandler(st, opts.Shop))
	protected.Post("/pos/checkout", sales.CheckoutHandler(st))

	protected.Get("/dashboard/summary", dashboard.SummaryHandler(st))
	protected.Get("/dashboard/report", dashboard.ReportHandler(st))

	// Admin only
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Get("/workers", admin.ListWorkersHandler(st))
	adminRoutes.Post("/workers", admin.CreateWorkerHandler(st))
	adminRoutes.Put("/workers/:id", admin.UpdateWorkerHandler(st))
	adminRoutes.Delete("/workers/:id", admin.DeleteWorkerHandler(st))
	adminRoutes.Get("/workers/:id/payments", admin.WorkerHistoryHandler(st))
	adminRoutes.Get("/worker-payments", admin.ListWorkerPaymentsHandler(st))
	adminRoutes.Post("/worker-payments", admin.CreateWorkerPaymentHandler(st))
	adminRoutes.Get("/backup", admin.BackupHandler(st))
	adminRoutes.Post("/restore", admin.RestoreHandler(st))

	return app
}

func requestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Debug("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("took", time.Since(start)),
		)
		return err
	}
}
