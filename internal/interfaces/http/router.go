package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ferreteria-api/internal/application/analytics"
	"github.com/jhoicas/Ferreteria-api/internal/application/catalog"
	"github.com/jhoicas/Ferreteria-api/internal/application/commission"
	"github.com/jhoicas/Ferreteria-api/internal/application/identity"
	"github.com/jhoicas/Ferreteria-api/internal/application/pos"
	"github.com/jhoicas/Ferreteria-api/internal/application/quote"
	"github.com/jhoicas/Ferreteria-api/internal/application/receipt"
	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Catalog     *catalog.UseCase
	Identities  *identity.Directory
	Carts       CartOpener
	Quotes      *quote.Ledger
	Sales       *pos.Ledger
	Customers   *pos.Customers
	Register    *pos.CashRegister
	Commissions *commission.Engine
	Receipts    *receipt.PDFUseCase
	Dashboard   *analytics.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleSalesperson, entity.RoleSpecialClient, entity.RoleClient)
	backOffice := RequireRole(entity.RoleAdmin, entity.RoleSalesperson)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Catálogo (público; el precio depende del token si viene)
	catalogHandler := NewCatalogHandler(deps.Catalog)
	catalogGroup := api.Group("/catalog")
	catalogGroup.Get("/", OptionalAuth(deps.JWTSecret), catalogHandler.List)
	catalogGroup.Get("/:id", OptionalAuth(deps.JWTSecret), catalogHandler.GetByID)
	catalogGroup.Post("/", requireAuth, adminOnly, catalogHandler.Upsert)
	catalogGroup.Patch("/:id/status", requireAuth, adminOnly, catalogHandler.SetStatus)

	// Carrito (invitado o identidad)
	cartHandler := NewCartHandler(deps.Carts)
	carts := api.Group("/cart", OptionalAuth(deps.JWTSecret))
	carts.Get("/", cartHandler.Get)
	carts.Delete("/", cartHandler.Clear)
	carts.Post("/items", cartHandler.AddItem)
	carts.Put("/items/:productId", cartHandler.SetQuantity)
	carts.Delete("/items/:productId", cartHandler.RemoveItem)
	carts.Post("/items/:productId/toggle", cartHandler.Toggle)

	// Cotizaciones (requiere sesión)
	quoteHandler := NewQuoteHandler(deps.Quotes, deps.Carts, deps.Identities, deps.Receipts)
	quotes := api.Group("/quotes", requireAuth, anyRole)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/", quoteHandler.List)
	quotes.Get("/:id", quoteHandler.GetByID)
	quotes.Get("/:id/pdf", quoteHandler.PDF)
	quotes.Patch("/:id/status", backOffice, quoteHandler.Transition)

	// Caja (back office)
	posHandler := NewPOSHandler(deps.Sales, deps.Customers, deps.Register, deps.Receipts)
	posGroup := api.Group("/pos", requireAuth, backOffice)
	posGroup.Post("/sales", posHandler.RecordSale)
	posGroup.Get("/sales", posHandler.ListSales)
	posGroup.Get("/sales/:id/pdf", posHandler.SalePDF)
	posGroup.Post("/customers", posHandler.CreateCustomer)
	posGroup.Get("/customers", posHandler.ListCustomers)
	posGroup.Post("/closings", posHandler.CloseRegister)
	posGroup.Get("/closings", posHandler.ListClosings)

	// Comisiones
	commissionHandler := NewCommissionHandler(deps.Commissions)
	commissions := api.Group("/commissions", requireAuth, backOffice)
	commissions.Get("/", adminOnly, commissionHandler.Summaries)
	commissions.Get("/:salespersonId", commissionHandler.Pending)
	commissions.Post("/:salespersonId/settle", adminOnly, commissionHandler.Settle)

	// Panel de ventas (admin)
	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	api.Get("/dashboard/summary", requireAuth, adminOnly, dashboardHandler.Summary)
}
