package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Ferreteria-api/internal/application/analytics"
	"github.com/jhoicas/Ferreteria-api/internal/application/cart"
	"github.com/jhoicas/Ferreteria-api/internal/application/catalog"
	"github.com/jhoicas/Ferreteria-api/internal/application/commission"
	"github.com/jhoicas/Ferreteria-api/internal/application/identity"
	"github.com/jhoicas/Ferreteria-api/internal/application/pos"
	"github.com/jhoicas/Ferreteria-api/internal/application/quote"
	"github.com/jhoicas/Ferreteria-api/internal/application/receipt"
	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
	infrapdf "github.com/jhoicas/Ferreteria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/persistence"
	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/Ferreteria-api/internal/interfaces/http"
	"github.com/jhoicas/Ferreteria-api/pkg/config"
	"github.com/jhoicas/Ferreteria-api/pkg/logger"
	"github.com/jhoicas/Ferreteria-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if err := metrics.Register(nil); err != nil {
		log.Fatal().Err(err).Msg("registrar métricas")
	}

	ctx := context.Background()
	docs, closeStore, err := store.Open(ctx, cfg, log)
	if err != nil {
		// Sin almacén el core sigue funcionando con colecciones vacías y carritos en memoria.
		log.Error().Err(err).Msg("almacén de documentos no disponible")
	}
	defer closeStore()

	gw := persistence.NewGateway(docs, log)

	catalogUC := catalog.NewUseCase(gw)
	directory := identity.NewDirectory(gw)
	quotes := quote.NewLedger(gw, catalogUC)
	sales := pos.NewLedger(gw, catalogUC)
	customers := pos.NewCustomers(gw)
	register := pos.NewCashRegister(gw, sales)
	commissions := commission.NewEngine(gw, sales, catalogUC, directory)
	dashboard := analytics.NewDashboardUseCase(sales, catalogUC)

	pdfGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	receipts := receipt.NewPDFUseCase(quotes, sales, directory, customers, pdfGenerator)

	openCart := func(ctx context.Context, ident *entity.Identity, guestID string) *cart.Engine {
		return cart.NewEngine(ctx, gw, catalogUC, log, ident, guestID)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": gw.Available()})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Catalog:     catalogUC,
		Identities:  directory,
		Carts:       openCart,
		Quotes:      quotes,
		Sales:       sales,
		Customers:   customers,
		Register:    register,
		Commissions: commissions,
		Receipts:    receipts,
		Dashboard:   dashboard,
		JWTSecret:   cfg.JWT.Secret,
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
