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

	"github.com/jhoicas/invoicer/docs"
	"github.com/jhoicas/invoicer/internal/application/billing"
	"github.com/jhoicas/invoicer/internal/application/session"
	"github.com/jhoicas/invoicer/internal/domain/entity"
	infrapdf "github.com/jhoicas/invoicer/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/invoicer/internal/interfaces/http"
	"github.com/jhoicas/invoicer/pkg/config"
	"github.com/jhoicas/invoicer/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// @title                       Invoicer API
// @version                     1.0
// @description                 Motor de facturas por dueño: borrador, totales, numeración diaria, PDF y cola de sincronización con PostgreSQL.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Escriba "Bearer" seguido de un espacio y el JWT.
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
		Str("store_backend", cfg.Store.Backend).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}
	taxRate, _ := cfg.Invoice.TaxRate() // validado en config.Load

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer be.close()

	manager := session.NewManager(be.remote, be.factories, session.Options{
		Settings: entity.InvoiceSettings{
			TaxEnabled:    cfg.Invoice.TaxEnabled,
			TaxPercentage: taxRate,
			DefaultMode:   entity.ModeRegular,
		},
		Location:     cfg.Invoice.Location(),
		BaseBackoff:  cfg.Sync.BaseBackoff(),
		MaxBackoff:   cfg.Sync.MaxBackoff(),
		BatchSize:    cfg.Sync.BatchSize,
		SyncInterval: cfg.Sync.Interval(),
		Logger:       log,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		manager.Run(ctx)
	}()

	customerUC := billing.NewCustomerUseCase(be.customers)
	exportUC := billing.NewExportUseCase(infrapdf.NewMarotoRenderer(infrapdf.Options{
		BusinessName: cfg.Invoice.BusinessName,
	}))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Especificación embebida por swag; no depende del directorio de trabajo.
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(docs.SwaggerInfo.ReadDoc())
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Invoicer API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Sessions:   manager,
		CustomerUC: customerUC,
		ExportUC:   exportUC,
		JWTSecret:  cfg.JWT.Secret,
		Logger:     log,
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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	// Última pasada de envío antes de detener el worker; lo pendiente queda en el outbox durable.
	res := manager.DrainAll(shutdownCtx)
	log.Info().Int("delivered", res.Delivered).Int("remaining", res.Remaining).Msg("drenado final")
	cancel()
	<-workerDone

	log.Info().Msg("aplicación detenida")
}
