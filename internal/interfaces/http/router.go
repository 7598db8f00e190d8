package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoicer/internal/application/billing"
	"github.com/jhoicas/invoicer/internal/application/session"
	"github.com/jhoicas/invoicer/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sessions   *session.Manager
	CustomerUC *billing.CustomerUseCase
	ExportUC   *billing.ExportUseCase
	JWTSecret  string
	Logger     *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger.Component("http")

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Rutas protegidas (requieren Bearer Token); el user_id del token es el dueño.
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	draftHandler := NewDraftHandler(deps.Sessions, deps.CustomerUC, log)
	api.Get("/state", draftHandler.State)
	draft := api.Group("/draft")
	draft.Post("/", draftHandler.Create)
	draft.Patch("/", draftHandler.Update)
	draft.Put("/mode", draftHandler.SetMode)
	draft.Post("/items", draftHandler.AddItem)
	draft.Patch("/items/:id", draftHandler.UpdateItem)
	draft.Delete("/items/:id", draftHandler.RemoveItem)
	draft.Put("/customer/:customerId", draftHandler.SetCustomer)
	draft.Post("/complete", draftHandler.Complete)

	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.Sessions, deps.ExportUC, log)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/:id/edit", invoiceHandler.Edit)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)

	view := api.Group("/view")
	viewHandler := NewViewHandler(deps.Sessions, log)
	view.Get("/", viewHandler.Get)
	view.Post("/form", viewHandler.Form)
	view.Post("/preview", viewHandler.Preview)
	view.Post("/back", viewHandler.Back)
	view.Post("/home", viewHandler.Home)
	view.Post("/complete", viewHandler.Complete)

	syncGroup := api.Group("/sync")
	syncHandler := NewSyncHandler(deps.Sessions, log)
	syncGroup.Get("/", syncHandler.Status)
	syncGroup.Post("/drain", syncHandler.Drain)
	syncGroup.Post("/retry", syncHandler.Retry)
	syncGroup.Delete("/notices", syncHandler.ClearNotices)

	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, log)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
}
