package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-etl/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName   string
	Dashboard DashboardReader
	Ingest    IngestRunner // nil deshabilita las rutas de ingesta
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	// Analítica (lectura, público)
	analytics := NewAnalyticsHandler(deps.Dashboard)
	api.Get("/stats", analytics.GetStats)
	api.Get("/overview", analytics.GetOverview)
	api.Get("/vendors/top", analytics.GetTopVendors)
	api.Get("/categories/spend", analytics.GetCategorySpend)
	api.Get("/invoices/trends", analytics.GetInvoiceTrends)
	api.Get("/invoices", analytics.ListInvoices)

	if deps.Ingest == nil {
		return
	}

	// Ingesta (protegido, rol etl)
	ingest := NewIngestHandler(deps.Ingest)
	protected := api.Group("/ingest", AuthMiddleware(deps.JWTSecret), RequireRole(jwt.RoleETL))
	protected.Post("/", ingest.Run)
	protected.Get("/last", ingest.Last)
}
