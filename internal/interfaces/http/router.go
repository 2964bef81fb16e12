package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Reposicion-api/internal/application/catalog"
	"github.com/jhoicas/Reposicion-api/internal/application/export"
	"github.com/jhoicas/Reposicion-api/internal/application/recommendation"
	"github.com/jhoicas/Reposicion-api/internal/application/scheduler"
	"github.com/jhoicas/Reposicion-api/internal/application/stats"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LifecycleUC *recommendation.LifecycleUseCase
	QueryUC     *recommendation.QueryUseCase
	ExportUC    *export.UseCase
	CatalogUC   *catalog.UseCase
	StatsUC     *stats.UseCase
	Scheduler   *scheduler.Scheduler
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Health (público)
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido, solo lectura)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Recommendations (protegido)
	recs := protected.Group("/recommendations")
	recHandler := NewRecommendationHandler(deps.LifecycleUC, deps.QueryUC, deps.ExportUC)
	recs.Get("/", recHandler.List)
	recs.Get("/pending", recHandler.GetPending)
	recs.Get("/:id", recHandler.GetByID)
	recs.Get("/:id/items", recHandler.ListItems)
	recs.Put("/:id/items/:itemId", recHandler.UpdateItem)
	recs.Post("/:id/execute", recHandler.Execute)
	recs.Post("/:id/cancel", recHandler.Cancel)
	recs.Get("/:id/pdf", recHandler.DownloadPDF)
	recs.Get("/:id/xml", recHandler.DownloadXML)

	// Orders (protegido, historial y estadísticas de pedidos)
	orders := protected.Group("/orders")
	orders.Get("/history", recHandler.OrderHistory)
	orders.Get("/statistics", recHandler.MonthlyStatistics)

	// Pipeline (protegido; disparar queda restringido al administrador)
	pipe := protected.Group("/pipeline")
	pipeHandler := NewPipelineHandler(deps.Scheduler)
	pipe.Post("/run", RequireRole("admin", "encargado"), pipeHandler.Run)
	pipe.Get("/status", pipeHandler.Status)

	// Stats (protegido, tablero)
	statsGroup := protected.Group("/stats")
	statsHandler := NewStatsHandler(deps.StatsUC)
	statsGroup.Get("/summary", statsHandler.Summary)
	statsGroup.Get("/sales/trend", statsHandler.SalesTrend)
	statsGroup.Get("/products/top", statsHandler.TopProducts)
	statsGroup.Get("/category/distribution", statsHandler.CategoryDistribution)
	statsGroup.Get("/alerts", statsHandler.Alerts)
}
