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

	"github.com/jhoicas/Reposicion-api/internal/application/catalog"
	"github.com/jhoicas/Reposicion-api/internal/application/export"
	"github.com/jhoicas/Reposicion-api/internal/application/pipeline"
	"github.com/jhoicas/Reposicion-api/internal/application/recommendation"
	"github.com/jhoicas/Reposicion-api/internal/application/scheduler"
	"github.com/jhoicas/Reposicion-api/internal/application/stats"
	"github.com/jhoicas/Reposicion-api/internal/infrastructure/cache"
	infraedi "github.com/jhoicas/Reposicion-api/internal/infrastructure/edi"
	infrapdf "github.com/jhoicas/Reposicion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Reposicion-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Reposicion-api/internal/interfaces/http"
	"github.com/jhoicas/Reposicion-api/pkg/config"
	"github.com/jhoicas/Reposicion-api/pkg/logger"
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

	if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones de base de datos")
	}

	// Redis es opcional: sin él, el tablero consulta siempre la DB.
	var summaryCache stats.SummaryCache
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, tablero sin cache")
		} else {
			defer redisClient.Close()
			summaryCache = cache.NewSummaryCache(redisClient, log)
		}
	}

	productRepo := postgres.NewProductRepository(pool)
	salesRepo := postgres.NewSalesRepository(pool)
	recRepo := postgres.NewRecommendationRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	runRepo := postgres.NewPipelineRunRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	pipelineUC := pipeline.NewUseCase(productRepo, salesRepo, runRepo, txRunner, log)
	lifecycleUC := recommendation.NewLifecycleUseCase(txRunner, log)
	queryUC := recommendation.NewQueryUseCase(recRepo, orderRepo)
	catalogUC := catalog.NewUseCase(productRepo)
	statsUC := stats.NewUseCase(productRepo, salesRepo, recRepo, summaryCache, log)

	pdfGenerator := infrapdf.NewOrderSheetGenerator()
	xmlBuilder := infraedi.NewOrderXMLBuilder()
	exportUC := export.NewUseCase(recRepo, pdfGenerator, xmlBuilder)

	sched := scheduler.New(
		pipelineUC, runRepo, log,
		cfg.Scheduler.DailyAt,
		time.Duration(cfg.Scheduler.RunTimeout)*time.Second,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Reposición API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		LifecycleUC: lifecycleUC,
		QueryUC:     queryUC,
		ExportUC:    exportUC,
		CatalogUC:   catalogUC,
		StatsUC:     statsUC,
		Scheduler:   sched,
		JWTSecret:   cfg.JWT.Secret,
	})

	schedCtx, stopSched := context.WithCancel(ctx)
	defer stopSched()
	if cfg.Scheduler.Enabled {
		sched.Start(schedCtx)
		log.Info().Str("daily_at", cfg.Scheduler.DailyAt).Msg("scheduler diario activo")
	} else {
		log.Info().Msg("scheduler diario deshabilitado; solo disparos manuales")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stopSched()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
