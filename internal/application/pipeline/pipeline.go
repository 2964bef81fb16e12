// Package pipeline implementa la corrida de reposición: lee catálogo y
// ventas, analiza tendencias, evalúa faltantes y persiste la recomendación
// del día. Cada corrida es una pasada completa; la exclusión entre corridas
// la garantiza el scheduler.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/analysis"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/replenishment"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
	"github.com/jhoicas/Reposicion-api/pkg/logger"
)

const (
	// Ventana de análisis de ventas; la tendencia compara contra la ventana
	// anterior de igual tamaño, por eso se leen 2x días de historial.
	analysisWindowDays = 7
	topProductsCount   = 5
)

// UseCase orquesta una corrida del pipeline de reposición.
type UseCase struct {
	productRepo repository.ProductRepository
	salesRepo   repository.SalesRepository
	runRepo     repository.PipelineRunRepository
	tx          TxRunner
	log         *logger.Logger

	now func() time.Time
}

// NewUseCase construye el pipeline de reposición.
func NewUseCase(
	productRepo repository.ProductRepository,
	salesRepo repository.SalesRepository,
	runRepo repository.PipelineRunRepository,
	tx TxRunner,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		productRepo: productRepo,
		salesRepo:   salesRepo,
		runRepo:     runRepo,
		tx:          tx,
		log:         log,
		now:         time.Now,
	}
}

// Run ejecuta la corrida completa. Una corrida sin faltantes es un resultado
// normal: se registra con outcome "no_action" y no persiste recomendación.
// Solo los fallos reales (lectura o escritura de datos) devuelven error.
func (uc *UseCase) Run(ctx context.Context) (*dto.PipelineRunResponse, error) {
	startedAt := uc.now()
	run := &entity.PipelineRun{
		ID:        uuid.NewString(),
		StartedAt: startedAt,
		Status:    entity.RunStatusRunning,
	}
	if err := uc.runRepo.Create(ctx, run); err != nil {
		return nil, err
	}

	uc.log.Info().Str("run_id", run.ID).Msg("corrida de reposición iniciada")

	resp, err := uc.execute(ctx, run, startedAt)
	if err != nil {
		finishedAt := uc.now()
		if ferr := uc.runRepo.Finish(ctx, run.ID, entity.RunStatusFailed, finishedAt, err.Error(), nil); ferr != nil {
			uc.log.Error().Err(ferr).Str("run_id", run.ID).Msg("no se pudo cerrar la corrida fallida")
		}
		uc.log.Error().Err(err).Str("run_id", run.ID).Msg("corrida de reposición fallida")
		return nil, err
	}
	return resp, nil
}

func (uc *UseCase) execute(ctx context.Context, run *entity.PipelineRun, startedAt time.Time) (*dto.PipelineRunResponse, error) {
	// Etapa 1: catálogo completo y ventas de las dos últimas ventanas.
	products, err := uc.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	since := startedAt.AddDate(0, 0, -(2*analysisWindowDays - 1))
	sales, err := uc.salesRepo.ListSince(ctx, since)
	if err != nil {
		return nil, err
	}

	// Etapa 2: análisis de ventas (tendencias, agregados).
	summary := analysis.Summarize(products, sales, startedAt, analysisWindowDays, topProductsCount)

	// Etapa 3: evaluación de inventario contra stock de seguridad.
	flagged := replenishment.Assess(products)

	// Etapa 4: decisión de pedido.
	rec, err := buildRecommendation(flagged, summary, startedAt)
	if err == domain.ErrEmptyDecision {
		finishedAt := uc.now()
		note := "sin faltantes: ningún producto bajo su stock de seguridad"
		if ferr := uc.runRepo.Finish(ctx, run.ID, entity.RunStatusCompleted, finishedAt, note, nil); ferr != nil {
			return nil, ferr
		}
		uc.log.Info().Str("run_id", run.ID).Msg("corrida sin faltantes, no se generó recomendación")
		return &dto.PipelineRunResponse{
			RunID:      run.ID,
			Outcome:    "no_action",
			StartedAt:  startedAt,
			FinishedAt: &finishedAt,
			Note:       note,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	// Etapa 5: persistir cabecera y renglones como una sola unidad.
	err = uc.tx.RunPipeline(ctx, func(recRepo repository.RecommendationRepository) error {
		return recRepo.Create(ctx, rec)
	})
	if err != nil {
		return nil, err
	}

	// La recomendación ya quedó persistida: es el resultado durable de la
	// corrida. Si el cierre de la fila de auditoría falla, se registra y la
	// corrida igual se reporta exitosa; devolver error aquí invitaría a un
	// reintento que duplicaría la recomendación del día.
	finishedAt := uc.now()
	if err := uc.runRepo.Finish(ctx, run.ID, entity.RunStatusCompleted, finishedAt, "", &rec.ID); err != nil {
		uc.log.Error().Err(err).
			Str("run_id", run.ID).
			Str("recommendation_id", rec.ID).
			Msg("no se pudo cerrar la corrida; la recomendación ya quedó persistida")
	}

	uc.log.Info().
		Str("run_id", run.ID).
		Str("recommendation_id", rec.ID).
		Int("total_items", rec.TotalItems).
		Str("total_cost", rec.TotalCost.String()).
		Msg("recomendación generada")

	return &dto.PipelineRunResponse{
		RunID:            run.ID,
		Outcome:          "recommendation_created",
		RecommendationID: rec.ID,
		TotalItems:       rec.TotalItems,
		StartedAt:        startedAt,
		FinishedAt:       &finishedAt,
	}, nil
}
