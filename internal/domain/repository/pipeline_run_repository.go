package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

// PipelineRunRepository define el puerto de auditoría de corridas del
// pipeline. El guard de concurrencia vive en memoria; estas filas solo
// alimentan el endpoint de estado y el historial.
type PipelineRunRepository interface {
	Create(ctx context.Context, run *entity.PipelineRun) error
	// Finish cierra la corrida con su estado final, nota y, si aplica, la
	// recomendación generada.
	Finish(ctx context.Context, id string, status string, finishedAt time.Time, note string, recommendationID *string) error
	GetLatest(ctx context.Context) (*entity.PipelineRun, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.PipelineRun, error)
}
