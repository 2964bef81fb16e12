package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

var _ repository.PipelineRunRepository = (*PipelineRunRepo)(nil)

// PipelineRunRepo auditoría de corridas del pipeline sobre PostgreSQL.
type PipelineRunRepo struct {
	q Querier
}

// NewPipelineRunRepository construye el adaptador de corridas. Pasar pool o tx (Querier).
func NewPipelineRunRepository(q Querier) *PipelineRunRepo {
	return &PipelineRunRepo{q: q}
}

// Create registra el inicio de una corrida.
func (r *PipelineRunRepo) Create(ctx context.Context, run *entity.PipelineRun) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	query := `
		INSERT INTO pipeline_runs (id, started_at, status, note)
		VALUES ($1, $2, $3, $4)`
	if _, err := r.q.Exec(ctx, query, run.ID, run.StartedAt, run.Status, run.Note); err != nil {
		return wrapError("insert pipeline run", err)
	}
	return nil
}

// Finish cierra la corrida con su resultado.
func (r *PipelineRunRepo) Finish(ctx context.Context, id, status string, finishedAt time.Time, note string, recommendationID *string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	query := `
		UPDATE pipeline_runs
		SET status = $2, finished_at = $3, note = $4, recommendation_id = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, status, finishedAt, note, recommendationID)
	if err != nil {
		return wrapError("finish pipeline run", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetLatest obtiene la corrida más reciente.
func (r *PipelineRunRepo) GetLatest(ctx context.Context) (*entity.PipelineRun, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	query := `
		SELECT id, started_at, finished_at, status, note, recommendation_id
		FROM pipeline_runs ORDER BY started_at DESC LIMIT 1`
	var run entity.PipelineRun
	err := r.q.QueryRow(ctx, query).Scan(&run.ID, &run.StartedAt, &run.FinishedAt,
		&run.Status, &run.Note, &run.RecommendationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, wrapError("get latest run", err)
	}
	return &run, nil
}

// ListRecent obtiene las corridas más recientes.
func (r *PipelineRunRepo) ListRecent(ctx context.Context, limit int) ([]*entity.PipelineRun, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	query := `
		SELECT id, started_at, finished_at, status, note, recommendation_id
		FROM pipeline_runs ORDER BY started_at DESC LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, wrapError("list runs", err)
	}
	defer rows.Close()

	var out []*entity.PipelineRun
	for rows.Next() {
		var run entity.PipelineRun
		if err := rows.Scan(&run.ID, &run.StartedAt, &run.FinishedAt,
			&run.Status, &run.Note, &run.RecommendationID); err != nil {
			return nil, wrapError("scan run", err)
		}
		out = append(out, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterate runs", err)
	}
	return out, nil
}
