package dto

import "time"

// PipelineRunResponse resultado de disparar el pipeline de reposición.
// Cuando ninguna recomendación se genera (no hay faltantes), Outcome es
// "no_action" y RecommendationID queda vacío.
type PipelineRunResponse struct {
	RunID            string     `json:"run_id"`
	Outcome          string     `json:"outcome"` // recommendation_created | no_action
	RecommendationID string     `json:"recommendation_id,omitempty"`
	TotalItems       int        `json:"total_items"`
	StartedAt        time.Time  `json:"started_at"`
	FinishedAt       *time.Time `json:"finished_at,omitempty"`
	Note             string     `json:"note,omitempty"`
}

// PipelineStatusResponse estado actual del scheduler y última corrida.
type PipelineStatusResponse struct {
	Running    bool             `json:"running"`
	NextRunAt  *time.Time       `json:"next_run_at,omitempty"`
	LastRun    *PipelineRunDTO  `json:"last_run,omitempty"`
	RecentRuns []PipelineRunDTO `json:"recent_runs,omitempty"`
}

// PipelineRunDTO corrida histórica del pipeline.
type PipelineRunDTO struct {
	ID               string     `json:"id"`
	StartedAt        time.Time  `json:"started_at"`
	FinishedAt       *time.Time `json:"finished_at,omitempty"`
	Status           string     `json:"status"`
	Note             string     `json:"note,omitempty"`
	RecommendationID *string    `json:"recommendation_id,omitempty"`
}
