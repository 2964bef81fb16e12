package entity

import "time"

// Estados de una corrida del pipeline.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// PipelineRun es el marcador de una corrida del pipeline de reposición.
// El guard single-flight vive en memoria; esta fila se persiste solo para
// auditoría y para el endpoint de estado del scheduler.
type PipelineRun struct {
	ID               string
	StartedAt        time.Time
	FinishedAt       *time.Time
	Status           string
	Note             string  // ej. "sin faltantes" en corridas sin recomendación
	RecommendationID *string // asignado solo en corridas que generaron recomendación
}
