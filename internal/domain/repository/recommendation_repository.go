package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

// MonthlyStatsResult fila cruda de la consulta de estadísticas mensuales.
// La produce la DB; el use case la convierte en DTO.
type MonthlyStatsResult struct {
	Day            time.Time
	Generated      int
	Executed       int
	Cancelled      int
	TotalCostOfDay decimal.Decimal
}

// RecommendationRepository define el puerto de persistencia para
// Recommendation y sus ítems. La recomendación es dueña de sus ítems:
// Create inserta cabecera y renglones en la misma operación.
type RecommendationRepository interface {
	Create(ctx context.Context, rec *entity.Recommendation) error
	GetByID(ctx context.Context, id string) (*entity.Recommendation, error)
	// GetForUpdate lee la cabecera tomando un lock de fila. Solo tiene
	// sentido dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Recommendation, error)
	ListRecent(ctx context.Context, limit, offset int) ([]*entity.Recommendation, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.Recommendation, error)
	// GetLatestByStatus devuelve la recomendación más reciente en el estado
	// dado, o ErrNotFound si no hay ninguna.
	GetLatestByStatus(ctx context.Context, status string) (*entity.Recommendation, error)

	ListItems(ctx context.Context, recommendationID string) ([]entity.RecommendationItem, error)
	GetItem(ctx context.Context, recommendationID, itemID string) (*entity.RecommendationItem, error)
	// UpdateItemQuantity fija la cantidad y el costo del renglón ya
	// recalculado por el caso de uso.
	UpdateItemQuantity(ctx context.Context, itemID string, quantity int, totalCost decimal.Decimal) error
	// RefreshTotals recalcula TotalItems y TotalCost de la cabecera a partir
	// de los renglones vigentes.
	RefreshTotals(ctx context.Context, recommendationID string) error

	// MarkExecuted transiciona a executed y asigna ExecutedAt.
	MarkExecuted(ctx context.Context, id string, executedAt time.Time) error
	// MarkCancelled transiciona a cancelled.
	MarkCancelled(ctx context.Context, id string) error

	// MonthlyStatistics agrega las recomendaciones del mes dado por día.
	MonthlyStatistics(ctx context.Context, year int, month time.Month) ([]MonthlyStatsResult, error)
}
