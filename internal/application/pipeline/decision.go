package pipeline

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/analysis"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/replenishment"
)

// buildRecommendation arma la recomendación del día a partir de los productos
// marcados y el análisis de ventas. Devuelve domain.ErrEmptyDecision cuando
// ningún producto requiere reposición: en ese caso no se persiste nada.
func buildRecommendation(flagged []replenishment.Assessment, summary analysis.Summary, now time.Time) (*entity.Recommendation, error) {
	if len(flagged) == 0 {
		return nil, domain.ErrEmptyDecision
	}

	rec := &entity.Recommendation{
		ID:                 uuid.NewString(),
		RecommendationDate: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		Status:             entity.RecommendationStatusPending,
		CreatedAt:          now,
		Items:              make([]entity.RecommendationItem, 0, len(flagged)),
	}

	total := decimal.Zero
	for _, a := range flagged {
		p := a.Product
		qty := replenishment.OrderQuantity(p.CurrentStock, p.SafeStock)
		itemCost := entity.ItemTotal(p.UnitPrice, qty)
		rec.Items = append(rec.Items, entity.RecommendationItem{
			ID:                   uuid.NewString(),
			RecommendationID:     rec.ID,
			ProductID:            p.ID,
			ProductName:          p.Name,
			CurrentStockSnapshot: p.CurrentStock,
			SafeStockSnapshot:    p.SafeStock,
			OrderQuantity:        qty,
			UnitPriceSnapshot:    p.UnitPrice,
			TotalCost:            itemCost,
			Reason:               replenishment.BuildReason(p.CurrentStock, p.SafeStock, summary.Rising[p.ID]),
			Priority:             replenishment.PriorityFor(p.CurrentStock, p.SafeStock),
			CreatedAt:            now,
		})
		total = total.Add(itemCost)
	}

	rec.TotalItems = len(rec.Items)
	rec.TotalCost = total
	return rec, nil
}
