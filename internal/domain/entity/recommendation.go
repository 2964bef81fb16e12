package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una recomendación. executed y cancelled son
// terminales: no existe transición de salida.
const (
	RecommendationStatusPending   = "pending"
	RecommendationStatusExecuted  = "executed"
	RecommendationStatusCancelled = "cancelled"
)

// Prioridades de un ítem de recomendación.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Recommendation es el lote de pedido propuesto por una corrida del pipeline.
// Es dueña de sus ítems: comparten ciclo de vida y se insertan/borran juntos.
type Recommendation struct {
	ID                 string
	RecommendationDate time.Time // fecha de la corrida, sin hora
	TotalItems         int
	TotalCost          decimal.Decimal
	Status             string
	CreatedAt          time.Time
	ExecutedAt         *time.Time // solo se asigna al pasar a executed
	Items              []RecommendationItem
}

// IsTerminal indica si el estado actual no admite más transiciones.
func (r *Recommendation) IsTerminal() bool {
	return r.Status == RecommendationStatusExecuted || r.Status == RecommendationStatusCancelled
}

// RecommendationItem es un renglón de la recomendación. Los snapshots de stock
// y precio se capturan al generarse y nunca cambian; solo OrderQuantity es
// editable mientras la recomendación está pending, y TotalCost se recalcula
// en cada edición (nunca queda desfasado).
type RecommendationItem struct {
	ID                   string
	RecommendationID     string
	ProductID            string
	ProductName          string
	CurrentStockSnapshot int
	SafeStockSnapshot    int
	OrderQuantity        int // >= 0, editable en pending
	UnitPriceSnapshot    decimal.Decimal
	TotalCost            decimal.Decimal // siempre OrderQuantity × UnitPriceSnapshot
	Reason               string
	Priority             string
	CreatedAt            time.Time
}

// ItemTotal calcula el costo de un renglón para una cantidad dada.
func ItemTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
