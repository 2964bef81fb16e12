package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder es el registro histórico de pedido al proveedor que deja la
// ejecución de una recomendación: un renglón por ítem ejecutado. Append-only.
type PurchaseOrder struct {
	ID               string
	RecommendationID string
	ProductID        string
	ProductName      string
	QuantityOrdered  int
	UnitCost         decimal.Decimal
	TotalCost        decimal.Decimal
	OrderDate        time.Time
	DeliveryDate     time.Time // estimada: OrderDate + 2 días
	Status           string    // "pending" = pedido emitido, pendiente de entrega
	CreatedAt        time.Time
}
