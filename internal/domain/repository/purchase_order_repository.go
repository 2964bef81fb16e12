package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

// OrderHistoryFilter acota la consulta del historial de pedidos.
// Los campos en cero no filtran.
type OrderHistoryFilter struct {
	ProductID string
	From      time.Time
	To        time.Time
	Limit     int
	Offset    int
}

// PurchaseOrderRepository define el puerto del historial de pedidos al
// proveedor. Append-only: los renglones se insertan al ejecutar una
// recomendación y nunca se modifican.
type PurchaseOrderRepository interface {
	CreateBatch(ctx context.Context, orders []*entity.PurchaseOrder) error
	ListByRecommendation(ctx context.Context, recommendationID string) ([]*entity.PurchaseOrder, error)
	History(ctx context.Context, filter OrderHistoryFilter) ([]*entity.PurchaseOrder, error)
}
