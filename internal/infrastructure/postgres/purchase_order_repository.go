package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const orderColumns = `id, recommendation_id, product_id, product_name, quantity_ordered,
	unit_cost, total_cost, order_date, delivery_date, status, created_at`

// PurchaseOrderRepo historial de pedidos al proveedor sobre PostgreSQL
// (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// CreateBatch inserta los renglones de pedido de una ejecución.
func (r *PurchaseOrderRepo) CreateBatch(ctx context.Context, orders []*entity.PurchaseOrder) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	query := `
		INSERT INTO purchase_orders (id, recommendation_id, product_id, product_name, quantity_ordered,
			unit_cost, total_cost, order_date, delivery_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for _, o := range orders {
		if _, err := r.q.Exec(ctx, query,
			o.ID, o.RecommendationID, o.ProductID, o.ProductName, o.QuantityOrdered,
			o.UnitCost, o.TotalCost, o.OrderDate, o.DeliveryDate, o.Status, o.CreatedAt,
		); err != nil {
			return wrapError("insert purchase order", err)
		}
	}
	return nil
}

// ListByRecommendation obtiene los pedidos que dejó una ejecución.
func (r *PurchaseOrderRepo) ListByRecommendation(ctx context.Context, recommendationID string) ([]*entity.PurchaseOrder, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM purchase_orders
		WHERE recommendation_id = $1 ORDER BY product_name`
	rows, err := r.q.Query(ctx, query, recommendationID)
	if err != nil {
		return nil, wrapError("list orders by recommendation", err)
	}
	defer rows.Close()
	return scanOrders(rows)
}

// History obtiene el historial filtrado, más recientes primero.
func (r *PurchaseOrderRepo) History(ctx context.Context, filter repository.OrderHistoryFilter) ([]*entity.PurchaseOrder, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE 1=1`
	args := make([]any, 0, 5)
	idx := 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", idx)
		args = append(args, filter.ProductID)
		idx++
	}
	if !filter.From.IsZero() {
		query += fmt.Sprintf(" AND order_date >= $%d", idx)
		args = append(args, filter.From)
		idx++
	}
	if !filter.To.IsZero() {
		query += fmt.Sprintf(" AND order_date <= $%d", idx)
		args = append(args, filter.To)
		idx++
	}
	query += fmt.Sprintf(" ORDER BY order_date DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapError("order history", err)
	}
	defer rows.Close()
	return scanOrders(rows)
}

func scanOrders(rows pgx.Rows) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := rows.Scan(&o.ID, &o.RecommendationID, &o.ProductID, &o.ProductName,
			&o.QuantityOrdered, &o.UnitCost, &o.TotalCost, &o.OrderDate, &o.DeliveryDate,
			&o.Status, &o.CreatedAt); err != nil {
			return nil, wrapError("scan purchase order", err)
		}
		out = append(out, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterate purchase orders", err)
	}
	return out, nil
}
