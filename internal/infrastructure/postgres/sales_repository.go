package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

var _ repository.SalesRepository = (*SalesRepo)(nil)

// SalesRepo lectura del historial de ventas sobre PostgreSQL.
type SalesRepo struct {
	q Querier
}

// NewSalesRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSalesRepository(q Querier) *SalesRepo {
	return &SalesRepo{q: q}
}

// ListSince devuelve las ventas desde la fecha dada, ascendente.
func (r *SalesRepo) ListSince(ctx context.Context, since time.Time) ([]*entity.SalesRecord, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	query := `
		SELECT id, product_id, quantity_sold, sale_price, sale_date, created_at
		FROM sales
		WHERE sale_date >= $1
		ORDER BY sale_date`
	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, wrapError("list sales", err)
	}
	defer rows.Close()

	var out []*entity.SalesRecord
	for rows.Next() {
		var s entity.SalesRecord
		if err := rows.Scan(&s.ID, &s.ProductID, &s.QuantitySold, &s.SalePrice,
			&s.SaleDate, &s.CreatedAt); err != nil {
			return nil, wrapError("scan sale", err)
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterate sales", err)
	}
	return out, nil
}
