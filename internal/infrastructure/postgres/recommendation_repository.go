package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

var _ repository.RecommendationRepository = (*RecommendationRepo)(nil)

const (
	recColumns  = `id, recommendation_date, total_items, total_cost, status, created_at, executed_at`
	itemColumns = `id, recommendation_id, product_id, product_name, current_stock_snapshot,
		safe_stock_snapshot, order_quantity, unit_price_snapshot, total_cost, reason, priority, created_at`
)

// RecommendationRepo persistencia de recomendaciones y sus renglones sobre
// PostgreSQL (usable con pool o tx).
type RecommendationRepo struct {
	q Querier
}

// NewRecommendationRepository construye el adaptador de recomendaciones. Pasar pool o tx (Querier).
func NewRecommendationRepository(q Querier) *RecommendationRepo {
	return &RecommendationRepo{q: q}
}

// Create inserta cabecera y renglones. Llamar dentro de una transacción
// (RunPipeline) para que ambos queden como una sola unidad.
func (r *RecommendationRepo) Create(ctx context.Context, rec *entity.Recommendation) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	query := `
		INSERT INTO order_recommendations (id, recommendation_date, total_items, total_cost, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query,
		rec.ID, rec.RecommendationDate, rec.TotalItems, rec.TotalCost, rec.Status, rec.CreatedAt,
	); err != nil {
		return wrapError("insert recommendation", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, recommendation_id, product_id, product_name, current_stock_snapshot,
			safe_stock_snapshot, order_quantity, unit_price_snapshot, total_cost, reason, priority, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	for _, it := range rec.Items {
		if _, err := r.q.Exec(ctx, itemQuery,
			it.ID, it.RecommendationID, it.ProductID, it.ProductName, it.CurrentStockSnapshot,
			it.SafeStockSnapshot, it.OrderQuantity, it.UnitPriceSnapshot, it.TotalCost,
			it.Reason, it.Priority, it.CreatedAt,
		); err != nil {
			return wrapError("insert recommendation item", err)
		}
	}
	return nil
}

// GetByID obtiene la cabecera por ID.
func (r *RecommendationRepo) GetByID(ctx context.Context, id string) (*entity.Recommendation, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	query := `SELECT ` + recColumns + ` FROM order_recommendations WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetForUpdate obtiene la cabecera con lock de fila (FOR UPDATE). Solo
// tiene sentido dentro de una transacción.
func (r *RecommendationRepo) GetForUpdate(ctx context.Context, id string) (*entity.Recommendation, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	query := `SELECT ` + recColumns + ` FROM order_recommendations WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// ListRecent obtiene las recomendaciones más recientes.
func (r *RecommendationRepo) ListRecent(ctx context.Context, limit, offset int) ([]*entity.Recommendation, error) {
	query := `SELECT ` + recColumns + ` FROM order_recommendations
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

// ListByStatus obtiene las recomendaciones en un estado dado.
func (r *RecommendationRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.Recommendation, error) {
	query := `SELECT ` + recColumns + ` FROM order_recommendations
		WHERE status = $3 ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset, status)
}

// GetLatestByStatus obtiene la más reciente en el estado dado.
func (r *RecommendationRepo) GetLatestByStatus(ctx context.Context, status string) (*entity.Recommendation, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	query := `SELECT ` + recColumns + ` FROM order_recommendations
		WHERE status = $1 ORDER BY created_at DESC LIMIT 1`
	return r.scanOne(r.q.QueryRow(ctx, query, status))
}

// ListItems obtiene los renglones de una recomendación, mayor faltante primero.
func (r *RecommendationRepo) ListItems(ctx context.Context, recommendationID string) ([]entity.RecommendationItem, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	query := `SELECT ` + itemColumns + ` FROM order_items
		WHERE recommendation_id = $1
		ORDER BY (safe_stock_snapshot - current_stock_snapshot) DESC, product_id`
	rows, err := r.q.Query(ctx, query, recommendationID)
	if err != nil {
		return nil, wrapError("list items", err)
	}
	defer rows.Close()

	var out []entity.RecommendationItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterate items", err)
	}
	return out, nil
}

// GetItem obtiene un renglón verificando que pertenezca a la recomendación.
func (r *RecommendationRepo) GetItem(ctx context.Context, recommendationID, itemID string) (*entity.RecommendationItem, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	query := `SELECT ` + itemColumns + ` FROM order_items
		WHERE recommendation_id = $1 AND id = $2`
	row := r.q.QueryRow(ctx, query, recommendationID, itemID)
	it, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

// UpdateItemQuantity fija cantidad y costo de un renglón.
func (r *RecommendationRepo) UpdateItemQuantity(ctx context.Context, itemID string, quantity int, totalCost decimal.Decimal) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	query := `UPDATE order_items SET order_quantity = $2, total_cost = $3 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, itemID, quantity, totalCost)
	if err != nil {
		return wrapError("update item quantity", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RefreshTotals recalcula los totales de la cabecera desde sus renglones.
func (r *RecommendationRepo) RefreshTotals(ctx context.Context, recommendationID string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	query := `
		UPDATE order_recommendations SET
			total_items = (SELECT COUNT(*) FROM order_items WHERE recommendation_id = $1),
			total_cost = (SELECT COALESCE(SUM(total_cost), 0) FROM order_items WHERE recommendation_id = $1)
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, recommendationID); err != nil {
		return wrapError("refresh totals", err)
	}
	return nil
}

// MarkExecuted transiciona a executed asignando executed_at.
func (r *RecommendationRepo) MarkExecuted(ctx context.Context, id string, executedAt time.Time) error {
	return r.transition(ctx, id, entity.RecommendationStatusExecuted, &executedAt)
}

// MarkCancelled transiciona a cancelled.
func (r *RecommendationRepo) MarkCancelled(ctx context.Context, id string) error {
	return r.transition(ctx, id, entity.RecommendationStatusCancelled, nil)
}

func (r *RecommendationRepo) transition(ctx context.Context, id, status string, executedAt *time.Time) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	query := `UPDATE order_recommendations SET status = $2, executed_at = $3 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, status, executedAt)
	if err != nil {
		return wrapError("transition recommendation", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MonthlyStatistics agrega por día las recomendaciones del mes dado.
func (r *RecommendationRepo) MonthlyStatistics(ctx context.Context, year int, month time.Month) ([]repository.MonthlyStatsResult, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	query := `
		SELECT recommendation_date::date AS day,
			COUNT(*) AS generated,
			COUNT(*) FILTER (WHERE status = 'executed') AS executed,
			COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled,
			COALESCE(SUM(total_cost), 0) AS total_cost
		FROM order_recommendations
		WHERE EXTRACT(YEAR FROM recommendation_date) = $1
		  AND EXTRACT(MONTH FROM recommendation_date) = $2
		GROUP BY day
		ORDER BY day`
	rows, err := r.q.Query(ctx, query, year, int(month))
	if err != nil {
		return nil, wrapError("monthly statistics", err)
	}
	defer rows.Close()

	var out []repository.MonthlyStatsResult
	for rows.Next() {
		var row repository.MonthlyStatsResult
		if err := rows.Scan(&row.Day, &row.Generated, &row.Executed, &row.Cancelled, &row.TotalCostOfDay); err != nil {
			return nil, wrapError("scan monthly statistics", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterate monthly statistics", err)
	}
	return out, nil
}

func (r *RecommendationRepo) list(ctx context.Context, query string, limit, offset int, extra ...any) ([]*entity.Recommendation, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	args := append([]any{limit, offset}, extra...)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapError("list recommendations", err)
	}
	defer rows.Close()

	var out []*entity.Recommendation
	for rows.Next() {
		var rec entity.Recommendation
		if err := rows.Scan(&rec.ID, &rec.RecommendationDate, &rec.TotalItems, &rec.TotalCost,
			&rec.Status, &rec.CreatedAt, &rec.ExecutedAt); err != nil {
			return nil, wrapError("scan recommendation", err)
		}
		out = append(out, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterate recommendations", err)
	}
	return out, nil
}

func (r *RecommendationRepo) scanOne(row pgx.Row) (*entity.Recommendation, error) {
	var rec entity.Recommendation
	err := row.Scan(&rec.ID, &rec.RecommendationDate, &rec.TotalItems, &rec.TotalCost,
		&rec.Status, &rec.CreatedAt, &rec.ExecutedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, wrapError("get recommendation", err)
	}
	return &rec, nil
}

func scanItem(row pgx.Row) (entity.RecommendationItem, error) {
	var it entity.RecommendationItem
	err := row.Scan(&it.ID, &it.RecommendationID, &it.ProductID, &it.ProductName,
		&it.CurrentStockSnapshot, &it.SafeStockSnapshot, &it.OrderQuantity,
		&it.UnitPriceSnapshot, &it.TotalCost, &it.Reason, &it.Priority, &it.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return it, pgx.ErrNoRows
		}
		return it, wrapError("scan item", err)
	}
	return it, nil
}
