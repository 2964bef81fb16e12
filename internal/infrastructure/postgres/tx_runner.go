package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Reposicion-api/internal/application/pipeline"
	"github.com/jhoicas/Reposicion-api/internal/application/recommendation"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

var _ recommendation.TxRunner = (*TxRunner)(nil)
var _ pipeline.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback según el resultado.
func (r *TxRunner) Run(ctx context.Context, fn func(
	recRepo repository.RecommendationRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	recRepo := NewRecommendationRepository(tx)
	productRepo := NewProductRepository(tx)
	orderRepo := NewPurchaseOrderRepository(tx)

	if err := fn(recRepo, productRepo, orderRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPipeline inicia una transacción solo con el repositorio de
// recomendaciones (para la inserción atómica de cabecera y renglones).
func (r *TxRunner) RunPipeline(ctx context.Context, fn func(recRepo repository.RecommendationRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRecommendationRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
