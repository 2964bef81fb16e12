package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
	"github.com/jhoicas/Reposicion-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	repository.ProductRepository
	products []*entity.Product
	err      error
}

func (f *fakeProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	return f.products, f.err
}

type fakeSalesRepo struct {
	repository.SalesRepository
	records []*entity.SalesRecord
}

func (f *fakeSalesRepo) ListSince(ctx context.Context, since time.Time) ([]*entity.SalesRecord, error) {
	return f.records, nil
}

type fakeRecRepo struct {
	repository.RecommendationRepository
	created *entity.Recommendation
	err     error
}

func (f *fakeRecRepo) Create(ctx context.Context, rec *entity.Recommendation) error {
	if f.err != nil {
		return f.err
	}
	f.created = rec
	return nil
}

// fakeTx entrega el mismo fakeRecRepo sin transacción real.
type fakeTx struct {
	recs *fakeRecRepo
}

func (f *fakeTx) RunPipeline(ctx context.Context, fn func(recRepo repository.RecommendationRepository) error) error {
	return fn(f.recs)
}

type fakeRunRepo struct {
	repository.PipelineRunRepository
	created      *entity.PipelineRun
	finishStatus string
	finishNote   string
	finishRecID  *string
	finishErr    error
}

func (f *fakeRunRepo) Create(ctx context.Context, run *entity.PipelineRun) error {
	f.created = run
	return nil
}

func (f *fakeRunRepo) Finish(ctx context.Context, id, status string, finishedAt time.Time, note string, recID *string) error {
	if f.finishErr != nil {
		return f.finishErr
	}
	f.finishStatus = status
	f.finishNote = note
	f.finishRecID = recID
	return nil
}

func producto(id, name string, current, safe int, price int64) *entity.Product {
	return &entity.Product{
		ID:           id,
		Name:         name,
		Category:     "abarrotes",
		CurrentStock: current,
		SafeStock:    safe,
		UnitPrice:    decimal.NewFromInt(price),
	}
}

func buildUseCase(products *fakeProductRepo, recs *fakeRecRepo, runs *fakeRunRepo) *UseCase {
	uc := NewUseCase(products, &fakeSalesRepo{}, runs, &fakeTx{recs: recs}, logger.Nop())
	uc.now = func() time.Time { return time.Date(2025, 6, 15, 6, 0, 0, 0, time.UTC) }
	return uc
}

// ──────────────────────────────────────────────────────────────────────────────
// Run
// ──────────────────────────────────────────────────────────────────────────────

func TestRun_GeneraRecomendacionConTotalesCorrectos(t *testing.T) {
	products := &fakeProductRepo{products: []*entity.Product{
		producto("pa", "Producto A", 0, 20, 1000),
		producto("pb", "Producto B", 15, 20, 500),
		producto("pc", "Producto C", 30, 20, 800), // sin faltante, no entra
	}}
	recs := &fakeRecRepo{}
	runs := &fakeRunRepo{}
	uc := buildUseCase(products, recs, runs)

	resp, err := uc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "recommendation_created", resp.Outcome)
	assert.Equal(t, 2, resp.TotalItems)

	rec := recs.created
	require.NotNil(t, rec)
	require.Len(t, rec.Items, 2)
	assert.Equal(t, entity.RecommendationStatusPending, rec.Status)

	// Mayor faltante primero: A (20) antes que B (5).
	a, b := rec.Items[0], rec.Items[1]
	assert.Equal(t, "pa", a.ProductID)
	assert.Equal(t, 20, a.OrderQuantity)
	assert.Equal(t, entity.PriorityHigh, a.Priority)
	assert.True(t, a.TotalCost.Equal(decimal.NewFromInt(20000)))

	assert.Equal(t, "pb", b.ProductID)
	assert.Equal(t, 5, b.OrderQuantity)
	assert.Equal(t, entity.PriorityLow, b.Priority)
	assert.True(t, b.TotalCost.Equal(decimal.NewFromInt(2500)))

	assert.Equal(t, 2, rec.TotalItems)
	assert.True(t, rec.TotalCost.Equal(decimal.NewFromInt(22500)),
		"esperaba 22500, obtuve %s", rec.TotalCost)

	assert.Equal(t, entity.RunStatusCompleted, runs.finishStatus)
	require.NotNil(t, runs.finishRecID)
	assert.Equal(t, rec.ID, *runs.finishRecID)
}

func TestRun_SinFaltantesEsResultadoNormal(t *testing.T) {
	products := &fakeProductRepo{products: []*entity.Product{
		producto("pa", "Producto A", 25, 20, 1000),
	}}
	recs := &fakeRecRepo{}
	runs := &fakeRunRepo{}
	uc := buildUseCase(products, recs, runs)

	resp, err := uc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "no_action", resp.Outcome)
	assert.Empty(t, resp.RecommendationID)
	assert.Nil(t, recs.created, "no debe persistirse una recomendación vacía")
	assert.Equal(t, entity.RunStatusCompleted, runs.finishStatus)
	assert.Nil(t, runs.finishRecID)
	assert.Contains(t, runs.finishNote, "sin faltantes")
}

func TestRun_FalloDeLecturaCierraLaCorridaComoFallida(t *testing.T) {
	readErr := errors.New("conexión rechazada")
	products := &fakeProductRepo{err: readErr}
	runs := &fakeRunRepo{}
	uc := buildUseCase(products, &fakeRecRepo{}, runs)

	_, err := uc.Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, readErr)
	assert.Equal(t, entity.RunStatusFailed, runs.finishStatus)
}

func TestRun_FalloAlPersistirPropagaYMarcaFallida(t *testing.T) {
	writeErr := errors.New("timeout de escritura")
	products := &fakeProductRepo{products: []*entity.Product{
		producto("pa", "Producto A", 0, 20, 1000),
	}}
	recs := &fakeRecRepo{err: writeErr}
	runs := &fakeRunRepo{}
	uc := buildUseCase(products, recs, runs)

	_, err := uc.Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, writeErr)
	assert.Equal(t, entity.RunStatusFailed, runs.finishStatus)
}

func TestRun_FalloAlCerrarLaAuditoriaNoFallaLaCorrida(t *testing.T) {
	// La recomendación ya quedó persistida; un fallo al cerrar la fila de
	// auditoría no debe devolver error (un reintento duplicaría el pedido).
	products := &fakeProductRepo{products: []*entity.Product{
		producto("pa", "Producto A", 0, 20, 1000),
	}}
	recs := &fakeRecRepo{}
	runs := &fakeRunRepo{finishErr: errors.New("timeout al actualizar")}
	uc := buildUseCase(products, recs, runs)

	resp, err := uc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "recommendation_created", resp.Outcome)
	require.NotNil(t, recs.created)
	assert.Equal(t, recs.created.ID, resp.RecommendationID)
}

func TestRun_MotivoIncluyeTendenciaAlAlza(t *testing.T) {
	now := time.Date(2025, 6, 15, 6, 0, 0, 0, time.UTC)
	products := &fakeProductRepo{products: []*entity.Product{
		producto("pa", "Producto A", 5, 20, 1000),
	}}
	sales := &fakeSalesRepo{records: []*entity.SalesRecord{
		// ventana actual 10 unidades, ventana anterior 2: al alza
		{ProductID: "pa", QuantitySold: 10, SalePrice: decimal.NewFromInt(1000), SaleDate: now.AddDate(0, 0, -2)},
		{ProductID: "pa", QuantitySold: 2, SalePrice: decimal.NewFromInt(1000), SaleDate: now.AddDate(0, 0, -10)},
	}}
	recs := &fakeRecRepo{}
	uc := NewUseCase(products, sales, &fakeRunRepo{}, &fakeTx{recs: recs}, logger.Nop())
	uc.now = func() time.Time { return now }

	_, err := uc.Run(context.Background())

	require.NoError(t, err)
	require.NotNil(t, recs.created)
	require.Len(t, recs.created.Items, 1)
	assert.Contains(t, recs.created.Items[0].Reason, "Ventas al alza")
}
