package stats

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
	"github.com/jhoicas/Reposicion-api/pkg/logger"
)

var ahora = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type fakeProductRepo struct {
	repository.ProductRepository
	products []*entity.Product
	lowStock int
}

func (f *fakeProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	return f.products, nil
}

func (f *fakeProductRepo) CountBelowSafeStock(ctx context.Context) (int, error) {
	return f.lowStock, nil
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
	pending *entity.Recommendation
}

func (f *fakeRecRepo) GetLatestByStatus(ctx context.Context, status string) (*entity.Recommendation, error) {
	if f.pending == nil {
		return nil, domain.ErrNotFound
	}
	return f.pending, nil
}

type fakeCache struct {
	summary *dto.StatsSummaryResponse
	gets    int
	sets    int
}

func (f *fakeCache) GetSummary(ctx context.Context) (*dto.StatsSummaryResponse, bool) {
	f.gets++
	return f.summary, f.summary != nil
}

func (f *fakeCache) SetSummary(ctx context.Context, s *dto.StatsSummaryResponse) {
	f.sets++
	f.summary = s
}

func newUseCase(products *fakeProductRepo, sales *fakeSalesRepo, recs *fakeRecRepo, cache SummaryCache) *UseCase {
	uc := NewUseCase(products, sales, recs, cache, logger.Nop())
	uc.now = func() time.Time { return ahora }
	return uc
}

func TestSummary_CalculaYPueblaElCache(t *testing.T) {
	products := &fakeProductRepo{
		products: []*entity.Product{
			{ID: "pa", Name: "A", Category: "bebidas", CurrentStock: 5, SafeStock: 20, UnitPrice: decimal.NewFromInt(1000)},
		},
		lowStock: 1,
	}
	sales := &fakeSalesRepo{records: []*entity.SalesRecord{
		{ProductID: "pa", QuantitySold: 3, SalePrice: decimal.NewFromInt(1000), SaleDate: ahora},
		{ProductID: "pa", QuantitySold: 2, SalePrice: decimal.NewFromInt(1000), SaleDate: ahora.AddDate(0, 0, -1)},
	}}
	cache := &fakeCache{}
	uc := newUseCase(products, sales, &fakeRecRepo{}, cache)

	resp, err := uc.Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 5, resp.TotalUnitsSold)
	assert.True(t, resp.TotalRevenue.Equal(decimal.NewFromInt(5000)))
	// hoy 3000 vs ayer 2000: +50%
	assert.True(t, resp.DayOverDayPct.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 1, resp.LowStockProducts)
	assert.Nil(t, resp.PendingRecommendation)
	assert.Equal(t, 1, cache.sets)
}

func TestSummary_SirveDesdeElCache(t *testing.T) {
	cached := &dto.StatsSummaryResponse{WindowDays: 7, TotalUnitsSold: 99}
	cache := &fakeCache{summary: cached}
	uc := newUseCase(&fakeProductRepo{}, &fakeSalesRepo{}, &fakeRecRepo{}, cache)

	resp, err := uc.Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, cached, resp)
	assert.Equal(t, 0, cache.sets, "con cache hit no se recalcula ni repuebla")
}

func TestSummary_IncluyeLaRecomendacionPendiente(t *testing.T) {
	recs := &fakeRecRepo{pending: &entity.Recommendation{
		ID:                 "rec-1",
		RecommendationDate: ahora,
		TotalItems:         3,
		TotalCost:          decimal.NewFromInt(40000),
		Status:             entity.RecommendationStatusPending,
	}}
	uc := newUseCase(&fakeProductRepo{}, &fakeSalesRepo{}, recs, nil)

	resp, err := uc.Summary(context.Background())

	require.NoError(t, err)
	require.NotNil(t, resp.PendingRecommendation)
	assert.Equal(t, "rec-1", resp.PendingRecommendation.ID)
	assert.Equal(t, "2025-06-15", resp.PendingRecommendation.RecommendationDate)
}

func TestSalesTrend_IncluyeDiasSinVentas(t *testing.T) {
	sales := &fakeSalesRepo{records: []*entity.SalesRecord{
		{ProductID: "pa", QuantitySold: 2, SalePrice: decimal.NewFromInt(500), SaleDate: ahora},
	}}
	uc := newUseCase(&fakeProductRepo{}, sales, &fakeRecRepo{}, nil)

	resp, err := uc.SalesTrend(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, resp.Points, 7)
	assert.Equal(t, "2025-06-09", resp.Points[0].Day)
	assert.Equal(t, 0, resp.Points[0].Units)
	assert.Equal(t, "2025-06-15", resp.Points[6].Day)
	assert.Equal(t, 2, resp.Points[6].Units)
	assert.True(t, resp.Points[6].Revenue.Equal(decimal.NewFromInt(1000)))
}

func TestAlerts_OrdenaPorFaltanteYAsignaPrioridad(t *testing.T) {
	products := &fakeProductRepo{products: []*entity.Product{
		{ID: "pa", Name: "A", CurrentStock: 8, SafeStock: 10},
		{ID: "pb", Name: "B", CurrentStock: 0, SafeStock: 10},
		{ID: "pc", Name: "C", CurrentStock: 12, SafeStock: 10},
	}}
	uc := newUseCase(products, &fakeSalesRepo{}, &fakeRecRepo{}, nil)

	resp, err := uc.Alerts(context.Background())

	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "pb", resp.Items[0].ProductID)
	assert.Equal(t, entity.PriorityHigh, resp.Items[0].Priority)
	assert.Equal(t, 10, resp.Items[0].Shortfall)
	assert.Equal(t, "pa", resp.Items[1].ProductID)
	assert.Equal(t, entity.PriorityLow, resp.Items[1].Priority)
}
