// Package stats resuelve las consultas del tablero: resumen de KPIs, serie
// diaria de ventas, ranking de productos, distribución por categoría y
// alertas de stock. Solo lecturas derivadas del historial de ventas y del
// catálogo.
package stats

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/analysis"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/replenishment"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
	"github.com/jhoicas/Reposicion-api/pkg/logger"
)

const (
	defaultWindowDays = 7
	defaultTopN       = 5
)

// SummaryCache guarda el resumen del tablero con TTL corto. La pérdida del
// cache no es un error: se recalcula desde la DB.
type SummaryCache interface {
	GetSummary(ctx context.Context) (*dto.StatsSummaryResponse, bool)
	SetSummary(ctx context.Context, summary *dto.StatsSummaryResponse)
}

// UseCase arma las respuestas del tablero.
type UseCase struct {
	productRepo repository.ProductRepository
	salesRepo   repository.SalesRepository
	recRepo     repository.RecommendationRepository
	cache       SummaryCache
	log         *logger.Logger

	now func() time.Time
}

// NewUseCase construye el caso de uso del tablero. cache puede ser nil
// cuando Redis no está configurado.
func NewUseCase(
	productRepo repository.ProductRepository,
	salesRepo repository.SalesRepository,
	recRepo repository.RecommendationRepository,
	cache SummaryCache,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		productRepo: productRepo,
		salesRepo:   salesRepo,
		recRepo:     recRepo,
		cache:       cache,
		log:         log,
		now:         time.Now,
	}
}

// Summary devuelve los KPIs del tablero. Lee primero del cache; si no está,
// calcula desde la DB y repuebla.
func (uc *UseCase) Summary(ctx context.Context) (*dto.StatsSummaryResponse, error) {
	if uc.cache != nil {
		if cached, ok := uc.cache.GetSummary(ctx); ok {
			return cached, nil
		}
	}

	now := uc.now()
	products, sales, err := uc.load(ctx, now)
	if err != nil {
		return nil, err
	}
	summary := analysis.Summarize(products, sales, now, defaultWindowDays, defaultTopN)

	totalRevenue := decimal.Zero
	totalUnits := 0
	for _, t := range summary.Totals {
		totalRevenue = totalRevenue.Add(t.Revenue)
		totalUnits += t.QuantitySold
	}

	lowStock, err := uc.productRepo.CountBelowSafeStock(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.StatsSummaryResponse{
		WindowDays:       defaultWindowDays,
		TotalRevenue:     totalRevenue,
		TotalUnitsSold:   totalUnits,
		DayOverDayPct:    summary.DayOverDayPct,
		LowStockProducts: lowStock,
	}

	pending, err := uc.recRepo.GetLatestByStatus(ctx, entity.RecommendationStatusPending)
	switch {
	case err == nil:
		resp.PendingRecommendation = &dto.RecommendationResponse{
			ID:                 pending.ID,
			RecommendationDate: pending.RecommendationDate.Format("2006-01-02"),
			TotalItems:         pending.TotalItems,
			TotalCost:          pending.TotalCost,
			Status:             pending.Status,
			CreatedAt:          pending.CreatedAt,
		}
	case err == domain.ErrNotFound:
		// Sin recomendación pendiente, el resumen va sin ese bloque.
	default:
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.SetSummary(ctx, resp)
	}
	return resp, nil
}

// SalesTrend devuelve la serie diaria de ventas de la ventana.
func (uc *UseCase) SalesTrend(ctx context.Context, windowDays int) (*dto.SalesTrendResponse, error) {
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}
	now := uc.now()
	_, sales, err := uc.load(ctx, now)
	if err != nil {
		return nil, err
	}

	points := analysis.DailySeries(sales, now, windowDays)
	resp := &dto.SalesTrendResponse{
		WindowDays: windowDays,
		Points:     make([]dto.SalesTrendPoint, 0, len(points)),
	}
	for _, p := range points {
		resp.Points = append(resp.Points, dto.SalesTrendPoint{
			Day:     p.Day.Format("2006-01-02"),
			Units:   p.Units,
			Revenue: p.Revenue,
		})
	}
	return resp, nil
}

// TopProducts devuelve el ranking por cantidad vendida de la ventana.
func (uc *UseCase) TopProducts(ctx context.Context, topN int) (*dto.TopProductsResponse, error) {
	if topN <= 0 {
		topN = defaultTopN
	}
	now := uc.now()
	products, sales, err := uc.load(ctx, now)
	if err != nil {
		return nil, err
	}
	summary := analysis.Summarize(products, sales, now, defaultWindowDays, topN)

	resp := &dto.TopProductsResponse{
		WindowDays: defaultWindowDays,
		Items:      make([]dto.TopProductDTO, 0, len(summary.Top)),
	}
	for _, t := range summary.Top {
		resp.Items = append(resp.Items, dto.TopProductDTO{
			ProductID:    t.ProductID,
			ProductName:  t.ProductName,
			QuantitySold: t.QuantitySold,
			Revenue:      t.Revenue,
		})
	}
	return resp, nil
}

// CategoryDistribution devuelve la participación de cada categoría en el
// ingreso de la ventana.
func (uc *UseCase) CategoryDistribution(ctx context.Context) (*dto.CategoryDistributionResponse, error) {
	now := uc.now()
	products, sales, err := uc.load(ctx, now)
	if err != nil {
		return nil, err
	}
	summary := analysis.Summarize(products, sales, now, defaultWindowDays, defaultTopN)

	resp := &dto.CategoryDistributionResponse{
		WindowDays: defaultWindowDays,
		Categories: make([]dto.CategoryShareDTO, 0, len(summary.Categories)),
	}
	for _, c := range summary.Categories {
		resp.Categories = append(resp.Categories, dto.CategoryShareDTO{
			Category:   c.Category,
			Revenue:    c.Revenue,
			Percentage: c.Percentage,
		})
	}
	return resp, nil
}

// Alerts lista los productos bajo su stock de seguridad, más urgentes primero.
func (uc *UseCase) Alerts(ctx context.Context) (*dto.StockAlertsResponse, error) {
	products, err := uc.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	flagged := replenishment.Assess(products)
	resp := &dto.StockAlertsResponse{Items: make([]dto.StockAlertDTO, 0, len(flagged))}
	for _, a := range flagged {
		resp.Items = append(resp.Items, dto.StockAlertDTO{
			ProductID:    a.Product.ID,
			ProductName:  a.Product.Name,
			CurrentStock: a.Product.CurrentStock,
			SafeStock:    a.Product.SafeStock,
			Shortfall:    a.Shortfall,
			Priority:     replenishment.PriorityFor(a.Product.CurrentStock, a.Product.SafeStock),
		})
	}
	return resp, nil
}

func (uc *UseCase) load(ctx context.Context, now time.Time) ([]*entity.Product, []*entity.SalesRecord, error) {
	products, err := uc.productRepo.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	since := now.AddDate(0, 0, -(2*defaultWindowDays - 1))
	sales, err := uc.salesRepo.ListSince(ctx, since)
	if err != nil {
		return nil, nil, err
	}
	return products, sales, nil
}
