package recommendation

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

// QueryUseCase resuelve las lecturas de recomendaciones y del historial de
// pedidos. Solo consultas; las transiciones viven en LifecycleUseCase.
type QueryUseCase struct {
	recRepo   repository.RecommendationRepository
	orderRepo repository.PurchaseOrderRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(recRepo repository.RecommendationRepository, orderRepo repository.PurchaseOrderRepository) *QueryUseCase {
	return &QueryUseCase{recRepo: recRepo, orderRepo: orderRepo}
}

// List devuelve las recomendaciones más recientes, opcionalmente filtradas
// por estado.
func (uc *QueryUseCase) List(ctx context.Context, status string, page dto.PageRequest) (*dto.RecommendationListResponse, error) {
	page.DefaultPage()

	var (
		recs []*entity.Recommendation
		err  error
	)
	if status != "" {
		recs, err = uc.recRepo.ListByStatus(ctx, status, page.Limit, page.Offset)
	} else {
		recs, err = uc.recRepo.ListRecent(ctx, page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}

	items := make([]dto.RecommendationResponse, 0, len(recs))
	for _, r := range recs {
		items = append(items, recToDTO(r))
	}
	return &dto.RecommendationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GetPending devuelve la recomendación pending más reciente con sus renglones.
func (uc *QueryUseCase) GetPending(ctx context.Context) (*dto.RecommendationDetailResponse, error) {
	rec, err := uc.recRepo.GetLatestByStatus(ctx, entity.RecommendationStatusPending)
	if err != nil {
		return nil, err
	}
	return uc.detail(ctx, rec)
}

// GetByID devuelve una recomendación con sus renglones.
func (uc *QueryUseCase) GetByID(ctx context.Context, id string) (*dto.RecommendationDetailResponse, error) {
	rec, err := uc.recRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.detail(ctx, rec)
}

// ListItems devuelve solo los renglones de una recomendación.
func (uc *QueryUseCase) ListItems(ctx context.Context, recommendationID string) ([]dto.RecommendationItemResponse, error) {
	if _, err := uc.recRepo.GetByID(ctx, recommendationID); err != nil {
		return nil, err
	}
	items, err := uc.recRepo.ListItems(ctx, recommendationID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecommendationItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, itemToDTO(it))
	}
	return out, nil
}

// OrderHistory devuelve el historial de pedidos al proveedor.
func (uc *QueryUseCase) OrderHistory(ctx context.Context, filter repository.OrderHistoryFilter) ([]dto.PurchaseOrderResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	orders, err := uc.orderRepo.History(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.PurchaseOrderResponse{
			ID:               o.ID,
			RecommendationID: o.RecommendationID,
			ProductID:        o.ProductID,
			ProductName:      o.ProductName,
			QuantityOrdered:  o.QuantityOrdered,
			UnitCost:         o.UnitCost,
			TotalCost:        o.TotalCost,
			OrderDate:        o.OrderDate,
			DeliveryDate:     o.DeliveryDate,
			Status:           o.Status,
		})
	}
	return out, nil
}

// MonthlyStatistics agrega por día las recomendaciones del mes.
func (uc *QueryUseCase) MonthlyStatistics(ctx context.Context, year int, month time.Month) (*dto.MonthlyStatisticsResponse, error) {
	rows, err := uc.recRepo.MonthlyStatistics(ctx, year, month)
	if err != nil {
		return nil, err
	}

	resp := &dto.MonthlyStatisticsResponse{
		Year:  year,
		Month: int(month),
		Days:  make([]dto.DailyStatisticDTO, 0, len(rows)),
		Totals: dto.MonthlyTotalsDTO{
			TotalCost: decimal.Zero,
		},
	}
	for _, row := range rows {
		resp.Days = append(resp.Days, dto.DailyStatisticDTO{
			Day:       row.Day.Format("2006-01-02"),
			Generated: row.Generated,
			Executed:  row.Executed,
			Cancelled: row.Cancelled,
			TotalCost: row.TotalCostOfDay,
		})
		resp.Totals.Generated += row.Generated
		resp.Totals.Executed += row.Executed
		resp.Totals.Cancelled += row.Cancelled
		resp.Totals.TotalCost = resp.Totals.TotalCost.Add(row.TotalCostOfDay)
	}
	return resp, nil
}

func (uc *QueryUseCase) detail(ctx context.Context, rec *entity.Recommendation) (*dto.RecommendationDetailResponse, error) {
	items := rec.Items
	if len(items) == 0 {
		var err error
		items, err = uc.recRepo.ListItems(ctx, rec.ID)
		if err != nil {
			return nil, err
		}
	}
	out := &dto.RecommendationDetailResponse{
		RecommendationResponse: recToDTO(rec),
		Items:                  make([]dto.RecommendationItemResponse, 0, len(items)),
	}
	for _, it := range items {
		out.Items = append(out.Items, itemToDTO(it))
	}
	return out, nil
}

func recToDTO(r *entity.Recommendation) dto.RecommendationResponse {
	return dto.RecommendationResponse{
		ID:                 r.ID,
		RecommendationDate: r.RecommendationDate.Format("2006-01-02"),
		TotalItems:         r.TotalItems,
		TotalCost:          r.TotalCost,
		Status:             r.Status,
		CreatedAt:          r.CreatedAt,
		ExecutedAt:         r.ExecutedAt,
	}
}

func itemToDTO(it entity.RecommendationItem) dto.RecommendationItemResponse {
	return dto.RecommendationItemResponse{
		ID:                   it.ID,
		ProductID:            it.ProductID,
		ProductName:          it.ProductName,
		CurrentStockSnapshot: it.CurrentStockSnapshot,
		SafeStockSnapshot:    it.SafeStockSnapshot,
		OrderQuantity:        it.OrderQuantity,
		UnitPriceSnapshot:    it.UnitPriceSnapshot,
		TotalCost:            it.TotalCost,
		Reason:               it.Reason,
		Priority:             it.Priority,
	}
}
