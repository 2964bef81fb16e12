package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecommendationResponse cabecera de una recomendación.
type RecommendationResponse struct {
	ID                 string          `json:"id"`
	RecommendationDate string          `json:"recommendation_date"` // YYYY-MM-DD
	TotalItems         int             `json:"total_items"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	Status             string          `json:"status"`
	CreatedAt          time.Time       `json:"created_at"`
	ExecutedAt         *time.Time      `json:"executed_at,omitempty"`
}

// RecommendationDetailResponse cabecera con sus renglones.
type RecommendationDetailResponse struct {
	RecommendationResponse
	Items []RecommendationItemResponse `json:"items"`
}

// RecommendationItemResponse renglón de una recomendación.
type RecommendationItemResponse struct {
	ID                   string          `json:"id"`
	ProductID            string          `json:"product_id"`
	ProductName          string          `json:"product_name"`
	CurrentStockSnapshot int             `json:"current_stock_snapshot"`
	SafeStockSnapshot    int             `json:"safe_stock_snapshot"`
	OrderQuantity        int             `json:"order_quantity"`
	UnitPriceSnapshot    decimal.Decimal `json:"unit_price_snapshot"`
	TotalCost            decimal.Decimal `json:"total_cost"`
	Reason               string          `json:"reason"`
	Priority             string          `json:"priority"`
}

// RecommendationListResponse lista paginada de recomendaciones.
type RecommendationListResponse struct {
	Items []RecommendationResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}

// UpdateItemQuantityRequest entrada de PUT del renglón: solo la cantidad es editable.
type UpdateItemQuantityRequest struct {
	OrderQuantity int `json:"order_quantity" validate:"min=0"`
}

// ExecuteResponse resultado de ejecutar una recomendación.
type ExecuteResponse struct {
	RecommendationID string          `json:"recommendation_id"`
	Status           string          `json:"status"`
	ItemsApplied     int             `json:"items_applied"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	ExecutedAt       time.Time       `json:"executed_at"`
}

// PurchaseOrderResponse renglón del historial de pedidos al proveedor.
type PurchaseOrderResponse struct {
	ID               string          `json:"id"`
	RecommendationID string          `json:"recommendation_id"`
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name"`
	QuantityOrdered  int             `json:"quantity_ordered"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	OrderDate        time.Time       `json:"order_date"`
	DeliveryDate     time.Time       `json:"delivery_date"`
	Status           string          `json:"status"`
}

// MonthlyStatisticsResponse estadísticas de recomendaciones agregadas por día.
type MonthlyStatisticsResponse struct {
	Year   int                 `json:"year"`
	Month  int                 `json:"month"`
	Days   []DailyStatisticDTO `json:"days"`
	Totals MonthlyTotalsDTO    `json:"totals"`
}

// DailyStatisticDTO agregado de un día del mes.
type DailyStatisticDTO struct {
	Day       string          `json:"day"` // YYYY-MM-DD
	Generated int             `json:"generated"`
	Executed  int             `json:"executed"`
	Cancelled int             `json:"cancelled"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// MonthlyTotalsDTO acumulados del mes.
type MonthlyTotalsDTO struct {
	Generated int             `json:"generated"`
	Executed  int             `json:"executed"`
	Cancelled int             `json:"cancelled"`
	TotalCost decimal.Decimal `json:"total_cost"`
}
