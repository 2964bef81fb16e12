package dto

import "github.com/shopspring/decimal"

// StatsSummaryResponse KPIs del tablero: ventas de la ventana, variación
// diaria, productos bajo stock de seguridad y recomendación pendiente.
type StatsSummaryResponse struct {
	WindowDays            int                     `json:"window_days"`
	TotalRevenue          decimal.Decimal         `json:"total_revenue"`
	TotalUnitsSold        int                     `json:"total_units_sold"`
	DayOverDayPct         decimal.Decimal         `json:"day_over_day_pct"`
	LowStockProducts      int                     `json:"low_stock_products"`
	PendingRecommendation *RecommendationResponse `json:"pending_recommendation,omitempty"`
}

// SalesTrendResponse serie diaria de ventas de la ventana.
type SalesTrendResponse struct {
	WindowDays int               `json:"window_days"`
	Points     []SalesTrendPoint `json:"points"`
}

// SalesTrendPoint ventas agregadas de un día.
type SalesTrendPoint struct {
	Day     string          `json:"day"` // YYYY-MM-DD
	Units   int             `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
}

// TopProductDTO producto del ranking por cantidad vendida.
type TopProductDTO struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// TopProductsResponse ranking top-N de la ventana.
type TopProductsResponse struct {
	WindowDays int             `json:"window_days"`
	Items      []TopProductDTO `json:"items"`
}

// CategoryShareDTO participación de una categoría en el ingreso.
type CategoryShareDTO struct {
	Category   string          `json:"category"`
	Revenue    decimal.Decimal `json:"revenue"`
	Percentage decimal.Decimal `json:"percentage"`
}

// CategoryDistributionResponse distribución del ingreso por categoría.
type CategoryDistributionResponse struct {
	WindowDays int                `json:"window_days"`
	Categories []CategoryShareDTO `json:"categories"`
}

// StockAlertDTO producto bajo su stock de seguridad.
type StockAlertDTO struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	CurrentStock int    `json:"current_stock"`
	SafeStock    int    `json:"safe_stock"`
	Shortfall    int    `json:"shortfall"`
	Priority     string `json:"priority"`
}

// StockAlertsResponse listado de alertas de stock.
type StockAlertsResponse struct {
	Items []StockAlertDTO `json:"items"`
}
