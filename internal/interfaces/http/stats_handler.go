package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Reposicion-api/internal/application/stats"
)

// StatsHandler expone las consultas del tablero de ventas.
type StatsHandler struct {
	stats *stats.UseCase
}

// NewStatsHandler construye el handler del tablero.
func NewStatsHandler(uc *stats.UseCase) *StatsHandler {
	return &StatsHandler{stats: uc}
}

// Summary godoc
// @Summary      KPIs del tablero (ingreso, unidades, variación diaria)
// @Tags         stats
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatsSummaryResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/stats/summary [get]
func (h *StatsHandler) Summary(c *fiber.Ctx) error {
	resp, err := h.stats.Summary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// SalesTrend godoc
// @Summary      Serie diaria de ventas de la ventana
// @Tags         stats
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Días de la ventana (default 7)"
// @Success      200  {object}  dto.SalesTrendResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stats/sales/trend [get]
func (h *StatsHandler) SalesTrend(c *fiber.Ctx) error {
	resp, err := h.stats.SalesTrend(c.Context(), c.QueryInt("days", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// TopProducts godoc
// @Summary      Productos más vendidos de la ventana
// @Tags         stats
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Cantidad de productos (default 5)"
// @Success      200  {object}  dto.TopProductsResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stats/products/top [get]
func (h *StatsHandler) TopProducts(c *fiber.Ctx) error {
	resp, err := h.stats.TopProducts(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// CategoryDistribution godoc
// @Summary      Participación de cada categoría en el ingreso
// @Tags         stats
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CategoryDistributionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stats/category/distribution [get]
func (h *StatsHandler) CategoryDistribution(c *fiber.Ctx) error {
	resp, err := h.stats.CategoryDistribution(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Alerts godoc
// @Summary      Productos bajo su stock de seguridad
// @Tags         stats
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockAlertsResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stats/alerts [get]
func (h *StatsHandler) Alerts(c *fiber.Ctx) error {
	resp, err := h.stats.Alerts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
