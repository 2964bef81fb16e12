package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/application/export"
	"github.com/jhoicas/Reposicion-api/internal/application/recommendation"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

// RecommendationHandler maneja las peticiones HTTP de recomendaciones,
// su ciclo de vida y el historial de pedidos (protegido).
type RecommendationHandler struct {
	lifecycle *recommendation.LifecycleUseCase
	queries   *recommendation.QueryUseCase
	exports   *export.UseCase
}

// NewRecommendationHandler construye el handler.
func NewRecommendationHandler(
	lifecycle *recommendation.LifecycleUseCase,
	queries *recommendation.QueryUseCase,
	exports *export.UseCase,
) *RecommendationHandler {
	return &RecommendationHandler{lifecycle: lifecycle, queries: queries, exports: exports}
}

// List godoc
// @Summary      Listar recomendaciones
// @Tags         recommendations
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | executed | cancelled"
// @Param        limit   query  int     false  "Tamaño de página (default 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.RecommendationListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/recommendations [get]
func (h *RecommendationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de paginación inválidos"})
	}
	resp, err := h.queries.List(c.Context(), c.Query("status"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// GetPending godoc
// @Summary      Recomendación pendiente más reciente
// @Tags         recommendations
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RecommendationDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recommendations/pending [get]
func (h *RecommendationHandler) GetPending(c *fiber.Ctx) error {
	resp, err := h.queries.GetPending(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// GetByID godoc
// @Summary      Detalle de una recomendación con sus renglones
// @Tags         recommendations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la recomendación"
// @Success      200  {object}  dto.RecommendationDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recommendations/{id} [get]
func (h *RecommendationHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.queries.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ListItems godoc
// @Summary      Renglones de una recomendación
// @Tags         recommendations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la recomendación"
// @Success      200  {array}   dto.RecommendationItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recommendations/{id}/items [get]
func (h *RecommendationHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.queries.ListItems(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}

// UpdateItem godoc
// @Summary      Editar la cantidad de un renglón (solo en pending)
// @Tags         recommendations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "ID de la recomendación"
// @Param        itemId  path  string  true  "ID del renglón"
// @Param        body    body  dto.UpdateItemQuantityRequest  true  "order_quantity >= 0"
// @Success      200  {object}  dto.RecommendationItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/recommendations/{id}/items/{itemId} [put]
func (h *RecommendationHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateItemQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.lifecycle.EditItem(c.Context(), c.Params("id"), c.Params("itemId"), in.OrderQuantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// Execute godoc
// @Summary      Ejecutar la recomendación (exactamente una vez)
// @Description  Incrementa el stock de cada producto según la cantidad pedida,
//
//	deja el historial de pedidos al proveedor y transiciona a executed.
//	Todo o nada: si un producto ya no existe, nada se aplica.
//
// @Tags         recommendations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la recomendación"
// @Success      200  {object}  dto.ExecuteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/recommendations/{id}/execute [post]
func (h *RecommendationHandler) Execute(c *fiber.Ctx) error {
	resp, err := h.lifecycle.Execute(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Cancel godoc
// @Summary      Cancelar la recomendación (no toca stock)
// @Tags         recommendations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la recomendación"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/recommendations/{id}/cancel [post]
func (h *RecommendationHandler) Cancel(c *fiber.Ctx) error {
	if err := h.lifecycle.Cancel(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "recomendación cancelada"})
}

// DownloadPDF godoc
// @Summary      Hoja de pedido en PDF
// @Tags         recommendations
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la recomendación"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recommendations/{id}/pdf [get]
func (h *RecommendationHandler) DownloadPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.exports.OrderSheetPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// DownloadXML godoc
// @Summary      XML de pedido al proveedor
// @Tags         recommendations
// @Security     Bearer
// @Produce      application/xml
// @Param        id  path  string  true  "ID de la recomendación"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recommendations/{id}/xml [get]
func (h *RecommendationHandler) DownloadXML(c *fiber.Ctx) error {
	xml, filename, err := h.exports.OrderXML(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(xml)
}

// OrderHistory godoc
// @Summary      Historial de pedidos al proveedor
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit       query  int     false  "Tamaño de página (default 50)"
// @Param        offset      query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.PurchaseOrderResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/orders/history [get]
func (h *RecommendationHandler) OrderHistory(c *fiber.Ctx) error {
	filter := repository.OrderHistoryFilter{
		ProductID: c.Query("product_id"),
		Limit:     c.QueryInt("limit", 50),
		Offset:    c.QueryInt("offset", 0),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from debe ser YYYY-MM-DD"})
		}
		filter.From = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to debe ser YYYY-MM-DD"})
		}
		filter.To = t
	}
	orders, err := h.queries.OrderHistory(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(orders), "orders": orders})
}

// MonthlyStatistics godoc
// @Summary      Estadísticas mensuales de recomendaciones
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        year   query  int  false  "Año (default: actual)"
// @Param        month  query  int  false  "Mes 1-12 (default: actual)"
// @Success      200  {object}  dto.MonthlyStatisticsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders/statistics [get]
func (h *RecommendationHandler) MonthlyStatistics(c *fiber.Ctx) error {
	now := time.Now()
	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month()))
	if month < 1 || month > 12 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "month debe estar entre 1 y 12"})
	}
	resp, err := h.queries.MonthlyStatistics(c.Context(), year, time.Month(month))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
