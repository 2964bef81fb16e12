package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Reposicion-api/internal/application/scheduler"
)

// PipelineHandler expone el disparo manual del pipeline y su estado.
type PipelineHandler struct {
	scheduler *scheduler.Scheduler
}

// NewPipelineHandler construye el handler del pipeline.
func NewPipelineHandler(sched *scheduler.Scheduler) *PipelineHandler {
	return &PipelineHandler{scheduler: sched}
}

// Run godoc
// @Summary      Disparar una corrida del pipeline de reposición
// @Description  Corre el análisis completo y, si hay faltantes, deja una
//
//	recomendación pendiente. Si ya hay una corrida en vuelo la
//	petición se rechaza con 409, no se encola.
//
// @Tags         pipeline
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PipelineRunResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/pipeline/run [post]
func (h *PipelineHandler) Run(c *fiber.Ctx) error {
	resp, err := h.scheduler.TriggerNow(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Status godoc
// @Summary      Estado del scheduler y corridas recientes
// @Tags         pipeline
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PipelineStatusResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/pipeline/status [get]
func (h *PipelineHandler) Status(c *fiber.Ctx) error {
	resp, err := h.scheduler.Status(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
