// Package scheduler dispara el pipeline de reposición: una corrida diaria a
// hora fija y disparos manuales vía API. Garantiza una sola corrida en vuelo
// por proceso con un guard atómico; la corrida entrante se rechaza, no se
// encola.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
	"github.com/jhoicas/Reposicion-api/pkg/logger"
)

// PipelineRunner es el pipeline que el scheduler dispara.
type PipelineRunner interface {
	Run(ctx context.Context) (*dto.PipelineRunResponse, error)
}

// Scheduler coordina las corridas del pipeline.
type Scheduler struct {
	runner     PipelineRunner
	runRepo    repository.PipelineRunRepository
	log        *logger.Logger
	dailyAt    string // "HH:MM" hora local del proceso
	runTimeout time.Duration

	running atomic.Bool

	mu      sync.Mutex
	nextRun *time.Time

	now func() time.Time
}

// New construye el scheduler. dailyAt viene validado desde config ("HH:MM").
func New(runner PipelineRunner, runRepo repository.PipelineRunRepository, log *logger.Logger, dailyAt string, runTimeout time.Duration) *Scheduler {
	return &Scheduler{
		runner:     runner,
		runRepo:    runRepo,
		log:        log,
		dailyAt:    dailyAt,
		runTimeout: runTimeout,
		now:        time.Now,
	}
}

// TriggerNow dispara una corrida inmediata. Si ya hay una en vuelo devuelve
// domain.ErrAlreadyRunning sin encolar nada. El guard se libera en toda
// salida, incluidas las corridas fallidas.
func (s *Scheduler) TriggerNow(ctx context.Context) (*dto.PipelineRunResponse, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, domain.ErrAlreadyRunning
	}
	defer s.running.Store(false)

	runCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()
	return s.runner.Run(runCtx)
}

// Start lanza el loop diario en una goroutine. Se detiene al cancelar ctx.
func (s *Scheduler) Start(ctx context.Context) {
	go s.loop(ctx)
}

func (s *Scheduler) loop(ctx context.Context) {
	for {
		next := s.nextOccurrence()
		s.setNextRun(&next)

		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.setNextRun(nil)
			s.log.Info().Msg("scheduler detenido")
			return
		case <-timer.C:
		}

		s.log.Info().Time("scheduled_for", next).Msg("corrida programada iniciando")
		if _, err := s.TriggerNow(context.WithoutCancel(ctx)); err != nil {
			if err == domain.ErrAlreadyRunning {
				s.log.Warn().Msg("corrida programada omitida: ya hay una en vuelo")
			} else {
				s.log.Error().Err(err).Msg("corrida programada fallida")
			}
		}
	}
}

// Status reporta si hay una corrida en vuelo, la próxima programada y las
// corridas recientes.
func (s *Scheduler) Status(ctx context.Context) (*dto.PipelineStatusResponse, error) {
	resp := &dto.PipelineStatusResponse{
		Running:   s.running.Load(),
		NextRunAt: s.getNextRun(),
	}

	runs, err := s.runRepo.ListRecent(ctx, 10)
	if err != nil {
		return nil, err
	}
	for _, r := range runs {
		resp.RecentRuns = append(resp.RecentRuns, dto.PipelineRunDTO{
			ID:               r.ID,
			StartedAt:        r.StartedAt,
			FinishedAt:       r.FinishedAt,
			Status:           r.Status,
			Note:             r.Note,
			RecommendationID: r.RecommendationID,
		})
	}
	if len(resp.RecentRuns) > 0 {
		resp.LastRun = &resp.RecentRuns[0]
	}
	return resp, nil
}

// nextOccurrence calcula el próximo instante con la hora dailyAt: hoy si aún
// no pasó, mañana si ya pasó.
func (s *Scheduler) nextOccurrence() time.Time {
	at, err := time.Parse("15:04", s.dailyAt)
	if err != nil {
		// Config validada al cargar; esto solo cubre un default corrupto.
		at, _ = time.Parse("15:04", "06:00")
	}
	now := s.now()
	next := time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func (s *Scheduler) setNextRun(t *time.Time) {
	s.mu.Lock()
	s.nextRun = t
	s.mu.Unlock()
}

func (s *Scheduler) getNextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextRun
}
