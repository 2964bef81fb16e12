package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
	"github.com/jhoicas/Reposicion-api/pkg/logger"
)

// blockingRunner se queda corriendo hasta que se le ordena terminar.
type blockingRunner struct {
	started chan struct{}
	release chan struct{}
	err     error
	calls   int
	mu      sync.Mutex
}

func newBlockingRunner() *blockingRunner {
	return &blockingRunner{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (r *blockingRunner) Run(ctx context.Context) (*dto.PipelineRunResponse, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	close(r.started)
	<-r.release
	if r.err != nil {
		return nil, r.err
	}
	return &dto.PipelineRunResponse{RunID: "run-1", Outcome: "no_action"}, nil
}

type fakeRunRepo struct {
	repository.PipelineRunRepository
	runs []*entity.PipelineRun
}

func (f *fakeRunRepo) ListRecent(ctx context.Context, limit int) ([]*entity.PipelineRun, error) {
	return f.runs, nil
}

func newScheduler(runner PipelineRunner) *Scheduler {
	return New(runner, &fakeRunRepo{}, logger.Nop(), "06:00", time.Minute)
}

func TestTriggerNow_RechazaCorridaConcurrente(t *testing.T) {
	runner := newBlockingRunner()
	s := newScheduler(runner)

	firstDone := make(chan error, 1)
	go func() {
		_, err := s.TriggerNow(context.Background())
		firstDone <- err
	}()
	<-runner.started

	// Segunda corrida mientras la primera sigue en vuelo
	_, err := s.TriggerNow(context.Background())
	assert.ErrorIs(t, err, domain.ErrAlreadyRunning)

	close(runner.release)
	require.NoError(t, <-firstDone)
	assert.Equal(t, 1, runner.calls, "el runner debe ejecutarse una sola vez")
}

func TestTriggerNow_LiberaElGuardTrasElExito(t *testing.T) {
	runner := newBlockingRunner()
	s := newScheduler(runner)
	close(runner.release)

	_, err := s.TriggerNow(context.Background())
	require.NoError(t, err)

	// El guard quedó libre: un nuevo disparo no es rechazado
	runner2 := newBlockingRunner()
	s2Err := make(chan error, 1)
	s.runner = runner2
	go func() {
		_, err := s.TriggerNow(context.Background())
		s2Err <- err
	}()
	<-runner2.started
	close(runner2.release)
	require.NoError(t, <-s2Err)
}

func TestTriggerNow_LiberaElGuardTrasUnFallo(t *testing.T) {
	runner := newBlockingRunner()
	runner.err = errors.New("la corrida explotó")
	close(runner.release)
	s := newScheduler(runner)

	_, err := s.TriggerNow(context.Background())
	require.Error(t, err)

	assert.False(t, s.running.Load(), "el guard debe liberarse aunque la corrida falle")
}

func TestStatus_ReportaCorridaEnVuelo(t *testing.T) {
	runner := newBlockingRunner()
	s := newScheduler(runner)

	go s.TriggerNow(context.Background()) //nolint:errcheck
	<-runner.started

	st, err := s.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Running)

	close(runner.release)
}

func TestStatus_IncluyeCorridasRecientes(t *testing.T) {
	finished := time.Date(2025, 6, 15, 6, 0, 30, 0, time.UTC)
	recID := "rec-1"
	repo := &fakeRunRepo{runs: []*entity.PipelineRun{
		{ID: "run-2", Status: entity.RunStatusCompleted, FinishedAt: &finished, RecommendationID: &recID},
		{ID: "run-1", Status: entity.RunStatusFailed, Note: "timeout"},
	}}
	s := New(newBlockingRunner(), repo, logger.Nop(), "06:00", time.Minute)

	st, err := s.Status(context.Background())

	require.NoError(t, err)
	assert.False(t, st.Running)
	require.Len(t, st.RecentRuns, 2)
	require.NotNil(t, st.LastRun)
	assert.Equal(t, "run-2", st.LastRun.ID)
	assert.Equal(t, &recID, st.LastRun.RecommendationID)
}

func TestNextOccurrence_HoyOManana(t *testing.T) {
	s := newScheduler(newBlockingRunner())

	// Antes de la hora programada: hoy
	s.now = func() time.Time { return time.Date(2025, 6, 15, 5, 0, 0, 0, time.UTC) }
	next := s.nextOccurrence()
	assert.Equal(t, time.Date(2025, 6, 15, 6, 0, 0, 0, time.UTC), next)

	// Después de la hora programada: mañana
	s.now = func() time.Time { return time.Date(2025, 6, 15, 7, 0, 0, 0, time.UTC) }
	next = s.nextOccurrence()
	assert.Equal(t, time.Date(2025, 6, 16, 6, 0, 0, 0, time.UTC), next)
}
