package server

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

type mockService struct {
	started atomic.Bool
	stopped atomic.Bool
	startFn func() error
}

func (m *mockService) Start() error {
	m.started.Store(true)
	if m.startFn != nil {
		return m.startFn()
	}
	// Block until stopped
	for !m.stopped.Load() {
		time.Sleep(10 * time.Millisecond)
	}
	return nil
}

func (m *mockService) Stop() {
	m.stopped.Store(true)
}

// slowService takes a while to wind down after Stop.
type slowService struct {
	stop     chan struct{}
	once     sync.Once
	returned atomic.Bool
}

func newSlowService() *slowService {
	return &slowService{stop: make(chan struct{})}
}

func (s *slowService) Start() error {
	<-s.stop
	time.Sleep(50 * time.Millisecond)
	s.returned.Store(true)
	return nil
}

func (s *slowService) Stop() {
	s.once.Do(func() { close(s.stop) })
}

func runAsync(lc *Lifecycle, ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- lc.Run(ctx)
	}()
	return done
}

func waitFor(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("lifecycle did not shut down in time")
		return nil
	}
}

func TestLifecycleStopsOnContextCancel(t *testing.T) {
	lc := NewLifecycle(zaptest.NewLogger(t))

	svc1 := &mockService{}
	svc2 := &mockService{}
	lc.Add("svc1", svc1)
	lc.Add("svc2", svc2)

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(lc, ctx)

	require.Eventually(t, func() bool {
		return svc1.started.Load() && svc2.started.Load()
	}, 2*time.Second, 10*time.Millisecond)

	cancel()

	assert.NoError(t, waitFor(t, done))
	assert.True(t, svc1.stopped.Load())
	assert.True(t, svc2.stopped.Load())
}

func TestLifecycleStopsWhenServiceFinishes(t *testing.T) {
	lc := NewLifecycle(zaptest.NewLogger(t))

	background := &mockService{}
	repl := &mockService{startFn: func() error { return nil }}
	lc.Add("background", background)
	lc.Add("repl", repl)

	err := waitFor(t, runAsync(lc, context.Background()))
	assert.NoError(t, err)
	assert.True(t, background.stopped.Load())
	assert.True(t, repl.stopped.Load())
}

func TestLifecycleReportsServiceFailure(t *testing.T) {
	lc := NewLifecycle(zaptest.NewLogger(t))

	boom := errors.New("boom")
	lc.Add("broken", &mockService{startFn: func() error { return boom }})

	err := waitFor(t, runAsync(lc, context.Background()))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "service broken")
}

func TestFuncService(t *testing.T) {
	started := false
	stopped := false

	svc := &FuncService{
		StartFn: func() error {
			started = true
			return nil
		},
		StopFn: func() {
			stopped = true
		},
	}

	err := svc.Start()
	assert.NoError(t, err)
	assert.True(t, started)

	svc.Stop()
	assert.True(t, stopped)
}

func TestFuncService_NilStop(t *testing.T) {
	svc := &FuncService{StartFn: func() error { return nil }}
	assert.NotPanics(t, svc.Stop)
}

func TestLifecycleWaitsForServicesToReturn(t *testing.T) {
	lc := NewLifecycle(zaptest.NewLogger(t))

	slow := newSlowService()
	other := newSlowService()
	lc.Add("slow", slow)
	lc.Add("other", other)

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(lc, ctx)
	cancel()

	require.NoError(t, waitFor(t, done))
	assert.True(t, slow.returned.Load())
	assert.True(t, other.returned.Load())
}

func TestLifecycleDrainTimeout(t *testing.T) {
	lc := NewLifecycle(zap.NewNop())
	lc.drainTimeout = 50 * time.Millisecond

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	// Ignores Stop, like a terminal blocked on a read.
	lc.Add("stuck", &FuncService{StartFn: func() error {
		<-release
		return nil
	}})
	lc.Add("done", &FuncService{StartFn: func() error { return nil }})

	start := time.Now()
	require.NoError(t, waitFor(t, runAsync(lc, context.Background())))
	assert.Less(t, time.Since(start), 2*time.Second)
}
