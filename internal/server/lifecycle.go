// Package server runs the long-lived parts of the game, such as the terminal
// loop, and shuts them down together on a signal or when one of them ends.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Service is a long-running component.
type Service interface {
	// Start blocks until the service finishes, is stopped, or fails.
	Start() error
	// Stop asks the service to finish.
	Stop()
}

// FuncService adapts a start/stop function pair into a Service.
type FuncService struct {
	StartFn func() error
	StopFn  func()
}

// Start calls StartFn.
func (f *FuncService) Start() error { return f.StartFn() }

// Stop calls StopFn when set.
func (f *FuncService) Stop() {
	if f.StopFn != nil {
		f.StopFn()
	}
}

// DefaultDrainTimeout bounds how long Run waits for services to return after
// they were stopped.
const DefaultDrainTimeout = 5 * time.Second

// Lifecycle starts services together and stops them in reverse order.
type Lifecycle struct {
	logger   *zap.Logger
	services []namedService
	mu       sync.Mutex
	signals  []os.Signal
	// drainTimeout bounds the wait for Start calls to return after Stop.
	drainTimeout time.Duration
}

type namedService struct {
	name    string
	service Service
}

type exit struct {
	name string
	err  error
}

// NewLifecycle creates a Lifecycle that shuts down on SIGINT or SIGTERM.
//
// Precondition: logger must be non-nil.
func NewLifecycle(logger *zap.Logger) *Lifecycle {
	return &Lifecycle{
		logger:       logger,
		signals:      []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		drainTimeout: DefaultDrainTimeout,
	}
}

// Add registers a named service. Services start in the order added.
//
// Precondition: name must be non-empty; svc must be non-nil.
func (l *Lifecycle) Add(name string, svc Service) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.services = append(l.services, namedService{name: name, service: svc})
}

// Run starts every service and blocks until one of them returns, a
// termination signal arrives, or ctx is cancelled. Every service is then
// stopped in reverse order and Run waits for their Start calls to return.
//
// Postcondition: Every service has been stopped. Every Start call has
// returned unless the drain timeout elapsed first, which is logged. The
// returned error is the failure of the service that ended the run, or nil.
func (l *Lifecycle) Run(ctx context.Context) error {
	start := time.Now()

	l.mu.Lock()
	services := append([]namedService(nil), l.services...)
	l.mu.Unlock()

	exits := make(chan exit, len(services))
	var running sync.WaitGroup
	running.Add(len(services))
	for _, ns := range services {
		go func() {
			defer running.Done()
			l.logger.Debug("starting service", zap.String("service", ns.name))
			svcStart := time.Now()
			err := ns.service.Start()
			l.logger.Debug("service returned",
				zap.String("service", ns.name),
				zap.Duration("uptime", time.Since(svcStart)),
				zap.Error(err),
			)
			exits <- exit{name: ns.name, err: err}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, l.signals...)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		l.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case e := <-exits:
		if e.err != nil {
			l.logger.Error("service failed, shutting down", zap.String("service", e.name), zap.Error(e.err))
			runErr = fmt.Errorf("service %s: %w", e.name, e.err)
		} else {
			l.logger.Debug("service finished, shutting down", zap.String("service", e.name))
		}
	case <-ctx.Done():
		l.logger.Info("context cancelled, shutting down")
	}

	l.shutdown(services)
	l.drain(&running)

	l.logger.Debug("shutdown complete", zap.Duration("total_uptime", time.Since(start)))
	return runErr
}

func (l *Lifecycle) shutdown(services []namedService) {
	for i := len(services) - 1; i >= 0; i-- {
		ns := services[i]
		svcStart := time.Now()
		ns.service.Stop()
		l.logger.Debug("service stopped",
			zap.String("service", ns.name),
			zap.Duration("elapsed", time.Since(svcStart)),
		)
	}
}

// drain waits for every service goroutine, giving up after drainTimeout so a
// service blocked on input cannot hang shutdown.
func (l *Lifecycle) drain(running *sync.WaitGroup) {
	done := make(chan struct{})
	go func() {
		running.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(l.drainTimeout):
		l.logger.Warn("services still running after stop", zap.Duration("timeout", l.drainTimeout))
	}
}
