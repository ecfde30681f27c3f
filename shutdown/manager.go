// Package shutdown coordinates graceful termination: signal handling,
// ordered cleanup, and Unix-convention exit codes.
package shutdown

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"pnguncrush/core"
)

// CleanupFunc is one piece of shutdown work. The context carries the
// shutdown deadline.
type CleanupFunc func(ctx context.Context) error

type handler struct {
	name     string
	priority int
	fn       CleanupFunc
}

// Manager coordinates graceful shutdown: the first SIGINT or SIGTERM cancels
// the managed context, a second signal forces immediate exit, and Shutdown
// runs registered cleanup functions in priority order.
type Manager struct {
	logger  *zap.Logger
	timeout time.Duration

	mu       sync.Mutex
	started  bool
	handlers []handler
	signal   os.Signal
	sigCount int

	ctx     context.Context
	cancel  context.CancelFunc
	sigChan chan os.Signal
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithTimeout sets the cleanup deadline. Default is 30 seconds.
func WithTimeout(timeout time.Duration) ManagerOption {
	return func(m *Manager) {
		m.timeout = timeout
	}
}

// NewManager creates a Manager ready to coordinate shutdown.
func NewManager(logger *zap.Logger, opts ...ManagerOption) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		logger:  logger,
		timeout: 30 * time.Second,
		ctx:     ctx,
		cancel:  cancel,
		sigChan: make(chan os.Signal, 1),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Context returns the context cancelled when shutdown begins. Long-running
// components should watch it.
func (m *Manager) Context() context.Context {
	return m.ctx
}

// Register adds a cleanup function. Lower priorities run first.
func (m *Manager) Register(name string, priority int, fn CleanupFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = append(m.handlers, handler{name: name, priority: priority, fn: fn})
	m.logger.Debug("Registered shutdown handler",
		zap.String("name", name),
		zap.Int("priority", priority))
}

// Start begins listening for SIGINT and SIGTERM. Safe to call more than
// once; only the first call installs the handler.
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return
	}
	m.started = true

	signal.Notify(m.sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		for sig := range m.sigChan {
			m.mu.Lock()
			m.sigCount++
			count := m.sigCount
			if count == 1 {
				m.signal = sig
			}
			m.mu.Unlock()

			if count == 1 {
				m.logger.Info("Received shutdown signal, stopping gracefully",
					zap.String("signal", sig.String()))
				m.cancel()
				continue
			}
			m.logger.Warn("Received second signal, forcing immediate exit")
			os.Exit(core.ExitCodeError)
		}
	}()
}

// Shutdown cancels the context and runs cleanup functions in priority order
// under the configured timeout. All handlers run even if earlier ones fail;
// the first error is returned.
func (m *Manager) Shutdown() error {
	m.cancel()

	m.mu.Lock()
	handlers := make([]handler, len(m.handlers))
	copy(handlers, m.handlers)
	m.mu.Unlock()
	sort.SliceStable(handlers, func(i, j int) bool {
		return handlers[i].priority < handlers[j].priority
	})

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	var firstErr error
	for _, h := range handlers {
		if err := h.fn(ctx); err != nil {
			m.logger.Error("Shutdown handler failed",
				zap.String("name", h.name),
				zap.Error(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("shutdown handler %s: %w", h.name, err)
			}
			continue
		}
		m.logger.Debug("Shutdown handler completed", zap.String("name", h.name))
	}
	return firstErr
}

// ExitCode maps the received signal to the Unix convention: 130 for SIGINT,
// 143 for SIGTERM, 0 when no signal arrived.
func (m *Manager) ExitCode() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.signal {
	case nil:
		return core.ExitCodeSuccess
	case syscall.SIGTERM:
		return core.ExitCodeSIGTERM
	default:
		return core.ExitCodeSIGINT
	}
}
