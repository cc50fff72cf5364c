package shutdown

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/psantana5/fieldbench/pkg/logging"
)

// Func releases one resource. It should return once ctx is done.
type Func func(context.Context) error

// Manager runs registered shutdown functions in reverse order (LIFO) when
// the process is asked to stop.
type Manager struct {
	funcs   []namedFunc
	mu      sync.Mutex
	timeout time.Duration
	logger  *logging.Logger
	once    sync.Once
}

type namedFunc struct {
	name string
	fn   Func
}

// New creates a new shutdown manager
func New(timeout time.Duration, logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Manager{
		timeout: timeout,
		logger:  logger,
	}
}

// Register adds a shutdown function
func (m *Manager) Register(name string, fn Func) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.funcs = append(m.funcs, namedFunc{name: name, fn: fn})
}

// Shutdown executes all registered functions once, newest first, and
// returns the first error seen. Later calls are no-ops.
func (m *Manager) Shutdown() error {
	var firstErr error
	m.once.Do(func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		for i := len(m.funcs) - 1; i >= 0; i-- {
			f := m.funcs[i]
			if err := f.fn(ctx); err != nil {
				m.logger.Error("Shutdown step failed", logging.Fields{"step": f.name, "error": err.Error()})
				if firstErr == nil {
					firstErr = fmt.Errorf("%s: %w", f.name, err)
				}
				continue
			}
			m.logger.Debug("Shutdown step complete", logging.Fields{"step": f.name})
		}
	})
	return firstErr
}

// WaitWithContext blocks until SIGINT/SIGTERM or ctx is done, then runs
// Shutdown. The signal that triggered it is nil when ctx ended first.
func (m *Manager) WaitWithContext(ctx context.Context) (os.Signal, error) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		m.logger.Info("Received signal, shutting down", logging.Fields{"signal": sig.String()})
		return sig, m.Shutdown()
	case <-ctx.Done():
		return nil, m.Shutdown()
	}
}

// StopHTTPServer creates a shutdown function for http.Server
func StopHTTPServer(server interface{ Shutdown(context.Context) error }) Func {
	return func(ctx context.Context) error {
		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to stop HTTP server: %w", err)
		}
		return nil
	}
}
