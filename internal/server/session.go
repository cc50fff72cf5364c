package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/psantana5/fieldbench/internal/report"
)

// State is the lifecycle of a measurement session
type State string

const (
	StatePending State = "pending"
	StateRunning State = "running"
	StateDone    State = "done"
	StateFailed  State = "failed"
)

// Session is the shared view of one growing measurement group. The group
// writes through Begin/Record/Finish from a single goroutine; HTTP handlers
// only ever read copies.
type Session struct {
	ID          string
	Iterations  int
	Repetitions int

	mu        sync.RWMutex
	state     State
	matrix    *report.Matrix
	err       string
	startedAt time.Time
	updatedAt time.Time
}

// NewSession creates a pending session with a fresh id
func NewSession(iterations, repetitions int) *Session {
	return &Session{
		ID:          uuid.NewString(),
		Iterations:  iterations,
		Repetitions: repetitions,
		state:       StatePending,
		matrix:      report.NewMatrix(),
	}
}

// Begin marks the session as running
func (s *Session) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateRunning
	s.startedAt = time.Now()
	s.updatedAt = s.startedAt
}

// Record publishes the matrix after a run. It matches battery.ProgressFunc.
func (s *Session) Record(run int, _ report.RunResult, m *report.Matrix) {
	if m == nil {
		return
	}
	snapshot := m.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.matrix = snapshot
	s.updatedAt = time.Now()
}

// Finish closes the session, failed if err is non-nil
func (s *Session) Finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatedAt = time.Now()
	if err != nil {
		s.state = StateFailed
		s.err = err.Error()
		return
	}
	s.state = StateDone
}

// Matrix returns the latest published matrix. Callers must not modify it.
func (s *Session) Matrix() *report.Matrix {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matrix
}

// Status is the JSON form of a session's progress
type Status struct {
	Session     string     `json:"session"`
	State       State      `json:"state"`
	Iterations  int        `json:"iterations"`
	Repetitions int        `json:"repetitions"`
	Completed   int        `json:"completed"`
	Error       string     `json:"error,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Status returns the current progress
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Status{
		Session:     s.ID,
		State:       s.state,
		Iterations:  s.Iterations,
		Repetitions: s.Repetitions,
		Completed:   s.matrix.Columns(),
		Error:       s.err,
	}
	if !s.startedAt.IsZero() {
		started, updated := s.startedAt, s.updatedAt
		st.StartedAt, st.UpdatedAt = &started, &updated
	}
	return st
}
