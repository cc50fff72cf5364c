package report

import (
	"sync"
	"time"
)

// Failure records one aborted battery
type Failure struct {
	Run      int       `json:"run"`
	Workload string    `json:"workload"`
	Reason   string    `json:"reason"`
	At       time.Time `json:"at"`
}

// FailureLog keeps the most recent battery failures (ring buffer)
type FailureLog struct {
	samples []Failure
	maxSize int
	mu      sync.RWMutex
}

// NewFailureLog creates a log holding at most maxSize failures
func NewFailureLog(maxSize int) *FailureLog {
	if maxSize < 1 {
		maxSize = 1
	}
	return &FailureLog{
		samples: make([]Failure, 0, maxSize),
		maxSize: maxSize,
	}
}

// Record adds a failure, dropping the oldest when full
func (f *FailureLog) Record(failure Failure) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.samples) >= f.maxSize {
		f.samples = f.samples[1:]
	}
	f.samples = append(f.samples, failure)
}

// Recent returns up to n failures, newest first. n <= 0 means all.
func (f *FailureLog) Recent(n int) []Failure {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if n <= 0 || n > len(f.samples) {
		n = len(f.samples)
	}
	out := make([]Failure, n)
	for i := 0; i < n; i++ {
		out[i] = f.samples[len(f.samples)-1-i]
	}
	return out
}

// Count returns how many failures are held
func (f *FailureLog) Count() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.samples)
}
