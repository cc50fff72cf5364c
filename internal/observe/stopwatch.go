package observe

import (
	"errors"

	"github.com/psantana5/fieldbench/internal/report"
)

// ErrEmptyBucketName is returned when a checkpoint has no name to attribute
// time to.
var ErrEmptyBucketName = errors.New("observe: checkpoint name must not be empty")

// Stopwatch attributes the time between successive checkpoints to named
// buckets. Checkpointing a name again adds to its existing bucket.
//
// The sum of all buckets always equals the time between construction and
// the most recent checkpoint. A Stopwatch belongs to a single battery and
// is not safe for concurrent use.
type Stopwatch struct {
	clock   Clock
	origin  float64
	cursor  float64
	buckets []report.Entry
	index   map[string]int
}

// NewStopwatch starts a stopwatch at the clock's current reading
func NewStopwatch(clock Clock) *Stopwatch {
	now := clock.NowMillis()
	return &Stopwatch{
		clock:  clock,
		origin: now,
		cursor: now,
		index:  make(map[string]int),
	}
}

// Checkpoint closes the current interval, adds its duration to the bucket
// called name and opens the next interval.
func (s *Stopwatch) Checkpoint(name string) error {
	if name == "" {
		return ErrEmptyBucketName
	}

	now := s.clock.NowMillis()
	delta := now - s.cursor
	s.cursor = now

	if i, ok := s.index[name]; ok {
		s.buckets[i].ElapsedMillis += delta
		return nil
	}
	s.index[name] = len(s.buckets)
	s.buckets = append(s.buckets, report.Entry{Name: name, ElapsedMillis: delta})
	return nil
}

// Snapshot returns the buckets accumulated so far. The returned result does
// not change when the stopwatch is checkpointed again.
func (s *Stopwatch) Snapshot() report.RunResult {
	return report.NewRunResult(s.buckets...)
}

// Elapsed returns the time between construction and the last checkpoint
func (s *Stopwatch) Elapsed() float64 {
	return s.cursor - s.origin
}
