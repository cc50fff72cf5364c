package battery

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativeCount is returned when a battery is asked for fewer than
	// zero iterations.
	ErrNegativeCount = errors.New("battery: iteration count must not be negative")
	// ErrInvalidRepetitions is returned when a group is asked for fewer
	// than one battery.
	ErrInvalidRepetitions = errors.New("battery: repetitions must be at least 1")
)

// WorkloadError reports a workload that panicked. The battery it belonged
// to is abandoned and produces no result.
type WorkloadError struct {
	Workload string
	Run      int
	Cause    interface{} // the recovered panic value
	Stack    []byte
}

// Error implements error interface
func (e *WorkloadError) Error() string {
	return fmt.Sprintf("workload %q failed in run %d: %v", e.Workload, e.Run, e.Cause)
}

// Unwrap returns the panic value when it was an error
func (e *WorkloadError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}
