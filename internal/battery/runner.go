package battery

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/psantana5/fieldbench/internal/observe"
	"github.com/psantana5/fieldbench/internal/report"
	"github.com/psantana5/fieldbench/pkg/logging"
	"github.com/psantana5/fieldbench/pkg/tracing"
)

// Config wires a Runner to its collaborators. Every field is optional.
type Config struct {
	Clock    observe.Clock
	Logger   *logging.Logger
	Metrics  *report.Metrics
	Failures *report.FailureLog
	Tracer   *tracing.Provider
}

// Runner executes one registry as a battery, as many times as asked.
// A Runner runs one battery at a time and is not safe for concurrent use;
// run independent batteries on independent Runners.
type Runner[T any] struct {
	workloads []Workload[T]
	clock     observe.Clock
	logger    *logging.Logger
	metrics   *report.Metrics
	failures  *report.FailureLog
	tracer    *tracing.Provider
	runs      int
}

// sink receives every workload result so the calls cannot be removed as
// dead code. Each battery owns its own sink.
type sink[T any] struct {
	last T
}

// NewRunner creates a runner over a snapshot of the registry
func NewRunner[T any](registry *Registry[T], cfg Config) *Runner[T] {
	r := &Runner[T]{
		workloads: registry.Workloads(),
		clock:     cfg.Clock,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
		failures:  cfg.Failures,
		tracer:    cfg.Tracer,
	}
	if r.clock == nil {
		r.clock = observe.NewSystemClock()
	}
	if r.logger == nil {
		r.logger = logging.Discard()
	}
	if r.metrics == nil {
		r.metrics = report.NewMetrics()
	}
	if r.failures == nil {
		r.failures = report.NewFailureLog(16)
	}
	if r.tracer == nil {
		r.tracer = tracing.Noop()
	}
	r.logger = r.logger.WithComponent("battery")
	return r
}

// Metrics returns the counters this runner updates
func (r *Runner[T]) Metrics() *report.Metrics {
	return r.metrics
}

// Failures returns the log of aborted batteries
func (r *Runner[T]) Failures() *report.FailureLog {
	return r.failures
}

// Run executes every workload count times, in registration order, and
// checkpoints after each one. The result has one bucket per workload name.
//
// The loops are not interruptible; ctx only carries tracing. If a workload
// panics the whole battery is abandoned and a *WorkloadError is returned.
func (r *Runner[T]) Run(ctx context.Context, count int) (report.RunResult, error) {
	if count < 0 {
		return report.RunResult{}, fmt.Errorf("%w: %d", ErrNegativeCount, count)
	}

	r.runs++
	run := r.runs
	r.metrics.BatteriesStarted.Add(1)

	ctx, span := r.tracer.StartSpan(ctx, "battery.run",
		attribute.Int("run", run),
		attribute.Int("iterations", count),
		attribute.Int("workloads", len(r.workloads)),
	)
	defer span.End()

	log := r.logger.WithFields(logging.Fields{"run": run, "iterations": count})
	log.Debug("Battery started", logging.Fields{"workloads": len(r.workloads)})

	var s sink[T]
	sw := observe.NewStopwatch(r.clock)
	for _, w := range r.workloads {
		if err := loop(w, count, &s); err != nil {
			err.Run = run
			r.fail(err)
			tracing.SetError(ctx, err)
			log.Error("Battery aborted", logging.Fields{"workload": w.Name, "error": fmt.Sprint(err.Cause)})
			return report.RunResult{}, err
		}
		if err := sw.Checkpoint(w.Name); err != nil {
			return report.RunResult{}, fmt.Errorf("checkpoint %q: %w", w.Name, err)
		}
		r.metrics.Checkpoints.Add(1)
	}
	runtime.KeepAlive(s.last)

	result := sw.Snapshot()
	r.metrics.Iterations.Add(uint64(count) * uint64(len(r.workloads)))
	r.metrics.BatteriesCompleted.Add(1)
	span.SetAttributes(attribute.Float64("elapsed_ms", sw.Elapsed()))
	log.Info("Battery finished", logging.Fields{"elapsed_ms": fmt.Sprintf("%.1f", sw.Elapsed())})
	return result, nil
}

// loop is the measured section. The deferred recover sits outside the
// iteration loop so the loop body is only the call and the store.
func loop[T any](w Workload[T], count int, s *sink[T]) (err *WorkloadError) {
	defer func() {
		if p := recover(); p != nil {
			err = &WorkloadError{Workload: w.Name, Cause: p, Stack: debug.Stack()}
		}
	}()

	fn := w.Fn
	for i := 0; i < count; i++ {
		s.last = fn()
	}
	return nil
}

func (r *Runner[T]) fail(err *WorkloadError) {
	r.metrics.BatteriesFailed.Add(1)
	r.failures.Record(report.Failure{
		Run:      err.Run,
		Workload: err.Workload,
		Reason:   fmt.Sprint(err.Cause),
		At:       time.Now(),
	})
}

// ProgressFunc is called after each battery of a group with the 1-based
// run index, its result and the matrix the result was just added to.
type ProgressFunc func(run int, result report.RunResult, m *report.Matrix)

// RunGroup runs the battery repetitions times, adding each result to m as
// soon as it is available and reporting progress through onRun. m and onRun
// may be nil. ctx is only consulted between batteries.
//
// A failed battery stops the group; the runs completed before it remain in
// m but no results are returned.
func (r *Runner[T]) RunGroup(ctx context.Context, count, repetitions int, m *report.Matrix, onRun ProgressFunc) ([]report.RunResult, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, count)
	}
	if repetitions < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRepetitions, repetitions)
	}

	ctx, span := r.tracer.StartSpan(ctx, "battery.group",
		attribute.Int("iterations", count),
		attribute.Int("repetitions", repetitions),
	)
	defer span.End()

	results := make([]report.RunResult, 0, repetitions)
	for i := 1; i <= repetitions; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("group stopped before run %d: %w", i, err)
		}

		result, err := r.Run(ctx, count)
		if err != nil {
			tracing.SetError(ctx, err)
			return nil, err
		}
		results = append(results, result)

		if m != nil {
			m.Add(result)
		}
		if onRun != nil {
			onRun(i, result, m)
		}
	}
	return results, nil
}
