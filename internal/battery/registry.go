package battery

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyWorkloadName is returned when registering a workload without a name
	ErrEmptyWorkloadName = errors.New("battery: workload name must not be empty")
	// ErrNilWorkload is returned when registering a nil function
	ErrNilWorkload = errors.New("battery: workload function must not be nil")
)

// Workload is one named variant. Fn is called once per iteration and its
// result is kept in the battery's sink.
type Workload[T any] struct {
	Name string
	Fn   func() T
}

// Registry keeps workloads in registration order. The same name may be
// registered more than once; its timings then add up in one bucket.
type Registry[T any] struct {
	workloads []Workload[T]
}

// NewRegistry creates an empty registry
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{}
}

// Register appends a workload
func (r *Registry[T]) Register(name string, fn func() T) error {
	if name == "" {
		return ErrEmptyWorkloadName
	}
	if fn == nil {
		return fmt.Errorf("%w: %s", ErrNilWorkload, name)
	}
	r.workloads = append(r.workloads, Workload[T]{Name: name, Fn: fn})
	return nil
}

// MustRegister is Register for static registries; it panics on error
func (r *Registry[T]) MustRegister(name string, fn func() T) *Registry[T] {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
	return r
}

// Workloads returns the workloads in registration order
func (r *Registry[T]) Workloads() []Workload[T] {
	out := make([]Workload[T], len(r.workloads))
	copy(out, r.workloads)
	return out
}

// Names returns workload names in registration order
func (r *Registry[T]) Names() []string {
	names := make([]string, len(r.workloads))
	for i, w := range r.workloads {
		names[i] = w.Name
	}
	return names
}

// Len returns the number of registered workloads
func (r *Registry[T]) Len() int {
	return len(r.workloads)
}
