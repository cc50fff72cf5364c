package report

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Entry is one named timing bucket: the total milliseconds a battery spent
// in one workload.
type Entry struct {
	Name          string  `json:"name" yaml:"name"`
	ElapsedMillis float64 `json:"elapsed_ms" yaml:"elapsed_ms"`
}

// RunResult is the immutable outcome of exactly one battery execution.
// Buckets keep the order in which they were first checkpointed.
// The zero value is an empty result.
type RunResult struct {
	entries []Entry
	index   map[string]int
}

// NewRunResult builds a result from entries in order. Repeated names are
// summed into the position where the name first appeared, the same way a
// stopwatch accumulates repeated checkpoints.
func NewRunResult(entries ...Entry) RunResult {
	r := RunResult{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if i, ok := r.index[e.Name]; ok {
			r.entries[i].ElapsedMillis += e.ElapsedMillis
			continue
		}
		r.index[e.Name] = len(r.entries)
		r.entries = append(r.entries, e)
	}
	return r
}

// Len returns the number of buckets
func (r RunResult) Len() int {
	return len(r.entries)
}

// Names returns bucket names in first-seen order
func (r RunResult) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

// Value returns the total for name and whether the run measured it at all
func (r RunResult) Value(name string) (float64, bool) {
	i, ok := r.index[name]
	if !ok {
		return 0, false
	}
	return r.entries[i].ElapsedMillis, true
}

// Entries returns a copy of the buckets in order
func (r RunResult) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Each calls fn for every bucket in order
func (r RunResult) Each(fn func(name string, elapsedMillis float64)) {
	for _, e := range r.entries {
		fn(e.Name, e.ElapsedMillis)
	}
}

// Total returns the sum of all buckets
func (r RunResult) Total() float64 {
	var total float64
	for _, e := range r.entries {
		total += e.ElapsedMillis
	}
	return total
}

// String renders the result the way the harness logs it:
// "name=1.2ms name=3.4ms".
func (r RunResult) String() string {
	parts := make([]string, len(r.entries))
	for i, e := range r.entries {
		parts[i] = fmt.Sprintf("%s=%.1fms", e.Name, e.ElapsedMillis)
	}
	return strings.Join(parts, " ")
}

// MarshalJSON encodes the result as an ordered array so bucket order
// survives the round trip.
func (r RunResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Entries())
}

// UnmarshalJSON decodes the ordered array form
func (r *RunResult) UnmarshalJSON(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to decode run result: %w", err)
	}
	*r = NewRunResult(entries...)
	return nil
}
