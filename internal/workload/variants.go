package workload

import (
	"errors"
	"fmt"

	"github.com/psantana5/fieldbench/internal/battery"
)

// MaxAliasDepth is the deepest getter chain the catalog offers
const MaxAliasDepth = 5

// ErrUnknownWorkload is returned when a selected name is not in the catalog
var ErrUnknownWorkload = errors.New("workload: unknown workload")

// Variant describes one catalog entry
type Variant struct {
	Name        string
	Description string
	Fn          func() string
}

// Getter returns a helper that reads r.Roman through depth levels of call
// indirection. Depth 0 is a direct call of the plain helper; every extra
// level wraps the previous one in a closure that binds the record to a
// local alias before calling down, so getter-N costs N+1 calls. A negative
// depth is treated as 0.
func Getter(depth int) func(*Record) string {
	if depth < 0 {
		depth = 0
	}
	get := getRoman
	for i := 0; i < depth; i++ {
		inner := get
		get = func(r *Record) string {
			alias := r
			return inner(alias)
		}
	}
	return get
}

// GetterName is the catalog name of Getter(depth)
func GetterName(depth int) string {
	return fmt.Sprintf("getter-%d", depth)
}

// Catalog returns every variant in canonical order, with getter chains up
// to maxDepth (clamped to 0..MaxAliasDepth).
func Catalog(maxDepth int) []Variant {
	rec := &SampleRecord
	tup := &SampleTuple

	variants := []Variant{
		{
			Name:        "literal",
			Description: "constant string, no record access",
			Fn:          func() string { return RomanLiteral },
		},
		{
			Name:        "selector",
			Description: "direct field selector rec.Roman",
			Fn:          func() string { return rec.Roman },
		},
		{
			Name:        "index-literal",
			Description: "tuple position by literal index tup[1]",
			Fn:          func() string { return tup[1].(string) },
		},
		{
			Name:        "index-const",
			Description: "tuple position by package constant tup[RomanIndex]",
			Fn:          func() string { return tup[RomanIndex].(string) },
		},
		{
			Name:        "index-local-const",
			Description: "tuple position by function-local constant",
			Fn: func() string {
				const romanIndex = 1
				return tup[romanIndex].(string)
			},
		},
	}

	maxDepth = clampDepth(maxDepth)
	for depth := 0; depth <= maxDepth; depth++ {
		get := Getter(depth)
		variants = append(variants, Variant{
			Name:        GetterName(depth),
			Description: fmt.Sprintf("helper reached through %d wrapping calls, each aliasing the record", depth),
			Fn:          func() string { return get(rec) },
		})
	}
	return variants
}

// Select builds a registry from the named variants in the order given.
// An empty selection registers the whole catalog.
func Select(names []string, maxDepth int) (*battery.Registry[string], error) {
	catalog := Catalog(maxDepth)
	byName := make(map[string]Variant, len(catalog))
	for _, v := range catalog {
		byName[v.Name] = v
	}

	registry := battery.NewRegistry[string]()
	if len(names) == 0 {
		for _, v := range catalog {
			if err := registry.Register(v.Name, v.Fn); err != nil {
				return nil, err
			}
		}
		return registry, nil
	}

	for _, name := range names {
		v, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownWorkload, name)
		}
		if err := registry.Register(v.Name, v.Fn); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func clampDepth(depth int) int {
	if depth < 0 {
		return 0
	}
	if depth > MaxAliasDepth {
		return MaxAliasDepth
	}
	return depth
}
