package spritebench

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// TestFunc runs one capacity search.
type TestFunc func(ctx context.Context) (CapacityResult, error)

// Tests indexes every test as Tests[source][backend][generator].
type Tests map[string]map[string]map[string]TestFunc

// TestKey names one test of the product.
type TestKey struct {
	Source    string
	Backend   string
	Generator string
}

// String returns "source/backend/generator".
func (k TestKey) String() string {
	return k.Source + "/" + k.Backend + "/" + k.Generator
}

// ParseTestKey parses the form produced by TestKey.String.
func ParseTestKey(s string) (TestKey, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return TestKey{}, fmt.Errorf("%w: %q is not source/backend/generator", ErrUnknownTest, s)
	}
	return TestKey{Source: parts[0], Backend: parts[1], Generator: parts[2]}, nil
}

// Registry holds the registered components. It is immutable once built.
type Registry struct {
	sources    map[string]Source
	backends   map[string]BackendFactory
	generators map[string]Generator
}

func newRegistry(o options) *Registry {
	r := &Registry{
		sources:    make(map[string]Source, len(o.sources)),
		backends:   make(map[string]BackendFactory, len(o.backends)),
		generators: make(map[string]Generator, len(o.generators)),
	}
	for k, v := range o.sources {
		r.sources[k] = v
	}
	for k, v := range o.backends {
		r.backends[k] = v
	}
	for k, v := range o.generators {
		r.generators[k] = v
	}
	return r
}

// Sources returns the registered source names, sorted.
func (r *Registry) Sources() []string { return sortedKeys(r.sources) }

// Backends returns the registered backend names, sorted.
func (r *Registry) Backends() []string { return sortedKeys(r.backends) }

// Generators returns the registered generator names, sorted.
func (r *Registry) Generators() []string { return sortedKeys(r.generators) }

// Keys returns every test in the product, ordered by source, backend and
// generator name.
func (r *Registry) Keys() []TestKey {
	keys := make([]TestKey, 0, len(r.sources)*len(r.backends)*len(r.generators))
	for _, s := range r.Sources() {
		for _, b := range r.Backends() {
			for _, g := range r.Generators() {
				keys = append(keys, TestKey{Source: s, Backend: b, Generator: g})
			}
		}
	}
	return keys
}

// Has reports whether every component of k is registered.
func (r *Registry) Has(k TestKey) bool {
	_, s := r.sources[k.Source]
	_, b := r.backends[k.Backend]
	_, g := r.generators[k.Generator]
	return s && b && g
}

// Selection filters the product. Empty fields select everything.
type Selection struct {
	Sources    []string
	Backends   []string
	Generators []string
}

// Select returns the keys matching sel, in Keys order. Unknown names in sel
// are an error.
func (r *Registry) Select(sel Selection) ([]TestKey, error) {
	src, err := filter("source", sel.Sources, r.Sources())
	if err != nil {
		return nil, err
	}
	be, err := filter("backend", sel.Backends, r.Backends())
	if err != nil {
		return nil, err
	}
	gen, err := filter("generator", sel.Generators, r.Generators())
	if err != nil {
		return nil, err
	}

	var keys []TestKey
	for _, k := range r.Keys() {
		if src[k.Source] && be[k.Backend] && gen[k.Generator] {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func filter(kind string, want, have []string) (map[string]bool, error) {
	set := make(map[string]bool, len(have))
	if len(want) == 0 {
		for _, h := range have {
			set[h] = true
		}
		return set, nil
	}
	known := make(map[string]bool, len(have))
	for _, h := range have {
		known[h] = true
	}
	for _, w := range want {
		if !known[w] {
			return nil, fmt.Errorf("%w: %s %q (have %s)", ErrUnknownTest, kind, w, strings.Join(have, ", "))
		}
		set[w] = true
	}
	return set, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
