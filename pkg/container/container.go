// Package container holds the dependency-injection contract pluginkit consumes
// and the single implementation it accepts.
package container

import (
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
)

var (
	// NotFound is returned when no service is stored under an id.
	NotFound = errors.New("[container] - service not found")
	// Configuration marks errors caused by wiring the wrong container or the
	// wrong service type. They are programmer errors and are never recovered.
	Configuration = errors.New("[container] - configuration error")
)

// Container is a minimal service locator.
type Container interface {
	// Get returns the service stored under id, or an error wrapping NotFound.
	Get(id string) (interface{}, error)
	// Has reports whether a service is stored under id.
	Has(id string) bool
}

// Map is an in-memory Container. Services are either set directly or provided
// lazily, in which case the provider runs once on first Get and its result,
// error included, is kept.
type Map struct {
	mu   sync.RWMutex
	defs map[string]*definition
}

type definition struct {
	once    sync.Once
	provide func() (interface{}, error)
	value   interface{}
	err     error
}

var _ Container = (*Map)(nil)

func NewMap() *Map { return &Map{defs: make(map[string]*definition)} }

// Set stores v under id, replacing any existing definition.
func (m *Map) Set(id string, v interface{}) {
	d := &definition{value: v}
	d.once.Do(func() {})
	m.mu.Lock()
	m.defs[id] = d
	m.mu.Unlock()
}

// Provide stores a lazy provider under id, replacing any existing definition.
func (m *Map) Provide(id string, f func() (interface{}, error)) {
	m.mu.Lock()
	m.defs[id] = &definition{provide: f}
	m.mu.Unlock()
}

// Get implements Container.
func (m *Map) Get(id string) (interface{}, error) {
	m.mu.RLock()
	d, ok := m.defs[id]
	m.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(NotFound, "%q", id)
	}
	d.once.Do(func() { d.value, d.err = d.provide() })
	return d.value, d.err
}

// Has implements Container.
func (m *Map) Has(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.defs[id]
	return ok
}

// IDs returns every stored id in lexicographic order.
func (m *Map) IDs() []string {
	m.mu.RLock()
	ids := make([]string, 0, len(m.defs))
	for id := range m.defs {
		ids = append(ids, id)
	}
	m.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// Resolve gets id from c and asserts it to T. A value of the wrong type is a
// Configuration error.
func Resolve[T any](c Container, id string) (T, error) {
	var zero T
	v, err := c.Get(id)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, errors.Mark(
			errors.Newf("[container] - service %q is a %T, want %T", id, v, zero),
			Configuration,
		)
	}
	return t, nil
}
