package container

import "github.com/cockroachdb/errors"

// Adapter restricts a Container to *Map, the only implementation pluginkit
// knows how to write to.
type Adapter struct {
	m *Map
}

// Adapt wraps c. It returns a Configuration error if c is nil or is not a *Map.
func Adapt(c Container) (*Adapter, error) {
	m, ok := c.(*Map)
	if !ok || m == nil {
		return nil, errors.Mark(
			errors.Newf("[container] - unsupported container %T, want *container.Map", c),
			Configuration,
		)
	}
	return &Adapter{m: m}, nil
}

// Get implements Container.
func (a *Adapter) Get(id string) (interface{}, error) { return a.m.Get(id) }

// Has implements Container.
func (a *Adapter) Has(id string) bool { return a.m.Has(id) }

// Set stores v under id.
func (a *Adapter) Set(id string, v interface{}) { a.m.Set(id, v) }

// Map returns the adapted container.
func (a *Adapter) Map() *Map { return a.m }
