package service

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Factory constructs a service. The returned value is expected, but not
// guaranteed, to satisfy the capability contract of the Registry it is
// registered with. Returning an error or panicking are both treated as a failed
// construction.
type Factory func() (interface{}, error)

// DefaultFallbackName is the reserved name the fallback instance is cached under
// when Config.FallbackName is empty.
const DefaultFallbackName = "fallback"

var (
	// InvalidService is recorded when a factory produces a value that does not
	// satisfy the capability contract.
	InvalidService = errors.New("[service] - factory produced an invalid service")
	// FactoryPanicked is recorded when a factory panics.
	FactoryPanicked = errors.New("[service] - factory panicked")
)

type Config[T any] struct {
	// Fallback is returned for any name that has no factory or whose factory
	// failed. It must satisfy the capability contract on its own.
	Fallback T
	// FallbackName is the reserved name the fallback is cached under.
	FallbackName string
	// Validate is an optional check applied to factory output after the type
	// assertion to T succeeds.
	Validate func(T) error
	// Logger receives construction diagnostics when Debug is true.
	Logger *zap.Logger
	// Debug enables construction diagnostics.
	Debug bool
}

// Registry is a keyed cache of lazily materialized singleton services. Each
// name is materialized at most once: the first Get invokes the registered
// factory, and every subsequent Get returns the same instance, whether that is
// the factory's output or the fallback. Registry is safe for concurrent use.
type Registry[T any] struct {
	cfg       Config[T]
	mu        sync.Mutex
	factories map[string]Factory
	entries   map[string]*entry[T]
}

type entry[T any] struct {
	once    sync.Once
	value   T
	factory Factory
}

// New opens a Registry that is empty except for the fallback, which is
// pre-materialized under cfg.FallbackName.
func New[T any](cfg Config[T]) *Registry[T] {
	if cfg.FallbackName == "" {
		cfg.FallbackName = DefaultFallbackName
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	fb := &entry[T]{value: cfg.Fallback}
	fb.once.Do(func() {})
	return &Registry[T]{
		cfg:       cfg,
		factories: make(map[string]Factory),
		entries:   map[string]*entry[T]{cfg.FallbackName: fb},
	}
}

// Register stores f under name, replacing any previously registered factory.
// Register never fails. It has no effect on a name that has already been
// materialized by Get.
func (r *Registry[T]) Register(name string, f Factory) {
	if name == "" || f == nil {
		r.debug("ignoring invalid registration", zap.String("name", name))
		return
	}
	r.mu.Lock()
	r.factories[name] = f
	r.mu.Unlock()
}

// Get returns the service cached under name, materializing it on first use.
// Get never fails: a missing factory, a factory that errors or panics, and a
// factory that returns an invalid value all resolve to the fallback, and that
// result is cached for the lifetime of the Registry.
func (r *Registry[T]) Get(name string) T {
	r.mu.Lock()
	e, ok := r.entries[name]
	if !ok {
		e = &entry[T]{value: r.cfg.Fallback, factory: r.factories[name]}
		r.entries[name] = e
	}
	r.mu.Unlock()
	e.once.Do(func() { r.materialize(name, e) })
	return e.value
}

// Fallback returns the fallback instance.
func (r *Registry[T]) Fallback() T { return r.cfg.Fallback }

// FallbackName returns the reserved name the fallback is cached under.
func (r *Registry[T]) FallbackName() string { return r.cfg.FallbackName }

// Registered reports whether a factory is stored under name.
func (r *Registry[T]) Registered(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.factories[name]
	return ok
}

// Names returns the names that have been materialized, fallback included, in
// lexicographic order.
func (r *Registry[T]) Names() []string {
	r.mu.Lock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	r.mu.Unlock()
	sort.Strings(names)
	return names
}

func (r *Registry[T]) materialize(name string, e *entry[T]) {
	if e.factory == nil {
		r.debug("no factory registered, using fallback", zap.String("name", name))
		return
	}
	v, err := r.construct(e.factory)
	if err != nil {
		r.debug("construction failed, using fallback", zap.String("name", name), zap.Error(err))
		return
	}
	e.value = v
}

func (r *Registry[T]) construct(f Factory) (v T, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.Wrapf(FactoryPanicked, "%v", rec)
		}
	}()
	raw, err := f()
	if err != nil {
		return v, err
	}
	if isNil(raw) {
		return v, errors.Wrap(InvalidService, "factory returned nil")
	}
	v, ok := raw.(T)
	if !ok {
		return v, errors.Wrapf(InvalidService, "unexpected type %T", raw)
	}
	if r.cfg.Validate != nil {
		if err := r.cfg.Validate(v); err != nil {
			return v, errors.CombineErrors(InvalidService, err)
		}
	}
	return v, nil
}

func (r *Registry[T]) debug(msg string, fields ...zap.Field) {
	if !r.cfg.Debug {
		return
	}
	defer func() { _ = recover() }()
	r.cfg.Logger.Debug(fmt.Sprintf("[service] - %s", msg), fields...)
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}
