// Package plugin composes the collaborators one plugin needs: a Namer rooted at
// the plugin, a logger Registry and a dependency-injection container.
package plugin

import (
	"strings"

	"github.com/arya-analytics/pluginkit/pkg/container"
	"github.com/arya-analytics/pluginkit/pkg/logger"
	"github.com/arya-analytics/pluginkit/pkg/naming"
	"github.com/cockroachdb/errors"
)

type Config struct {
	// Slug identifies the plugin. Required.
	Slug string
	// Component, when set, roots every name at "<slug>-<component>".
	Component string
	// DefaultRoot is passed through to the Namer.
	DefaultRoot string
	// Container must be a *container.Map. Optional.
	Container container.Container
	// Loggers resolves named loggers. A fresh Registry is used when nil.
	Loggers *logger.Registry
}

// InvalidSlug is returned by Open for an empty or unsanitizable slug.
var InvalidSlug = errors.New("[plugin] - invalid slug")

type Plugin struct {
	naming.Namer
	loggers   *logger.Registry
	container *container.Adapter
}

// Open validates cfg and composes a Plugin. A Container that is not a
// *container.Map is a container.Configuration error.
func Open(cfg Config) (*Plugin, error) {
	if strings.TrimSpace(cfg.Slug) == "" || naming.Sanitize(cfg.Slug) == "" {
		return nil, errors.Wrapf(InvalidSlug, "%q", cfg.Slug)
	}
	p := &Plugin{loggers: cfg.Loggers}
	if p.loggers == nil {
		p.loggers = logger.NewRegistry(logger.RegistryConfig{})
	}
	owner := naming.PluginOwner(cfg.Slug)
	if cfg.Component != "" {
		owner = naming.ComponentOwner(cfg.Slug, cfg.Component)
	}
	p.Namer = naming.Namer{Owner: owner, DefaultRoot: cfg.DefaultRoot}
	if cfg.Container != nil {
		a, err := container.Adapt(cfg.Container)
		if err != nil {
			return nil, err
		}
		p.container = a
	}
	return p, nil
}

// Logger returns the logger registered under ServiceName(name). It never returns
// nil.
func (p *Plugin) Logger(name string) logger.Logger {
	return p.loggers.Get(p.ServiceName(name))
}

// RegisterLogger registers a logger factory under ServiceName(name).
func (p *Plugin) RegisterLogger(name string, f func() (interface{}, error)) {
	p.loggers.Register(p.ServiceName(name), f)
}

// LoggersFromContainer registers each named logger to resolve from the
// container entry of the same name. Without a container every name resolves to
// the no-op logger.
func (p *Plugin) LoggersFromContainer(names ...string) {
	for _, name := range names {
		if p.container == nil {
			continue
		}
		p.loggers.Register(p.ServiceName(name), logger.ContainerFactory(p.container, name))
	}
}

// Loggers returns the plugin's logger registry.
func (p *Plugin) Loggers() *logger.Registry { return p.loggers }

// HasContainer reports whether the plugin was opened with a container.
func (p *Plugin) HasContainer() bool { return p.container != nil }

// Service resolves id from the plugin's container.
func (p *Plugin) Service(id string) (interface{}, error) {
	if p.container == nil {
		return nil, errors.Wrapf(container.NotFound, "%q: plugin has no container", id)
	}
	return p.container.Get(id)
}

// SetService stores v under id in the plugin's container.
func (p *Plugin) SetService(id string, v interface{}) error {
	if p.container == nil {
		return errors.Mark(
			errors.Newf("[plugin] - cannot set %q: plugin has no container", id),
			container.Configuration,
		)
	}
	p.container.Set(id, v)
	return nil
}
