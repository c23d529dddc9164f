// Package logger provisions named loggers. Loggers are materialized lazily by a
// Registry and degrade to a no-op logger whenever construction is unavailable or
// fails, so a Logger obtained from this package is always safe to call.
package logger

import (
	"github.com/arya-analytics/pluginkit/pkg/service"
	"go.uber.org/zap"
)

// Logger is the capability contract every registered logger must satisfy.
// *zap.SugaredLogger implements it.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
}

var _ Logger = (*zap.SugaredLogger)(nil)

// NopName is the reserved name the no-op logger is registered under.
const NopName = "nop"

var nop Logger = zap.NewNop().Sugar()

// Nop returns the shared no-op logger. It discards everything written to it.
func Nop() Logger { return nop }

// Registry is a service.Registry of Loggers whose fallback is Nop.
type Registry struct {
	*service.Registry[Logger]
}

// RegistryConfig configures NewRegistry.
type RegistryConfig struct {
	// Diagnostics receives construction failures when Debug is true.
	Diagnostics *zap.Logger
	Debug       bool
}

// NewRegistry opens a Registry with Nop pre-seeded under NopName.
func NewRegistry(cfg RegistryConfig) *Registry {
	diag := cfg.Diagnostics
	if diag != nil {
		diag = diag.Named("logger")
	}
	return &Registry{Registry: service.New(service.Config[Logger]{
		Fallback:     Nop(),
		FallbackName: NopName,
		Logger:       diag,
		Debug:        cfg.Debug,
	})}
}

// RegisterZap registers a factory producing a sugared zap logger. Errors
// returned by build resolve the name to Nop.
func (r *Registry) RegisterZap(name string, build func() (*zap.Logger, error)) {
	r.Register(name, func() (interface{}, error) {
		l, err := build()
		if err != nil {
			return nil, err
		}
		return l.Named(name).Sugar(), nil
	})
}

// IsNop reports whether l is the shared no-op logger.
func IsNop(l Logger) bool { return l == nop }
